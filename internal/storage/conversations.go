package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

// AppendMessage writes one conversation turn to the log. The message ID
// and CreatedAt are assigned here.
func (s *Store) AppendMessage(ctx context.Context, m *models.ConversationMessage) error {
	if m.UserID == "" || m.SessionID == "" {
		return fmt.Errorf("append message: user_id and session_id are required")
	}

	m.ID = s.newID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	meta := "{}"
	if len(m.Metadata) > 0 {
		b, _ := json.Marshal(m.Metadata)
		meta = string(b)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversation_history (id, user_id, session_id, agent_type, role, content, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.SessionID, m.AgentType, m.Role, m.Content, meta,
		m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// SessionMessages returns a session's turns in chronological order.
func (s *Store) SessionMessages(ctx context.Context, sessionID string, limit int) ([]*models.ConversationMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, agent_type, role, content, metadata, created_at
		FROM conversation_history
		WHERE session_id = ?
		ORDER BY created_at, rowid LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("session messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.ConversationMessage
	for rows.Next() {
		var (
			m               models.ConversationMessage
			meta, createdAt string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.AgentType,
			&m.Role, &m.Content, &meta, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		json.Unmarshal([]byte(meta), &m.Metadata)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// UserConversations returns a user's recent turns across all sessions,
// newest first.
func (s *Store) UserConversations(ctx context.Context, userID string, limit int) ([]*models.ConversationMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, agent_type, role, content, metadata, created_at
		FROM conversation_history
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("user conversations: %w", err)
	}
	defer rows.Close()

	var msgs []*models.ConversationMessage
	for rows.Next() {
		var (
			m               models.ConversationMessage
			meta, createdAt string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.AgentType,
			&m.Role, &m.Content, &meta, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		json.Unmarshal([]byte(meta), &m.Metadata)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// PruneConversations deletes a user's turns older than the retention
// window, returning how many rows were removed.
func (s *Store) PruneConversations(ctx context.Context, userID string, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_history WHERE user_id = ? AND created_at < ?`, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune conversations: %w", err)
	}
	return res.RowsAffected()
}

package models

import "time"

// Message roles within a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Agent types recorded against conversation turns.
const (
	AgentHealth    = "health_assessment"
	AgentNutrition = "nutrition_planning"
)

// ConversationMessage is one turn of a chat session, persisted as an
// append-only log row.
type ConversationMessage struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	SessionID string            `json:"session_id"`
	AgentType string            `json:"agent_type"`
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

package entity

import "time"

type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionUpdate ActionType = "UPDATE"
	ActionDelete ActionType = "DELETE"
)

// AuditMessage - сообщение аудита, уходит в RabbitMQ
type AuditMessage struct {
	Action    ActionType             `json:"action"`
	UserID    int                    `json:"user_id"`
	EntityID  int                    `json:"entity_id"`
	OldValues map[string]interface{} `json:"old_values,omitempty"`
	NewValues map[string]interface{} `json:"new_values,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// TaskAudit - строка аудита в БД, значения храним как JSON-строки
type TaskAudit struct {
	ID        int        `json:"id"`
	Action    ActionType `json:"action"`
	UserID    int        `json:"user_id"`
	EntityID  int        `json:"entity_id"`
	OldValues string     `json:"old_values,omitempty"`
	NewValues string     `json:"new_values,omitempty"`
	Changes   string     `json:"changes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

package models

import "time"

// AuditLog records what the gateway did on behalf of a session: week
// rebuilds, submissions, conflicts, confirmations. It is an operational
// trail, not the appointment record — that lives upstream.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID string `gorm:"size:64;index" json:"session_id"`
	BranchID  string `gorm:"size:64" json:"branch_id"`

	Action string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:64" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

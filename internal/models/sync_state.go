package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentSyncState tracks per-scope feed sync progress. Scope is
// "<hemisphere>:<date>" for daily pulls.
type ContentSyncState struct {
	Scope         string         `gorm:"primaryKey;type:text" json:"scope"`
	Cursor        *string        `gorm:"type:text" json:"cursor,omitempty"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz" json:"last_success_at,omitempty"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz" json:"last_attempt_at,omitempty"`
	LastError     *string        `gorm:"type:text" json:"last_error,omitempty"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb" json:"stats,omitempty"`
}

func (ContentSyncState) TableName() string {
	return "content_sync_state"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// DailyContent is one pre-generated horoscope row. Identity is the triple
// (sign, hemisphere, date); the upstream feed may rewrite text for an
// existing triple, which is handled as an upsert.
type DailyContent struct {
	ID                uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Sign              string  `gorm:"type:text;not null;uniqueIndex:idx_daily_identity,priority:1;index" json:"sign"`
	Hemisphere        string  `gorm:"type:text;not null;uniqueIndex:idx_daily_identity,priority:2" json:"hemisphere"`
	Date              string  `gorm:"type:text;not null;uniqueIndex:idx_daily_identity,priority:3;index" json:"date"`
	DailyText         string  `gorm:"type:text;not null" json:"daily_text"`
	AffirmationText   string  `gorm:"type:text" json:"affirmation_text"`
	DeeperInsightText string  `gorm:"type:text" json:"deeper_insight_text"`
	SourceID          *string `gorm:"type:text" json:"source_id,omitempty"`

	ExternalUpdatedAt *time.Time     `gorm:"type:timestamptz" json:"external_updated_at,omitempty"`
	LastSeenAt        time.Time      `gorm:"type:timestamptz;not null" json:"last_seen_at"`
	RawJSON           datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (DailyContent) TableName() string {
	return "daily_contents"
}

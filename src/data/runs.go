package data

import (
	"time"

	"gorm.io/gorm"
)

// SummaryRun records metadata about one /summarise invocation. Message content and the
// generated summary are never stored.
type SummaryRun struct {
	ID                  string    `gorm:"primaryKey;size:36"`
	GuildID             string    `gorm:"size:32;index:idx_run_channel"`
	ChannelID           string    `gorm:"size:32;index:idx_run_channel"`
	UserID              string    `gorm:"size:32;index"`
	Profile             string    `gorm:"size:32"`
	Visibility          string    `gorm:"size:16"`
	Requested           int
	Collected           int
	Chunks              int
	TemplateFingerprint uint64
	DurationMs          int64
	Outcome             string    `gorm:"size:32"`
	CreatedAt           time.Time `gorm:"index"`
}

// TableName implements gorm's tabler interface.
func (SummaryRun) TableName() string {
	return "summary_runs"
}

// RunStore writes run metadata.
type RunStore struct {
	db *gorm.DB
}

// NewRunStore returns a run store; with a nil db, Record is a no-op.
func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// Record persists a run.
func (rs *RunStore) Record(run SummaryRun) error {
	if rs == nil || rs.db == nil {
		return nil
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return rs.db.Create(&run).Error
}

// Recent returns the newest runs for a channel.
func (rs *RunStore) Recent(guildID, channelID string, limit int) ([]SummaryRun, error) {
	if rs == nil || rs.db == nil {
		return nil, nil
	}
	var runs []SummaryRun
	err := rs.db.Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

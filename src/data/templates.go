package data

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OneOfOne/xxhash"
	"gorm.io/gorm"
)

// PromptTemplate is one published version of a profile's system or user prompt.
type PromptTemplate struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Profile     string    `gorm:"size:32;uniqueIndex:idx_prompt_version"`
	Role        string    `gorm:"size:16;uniqueIndex:idx_prompt_version"`
	Version     uint32    `gorm:"uniqueIndex:idx_prompt_version"`
	Body        string    `gorm:"type:text"`
	Fingerprint uint64    `gorm:"index"`
	CreatedBy   string    `gorm:"size:64"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName implements gorm's tabler interface.
func (PromptTemplate) TableName() string {
	return "prompt_templates"
}

// TemplateFingerprint hashes a template body so runs can be traced to the exact prompt text.
func TemplateFingerprint(body string) uint64 {
	return xxhash.Checksum64([]byte(body))
}

// TemplateStore persists versioned prompt templates.
type TemplateStore struct {
	db *gorm.DB
}

// NewTemplateStore returns a store; a nil db yields a store that never finds overrides.
func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Latest returns the newest published template, or nil when none exists.
func (ts *TemplateStore) Latest(profile, role string) (*PromptTemplate, error) {
	if ts == nil || ts.db == nil {
		return nil, nil
	}
	var tmpl PromptTemplate
	err := ts.db.Where("profile = ? AND role = ?", profile, role).
		Order("version DESC").
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("data: latest template %s/%s: %w", profile, role, err)
	}
	return &tmpl, nil
}

// List returns every version for a profile, newest first.
func (ts *TemplateStore) List(profile string) ([]PromptTemplate, error) {
	if ts == nil || ts.db == nil {
		return nil, fmt.Errorf("data: template store not initialized")
	}
	var out []PromptTemplate
	err := ts.db.Where("profile = ?", profile).
		Order("role ASC, version DESC").
		Find(&out).Error
	return out, err
}

// Publish stores body as the next version for profile/role.
func (ts *TemplateStore) Publish(profile, role, body, author string) (*PromptTemplate, error) {
	if ts == nil || ts.db == nil {
		return nil, fmt.Errorf("data: template store not initialized")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("data: template body is empty")
	}

	var tmpl PromptTemplate
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		var current uint32
		if err := tx.Model(&PromptTemplate{}).
			Where("profile = ? AND role = ?", profile, role).
			Select("COALESCE(MAX(version), 0)").
			Scan(&current).Error; err != nil {
			return err
		}
		tmpl = PromptTemplate{
			Profile:     profile,
			Role:        role,
			Version:     current + 1,
			Body:        body,
			Fingerprint: TemplateFingerprint(body),
			CreatedBy:   author,
			CreatedAt:   time.Now(),
		}
		return tx.Create(&tmpl).Error
	})
	if err != nil {
		return nil, fmt.Errorf("data: publish template %s/%s: %w", profile, role, err)
	}
	return &tmpl, nil
}

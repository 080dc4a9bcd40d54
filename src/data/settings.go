package data

import (
	"sync"

	"gorm.io/gorm"
)

// Setting is a single key/value row in the settings table.
type Setting struct {
	Name  string `gorm:"primaryKey;size:128"`
	Value string `gorm:"type:text"`
}

// TableName implements gorm's tabler interface.
func (Setting) TableName() string {
	return "settings"
}

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from the database into cache
func LoadSettings(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string, len(settings))
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value from cache (call LoadSettings first)
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// ReplaceSettings swaps the cached settings wholesale.
func ReplaceSettings(values map[string]string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCache = make(map[string]string, len(values))
	for k, v := range values {
		settingsCache[k] = v
	}
}

package config

import (
	"time"

	"gorm.io/gorm"
)

// SummaryConfig holds /summarise configuration.
type SummaryConfig struct {
	Base
	AIConfig
	Profile       string
	RoleID        string
	Cooldown      time.Duration
	LookupWorkers int
	Enabled       bool
}

// LoadSummaryConfig loads the summarise module configuration.
func LoadSummaryConfig(db *gorm.DB) SummaryConfig {
	base := LoadBase(db)
	ai := LoadAIConfig()

	workers := getIntSetting("summary_lookup_workers", "SUMMARY_LOOKUP_WORKERS", 8)
	if workers < 1 {
		workers = 1
	}
	cooldown := getIntSetting("summary_cooldown_seconds", "SUMMARY_COOLDOWN_SECONDS", 0)
	if cooldown < 0 {
		cooldown = 0
	}

	return SummaryConfig{
		Base:          base,
		AIConfig:      ai,
		Profile:       GetSetting("summary_profile", "SUMMARY_PROFILE", "classic"),
		RoleID:        GetSetting("summary_role_id", "SUMMARY_ROLE_ID", ""),
		Cooldown:      time.Duration(cooldown) * time.Second,
		LookupWorkers: workers,
		Enabled:       getBoolSetting("enable_summary", "ENABLE_SUMMARY", true),
	}
}

// AdminConfig holds the admin HTTP server configuration.
type AdminConfig struct {
	Listen      string
	JWTSecret   string
	CORSOrigins []string
	Enabled     bool
}

// LoadAdminConfig loads the admin server configuration. The server stays disabled unless a
// listen address and a JWT secret are both set.
func LoadAdminConfig() AdminConfig {
	listen := GetSetting("admin_listen", "ADMIN_LISTEN", "")
	secret := GetSetting("admin_jwt_secret", "ADMIN_JWT_SECRET", "")
	return AdminConfig{
		Listen:      listen,
		JWTSecret:   secret,
		CORSOrigins: splitList(GetSetting("admin_cors_origins", "ADMIN_CORS_ORIGINS", "")),
		Enabled:     listen != "" && secret != "",
	}
}

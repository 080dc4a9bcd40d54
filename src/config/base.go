package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/stake-plus/summarybot/src/data"
	"gorm.io/gorm"
)

// Base contains common configuration fields
type Base struct {
	Token    string
	GuildID  string
	MySQLDSN string
	RedisURL string
	Env      string
}

// LoadDotEnv reads a .env file from the working directory when one exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LoadBase loads common configuration (discord token, guild ID, MySQL DSN, Redis URL).
// Settings stored in the database win over environment variables.
func LoadBase(db *gorm.DB) Base {
	// A failed load leaves the env fallbacks in place.
	_ = data.LoadSettings(db)

	return Base{
		Token:    GetSetting("discord_token", "DISCORD_TOKEN", ""),
		GuildID:  GetSetting("guild_id", "GUILD_ID", ""),
		MySQLDSN: data.GetMySQLDSN(),
		RedisURL: GetSetting("redis_url", "REDIS_URL", ""),
		Env:      GetSetting("env", "ENV", "development"),
	}
}

// GetSetting retrieves a setting with env fallback
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}

func getBoolSetting(settingKey, envKey string, defaultValue bool) bool {
	if v := GetSetting(settingKey, envKey, ""); v != "" {
		return parseBoolDefault(v, defaultValue)
	}
	return defaultValue
}

func getIntSetting(settingKey, envKey string, defaultValue int) int {
	v := strings.TrimSpace(GetSetting(settingKey, envKey, ""))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

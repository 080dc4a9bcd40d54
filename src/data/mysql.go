package data

import (
	"os"
	"strings"
)

// GetMySQLDSN returns the MySQL DSN configured via environment. An empty DSN means the bot runs
// without a database and relies on env settings and embedded prompt templates.
func GetMySQLDSN() string {
	return strings.TrimSpace(os.Getenv("MYSQL_DSN"))
}

// Package envfile appends database connection settings to a generated
// project's .env file.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

// FileName is the env file written into the destination project.
const FileName = ".env"

// Database types understood by the generated connection code.
const (
	DBSQLite   = "sqlite"
	DBMySQL    = "mysql"
	DBMariaDB  = "mariadb"
	DBPostgres = "postgres"
	DBMSSQL    = "mssql"
	DBMSQL     = "msql"

	// DBManual leaves connection details for the user to fill in later.
	DBManual = "manual"
)

// Defaults applied when a setting is left empty.
const (
	DefaultSQLitePath = "data/database.sqlite"
	DefaultHost       = "localhost"
	DefaultUser       = "root"
)

// DatabaseSettings is the database part of the choice set.
type DatabaseSettings struct {
	Type     string `json:"type"`
	Path     string `json:"path,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"-"`
	Database string `json:"database,omitempty"`
}

// DatabaseTypes lists every accepted type in prompt order.
func DatabaseTypes() []string {
	return []string{DBSQLite, DBMySQL, DBMariaDB, DBMSQL, DBPostgres, DBMSSQL, DBManual}
}

// IsServer reports whether dbType connects over the network.
func IsServer(dbType string) bool {
	switch dbType {
	case DBMySQL, DBMariaDB, DBMSQL, DBPostgres, DBMSSQL:
		return true
	}
	return false
}

// DefaultPort returns the conventional port for dbType, or 0 if none.
func DefaultPort(dbType string) int {
	switch dbType {
	case DBMySQL, DBMariaDB:
		return 3306
	case DBPostgres:
		return 5432
	case DBMSSQL:
		return 1433
	}
	return 0
}

// Validate checks the type and fills defaults.
func (s *DatabaseSettings) Validate() error {
	switch {
	case s.Type == DBSQLite:
		if s.Path == "" {
			s.Path = DefaultSQLitePath
		}
	case IsServer(s.Type):
		if s.Host == "" {
			s.Host = DefaultHost
		}
		if s.Port == 0 {
			s.Port = DefaultPort(s.Type)
		}
		if s.Port < 0 || s.Port > 65535 {
			return fmt.Errorf("invalid database port %d", s.Port)
		}
		if s.User == "" {
			s.User = DefaultUser
		}
	case s.Type == DBManual:
	default:
		return fmt.Errorf("unknown database type %q (want one of %s)", s.Type, strings.Join(DatabaseTypes(), ", "))
	}
	return nil
}

// Values returns the env keys for s.
func (s *DatabaseSettings) Values() map[string]string {
	values := map[string]string{"DB_TYPE": s.Type}

	switch {
	case s.Type == DBSQLite:
		values["DB_STORAGE"] = s.Path
	case IsServer(s.Type):
		values["DB_HOST"] = s.Host
		values["DB_USER"] = s.User
		values["DB_PASSWORD"] = s.Password
		if s.Port != 0 {
			values["DB_PORT"] = strconv.Itoa(s.Port)
		}
		if s.Database != "" {
			values["DB_DATABASE"] = s.Database
		}
	}
	return values
}

// AppendDatabase appends a "# Database Config" block to dest/.env,
// creating the file if needed. Existing content is kept as is.
func AppendDatabase(fs fsops.FS, dest string, settings DatabaseSettings) (string, error) {
	if err := settings.Validate(); err != nil {
		return "", err
	}

	block, err := godotenv.Marshal(settings.Values())
	if err != nil {
		return "", fmt.Errorf("failed to render database settings: %w", err)
	}

	path := filepath.Join(dest, FileName)
	perm := os.FileMode(0644)

	existing, err := fs.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err == nil {
		if info, statErr := fs.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 {
		if !strings.HasSuffix(string(existing), "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("# Database Config\n")
	b.WriteString(block)
	b.WriteString("\n")

	if err := fs.AtomicWrite(path, []byte(b.String()), perm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

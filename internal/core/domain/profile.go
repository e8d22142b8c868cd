// Package domain contains the core domain models for pgprobe.
package domain

import (
	"fmt"
	"net/url"
)

// ConnectionProfile holds the parameters for a single connection attempt.
// It is treated as immutable once a connect is issued with it.
type ConnectionProfile struct {
	Host     string // Server hostname or IP
	Port     int    // Port number (default 5432)
	User     string // Username (default "postgres")
	Password string // Password, may be empty for trust/peer setups
	DBName   string // Database name
}

// NewConnectionProfile creates a profile with the PostgreSQL defaults applied.
func NewConnectionProfile() ConnectionProfile {
	p := ConnectionProfile{}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills missing fields so a profile is never partially
// populated by the time it reaches the gateway: host falls back to
// localhost, user to "postgres", port to 5432, and dbname to the user
// (the same fallback chain psql uses).
func (p *ConnectionProfile) ApplyDefaults() {
	if p.Host == "" {
		p.Host = "localhost"
	}
	if p.User == "" {
		p.User = "postgres"
	}
	if p.Port == 0 {
		p.Port = 5432
	}
	if p.DBName == "" {
		p.DBName = p.User
	}
}

// Validate checks if the profile is usable for a connection attempt.
func (p *ConnectionProfile) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("host is required")
	}

	if p.User == "" {
		return fmt.Errorf("user is required")
	}

	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}

// ConnString generates the postgres:// connection URL for the driver.
func (p *ConnectionProfile) ConnString() string {
	query := url.Values{}
	query.Add("application_name", "pgprobe")
	query.Add("sslmode", "prefer")

	var userInfo string
	if p.Password != "" {
		userInfo = fmt.Sprintf("%s:%s@", url.PathEscape(p.User), url.PathEscape(p.Password))
	} else {
		userInfo = fmt.Sprintf("%s@", url.PathEscape(p.User))
	}

	return fmt.Sprintf("postgres://%s%s:%d/%s?%s",
		userInfo,
		p.Host,
		p.Port,
		url.PathEscape(p.DBName),
		query.Encode(),
	)
}

// SafeString returns a printable description with the password masked.
func (p *ConnectionProfile) SafeString() string {
	if p.Password == "" {
		return fmt.Sprintf("Host=%s:%d; Database=%s; User=%s", p.Host, p.Port, p.DBName, p.User)
	}
	return fmt.Sprintf("Host=%s:%d; Database=%s; User=%s; Password=***", p.Host, p.Port, p.DBName, p.User)
}

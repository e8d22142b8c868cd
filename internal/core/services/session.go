// Package services contains the business logic services.
package services

import (
	"context"
	"log/slog"

	"github.com/ctorralba/pgprobe/internal/core/domain"
	"github.com/ctorralba/pgprobe/internal/core/ports"
)

// Status is the last-known connection state. A dropped connection is only
// discovered by the next operation that uses it; there is no background
// health check.
type Status int

const (
	// Disconnected means no live handle is held.
	Disconnected Status = iota
	// Connected means the last connect succeeded and no disconnect happened since.
	Connected
)

// String returns the string representation of the status.
func (s Status) String() string {
	if s == Connected {
		return "Connected"
	}
	return "Disconnected"
}

// Session owns the process's single database connection. All access to the
// gateway goes through it, and it is the only place where driver errors are
// translated into the domain taxonomy.
type Session struct {
	gateway ports.DatabaseGateway
	log     *slog.Logger

	profile    domain.ConnectionProfile
	hasProfile bool
	conn       ports.Conn
	status     Status
}

// NewSession creates a disconnected session over the given gateway.
func NewSession(gateway ports.DatabaseGateway, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		gateway: gateway,
		log:     log,
		status:  Disconnected,
	}
}

// Connect establishes a connection using profile, closing any existing
// handle first so at most one is ever live. The profile is remembered even
// when the attempt fails, so Reconnect can retry it later.
func (s *Session) Connect(ctx context.Context, profile domain.ConnectionProfile) error {
	profile.ApplyDefaults()

	if s.conn != nil {
		s.release(ctx)
	}
	s.status = Disconnected

	s.profile = profile
	s.hasProfile = true

	if err := profile.Validate(); err != nil {
		return domain.NewError(domain.KindConnection, "invalid connection profile", err)
	}

	conn, err := s.gateway.Open(ctx, profile)
	if err != nil {
		s.status = Disconnected
		s.log.Error("connection failed", "host", profile.Host, "port", profile.Port, "error", err)
		return domain.NewError(domain.KindConnection, "could not connect to "+profile.Host, err)
	}

	s.conn = conn
	s.status = Connected
	s.log.Info("connected", "host", profile.Host, "port", profile.Port, "database", profile.DBName)
	return nil
}

// Reconnect repeats the last connect. It fails with NoProfile if no profile
// has ever been set.
func (s *Session) Reconnect(ctx context.Context) error {
	if !s.hasProfile {
		return domain.NewError(domain.KindNoProfile, "no profile to reconnect with", nil)
	}
	return s.Connect(ctx, s.profile)
}

// Disconnect releases the handle if one is held. Idempotent.
func (s *Session) Disconnect(ctx context.Context) {
	if s.conn != nil {
		s.release(ctx)
		s.log.Info("disconnected")
	}
	s.status = Disconnected
}

// Status returns the last-known connection state.
func (s *Session) Status() Status {
	return s.status
}

// Profile returns a copy of the current profile. The second return is false
// when no profile has been set yet.
func (s *Session) Profile() (domain.ConnectionProfile, bool) {
	return s.profile, s.hasProfile
}

// RunQuery forwards sql to the live connection. It requires Connected
// status; the gateway is never touched otherwise. A driver failure becomes
// a QueryError and leaves the status unchanged — the operator may decide to
// reconnect.
func (s *Session) RunQuery(ctx context.Context, sql string) (*domain.QueryResult, error) {
	if s.status != Connected || s.conn == nil {
		return nil, domain.NewError(domain.KindNotConnected, "not connected to a database", nil)
	}

	result, err := s.conn.Query(ctx, sql)
	if err != nil {
		s.log.Error("query failed", "error", err)
		return nil, domain.NewError(domain.KindQuery, "query failed", err)
	}

	return result, nil
}

// release closes and drops the current handle. Close errors are logged and
// swallowed: a handle that failed to close cleanly is still gone.
func (s *Session) release(ctx context.Context) {
	if err := s.conn.Close(ctx); err != nil {
		s.log.Warn("error closing connection", "error", err)
	}
	s.conn = nil
}

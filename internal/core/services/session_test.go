package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctorralba/pgprobe/internal/core/domain"
	"github.com/ctorralba/pgprobe/internal/core/ports"
)

type stubConn struct {
	result   *domain.QueryResult
	queryErr error
	queries  int
	closes   int
}

func (c *stubConn) Query(ctx context.Context, sql string) (*domain.QueryResult, error) {
	c.queries++
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return c.result, nil
}

func (c *stubConn) Close(ctx context.Context) error {
	c.closes++
	return nil
}

type stubGateway struct {
	openErr error
	result  *domain.QueryResult
	opens   int
	conns   []*stubConn
}

func (g *stubGateway) Open(ctx context.Context, profile domain.ConnectionProfile) (ports.Conn, error) {
	g.opens++
	if g.openErr != nil {
		return nil, g.openErr
	}
	c := &stubConn{result: g.result}
	g.conns = append(g.conns, c)
	return c, nil
}

func testProfile() domain.ConnectionProfile {
	return domain.ConnectionProfile{
		Host:     "db.local",
		Port:     5432,
		User:     "postgres",
		Password: "x",
		DBName:   "app",
	}
}

func TestConnectSuccess(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)

	require.NoError(t, s.Connect(context.Background(), testProfile()))
	assert.Equal(t, Connected, s.Status())

	profile, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "db.local", profile.Host)
}

func TestConnectFailureLeavesDisconnected(t *testing.T) {
	gw := &stubGateway{openErr: errors.New("connection refused")}
	s := NewSession(gw, nil)

	err := s.Connect(context.Background(), testProfile())
	require.Error(t, err)
	assert.Equal(t, domain.KindConnection, domain.KindOf(err))
	assert.Equal(t, Disconnected, s.Status())
}

func TestConnectClosesPreviousHandleExactlyOnce(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))
	require.NoError(t, s.Connect(ctx, testProfile()))

	require.Len(t, gw.conns, 2)
	assert.Equal(t, 1, gw.conns[0].closes)
	assert.Equal(t, 0, gw.conns[1].closes)
}

func TestFailedConnectReleasesPreviousHandle(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))

	gw.openErr = errors.New("host unreachable")
	err := s.Connect(ctx, testProfile())
	require.Error(t, err)

	assert.Equal(t, Disconnected, s.Status())
	require.Len(t, gw.conns, 1)
	assert.Equal(t, 1, gw.conns[0].closes)
}

func TestReconnectWithoutProfile(t *testing.T) {
	s := NewSession(&stubGateway{}, nil)

	err := s.Reconnect(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindNoProfile, domain.KindOf(err))
}

func TestReconnectAfterFailedConnect(t *testing.T) {
	gw := &stubGateway{openErr: errors.New("connection refused")}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.Error(t, s.Connect(ctx, testProfile()))
	assert.Equal(t, Disconnected, s.Status())

	// The profile is remembered even though the attempt failed.
	gw.openErr = nil
	require.NoError(t, s.Reconnect(ctx))
	assert.Equal(t, Connected, s.Status())
}

func TestDisconnectIsIdempotent(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))

	s.Disconnect(ctx)
	s.Disconnect(ctx)

	assert.Equal(t, Disconnected, s.Status())
	require.Len(t, gw.conns, 1)
	assert.Equal(t, 1, gw.conns[0].closes)
}

func TestRunQueryWhileDisconnected(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)

	_, err := s.RunQuery(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotConnected, domain.KindOf(err))

	// The gateway must never be touched without a live handle.
	assert.Equal(t, 0, gw.opens)
}

func TestRunQuerySuccess(t *testing.T) {
	gw := &stubGateway{result: &domain.QueryResult{
		Columns: []string{"version"},
		Rows:    [][]string{{"PostgreSQL 16.3"}},
	}}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))

	result, err := s.RunQuery(ctx, "SELECT version()")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"PostgreSQL 16.3"}}, result.Rows)
}

func TestRunQueryFailureLeavesStatusUnchanged(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))
	gw.conns[0].queryErr = errors.New("relation does not exist")

	_, err := s.RunQuery(ctx, "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, domain.KindQuery, domain.KindOf(err))
	assert.Equal(t, Connected, s.Status())
}

func TestInvalidProfileWhileConnectedLeavesDisconnected(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)
	ctx := context.Background()

	require.NoError(t, s.Connect(ctx, testProfile()))

	bad := testProfile()
	bad.Port = 70000

	err := s.Connect(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, domain.KindConnection, domain.KindOf(err))

	// A failed connect never leaves the session Connected, and the prior
	// handle is released exactly once even when the gateway is never dialed.
	assert.Equal(t, Disconnected, s.Status())
	require.Len(t, gw.conns, 1)
	assert.Equal(t, 1, gw.conns[0].closes)
	assert.Equal(t, 1, gw.opens)
}

func TestConnectRejectsInvalidProfile(t *testing.T) {
	gw := &stubGateway{}
	s := NewSession(gw, nil)

	profile := testProfile()
	profile.Port = 70000

	err := s.Connect(context.Background(), profile)
	require.Error(t, err)
	assert.Equal(t, domain.KindConnection, domain.KindOf(err))
	assert.Equal(t, 0, gw.opens)
}

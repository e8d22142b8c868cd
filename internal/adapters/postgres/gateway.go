// Package postgres provides the PostgreSQL gateway adapter backed by pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ctorralba/pgprobe/internal/core/domain"
	"github.com/ctorralba/pgprobe/internal/core/ports"
)

const (
	connectTimeout = 10 * time.Second
	closeTimeout   = 3 * time.Second
)

// Gateway implements the DatabaseGateway port over pgx. One Open call
// yields one plain connection; the client holds a single session, so no
// pool is involved.
type Gateway struct{}

// NewGateway creates a new PostgreSQL gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// Open dials the server described by profile and verifies the connection.
func (g *Gateway) Open(ctx context.Context, profile domain.ConnectionProfile) (ports.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pgconn, err := pgx.Connect(ctx, profile.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	return &conn{pg: pgconn}, nil
}

// conn wraps a single pgx connection behind the Conn port.
type conn struct {
	pg *pgx.Conn
}

// Query sends sql verbatim and renders every value to text. NULLs come
// back as empty strings; the menu only ever prints results, so lossy
// stringification is fine here.
func (c *conn) Query(ctx context.Context, sql string) (*domain.QueryResult, error) {
	rows, err := c.pg.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	result := &domain.QueryResult{}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row values: %w", err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				continue
			}
			row[i] = fmt.Sprint(v)
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	return result, nil
}

// Close releases the connection. The parent context may already be gone on
// shutdown paths, so Close runs under its own short deadline.
func (c *conn) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, closeTimeout)
	defer cancel()

	if err := c.pg.Close(ctx); err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}
	return nil
}

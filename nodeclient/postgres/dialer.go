package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

// Dialer opens PostgreSQL connections. Each dial produces a dedicated
// single-connection handle that is closed together with the returned Conn.
type Dialer struct{}

func NewDialer() *Dialer {
	return &Dialer{}
}

// DialContext connects to the node and verifies the connection with a ping.
// The call does not outlive ctx, so the caller controls the connect timeout.
func (d *Dialer) DialContext(ctx context.Context, id nodes.NodeID, endpoint nodes.Endpoint) (nodeclient.Conn, error) {
	dsn, err := withDefaultSSLMode(endpoint.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid dsn for %s: %w", id, err)
	}

	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid dsn for %s: %w", id, err)
	}

	db := sqlx.NewDb(sql.OpenDB(connector), "postgres")
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return &Conn{db: db}, nil
}

// withDefaultSSLMode disables TLS unless the dsn asks for it. lib/pq would
// otherwise require TLS and fail against servers that do not offer it.
func withDefaultSSLMode(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}

		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", "disable")
			u.RawQuery = q.Encode()
		}

		return u.String(), nil
	}

	if strings.Contains(dsn, "sslmode=") {
		return dsn, nil
	}

	return strings.TrimSpace(dsn + " sslmode=disable"), nil
}

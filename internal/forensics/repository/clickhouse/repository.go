package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

// Repository mirrors forensic records into ClickHouse for ad-hoc analytics.
type Repository struct {
	conn    Conn
	coin    model.Coin
	network model.Network
	metrics Metrics
}

func NewRepository(dsn string, coin model.Coin, network model.Network, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{
		conn:    nativeConn{conn: conn},
		coin:    coin,
		network: network,
		metrics: metrics,
	}, nil
}

// Ping checks that the server is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func (r *Repository) Close() error {
	return r.conn.Close()
}

type nativeConn struct {
	conn driver.Conn
}

func (c nativeConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c nativeConn) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c nativeConn) Close() error {
	return c.conn.Close()
}

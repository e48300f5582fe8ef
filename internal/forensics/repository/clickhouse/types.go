package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time)
	}
	// Conn is the part of a ClickHouse connection the repository writes through.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Ping(ctx context.Context) error
		Close() error
	}
	Batch interface {
		Append(v ...any) error
		Abort() error
		Send() error
	}
)

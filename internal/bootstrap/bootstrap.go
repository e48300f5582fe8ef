// Package bootstrap holds the wiring shared by the forensics binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/ingest"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/service"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Chain selects the coin and network every binary works on.
type Chain struct {
	Coin    model.Coin    `long:"coin" env:"FORENSICS_COIN" description:"coin name" default:"BTC"`
	Network model.Network `long:"network" env:"FORENSICS_NETWORK" description:"network name (mainnet, testnet, regtest, signet)" required:"true"`
}

// Storage locates the record store and the index.
type Storage struct {
	DataDir      string `long:"data-dir" env:"FORENSICS_DATA_DIR" description:"directory holding the record logs and the index" default:"data"`
	NoSyncWrites bool   `long:"no-sync-writes" env:"FORENSICS_NO_SYNC_WRITES" description:"skip the fsync after every append and index commit"`
}

// RPC describes the node connection.
type RPC struct {
	URL           string `long:"rpc-url" env:"FORENSICS_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	User          string `long:"rpc-user" env:"FORENSICS_RPC_USER" description:"Bitcoin RPC username"`
	Password      string `long:"rpc-password" env:"FORENSICS_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ResolveInputs bool   `long:"resolve-inputs" env:"FORENSICS_RESOLVE_INPUTS" description:"look up previous outputs with getrawtransaction (needs txindex)"`
}

// OpenForensics opens the data directory with prometheus collectors attached.
func OpenForensics(ctx context.Context, chain Chain, storage Storage, ingestCfg ingest.Config, logger *zap.Logger) (*service.Forensics, error) {
	return service.Open(ctx, service.Config{
		DataDir:      storage.DataDir,
		NoSyncWrites: storage.NoSyncWrites,
		Ingest:       ingestCfg,
	}, service.Metrics{
		Store:  metrics.NewStore(),
		Index:  metrics.NewIndex(),
		Ingest: metrics.NewIngester(chain.Coin, chain.Network),
		Trace:  metrics.NewTracer(),
	}, logger.With(zap.String("coin", string(chain.Coin)), zap.String("network", string(chain.Network))))
}

// NewBitcoinSource connects a chain source to the node. stored, when not nil, names
// inputs spending already ingested outputs. The returned func shuts the client down.
func NewBitcoinSource(chain Chain, cfg RPC, stored bitcoin.StoredOutputs, logger *zap.Logger) (*bitcoin.Source, func(), error) {
	client, err := NewRPCClient(cfg.URL, cfg.User, cfg.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("init rpc client: %w", err)
	}
	shutdown := func() {
		client.Shutdown()
		client.WaitForShutdown()
	}
	rpc := bitcoin.NewObservedClient(client, metrics.NewRPCClient(chain.Coin, chain.Network))
	src, err := bitcoin.NewSource(rpc, bitcoin.Config{
		Network:       chain.Network,
		ResolveInputs: cfg.ResolveInputs,
		Stored:        stored,
	}, logger.Named("bitcoin"))
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return src, shutdown, nil
}

// NewMirror opens the ClickHouse mirror, or returns nil when dsn is empty.
func NewMirror(ctx context.Context, dsn string, chain Chain) (ingest.Mirror, func(), error) {
	if dsn == "" {
		return nil, func() {}, nil
	}
	repo, err := clickhouse.NewRepository(dsn, chain.Coin, chain.Network, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, nil, fmt.Errorf("init mirror repository: %w", err)
	}
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("ping mirror: %w", err)
	}
	return repo, func() { _ = repo.Close() }, nil
}

func NewRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

// StartMetricsServer serves /metrics on addr until ctx is done. An empty addr
// disables it.
func StartMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

// NewProgressBar renders block progress. A negative total shows a spinner.
func NewProgressBar(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("blocks"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

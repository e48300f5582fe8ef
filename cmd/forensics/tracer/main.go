package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/bootstrap"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/ingest"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	bootstrap.Chain
	bootstrap.Storage

	Address string        `long:"address" env:"FORENSICS_TRACE_ADDRESS" description:"seed address" required:"true"`
	Depth   int           `long:"depth" env:"FORENSICS_TRACE_DEPTH" description:"maximum expansion depth" default:"2"`
	Timeout time.Duration `long:"timeout" env:"FORENSICS_TRACE_TIMEOUT" description:"abort the trace after this long; 0 disables" default:"0"`
	Pretty  bool          `long:"pretty" env:"FORENSICS_TRACE_PRETTY" description:"indent the JSON output"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("forensics tracer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	f, err := bootstrap.OpenForensics(ctx, cfg.Chain, cfg.Storage, ingest.Config{}, logger)
	if err != nil {
		return fmt.Errorf("open forensics store: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("close forensics store", zap.Error(err))
		}
	}()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	g, err := f.Trace(ctx, cfg.Address, cfg.Depth)
	if err != nil {
		return err
	}
	logger.Info("trace finished",
		zap.String("address", cfg.Address),
		zap.Int("depth", cfg.Depth),
		zap.Int("nodes", len(g.Nodes())),
		zap.Int("edges", len(g.Edges())),
	)

	enc := json.NewEncoder(os.Stdout)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(g)
}

package main

import (
	"context"
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
		logger.Fatal("forensics reindexer failed", zap.Error(err))
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

	started := time.Now()
	n, err := f.RebuildIndex(ctx)
	if err != nil {
		return err
	}
	cp, err := f.Checkpoint()
	if err != nil {
		return err
	}
	logger.Info("index rebuilt",
		zap.Int("transactions", n),
		zap.Uint64("height", cp.Height),
		zap.String("hash", cp.Hash),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}

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
	bootstrap.RPC

	Start         uint64        `long:"start" env:"FORENSICS_INGEST_START" description:"first height to ingest"`
	End           *uint64       `long:"end" env:"FORENSICS_INGEST_END" description:"last height to ingest (inclusive); omit to follow successors to the tip"`
	Resume        bool          `long:"resume" env:"FORENSICS_INGEST_RESUME" description:"start after the last committed block; --start is used when nothing is committed"`
	OnError       string        `long:"on-error" env:"FORENSICS_INGEST_ON_ERROR" description:"stop or skip blocks that fail" choice:"stop" choice:"skip" default:"stop"`
	OnDuplicate   string        `long:"on-duplicate" env:"FORENSICS_INGEST_ON_DUPLICATE" description:"reject blocks with known transactions or skip those transactions; defaults to skip with --resume and reject otherwise" choice:"reject" choice:"skip"`
	FetchAttempts int           `long:"fetch-attempts" env:"FORENSICS_INGEST_FETCH_ATTEMPTS" description:"attempts per block fetch" default:"3"`
	RetryDelay    time.Duration `long:"retry-delay" env:"FORENSICS_INGEST_RETRY_DELAY" description:"delay before the first fetch retry; doubles on each retry" default:"2s"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"FORENSICS_CLICKHOUSE_DSN" description:"ClickHouse DSN of the optional analytics mirror"`
	MetricsAddr   string        `long:"metrics-addr" env:"FORENSICS_INGEST_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	Progress      bool          `long:"progress" env:"FORENSICS_INGEST_PROGRESS" description:"render a progress bar"`
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
		logger.Fatal("forensics ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	onError, err := ingest.ParseErrorPolicy(cfg.OnError)
	if err != nil {
		return err
	}
	onDuplicate, err := duplicatePolicy(cfg.OnDuplicate, cfg.Resume)
	if err != nil {
		return err
	}

	bootstrap.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	f, err := bootstrap.OpenForensics(ctx, cfg.Chain, cfg.Storage, ingest.Config{
		FetchAttempts: cfg.FetchAttempts,
		RetryDelay:    cfg.RetryDelay,
	}, logger)
	if err != nil {
		return fmt.Errorf("open forensics store: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("close forensics store", zap.Error(err))
		}
	}()

	source, shutdown, err := bootstrap.NewBitcoinSource(cfg.Chain, cfg.RPC, f.Outputs(), logger)
	if err != nil {
		return err
	}
	defer shutdown()

	mirror, closeMirror, err := bootstrap.NewMirror(ctx, cfg.ClickhouseDSN, cfg.Chain)
	if err != nil {
		return err
	}
	defer closeMirror()

	start := cfg.Start
	if cfg.Resume {
		if start, err = f.Resume(cfg.Start); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		logger.Info("resuming", zap.Uint64("start", start))
	}
	if cfg.End != nil && *cfg.End < start {
		logger.Info("nothing to ingest", zap.Uint64("start", start), zap.Uint64("end", *cfg.End))
		return nil
	}

	req := ingest.Request{
		Start:       start,
		End:         cfg.End,
		OnError:     onError,
		OnDuplicate: onDuplicate,
	}
	if cfg.Progress {
		total := int64(-1)
		if cfg.End != nil {
			total = int64(*cfg.End - start + 1)
		}
		bar := bootstrap.NewProgressBar(total, "Ingesting blocks...")
		req.OnBlock = func(uint64) {
			_ = bar.Add(1)
		}
		defer func() {
			_ = bar.Finish()
		}()
	}

	report, err := f.Ingest(ctx, source, mirror, req)
	if encodeErr := json.NewEncoder(os.Stdout).Encode(report); encodeErr != nil {
		logger.Warn("write report", zap.Error(encodeErr))
	}
	return err
}

// duplicatePolicy parses --on-duplicate. Unset, it skips when resuming, since the
// block after the checkpoint may be partly appended by a run that crashed.
func duplicatePolicy(flag string, resume bool) (ingest.DuplicatePolicy, error) {
	if flag != "" {
		return ingest.ParseDuplicatePolicy(flag)
	}
	if resume {
		return ingest.SkipDuplicates, nil
	}
	return ingest.RejectDuplicates, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/bootstrap"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/ingest"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/service"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	bootstrap.Chain
	bootstrap.Storage
	bootstrap.RPC

	Addr           string        `long:"addr" env:"FORENSICS_API_ADDR" description:"gRPC health address" default:":8000"`
	RestAddr       string        `long:"rest-addr" env:"FORENSICS_API_REST_ADDR" description:"HTTP address for traces and metrics" default:":8001"`
	MaxDepth       int           `long:"max-depth" env:"FORENSICS_API_MAX_DEPTH" description:"largest trace depth a client may request" default:"6"`
	TraceTimeout   time.Duration `long:"trace-timeout" env:"FORENSICS_API_TRACE_TIMEOUT" description:"per-request trace deadline" default:"30s"`
	HealthInterval time.Duration `long:"health-interval" env:"FORENSICS_API_HEALTH_INTERVAL" description:"how often the index is probed" default:"10s"`
	Follow         bool          `long:"follow" env:"FORENSICS_API_FOLLOW" description:"keep ingesting new blocks from the node while serving"`
	FollowStart    uint64        `long:"follow-start" env:"FORENSICS_API_FOLLOW_START" description:"first height when nothing is committed yet"`
	FollowInterval time.Duration `long:"follow-interval" env:"FORENSICS_API_FOLLOW_INTERVAL" description:"pause between follow runs" default:"30s"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"FORENSICS_CLICKHOUSE_DSN" description:"ClickHouse DSN of the optional analytics mirror"`
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
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("forensics api failed", zap.Error(err))
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

	if cfg.Follow {
		stopFollow, err := startFollower(ctx, f, cfg, logger)
		if err != nil {
			return err
		}
		defer stopFollow()
	}

	health := transport.NewHealthReporter(func() error {
		_, err := f.Checkpoint()
		return err
	}, cfg.HealthInterval, logger.Named("health"))
	go health.Run(ctx)

	if err := startGRPCServer(ctx, cfg.Addr, health, logger); err != nil {
		return err
	}

	mux := http.NewServeMux()
	transport.NewForensicsHandler(f, transport.HandlerConfig{
		MaxDepth: cfg.MaxDepth,
		Timeout:  cfg.TraceTimeout,
	}, logger.Named("http")).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.TraceTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func startGRPCServer(ctx context.Context, addr string, health *transport.HealthReporter, logger *zap.Logger) error {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
		grpc.StreamInterceptor(grpcPrometheus.StreamServerInterceptor),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	healthpb.RegisterHealthServer(grpcServer, health.Server())
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("GRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return nil
}

func startFollower(ctx context.Context, f *service.Forensics, cfg config, logger *zap.Logger) (func(), error) {
	source, shutdown, err := bootstrap.NewBitcoinSource(cfg.Chain, cfg.RPC, f.Outputs(), logger)
	if err != nil {
		return nil, err
	}
	mirror, closeMirror, err := bootstrap.NewMirror(ctx, cfg.ClickhouseDSN, cfg.Chain)
	if err != nil {
		shutdown()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := f.Follow(ctx, source, mirror, cfg.FollowStart, cfg.FollowInterval)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("follower stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
		closeMirror()
		shutdown()
	}, nil
}

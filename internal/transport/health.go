package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/clock"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported for the forensics API.
const ServiceName = "blockinsight7000.forensics"

// HealthReporter keeps a gRPC health server in step with a probe.
type HealthReporter struct {
	server   *health.Server
	probe    func() error
	interval time.Duration
	logger   *zap.Logger
}

func NewHealthReporter(probe func() error, interval time.Duration, logger *zap.Logger) *HealthReporter {
	return &HealthReporter{
		server:   health.NewServer(),
		probe:    probe,
		interval: interval,
		logger:   logger,
	}
}

// Server returns the health service to register on a gRPC server.
func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// Run probes until ctx is done, then reports NOT_SERVING.
func (h *HealthReporter) Run(ctx context.Context) {
	defer h.server.Shutdown()
	for {
		h.check()
		if err := clock.SleepWithContext(ctx, h.interval); err != nil {
			return
		}
	}
}

func (h *HealthReporter) check() {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.probe(); err != nil {
		h.logger.Warn("health probe failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
}

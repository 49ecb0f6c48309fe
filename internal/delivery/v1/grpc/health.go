package grpc

import (
	"context"
	"time"

	"github.com/DRSN-tech/shop-console/pkg/logger"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName — имя сервиса в grpc.health.v1 для консоли целиком.
const ServiceName = "shop.console"

// Check проверяет одну зависимость консоли.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// StatusSetter — часть health.Server, которой пользуется HealthReporter.
type StatusSetter interface {
	SetServingStatus(service string, servingStatus healthpb.HealthCheckResponse_ServingStatus)
}

// HealthReporter периодически опрашивает зависимости и выставляет статус сервиса.
// Консоль SERVING, только если все проверки прошли.
type HealthReporter struct {
	setter   StatusSetter
	checks   []Check
	interval time.Duration
	timeout  time.Duration
	logger   logger.Logger
}

func NewHealthReporter(setter StatusSetter, interval time.Duration, logger logger.Logger, checks ...Check) *HealthReporter {
	return &HealthReporter{
		setter:   setter,
		checks:   checks,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger,
	}
}

// Run блокируется до отмены ctx.
func (h *HealthReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		h.Report(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Report выполняет проверки один раз.
func (h *HealthReporter) Report(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING

	for _, check := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := check.Probe(checkCtx)
		cancel()

		if err != nil {
			h.logger.Warnf("health check %s failed: %v", check.Name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.setter.SetServingStatus(ServiceName, status)
	h.setter.SetServingStatus("", status)
	return status
}

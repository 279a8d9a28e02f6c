// Package server runs the console programs under a lifecycle that stops
// them cleanly on SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultStopTimeout bounds the time given to each Stop call.
const DefaultStopTimeout = 10 * time.Second

// Service is a component that runs until it finishes or is stopped.
type Service interface {
	// Start runs the service. It blocks until the service finishes, fails,
	// or its context is cancelled.
	Start(ctx context.Context) error
	// Stop releases the service, persisting any state it owns.
	Stop(ctx context.Context) error
}

// FuncService adapts a start/stop function pair into the Service interface.
// A nil StopFn stops nothing.
type FuncService struct {
	StartFn func(ctx context.Context) error
	StopFn  func(ctx context.Context) error
}

// Start calls the underlying start function.
func (f *FuncService) Start(ctx context.Context) error { return f.StartFn(ctx) }

// Stop calls the underlying stop function.
func (f *FuncService) Stop(ctx context.Context) error {
	if f.StopFn == nil {
		return nil
	}
	return f.StopFn(ctx)
}

// Lifecycle starts services together and stops them in reverse order once
// any of them finishes or fails, a termination signal arrives, or the parent
// context is cancelled.
type Lifecycle struct {
	logger      *zap.Logger
	services    []namedService
	signals     []os.Signal
	stopTimeout time.Duration
	mu          sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a Lifecycle that listens for SIGINT and SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:      logger,
		signals:     []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		stopTimeout: DefaultStopTimeout,
	}
}

// Add registers a named service. Services start in the order added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

type exit struct {
	name string
	err  error
}

// Run starts all services and blocks until one finishes, a termination
// signal is received, or ctx is cancelled. Every service is then stopped in
// reverse order.
//
// Postcondition: All services are stopped. Returns the first service failure
// joined with any Stop failures, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	exitCh := make(chan exit, len(l.services))
	for _, ns := range l.services {
		ns := ns
		go func() {
			l.logger.Debug("starting service", zap.String("service", ns.name))
			exitCh <- exit{name: ns.name, err: ns.service.Start(runCtx)}
		}()
	}
	l.logger.Debug("all services started",
		zap.Int("count", len(l.services)),
		zap.Duration("startup", time.Since(start)),
	)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case ex := <-exitCh:
		if ex.err != nil {
			l.logger.Error("service failed, shutting down", zap.String("service", ex.name), zap.Error(ex.err))
			runErr = fmt.Errorf("service %s: %w", ex.name, ex.err)
		} else {
			l.logger.Debug("service finished, shutting down", zap.String("service", ex.name))
		}
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}
	cancel()

	stopErr := l.shutdown(context.WithoutCancel(ctx))
	l.logger.Debug("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return errors.Join(runErr, stopErr)
}

func (l *Lifecycle) shutdown(ctx context.Context) error {
	var errs []error
	for i := len(l.services) - 1; i >= 0; i-- {
		ns := l.services[i]
		stopCtx, cancel := context.WithTimeout(ctx, l.stopTimeout)
		svcStart := time.Now()
		if err := ns.service.Stop(stopCtx); err != nil {
			l.logger.Error("stopping service", zap.String("service", ns.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("stopping %s: %w", ns.name, err))
		}
		cancel()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	return errors.Join(errs...)
}

package main

import (
	"context"
	"sync"
	"time"

	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
)

// heartbeat is a managed component that logs a liveness line on an
// interval. It demonstrates a phased participant with a clean stop.
type heartbeat struct {
	lifecycle.DefaultPhase

	interval time.Duration
	logger   log.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func newHeartbeat(interval time.Duration, logger log.Logger) *heartbeat {
	return &heartbeat{
		interval: interval,
		logger:   logger.With(log.Component("heartbeat")),
	}
}

func (h *heartbeat) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *heartbeat) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil
	}

	tickCtx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.running = true

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case t := <-ticker.C:
				h.logger.Info("heartbeat", log.String("at", t.UTC().Format(time.RFC3339)))
			}
		}
	}()
	return nil
}

func (h *heartbeat) Stop(ctx context.Context) error {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return nil
	}
	h.running = false
	cancel := h.cancel
	h.mu.Unlock()

	cancel()
	h.wg.Wait()
	return nil
}

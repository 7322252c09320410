// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// ConnectivityProbe polls the server's status endpoint and reports
// reachability changes. It starts optimistic: Online is true until a probe
// fails at the transport level.
type ConnectivityProbe struct {
	adapter  adapter.ServerAdapter
	interval time.Duration

	online atomic.Bool

	mu     sync.Mutex
	target OnlineSetter

	logger *logger.Logger
}

func NewConnectivityProbe(serverAdapter adapter.ServerAdapter, interval time.Duration, logger *logger.Logger) *ConnectivityProbe {
	p := &ConnectivityProbe{
		adapter:  serverAdapter,
		interval: interval,
		logger:   logger,
	}
	p.online.Store(true)
	return p
}

// Notify sets the receiver of transitions. The sync client depends on the
// probe for its initial state, so it is attached after construction.
func (p *ConnectivityProbe) Notify(target OnlineSetter) {
	p.mu.Lock()
	p.target = target
	p.mu.Unlock()
}

// Online implements service.ConnectivityChecker.
func (p *ConnectivityProbe) Online() bool {
	return p.online.Load()
}

// Check runs one probe and returns the resulting connectivity. Any response
// from the server, including auth and configuration errors, counts as online.
func (p *ConnectivityProbe) Check(ctx context.Context) bool {
	_, err := p.adapter.Status(ctx)
	online := !errors.Is(err, adapter.ErrTransport)

	if p.online.Swap(online) != online {
		p.logger.Info().Bool("online", online).Msg("connectivity changed")

		p.mu.Lock()
		target := p.target
		p.mu.Unlock()
		if target != nil {
			target.SetOnline(ctx, online)
		}
	}
	if err != nil && online {
		p.logger.Debug().Err(err).Msg("status probe answered with an error")
	}

	return online
}

func (p *ConnectivityProbe) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Warn().Msg("connectivity probe disabled: non-positive interval")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// SPDX-License-Identifier: AGPL-3.0-only

// Package worker runs the reconciliation sweep on a timer. One sweep runs
// at a time; overlapping triggers are skipped.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yapster-gg/yapster-api/internal/coordinator"
)

type Worker struct {
	Coordinator *coordinator.Coordinator
	Log         *slog.Logger
	Ticker      *time.Ticker
	StopChan    chan bool
	mu          sync.Mutex
	running     bool
	active      bool
}

func NewWorker(coord *coordinator.Coordinator, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		Coordinator: coord,
		Log:         log,
		StopChan:    make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		w.Log.Warn("worker already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.RunOnce()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	w.Log.Info("reconciliation worker started", "interval", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		w.Log.Warn("worker not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	w.Log.Info("reconciliation worker stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.mu.Lock()
	isActive := w.active
	w.mu.Unlock()

	if isActive {
		w.Stop()
		time.Sleep(100 * time.Millisecond)
	}
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// RunOnce executes a single sweep unless one is already in progress.
func (w *Worker) RunOnce() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.Log.Info("reconcile already in progress, skipping")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if _, err := w.Coordinator.Reconcile(context.Background()); err != nil {
		w.Log.Error("reconcile sweep failed", "error", err)
	}
}

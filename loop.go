package tecs

import (
	"context"
	"time"
)

// RunTicker drives Tick at the configured rate until ctx is cancelled. The
// core itself never blocks; this helper exists for composition roots that
// want a wall-clock game loop without writing their own.
func (w *World[E]) RunTicker(ctx context.Context) {
	interval := time.Second / time.Duration(w.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.log.Info().Int("tick_rate", w.cfg.TickRate).Msg("tick loop started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("tick loop stopped")
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

package engine

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"os"
	"time"
)

// Stats is the status contract the control surface reproduces verbatim.
type Stats struct {
	FPS           float64   `json:"fps"`
	FrameCount    uint64    `json:"frame_count"`
	UptimeSeconds int64     `json:"uptime"`
	ActivePattern string    `json:"active_pattern"`
	LastUpdate    time.Time `json:"last_update"`
}

// recordFrame folds one full iteration (render + commit + sleep) into the
// sliding fps window. Only the render goroutine calls it.
func (e *Engine) recordFrame(total time.Duration, active string, frameCount uint64) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	e.window[e.wIdx] = total
	e.wIdx = (e.wIdx + 1) % fpsWindow
	if e.wLen < fpsWindow {
		e.wLen++
	}

	var sum time.Duration
	for i := 0; i < e.wLen; i++ {
		sum += e.window[i]
	}
	fps := 0.0
	if sum > 0 {
		fps = float64(e.wLen) / sum.Seconds()
	}

	e.stats = Stats{
		FPS:           math.Round(fps*10) / 10,
		FrameCount:    frameCount,
		UptimeSeconds: int64(time.Since(e.start).Seconds()),
		ActivePattern: active,
		LastUpdate:    time.Now(),
	}
}

// Stats returns a copy of the latest render stats. Safe from any
// goroutine; never blocks the render loop for more than the copy.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

// WriteStats serializes the stats to path on a coarse interval until ctx
// is cancelled. A strictly read-only consumer of the render loop's output,
// mirroring the status file the control surface tails.
func (e *Engine) WriteStats(ctx context.Context, path string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			data, err := json.Marshal(e.Stats())
			if err != nil {
				log.Printf("engine: marshal stats: %v", err)
				continue
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				log.Printf("engine: write stats: %v", err)
			}
		}
	}
}

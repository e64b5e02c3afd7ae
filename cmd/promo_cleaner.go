package main

import (
	"context"
	"time"
)

const promoCleanerTimeout = 30 * time.Second

// startPromoCleaner runs the periodic maintenance loop: buffered view/click
// counters are flushed every cycle, idle search sessions are evicted, and,
// when the sweep is enabled, lapsed promotions get their stored status set
// to expired.
func startPromoCleaner(ctx context.Context, app *application, sweepEnabled bool, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, promoCleanerTimeout)
			defer cancel()

			if err := app.promotionService.FlushCounters(runCtx); err != nil {
				app.errorLog.Printf("promo cleaner: failed to flush counters: %v", err)
			}

			if evicted := app.discoveryHandler.EvictStale(time.Now()); evicted > 0 {
				app.infoLog.Printf("promo cleaner: evicted %d idle search sessions", evicted)
			}

			if !sweepEnabled {
				return
			}
			expired, err := app.promotionService.ExpireLapsed(runCtx)
			if err != nil {
				app.errorLog.Printf("promo cleaner: failed to expire lapsed promotions: %v", err)
				return
			}
			if expired > 0 {
				app.infoLog.Printf("promo cleaner: expired %d lapsed promotions", expired)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}

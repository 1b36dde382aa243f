package rates

import (
	"context"
	"time"

	"kasa/internal/currency"
	"kasa/internal/log"
)

// Refresher keeps a Converter's table current by fetching on startup and then
// on a fixed interval. Fetch failures are logged and skipped; the converter
// keeps serving the last good table (or identity before the first success).
type Refresher struct {
	client    *Client
	converter *currency.Converter
	interval  time.Duration
	logger    *log.Logger
}

func NewRefresher(client *Client, converter *currency.Converter, interval time.Duration, logger *log.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Refresher{
		client:    client,
		converter: converter,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentRates),
	}
}

// Run blocks until ctx is cancelled. The initial fetch happens immediately so
// the first page load already has real rates when the feed is reachable.
func (r *Refresher) Run(ctx context.Context) error {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Rate refresher stopping", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	table, err := r.client.Fetch(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "Rate refresh failed, keeping previous table",
			log.FieldOperation, log.OpRefresh,
			log.FieldError, err.Error())
		return
	}
	r.converter.SetRates(table, time.Now())
	r.logger.InfoContext(ctx, "Exchange rates refreshed",
		log.FieldOperation, log.OpRefresh,
		log.FieldRateCount, len(table))
}

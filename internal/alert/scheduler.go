// Package alert runs the daily warranty-expiry sweep on a cron schedule.
package alert

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/harukimori/inventory-backend/internal/service"
)

const sweepTimeout = 2 * time.Minute

// Start schedules the warranty sweep and returns the running scheduler so the
// caller can Stop it on shutdown.
func Start(spec string, notifications service.NotificationService) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		created, err := notifications.SweepWarrantyAlerts(ctx, time.Now())
		if err != nil {
			log.Printf("[sweep] stage=run err=%v", err)
			return
		}
		log.Printf("[sweep] stage=done created=%d", created)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

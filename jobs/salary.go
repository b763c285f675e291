// Package jobs holds background work that runs alongside the HTTP server.
package jobs

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"autoshop-backend/ledger"
)

// StartSalaryAccrual accrues fixed salaries on the 1st of every month at
// midnight. It runs until ctx is cancelled.
func StartSalaryAccrual(ctx context.Context, db *gorm.DB) {
	go func() {
		for {
			next := nextAccrualTime(time.Now())
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				count, err := ledger.AccrueMonthlySalaries(db)
				if err != nil {
					log.Printf("salary accrual failed: %v", err)
					continue
				}
				log.Printf("salary accrual done: %d employees", count)
			}
		}
	}()
}

func nextAccrualTime(now time.Time) time.Time {
	year, month, _ := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	if !first.After(now) {
		first = first.AddDate(0, 1, 0)
	}
	return first
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"hotelbook/internal/notifications/repository"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/robfig/cron/v3"
)

const checkTimeout = 30 * time.Second

// CapacityMonitor periodically warns about hotels running out of rooms.
type CapacityMonitor struct {
	snapshots repository.SnapshotRepository
	threshold float64
	cron      *cron.Cron
	log       *logger.Logger
}

func NewCapacityMonitor(snapshots repository.SnapshotRepository, threshold int, schedule string, log *logger.Logger) (*CapacityMonitor, error) {
	m := &CapacityMonitor{
		snapshots: snapshots,
		threshold: float64(threshold),
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:       log,
	}

	if _, err := m.cron.AddFunc(schedule, m.run); err != nil {
		return nil, fmt.Errorf("invalid capacity check schedule %q: %w", schedule, err)
	}
	return m, nil
}

func (m *CapacityMonitor) Start() {
	m.cron.Start()
	m.log.Info("Capacity monitor started", "threshold", m.threshold)
}

// Stop prevents new checks and waits for a running one until ctx is done.
func (m *CapacityMonitor) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (m *CapacityMonitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if _, err := m.Check(ctx); err != nil {
		m.log.Error("Capacity check failed", "error", err)
	}
}

// Check returns the snapshots whose remaining capacity is below the
// threshold and logs an alert for each.
func (m *CapacityMonitor) Check(ctx context.Context) ([]*model.CapacitySnapshot, error) {
	snapshots, err := m.snapshots.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var low []*model.CapacitySnapshot
	for _, s := range snapshots {
		if s.CapacityPercentage >= m.threshold {
			continue
		}
		low = append(low, s)
		m.log.Warn("Hotel capacity low",
			"hotel_id", s.HotelID,
			"hotel", s.HotelName,
			"capacity_percentage", s.CapacityPercentage,
			"threshold", m.threshold,
			"window_end", s.WindowEnd.Format(model.DateLayout),
		)
	}

	m.log.Debug("Capacity check completed", "hotels", len(snapshots), "low", len(low))
	return low, nil
}

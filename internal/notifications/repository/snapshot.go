package repository

import (
	"context"
	"sort"
	"sync"

	"hotelbook/pkg/model"
)

type SnapshotRepository interface {
	// Upsert replaces the snapshot of the hotel, creating it when absent.
	Upsert(ctx context.Context, snapshot *model.CapacitySnapshot) error
	FindAll(ctx context.Context) ([]*model.CapacitySnapshot, error)
}

type memorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]model.CapacitySnapshot
}

func NewMemorySnapshotRepository() SnapshotRepository {
	return &memorySnapshotRepository{snapshots: make(map[string]model.CapacitySnapshot)}
}

func (r *memorySnapshotRepository) Upsert(_ context.Context, snapshot *model.CapacitySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.HotelID] = *snapshot
	return nil
}

func (r *memorySnapshotRepository) FindAll(context.Context) ([]*model.CapacitySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.CapacitySnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HotelID < out[j].HotelID })
	return out, nil
}

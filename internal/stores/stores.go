// Package stores opens the repositories of the configured STORE_BACKEND.
package stores

import (
	bookingsrepo "hotelbook/internal/bookings/repository"
	hotelsrepo "hotelbook/internal/hotels/repository"
	notificationsrepo "hotelbook/internal/notifications/repository"
	"hotelbook/pkg/config"
	"hotelbook/pkg/db/memory"
)

type Stores struct {
	Hotels    hotelsrepo.HotelRepository
	Bookings  bookingsrepo.BookingRepository
	Snapshots notificationsrepo.SnapshotRepository
}

// Open connects the backend clients and builds the repositories. The memory
// backend is seeded with a demo hotel.
func Open(cfg *config.Config) *Stores {
	switch cfg.StoreBackend {
	case config.StoreDynamoDB:
		cfg.SetDynamo()
		cfg.Log.Warn("Capacity snapshots are kept in memory with the dynamodb backend")
		return &Stores{
			Hotels:    hotelsrepo.NewDynamoHotelRepository(cfg.Client.Dynamo, cfg.DynamoTable),
			Bookings:  bookingsrepo.NewDynamoBookingRepository(cfg.Client.Dynamo, cfg.DynamoTable, cfg.DynamoMaxAttempts, cfg.Log),
			Snapshots: notificationsrepo.NewMemorySnapshotRepository(),
		}

	case config.StoreMemory:
		cfg.Log.Warn("Using in-memory store, data is lost on restart")
		return OpenMemory(seededStore())

	default:
		cfg.SetMongo()
		return &Stores{
			Hotels:    hotelsrepo.NewMongoHotelRepository(cfg),
			Bookings:  bookingsrepo.NewMongoBookingRepository(cfg),
			Snapshots: notificationsrepo.NewMongoSnapshotRepository(cfg),
		}
	}
}

func OpenMemory(store *memory.Store) *Stores {
	return &Stores{
		Hotels:    hotelsrepo.NewMemoryHotelRepository(store),
		Bookings:  bookingsrepo.NewMemoryBookingRepository(store),
		Snapshots: notificationsrepo.NewMemorySnapshotRepository(),
	}
}

func seededStore() *memory.Store {
	store := memory.NewStore()
	store.Seed()
	return store
}

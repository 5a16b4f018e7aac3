package mongo

const (
	HotelsCollection            = "Hotels"
	ReservationsCollection      = "Reservations"
	RoomGuardsCollection        = "Room_guards"
	CapacitySnapshotsCollection = "Capacity_snapshots"
)

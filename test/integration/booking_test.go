package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotelbook/pkg/auth"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/test/integration/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a live hotels service started with an empty store,
// e.g. STORE_BACKEND=memory. They are skipped unless TEST_SERVER_URL is set.

func newClient(t *testing.T) *testutil.Client {
	t.Helper()
	return testutil.NewTestEnv().Setup(t)
}

func createHotel(t *testing.T, admin *testutil.Client, units int) *model.Hotel {
	t.Helper()
	resp := admin.POST(t, "/admin/hotels", model.HotelInput{
		Name:      "Integration " + uuid.NewString()[:8],
		Location:  "Antalya",
		BasePrice: 120,
		Rooms: []model.RoomClass{
			{Type: "Standard", Capacity: 2, Count: units, Price: 120},
		},
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var hotel model.Hotel
	testutil.Data(t, resp, &hotel)
	require.NotEmpty(t, hotel.ID)
	return &hotel
}

func bookingRequest(hotelID string, offsetDays, nights int) model.BookingRequest {
	start := time.Now().UTC().AddDate(0, 1, offsetDays)
	return model.BookingRequest{
		HotelID:    hotelID,
		RoomType:   "Standard",
		StartDate:  start.Format(time.DateOnly),
		EndDate:    start.AddDate(0, 0, nights).Format(time.DateOnly),
		GuestCount: 2,
		TotalPrice: float64(nights) * 120,
	}
}

func TestBookingFlow(t *testing.T) {
	c := newClient(t)
	admin := c.As("integration-admin", auth.RoleAdmin)
	guest := c.As("integration-guest-"+uuid.NewString()[:8], auth.RoleUser)
	hotel := createHotel(t, admin, 1)

	resp := guest.POST(t, "/book", bookingRequest(hotel.ID, 0, 3))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var reservation model.Reservation
	testutil.Data(t, resp, &reservation)
	assert.Equal(t, model.StatusConfirmed, reservation.Status)

	// Overlapping stay on the only unit.
	resp = guest.POST(t, "/book", bookingRequest(hotel.ID, 2, 2))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	assert.Equal(t, apperrors.CodeSoldOut, testutil.ErrorCode(t, resp))

	// Checkout day is free for the next guest.
	resp = guest.POST(t, "/book", bookingRequest(hotel.ID, 3, 1))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = guest.GET(t, "/bookings/user?limit=10&offset=0")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var mine []model.Reservation
	testutil.Data(t, resp, &mine)
	assert.Len(t, mine, 2)

	resp = guest.GET(t, fmt.Sprintf("/bookings/id/%s", reservation.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	other := c.As("integration-other", auth.RoleUser)
	resp = other.GET(t, fmt.Sprintf("/bookings/id/%s", reservation.ID))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	c := newClient(t)
	admin := c.As("integration-admin", auth.RoleAdmin)
	const units, attempts = 3, 12
	hotel := createHotel(t, admin, units)

	var wg sync.WaitGroup
	statuses := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			guest := c.As(fmt.Sprintf("integration-racer-%d", index), auth.RoleUser)
			resp := guest.POST(t, "/book", bookingRequest(hotel.ID, 10, 2))
			statuses[index] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created, soldOut := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			soldOut++
		}
	}
	assert.Equal(t, units, created)
	assert.Equal(t, attempts-units, soldOut)
}

func TestSearchSeesNewHotel(t *testing.T) {
	c := newClient(t)
	admin := c.As("integration-admin", auth.RoleAdmin)
	hotel := createHotel(t, admin, 2)

	resp := c.GET(t, "/search?location=antalya")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var hotels []model.Hotel
	testutil.Data(t, resp, &hotels)
	ids := make([]string, 0, len(hotels))
	for _, h := range hotels {
		ids = append(ids, h.ID)
	}
	assert.Contains(t, ids, hotel.ID)
}

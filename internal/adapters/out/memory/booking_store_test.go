package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/logger"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(t *testing.T, date, label, name string) domain.Booking {
	t.Helper()
	parsedDate, err := json_types.ParseDate(date, time.UTC)
	require.NoError(t, err)

	return domain.Booking{
		ID:          uuid.New(),
		PatientName: name,
		Contact:     name + "@example.com",
		Date:        parsedDate,
		SlotLabel:   label,
	}
}

func TestBookingStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore(logger.NewNopLogger())

	require.NoError(t, store.Append(ctx, newBooking(t, "2024-06-10", "10:00 - 10:30", "alice")))
	require.NoError(t, store.Append(ctx, newBooking(t, "2024-06-11", "10:00 - 10:30", "bob")))
	require.NoError(t, store.Append(ctx, newBooking(t, "2024-06-10", "09:30 - 10:00", "carol")))

	day := newBooking(t, "2024-06-10", "", "").Date
	bookings, err := store.ListForDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "alice", bookings[0].PatientName)
	assert.Equal(t, "carol", bookings[1].PatientName)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bob", all[1].PatientName)

	empty, err := store.ListForDate(ctx, newBooking(t, "2024-06-12", "", "").Date)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBookingStore_RejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore(logger.NewNopLogger())

	require.NoError(t, store.Append(ctx, newBooking(t, "2024-06-10", "10:00 - 10:30", "alice")))
	err := store.Append(ctx, newBooking(t, "2024-06-10", "10:00 - 10:30", "bob"))

	assert.ErrorIs(t, err, domain.ErrSlotAlreadyBooked)
	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].PatientName)
}

func TestBookingStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore(logger.NewNopLogger())
	require.NoError(t, store.Append(ctx, newBooking(t, "2024-06-10", "10:00 - 10:30", "alice")))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	all[0].PatientName = "mallory"

	again, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", again[0].PatientName)
}

func TestBookingStore_ConcurrentAppendSameKey(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore(logger.NewNopLogger())

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		candidate := newBooking(t, "2024-06-10", "10:00 - 10:30", "patient")
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Append(ctx, candidate); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

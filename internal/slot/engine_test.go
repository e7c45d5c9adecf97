package slot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchpoint/court-booking/internal/model"
	"github.com/matchpoint/court-booking/internal/queue"
	"github.com/matchpoint/court-booking/internal/repository"
)

type fakeHours struct {
	opening int
	closing int
	err     error
}

func (f *fakeHours) VenueHoursByCourt(_ context.Context, _ uint64) (int, int, error) {
	return f.opening, f.closing, f.err
}

type fakeBookings struct {
	existing  []*model.Booking
	insertErr error
	inserted  []*model.Booking
	deleted   []uint64
	nextID    uint64
}

func (f *fakeBookings) FindByCourtAndDate(_ context.Context, _ uint64, _ string) ([]*model.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookings) Insert(_ context.Context, b *model.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	b.ID = f.nextID
	f.inserted = append(f.inserted, b)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	for _, b := range f.existing {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) Delete(_ context.Context, id uint64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePublisher struct {
	events []queue.BookingChangedEvent
	err    error
}

func (f *fakePublisher) PublishBookingChanged(_ context.Context, ev queue.BookingChangedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

func uptr(v uint64) *uint64 { return &v }

func TestListSlotsGrid(t *testing.T) {
	hours := &fakeHours{opening: 900, closing: 1700}
	bookings := &fakeBookings{existing: []*model.Booking{
		{ID: 42, CourtID: 1, UserID: uptr(7), Date: "2026-09-01", StartingTime: "13:00"},
	}}
	e := NewEngine(hours, bookings, nil)

	slots, err := e.ListSlots(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, slots, 8) // (1700-900)/100

	require.Equal(t, "09:00", slots[0].Starts)
	require.Equal(t, "16:00", slots[7].Starts)
	for i, s := range slots {
		require.Equal(t, "2026-09-01", s.Date)
		if s.Starts == "13:00" {
			require.True(t, s.IsBooked)
			require.NotNil(t, s.BookingID)
			require.Equal(t, uint64(42), *s.BookingID)
			require.NotNil(t, s.UserID)
			require.Equal(t, uint64(7), *s.UserID)
		} else {
			require.False(t, s.IsBooked, "slot %d should be free", i)
			require.Nil(t, s.BookingID)
			require.Nil(t, s.UserID)
		}
	}
}

func TestListSlotsDegenerateHours(t *testing.T) {
	tests := []struct {
		name    string
		opening int
		closing int
	}{
		{name: "zero span", opening: 900, closing: 900},
		{name: "closing before opening", opening: 1700, closing: 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&fakeHours{opening: tt.opening, closing: tt.closing}, &fakeBookings{}, nil)
			slots, err := e.ListSlots(context.Background(), 1, "2026-09-01")
			require.NoError(t, err)
			require.Empty(t, slots)
		})
	}
}

func TestListSlotsMalformedDate(t *testing.T) {
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, &fakeBookings{}, nil)
	for _, date := range []string{"", "not-a-date", "2026/09/01", "01-09-2026"} {
		_, err := e.ListSlots(context.Background(), 1, date)
		require.ErrorIs(t, err, ErrMalformedDate, "date %q", date)
	}
}

func TestCreateBookingBoundaries(t *testing.T) {
	// Venue open 09:00-17:00: last valid start is 16:00 because every
	// booking occupies a full hour.
	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{name: "first slot", start: "09:00"},
		{name: "last slot", start: "16:00"},
		{name: "at closing", start: "17:00", wantErr: ErrOverrunsClosing},
		{name: "past closing", start: "18:00", wantErr: ErrOverrunsClosing},
		{name: "overruns closing from within", start: "16:30", wantErr: ErrOverrunsClosing},
		{name: "before opening", start: "08:00", wantErr: ErrBeforeOpening},
		{name: "just before opening", start: "08:59", wantErr: ErrBeforeOpening},
		{name: "garbage", start: "noon", wantErr: ErrMalformedTime},
		{name: "missing minutes", start: "14", wantErr: ErrMalformedTime},
		{name: "single digit minutes", start: "14:5", wantErr: ErrMalformedTime},
		{name: "minute out of range", start: "14:60", wantErr: ErrMalformedTime},
		{name: "hour out of range", start: "24:00", wantErr: ErrMalformedTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookings{}
			e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, nil)
			b, err := e.CreateBooking(context.Background(), 1, tt.start, "2026-09-01", uptr(7))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, bookings.inserted)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.start, b.StartingTime)
		})
	}
}

func TestCreateBookingNormalizesTime(t *testing.T) {
	bookings := &fakeBookings{}
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, nil)

	b, err := e.CreateBooking(context.Background(), 1, "9:00", "2026-09-01", uptr(7))
	require.NoError(t, err)
	require.Equal(t, "09:00", b.StartingTime)
	require.Len(t, bookings.inserted, 1)
	require.Equal(t, "09:00", bookings.inserted[0].StartingTime)
}

func TestCreateBookingMalformedDate(t *testing.T) {
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, &fakeBookings{}, nil)
	_, err := e.CreateBooking(context.Background(), 1, "10:00", "september first", uptr(7))
	require.ErrorIs(t, err, ErrMalformedDate)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	bookings := &fakeBookings{insertErr: repository.ErrSlotTaken}
	pub := &fakePublisher{}
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, pub)

	_, err := e.CreateBooking(context.Background(), 1, "10:00", "2026-09-01", uptr(7))
	require.ErrorIs(t, err, repository.ErrSlotTaken)
	require.Empty(t, pub.events, "losing insert must not publish")
}

func TestCreateBookingPublishesEvent(t *testing.T) {
	bookings := &fakeBookings{}
	pub := &fakePublisher{}
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, pub)

	b, err := e.CreateBooking(context.Background(), 3, "10:00", "2026-09-01", uptr(7))
	require.NoError(t, err)
	require.Len(t, pub.events, 1)

	ev := pub.events[0]
	require.Equal(t, queue.BookingCreated, ev.Action)
	require.Equal(t, b.ID, ev.BookingID)
	require.Equal(t, uint64(3), ev.CourtID)
	require.Equal(t, "2026-09-01", ev.Date)
	require.Equal(t, "10:00", ev.StartingTime)
}

func TestCreateBookingPublishFailureIgnored(t *testing.T) {
	bookings := &fakeBookings{}
	pub := &fakePublisher{err: errors.New("broker down")}
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, pub)

	b, err := e.CreateBooking(context.Background(), 1, "10:00", "2026-09-01", uptr(7))
	require.NoError(t, err, "publish failure must not fail the booking")
	require.NotZero(t, b.ID)
}

func TestCancelBooking(t *testing.T) {
	bookings := &fakeBookings{existing: []*model.Booking{
		{ID: 42, CourtID: 3, UserID: uptr(7), Date: "2026-09-01", StartingTime: "13:00"},
	}}
	pub := &fakePublisher{}
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, bookings, pub)

	require.NoError(t, e.CancelBooking(context.Background(), 42))
	require.Equal(t, []uint64{42}, bookings.deleted)
	require.Len(t, pub.events, 1)
	require.Equal(t, queue.BookingCancelled, pub.events[0].Action)
	require.Equal(t, uint64(42), pub.events[0].BookingID)
}

func TestCancelBookingNotFound(t *testing.T) {
	e := NewEngine(&fakeHours{opening: 900, closing: 1700}, &fakeBookings{}, &fakePublisher{})
	err := e.CancelBooking(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestValidHours(t *testing.T) {
	tests := []struct {
		name    string
		opening int
		closing int
		want    bool
	}{
		{name: "standard day", opening: 900, closing: 2100, want: true},
		{name: "full day", opening: 0, closing: 2400, want: true},
		{name: "single hour", opening: 900, closing: 1000, want: true},
		{name: "not hour aligned opening", opening: 930, closing: 1700, want: false},
		{name: "not hour aligned closing", opening: 900, closing: 1730, want: false},
		{name: "zero span", opening: 900, closing: 900, want: false},
		{name: "inverted", opening: 1700, closing: 900, want: false},
		{name: "negative opening", opening: -100, closing: 900, want: false},
		{name: "closing past midnight", opening: 900, closing: 2500, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidHours(tt.opening, tt.closing))
		})
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

func TestNewSeat_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  SeatParams
		wantErr bool
	}{
		{"valid", SeatParams{ID: "s1", Code: "07A", Type: SeatTypeVIP}, false},
		{"trimmed code", SeatParams{ID: "s1", Code: " 07A ", Type: SeatTypeVIP}, false},
		{"lowercase letter", SeatParams{ID: "s1", Code: "07a", Type: SeatTypeVIP}, true},
		{"three digits", SeatParams{ID: "s1", Code: "107A", Type: SeatTypeVIP}, true},
		{"unknown type", SeatParams{ID: "s1", Code: "07A", Type: "Sofa"}, true},
		{"blank id", SeatParams{ID: " ", Code: "07A", Type: SeatTypeNormal}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeat(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuditorium_AddSeat_LinksBothSides(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 0)
	s := newTestSeat(t, "01A")

	require.NoError(t, a.AddSeat(s))

	assert.Same(t, a, s.Auditorium())
	assert.Equal(t, []*Seat{s}, a.Seats())
}

func TestAuditorium_AddSeat_SameAuditoriumIsNoop(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 0)
	s := newTestSeat(t, "01A")
	require.NoError(t, a.AddSeat(s))

	require.NoError(t, a.AddSeat(s))
	require.NoError(t, s.SetAuditorium(a))

	assert.Equal(t, 1, a.SeatCount())
}

func TestAuditorium_AddSeat_OtherAuditoriumFails(t *testing.T) {
	a1 := newTestAuditorium(t, "Sala 1", 0)
	a2 := newTestAuditorium(t, "Sala 2", 0)
	s := newTestSeat(t, "01A")
	require.NoError(t, a1.AddSeat(s))

	err := s.SetAuditorium(a2)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
	assert.Same(t, a1, s.Auditorium())
	assert.Zero(t, a2.SeatCount())
}

func TestAuditorium_AddSeat_DuplicateCodeFails(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 1)

	err := a.AddSeat(newTestSeat(t, "01A"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
	assert.Equal(t, 1, a.SeatCount())
}

func TestAuditorium_AddSeat_NilFails(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 0)

	assert.ErrorIs(t, a.AddSeat(nil), domainerrors.ErrInvalidArgument)
	assert.ErrorIs(t, newTestSeat(t, "01A").SetAuditorium(nil), domainerrors.ErrInvalidArgument)
}

func TestAuditorium_RemoveSeat_SeatFloor(t *testing.T) {
	t.Run("twelve seats rejects removal", func(t *testing.T) {
		a := newTestAuditorium(t, "Sala 1", 12)
		s := a.Seats()[0]

		err := a.RemoveSeat(s)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
		assert.Equal(t, 12, a.SeatCount())
		assert.Same(t, a, s.Auditorium())
	})

	t.Run("thirteen seats allows removal down to twelve", func(t *testing.T) {
		a := newTestAuditorium(t, "Sala 1", 13)
		s := a.Seats()[4]

		require.NoError(t, a.RemoveSeat(s))

		assert.Equal(t, 12, a.SeatCount())
		assert.Nil(t, s.Auditorium())
		assert.NotContains(t, a.Seats(), s)
	})

	t.Run("seat side goes through the same floor", func(t *testing.T) {
		a := newTestAuditorium(t, "Sala 1", 12)

		assert.ErrorIs(t, a.Seats()[0].RemoveAuditorium(), domainerrors.ErrInvalidOperation)
	})
}

func TestAuditorium_RemoveSeat_TicketedSeat(t *testing.T) {
	tests := []struct {
		name     string
		tickets  bool
		code     string
		wantErr  bool
		wantSize int
	}{
		{name: "seat with a ticket stays", tickets: true, code: "13A", wantErr: true, wantSize: 14},
		{name: "seat added after tickets goes", tickets: true, code: "14A", wantSize: 13},
		{name: "screening without tickets does not block", code: "13A", wantSize: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuditorium(t, "Sala 1", 13)
			s := newTestScreening(t, newTestMovie(t, "Rejs"), a)
			if tt.tickets {
				_, err := s.CreateTickets(decimal.RequireFromString("25.00"))
				require.NoError(t, err)
			}
			require.NoError(t, a.AddSeat(newTestSeat(t, "14A")))
			seat, ok := a.Seat(tt.code)
			require.True(t, ok)

			err := a.RemoveSeat(seat)

			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
				assert.Same(t, a, seat.Auditorium())
				_, held := s.Ticket(tt.code)
				assert.True(t, held)
			} else {
				require.NoError(t, err)
				assert.Nil(t, seat.Auditorium())
			}
			assert.Equal(t, tt.wantSize, a.SeatCount())
		})
	}
}

func TestAuditorium_RemoveSeat_UnknownSeatIsNoop(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 13)
	stranger := newTestSeat(t, "20Z")

	assert.NoError(t, a.RemoveSeat(stranger))
	assert.NoError(t, stranger.RemoveAuditorium())
	assert.Equal(t, 13, a.SeatCount())
}

func TestAuditorium_Seats_ReturnsCopy(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 3)

	seats := a.Seats()
	seats[0] = nil

	assert.Equal(t, 3, a.SeatCount())
	assert.NotNil(t, a.Seats()[0])
}

func TestAuditorium_Seat_LookupByCode(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 3)

	s, ok := a.Seat("02A")
	require.True(t, ok)
	assert.Equal(t, "02A", s.Code())

	_, ok = a.Seat("09Z")
	assert.False(t, ok)
}

func TestAuditorium_Setters(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 0)

	assert.ErrorIs(t, a.SetName("  "), domainerrors.ErrInvalidArgument)
	assert.ErrorIs(t, a.SetScreenType("8K"), domainerrors.ErrInvalidArgument)
	assert.ErrorIs(t, a.SetSoundSystem("Mono"), domainerrors.ErrInvalidArgument)

	require.NoError(t, a.SetName(" Sala IMAX "))
	require.NoError(t, a.SetScreenType(ScreenTypeIMAX))
	require.NoError(t, a.SetSoundSystem(SoundSystemDTS))
	assert.Equal(t, "Sala IMAX", a.Name())
	assert.Equal(t, ScreenTypeIMAX, a.ScreenType())
	assert.Equal(t, SoundSystemDTS, a.SoundSystem())
}

func TestAuditorium_IsAvailable(t *testing.T) {
	a := newTestAuditorium(t, "Sala 1", 12)
	s := newTestScreening(t, newTestMovie(t, "Rejs"), a) // 18:00-20:00 tomorrow
	start := s.StartsAt()

	assert.False(t, a.IsAvailable(start.Add(time.Hour), time.Hour))
	assert.False(t, a.IsAvailable(start.Add(-time.Hour), 90*time.Minute))
	assert.True(t, a.IsAvailable(start.Add(2*time.Hour), time.Hour))
	assert.True(t, a.IsAvailable(start.Add(-time.Hour), time.Hour))

	require.NoError(t, s.Cancel())
	assert.True(t, a.IsAvailable(start, time.Hour))
}

package pass

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, keyLength)
}

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder(testKey(7), 30*time.Minute)
	require.NoError(t, err)
	return enc
}

// newSoldTicket returns seat 05A of a ticketed screening two days ahead,
// sold when sell is true.
func newSoldTicket(t *testing.T, sell bool) *domain.Ticket {
	t.Helper()

	a, err := domain.NewAuditorium(domain.AuditoriumParams{
		ID: "aud-1", Name: "Sala 1", ScreenType: domain.ScreenType2D, SoundSystem: domain.SoundSystemStereo,
	})
	require.NoError(t, err)
	for i := 1; i <= domain.MinAuditoriumSeats; i++ {
		s, err := domain.NewSeat(domain.SeatParams{
			ID: fmt.Sprintf("seat-%02d", i), Code: fmt.Sprintf("%02dA", i), Type: domain.SeatTypeNormal,
		})
		require.NoError(t, err)
		require.NoError(t, a.AddSeat(s))
	}

	comedy, err := domain.NewComedy("satire")
	require.NoError(t, err)
	m, err := domain.NewMovie(domain.MovieParams{
		ID: "mov-1", Title: "Rejs", Country: "Poland", Description: "Cruise", Director: "Marek Piwowski", Length: 67,
	}, nil, comedy)
	require.NoError(t, err)

	s, err := domain.NewScreening(domain.ScreeningParams{
		ID:        "scr-1",
		Date:      time.Now().AddDate(0, 0, 2),
		StartTime: 20 * time.Hour,
		Format:    domain.ScreeningFormat2D,
		Version:   domain.ScreeningVersionOriginal,
	}, m, a)
	require.NoError(t, err)
	_, err = s.CreateTickets(decimal.NewFromInt(25))
	require.NoError(t, err)

	tk, ok := s.Ticket("05A")
	require.True(t, ok)
	if sell {
		require.NoError(t, tk.Sell(domain.PaymentBlik))
	}
	return tk
}

func TestNewEncoder_KeyLength(t *testing.T) {
	_, err := NewEncoder([]byte("short"), 0)
	assert.Error(t, err)
}

func TestEncoder_PayloadRoundTrip(t *testing.T) {
	enc := newTestEncoder(t)
	tk := newSoldTicket(t, true)

	payload, err := enc.Payload(tk)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "v4.local."))
	assert.NotContains(t, payload, tk.ID())

	claims, err := enc.ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), claims.TicketID)
	assert.Equal(t, "scr-1", claims.ScreeningID)
	assert.Equal(t, "Rejs", claims.Movie)
	assert.Equal(t, "Sala 1", claims.Auditorium)
	assert.Equal(t, "05A", claims.Seat)
	assert.True(t, tk.Screening().StartsAt().Equal(claims.StartsAt))
	assert.True(t, tk.Screening().EndsAt().Add(30*time.Minute).Equal(claims.Expiration))
	assert.Equal(t, passIssuer, claims.Issuer)
}

func TestEncoder_Payload_OnlyPurchased(t *testing.T) {
	enc := newTestEncoder(t)

	_, err := enc.Payload(newSoldTicket(t, false))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)

	_, err = enc.Payload(nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	tk := newSoldTicket(t, true)
	tk.Screening().Detach()
	_, err = enc.Payload(tk)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
}

func TestEncoder_ParsePayload_Rejects(t *testing.T) {
	enc := newTestEncoder(t)
	payload, err := enc.Payload(newSoldTicket(t, true))
	require.NoError(t, err)

	t.Run("other key", func(t *testing.T) {
		other, err := NewEncoder(testKey(9), 0)
		require.NoError(t, err)
		_, err = other.ParsePayload(payload)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := payload[:len(payload)-4] + "AAAA"
		if tampered == payload {
			tampered = payload[:len(payload)-4] + "BBBB"
		}
		_, err := enc.ParsePayload(tampered)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := enc.ParsePayload("not a pass")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
	})

	t.Run("expired", func(t *testing.T) {
		late := *enc
		late.now = func() time.Time { return time.Now().AddDate(0, 0, 5) }
		_, err := late.ParsePayload(payload)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
	})
}

func TestEncoder_PNG(t *testing.T) {
	enc := newTestEncoder(t)

	data, err := enc.PNG(newSoldTicket(t, true), 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())

	_, err = enc.PNG(newSoldTicket(t, false), 128)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOperation)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pass.key"), []byte("abc"), 0o600))
	_, err = LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

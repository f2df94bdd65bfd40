package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

func newPurchasedTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("tkt-1", decimal.RequireFromString("30"))
	require.NoError(t, err)
	require.NoError(t, tk.Sell(PaymentCreditCard))
	return tk
}

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket("tkt-1", decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.Equal(t, TicketAvailable, tk.Status())
	assert.Equal(t, PaymentNone, tk.PaymentType())
	assert.Empty(t, tk.Reason())

	_, err = NewTicket("tkt-1", decimal.Zero)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
	_, err = NewTicket("tkt-1", decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
}

func TestRestoreTicket_ReasonInvariant(t *testing.T) {
	tests := []struct {
		name    string
		status  TicketStatus
		reason  string
		wantErr bool
	}{
		{"refunded without reason", TicketRefunded, "", true},
		{"expired with blank reason", TicketExpired, "  ", true},
		{"refunded with reason", TicketRefunded, "ill", false},
		{"expired with reason", TicketExpired, ReasonMissedScan, false},
		{"purchased without reason", TicketPurchased, "", false},
		{"unknown status", "Lost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := RestoreTicket(TicketState{
				ID:          "tkt-1",
				Price:       decimal.NewFromInt(10),
				Status:      tt.status,
				PaymentType: PaymentCash,
				Reason:      tt.reason,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, tk.Status())
		})
	}
}

func TestTicket_Sell(t *testing.T) {
	tk, err := NewTicket("tkt-1", decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.ErrorIs(t, tk.Sell(PaymentNone), domainerrors.ErrInvalidArgument)
	assert.ErrorIs(t, tk.Sell("Cheque"), domainerrors.ErrInvalidArgument)
	assert.Equal(t, TicketAvailable, tk.Status())

	require.NoError(t, tk.Sell(PaymentBlik))
	assert.Equal(t, TicketPurchased, tk.Status())
	assert.Equal(t, PaymentBlik, tk.PaymentType())

	assert.ErrorIs(t, tk.Sell(PaymentCash), domainerrors.ErrInvalidOperation)
	assert.ErrorIs(t, tk.SetPrice(decimal.NewFromInt(5)), domainerrors.ErrInvalidOperation)
}

func TestTicket_Refund_Window(t *testing.T) {
	screeningTime := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		ahead      time.Duration
		wantStatus TicketStatus
		wantReason string
	}{
		{"exactly 24h ahead", 24 * time.Hour, TicketRefunded, "cannot come"},
		{"two days ahead", 48 * time.Hour, TicketRefunded, "cannot come"},
		{"23h59m ahead", 23*time.Hour + 59*time.Minute, TicketExpired, ReasonLateRefund},
		{"after start", -time.Hour, TicketExpired, ReasonLateRefund},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newPurchasedTicket(t)

			require.NoError(t, tk.Refund(screeningTime.Add(-tt.ahead), screeningTime, "cannot come"))

			assert.Equal(t, tt.wantStatus, tk.Status())
			assert.Equal(t, tt.wantReason, tk.Reason())
		})
	}
}

func TestTicket_Refund_Preconditions(t *testing.T) {
	screeningTime := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	available, err := NewTicket("tkt-1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.ErrorIs(t, available.Refund(screeningTime.Add(-48*time.Hour), screeningTime, "x"), domainerrors.ErrInvalidOperation)

	tk := newPurchasedTicket(t)
	assert.ErrorIs(t, tk.Refund(screeningTime.Add(-48*time.Hour), screeningTime, " "), domainerrors.ErrInvalidArgument)
	assert.Equal(t, TicketPurchased, tk.Status())

	require.NoError(t, tk.Refund(screeningTime.Add(-48*time.Hour), screeningTime, "x"))
	assert.ErrorIs(t, tk.Refund(screeningTime.Add(-48*time.Hour), screeningTime, "x"), domainerrors.ErrInvalidOperation)
	assert.ErrorIs(t, tk.Scan(screeningTime, screeningTime), domainerrors.ErrInvalidOperation)
}

func TestTicket_Scan_Window(t *testing.T) {
	screeningTime := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		offset     time.Duration
		wantStatus TicketStatus
		wantReason string
	}{
		{"before start", -15 * time.Minute, TicketScanned, ""},
		{"at start", 0, TicketScanned, ""},
		{"30 minutes late", 30 * time.Minute, TicketScanned, ""},
		{"31 minutes late", 31 * time.Minute, TicketExpired, ReasonMissedScan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newPurchasedTicket(t)

			require.NoError(t, tk.Scan(screeningTime.Add(tt.offset), screeningTime))

			assert.Equal(t, tt.wantStatus, tk.Status())
			assert.Equal(t, tt.wantReason, tk.Reason())
		})
	}
}

func TestTicket_Scan_RequiresPurchase(t *testing.T) {
	tk, err := NewTicket("tkt-1", decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.ErrorIs(t, tk.Scan(time.Now(), time.Now()), domainerrors.ErrInvalidOperation)
}

func TestTicket_ReviewLink(t *testing.T) {
	m := newTestMovie(t, "Rejs")
	tk := newPurchasedTicket(t)
	r1 := newTestReview(t, "rev-1", m, 9)
	r2 := newTestReview(t, "rev-2", m, 4)

	require.NoError(t, tk.AddReview(r1))
	require.NoError(t, r1.SetTicket(tk))
	assert.Same(t, r1, tk.Review())
	assert.Same(t, tk, r1.Ticket())

	t.Run("second review is rejected", func(t *testing.T) {
		assert.ErrorIs(t, tk.AddReview(r2), domainerrors.ErrInvalidOperation)
		assert.ErrorIs(t, r2.SetTicket(tk), domainerrors.ErrInvalidOperation)
		assert.Nil(t, r2.Ticket())
	})

	t.Run("update replaces", func(t *testing.T) {
		require.NoError(t, tk.UpdateReview(r2))
		assert.Same(t, r2, tk.Review())
		assert.Same(t, tk, r2.Ticket())
		assert.Nil(t, r1.Ticket())
	})

	t.Run("update ticket from the review side", func(t *testing.T) {
		other := newPurchasedTicket(t)
		require.NoError(t, r2.UpdateTicket(other))
		assert.Same(t, other, r2.Ticket())
		assert.Same(t, r2, other.Review())
		assert.Nil(t, tk.Review())
	})

	t.Run("review linked elsewhere is rejected by add", func(t *testing.T) {
		assert.ErrorIs(t, tk.AddReview(r2), domainerrors.ErrInvalidOperation)
		assert.Nil(t, tk.Review())
	})

	t.Run("remove is lenient", func(t *testing.T) {
		tk.RemoveReview()
		r1.RemoveTicket()

		other := r2.Ticket()
		r2.RemoveTicket()
		assert.Nil(t, r2.Ticket())
		assert.Nil(t, other.Review())
	})

	t.Run("nil arguments", func(t *testing.T) {
		assert.ErrorIs(t, tk.AddReview(nil), domainerrors.ErrInvalidArgument)
		assert.ErrorIs(t, tk.UpdateReview(nil), domainerrors.ErrInvalidArgument)
		assert.ErrorIs(t, r1.SetTicket(nil), domainerrors.ErrInvalidArgument)
		assert.ErrorIs(t, r1.UpdateTicket(nil), domainerrors.ErrInvalidArgument)
	})
}

func TestReviewPage_Validation(t *testing.T) {
	m := newTestMovie(t, "Rejs")

	tests := []struct {
		name   string
		params ReviewParams
		movie  *Movie
	}{
		{"rate zero", ReviewParams{ID: "r", Name: "a", Surname: "b", Rate: 0}, m},
		{"rate eleven", ReviewParams{ID: "r", Name: "a", Surname: "b", Rate: 11}, m},
		{"blank name", ReviewParams{ID: "r", Name: " ", Surname: "b", Rate: 5}, m},
		{"blank surname", ReviewParams{ID: "r", Name: "a", Surname: "", Rate: 5}, m},
		{"no movie", ReviewParams{ID: "r", Name: "a", Surname: "b", Rate: 5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReviewPage(tt.params, tt.movie)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
		})
	}
	assert.Empty(t, m.Reviews())
}

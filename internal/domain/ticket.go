package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// Time windows of the ticket state machine.
const (
	// RefundWindow is how long before the screening a refund must be asked for.
	RefundWindow = 24 * time.Hour
	// ScanGracePeriod is how long after the start a ticket can still be scanned.
	ScanGracePeriod = 30 * time.Minute
)

// Fixed reasons recorded by the system.
const (
	ReasonLateRefund        = "Ticket expired due to not refunding on time (should refund earlier than 24h)"
	ReasonMissedScan        = "Ticket is not scanned within the first 30 minutes after screening started"
	ReasonScreeningCanceled = "Screening cancelled by employee"
)

// Ticket is a seat at one screening.
//
//	Available ──Sell──▶ Purchased ──Scan──▶ Scanned
//	                        │
//	                        ├──Refund (≥24h ahead)──▶ Refunded
//	                        └──late Refund / late Scan──▶ Expired
//
// Refunded and Expired tickets always carry a reason.
type Ticket struct {
	id          string
	price       decimal.Decimal
	status      TicketStatus
	paymentType PaymentType
	reason      string
	screening   *Screening
	seatCode    string
	review      *ReviewPage
}

// NewTicket creates an Available, unpaid ticket.
func NewTicket(id string, price decimal.Decimal) (*Ticket, error) {
	return RestoreTicket(TicketState{
		ID:          id,
		Price:       price,
		Status:      TicketAvailable,
		PaymentType: PaymentNone,
	})
}

// TicketState is the persisted form of a ticket's own attributes.
type TicketState struct {
	ID          string          `json:"id" validate:"notblank"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Status      TicketStatus    `json:"status" validate:"enum"`
	PaymentType PaymentType     `json:"payment_type" validate:"enum"`
	Reason      string          `json:"reason,omitempty"`
}

// RestoreTicket creates a ticket in any state. A Refunded or Expired state
// without a reason is rejected.
func RestoreTicket(st TicketState) (*Ticket, error) {
	st.ID = strings.TrimSpace(st.ID)
	st.Reason = strings.TrimSpace(st.Reason)
	if err := validate.Validate(st); err != nil {
		return nil, err
	}
	if st.Status.NeedsReason() && st.Reason == "" {
		return nil, domainerrors.InvalidArgumentf("a %s ticket needs a reason", st.Status)
	}
	if !st.Status.NeedsReason() {
		st.Reason = ""
	}
	return &Ticket{
		id:          st.ID,
		price:       st.Price,
		status:      st.Status,
		paymentType: st.PaymentType,
		reason:      st.Reason,
	}, nil
}

func (t *Ticket) ID() string               { return t.id }
func (t *Ticket) Price() decimal.Decimal   { return t.price }
func (t *Ticket) Status() TicketStatus     { return t.status }
func (t *Ticket) PaymentType() PaymentType { return t.paymentType }
func (t *Ticket) Reason() string           { return t.reason }
func (t *Ticket) Screening() *Screening    { return t.screening }
func (t *Ticket) SeatCode() string         { return t.seatCode }
func (t *Ticket) Review() *ReviewPage      { return t.review }

// State returns the ticket's own attributes.
func (t *Ticket) State() TicketState {
	return TicketState{
		ID:          t.id,
		Price:       t.price,
		Status:      t.status,
		PaymentType: t.paymentType,
		Reason:      t.reason,
	}
}

// SetPrice reprices a ticket that has not been sold yet.
func (t *Ticket) SetPrice(price decimal.Decimal) error {
	if err := validate.Var("price", price, "gt=0"); err != nil {
		return err
	}
	if t.status != TicketAvailable {
		return domainerrors.InvalidOperationf("ticket must be %s to reprice, is %s", TicketAvailable, t.status)
	}
	t.price = price
	return nil
}

// Sell records payment and moves an Available ticket to Purchased.
func (t *Ticket) Sell(pt PaymentType) error {
	if err := validate.Var("payment_type", pt, "enum"); err != nil {
		return err
	}
	if pt == PaymentNone {
		return domainerrors.InvalidArgument("payment type is required to sell a ticket")
	}
	if t.status != TicketAvailable {
		return domainerrors.InvalidOperationf("ticket must be %s to sell, is %s", TicketAvailable, t.status)
	}
	t.paymentType = pt
	t.status = TicketPurchased
	return nil
}

// Refund handles a refund request for a Purchased ticket at instant now.
// Requests made at least RefundWindow before screeningTime are honored with
// reason; later ones expire the ticket with ReasonLateRefund instead.
func (t *Ticket) Refund(now, screeningTime time.Time, reason string) error {
	if t.status != TicketPurchased {
		return domainerrors.InvalidOperationf("ticket must be %s to refund, is %s", TicketPurchased, t.status)
	}
	if screeningTime.Sub(now) < RefundWindow {
		t.status = TicketExpired
		t.reason = ReasonLateRefund
		return nil
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerrors.InvalidArgument("refund reason is required")
	}
	t.status = TicketRefunded
	t.reason = reason
	return nil
}

// Scan admits the holder of a Purchased ticket at instant now. Scans up to
// ScanGracePeriod after screeningTime succeed; later ones expire the ticket
// with ReasonMissedScan.
func (t *Ticket) Scan(now, screeningTime time.Time) error {
	if t.status != TicketPurchased {
		return domainerrors.InvalidOperationf("ticket must be %s to scan, is %s", TicketPurchased, t.status)
	}
	if now.After(screeningTime.Add(ScanGracePeriod)) {
		t.status = TicketExpired
		t.reason = ReasonMissedScan
		return nil
	}
	t.status = TicketScanned
	return nil
}

func (t *Ticket) refundByOperator(reason string) {
	t.status = TicketRefunded
	t.reason = reason
}

// AddReview links r to the ticket. Linking the current review again is a
// no-op; a ticket that has another review, or a review already linked to
// another ticket, is rejected.
func (t *Ticket) AddReview(r *ReviewPage) error {
	if r == nil {
		return domainerrors.InvalidArgument("review is required")
	}
	if t.review == r {
		return nil
	}
	if t.review != nil {
		return domainerrors.InvalidOperationf("ticket %s is already linked to review %s", t.id, t.review.id)
	}
	if r.ticket != nil {
		return domainerrors.InvalidOperationf("review %s is already linked to ticket %s", r.id, r.ticket.id)
	}
	linkTicketReview(t, r)
	return nil
}

// UpdateReview links r in place of the current review, detaching both the
// old review and any ticket r was linked to.
func (t *Ticket) UpdateReview(r *ReviewPage) error {
	if r == nil {
		return domainerrors.InvalidArgument("review is required")
	}
	if t.review == r {
		return nil
	}
	unlinkTicketReview(t)
	if r.ticket != nil {
		unlinkTicketReview(r.ticket)
	}
	linkTicketReview(t, r)
	return nil
}

// RemoveReview unlinks the current review, if any.
func (t *Ticket) RemoveReview() {
	unlinkTicketReview(t)
}

func linkTicketReview(t *Ticket, r *ReviewPage) {
	t.review = r
	r.ticket = t
}

func unlinkTicketReview(t *Ticket) {
	if t.review == nil {
		return
	}
	t.review.ticket = nil
	t.review = nil
}

package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/id"
)

// ScreeningParams holds the schedule and presentation of a screening.
// StartTime is the offset from midnight of Date.
type ScreeningParams struct {
	ID        string           `json:"id" validate:"notblank"`
	Date      time.Time        `json:"date" validate:"required"`
	StartTime time.Duration    `json:"start_time" validate:"gte=0,lt=24h"`
	Format    ScreeningFormat  `json:"format" validate:"enum"`
	Version   ScreeningVersion `json:"version" validate:"enum"`
}

// Screening is one showing of a movie in an auditorium. Tickets are keyed by
// seat code, at most one per seat.
//
//	Planned ──Start──▶ Running ──Finish──▶ Finished
//	   │                  │
//	   └──────Cancel──────┴──▶ Canceled
type Screening struct {
	id         string
	movie      *Movie
	auditorium *Auditorium
	date       time.Time
	startTime  time.Duration
	format     ScreeningFormat
	version    ScreeningVersion
	status     ScreeningStatus
	tickets    map[string]*Ticket
}

// NewScreening schedules movie in auditorium. The date must not be in the
// past, nor the start time when the date is today. The screening starts out
// Planned and without tickets.
func NewScreening(p ScreeningParams, movie *Movie, auditorium *Auditorium) (*Screening, error) {
	p.ID = strings.TrimSpace(p.ID)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	if err := checkSchedule(p.Date, p.StartTime); err != nil {
		return nil, err
	}
	return newScreening(p, ScreeningPlanned, movie, auditorium)
}

// RestoreScreening rebuilds a persisted screening in the given status,
// without the past-date checks.
func RestoreScreening(p ScreeningParams, status ScreeningStatus, movie *Movie, auditorium *Auditorium) (*Screening, error) {
	p.ID = strings.TrimSpace(p.ID)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	if err := validate.Var("status", status, "enum"); err != nil {
		return nil, err
	}
	return newScreening(p, status, movie, auditorium)
}

func newScreening(p ScreeningParams, status ScreeningStatus, movie *Movie, auditorium *Auditorium) (*Screening, error) {
	if movie == nil {
		return nil, domainerrors.InvalidArgument("movie is required")
	}
	if auditorium == nil {
		return nil, domainerrors.InvalidArgument("auditorium is required")
	}

	s := &Screening{
		id:        p.ID,
		date:      dateOnly(p.Date),
		startTime: p.StartTime,
		format:    p.Format,
		version:   p.Version,
		status:    status,
		tickets:   make(map[string]*Ticket),
	}
	s.linkMovie(movie)
	s.linkAuditorium(auditorium)
	return s, nil
}

func checkSchedule(date time.Time, startTime time.Duration) error {
	current := now().In(date.Location())
	day := dateOnly(date)
	today := dateOnly(current)
	if day.Before(today) {
		return domainerrors.InvalidArgument("screening date must not be in the past")
	}
	if day.Equal(today) && day.Add(startTime).Before(current) {
		return domainerrors.InvalidArgument("screening start time must not be in the past")
	}
	return nil
}

func (s *Screening) ID() string                { return s.id }
func (s *Screening) Movie() *Movie             { return s.movie }
func (s *Screening) Auditorium() *Auditorium   { return s.auditorium }
func (s *Screening) Date() time.Time           { return s.date }
func (s *Screening) StartTime() time.Duration  { return s.startTime }
func (s *Screening) Format() ScreeningFormat   { return s.format }
func (s *Screening) Version() ScreeningVersion { return s.version }
func (s *Screening) Status() ScreeningStatus   { return s.status }

// Params returns the screening's schedule and presentation.
func (s *Screening) Params() ScreeningParams {
	return ScreeningParams{
		ID:        s.id,
		Date:      s.date,
		StartTime: s.startTime,
		Format:    s.format,
		Version:   s.version,
	}
}

// StartsAt is the instant the screening begins.
func (s *Screening) StartsAt() time.Time {
	return s.date.Add(s.startTime)
}

// EndsAt is StartsAt plus the movie's total runtime.
func (s *Screening) EndsAt() time.Time {
	if s.movie == nil {
		return s.StartsAt()
	}
	return s.StartsAt().Add(s.movie.Runtime())
}

// SetFormat changes the projection format.
func (s *Screening) SetFormat(f ScreeningFormat) error {
	if err := validate.Var("format", f, "enum"); err != nil {
		return err
	}
	s.format = f
	return nil
}

// SetVersion changes the language version.
func (s *Screening) SetVersion(v ScreeningVersion) error {
	if err := validate.Var("version", v, "enum"); err != nil {
		return err
	}
	s.version = v
	return nil
}

// Reschedule moves a planned screening to another date and start time.
func (s *Screening) Reschedule(date time.Time, startTime time.Duration) error {
	if err := validate.Var("start_time", startTime, "gte=0,lt=24h"); err != nil {
		return err
	}
	if date.IsZero() {
		return domainerrors.InvalidArgument("date is required")
	}
	if s.status != ScreeningPlanned {
		return domainerrors.InvalidOperationf("screening must be %s to reschedule, is %s", ScreeningPlanned, s.status)
	}
	if err := checkSchedule(date, startTime); err != nil {
		return err
	}
	s.date = dateOnly(date)
	s.startTime = startTime
	return nil
}

// SetMovie moves the screening to m, detaching it from its current movie.
func (s *Screening) SetMovie(m *Movie) error {
	if m == nil {
		return domainerrors.InvalidArgument("movie is required")
	}
	if s.movie == m {
		return nil
	}
	s.unlinkMovie()
	s.linkMovie(m)
	return nil
}

// SetAuditorium moves the screening to a, detaching it from its current
// auditorium. A screening with tickets cannot move, as they are keyed by the
// current auditorium's seats.
func (s *Screening) SetAuditorium(a *Auditorium) error {
	if a == nil {
		return domainerrors.InvalidArgument("auditorium is required")
	}
	if s.auditorium == a {
		return nil
	}
	if len(s.tickets) > 0 {
		return domainerrors.InvalidOperation("cannot move a screening that already has tickets")
	}
	s.unlinkAuditorium()
	s.linkAuditorium(a)
	return nil
}

// Detach unlinks the screening from both its movie and its auditorium.
func (s *Screening) Detach() {
	s.unlinkMovie()
	s.unlinkAuditorium()
}

func (s *Screening) linkMovie(m *Movie) {
	s.movie = m
	m.screenings = append(m.screenings, s)
}

func (s *Screening) unlinkMovie() {
	if s.movie == nil {
		return
	}
	s.movie.screenings, _ = removeItem(s.movie.screenings, s)
	s.movie = nil
}

func (s *Screening) linkAuditorium(a *Auditorium) {
	s.auditorium = a
	a.screenings = append(a.screenings, s)
}

func (s *Screening) unlinkAuditorium() {
	if s.auditorium == nil {
		return
	}
	s.auditorium.screenings, _ = removeItem(s.auditorium.screenings, s)
	s.auditorium = nil
}

// Start moves a Planned screening to Running.
func (s *Screening) Start() error {
	if s.status != ScreeningPlanned {
		return domainerrors.InvalidOperationf("screening must be %s to start, is %s", ScreeningPlanned, s.status)
	}
	s.status = ScreeningRunning
	return nil
}

// Finish moves a Running screening to Finished.
func (s *Screening) Finish() error {
	if s.status != ScreeningRunning {
		return domainerrors.InvalidOperationf("screening must be %s to finish, is %s", ScreeningRunning, s.status)
	}
	s.status = ScreeningFinished
	return nil
}

// Cancel moves a Planned or Running screening to Canceled and refunds every
// purchased or scanned ticket, regardless of how close the start is.
func (s *Screening) Cancel() error {
	if s.status != ScreeningPlanned && s.status != ScreeningRunning {
		return domainerrors.InvalidOperationf("screening must be %s or %s to cancel, is %s",
			ScreeningPlanned, ScreeningRunning, s.status)
	}
	for _, code := range s.SeatCodes() {
		t := s.tickets[code]
		if t.status == TicketPurchased || t.status == TicketScanned {
			t.refundByOperator(ReasonScreeningCanceled)
		}
	}
	s.status = ScreeningCanceled
	return nil
}

// CreateTickets issues one Available ticket at price for every seat of the
// auditorium. It runs once per screening, only while Planned, and only when
// the auditorium has at least MinAuditoriumSeats seats.
func (s *Screening) CreateTickets(price decimal.Decimal) ([]*Ticket, error) {
	if len(s.tickets) > 0 {
		return nil, domainerrors.InvalidOperation("tickets already exist for this screening")
	}
	if s.status != ScreeningPlanned {
		return nil, domainerrors.InvalidOperationf("screening must be %s to issue tickets, is %s", ScreeningPlanned, s.status)
	}
	if s.auditorium == nil {
		return nil, domainerrors.InvalidOperation("screening has no auditorium")
	}
	if s.auditorium.SeatCount() < MinAuditoriumSeats {
		return nil, domainerrors.InvalidOperationf("auditorium %s must have at least %d seats to issue tickets",
			s.auditorium.name, MinAuditoriumSeats)
	}

	seats := s.auditorium.Seats()
	tickets := make([]*Ticket, 0, len(seats))
	for range seats {
		t, err := NewTicket(id.MustGenerate(id.Ticket), price)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	for i, seat := range seats {
		s.linkTicket(seat.code, tickets[i])
	}
	return slices.Clone(tickets), nil
}

// AddTicket registers t for seatCode. The seat must exist in the auditorium
// and be free, and t must not already be registered anywhere.
func (s *Screening) AddTicket(seatCode string, t *Ticket) error {
	if t == nil {
		return domainerrors.InvalidArgument("ticket is required")
	}
	if strings.TrimSpace(seatCode) == "" {
		return domainerrors.InvalidArgument("seat code is required")
	}
	if t.screening == s {
		return domainerrors.InvalidOperationf("ticket %s is already registered for seat %s", t.id, t.seatCode)
	}
	if t.screening != nil {
		return domainerrors.InvalidOperationf("ticket %s belongs to another screening", t.id)
	}
	if _, taken := s.tickets[seatCode]; taken {
		return domainerrors.InvalidOperationf("seat %s already has a ticket", seatCode)
	}
	if s.auditorium == nil {
		return domainerrors.InvalidOperation("screening has no auditorium")
	}
	if _, ok := s.auditorium.Seat(seatCode); !ok {
		return domainerrors.InvalidOperationf("auditorium %s has no seat %s", s.auditorium.name, seatCode)
	}

	s.linkTicket(seatCode, t)
	return nil
}

// RemoveTicket unregisters the ticket held for seatCode and clears its
// back-link. The seat must have a ticket.
func (s *Screening) RemoveTicket(seatCode string) error {
	t, ok := s.tickets[seatCode]
	if !ok {
		return domainerrors.InvalidOperationf("seat %s has no ticket", seatCode)
	}
	delete(s.tickets, seatCode)
	t.screening = nil
	t.seatCode = ""
	return nil
}

func (s *Screening) linkTicket(seatCode string, t *Ticket) {
	s.tickets[seatCode] = t
	t.screening = s
	t.seatCode = seatCode
}

// Ticket returns the ticket held for seatCode.
func (s *Screening) Ticket(seatCode string) (*Ticket, bool) {
	t, ok := s.tickets[seatCode]
	return t, ok
}

// Tickets returns a copy of the seat-code to ticket map.
func (s *Screening) Tickets() map[string]*Ticket {
	out := make(map[string]*Ticket, len(s.tickets))
	for code, t := range s.tickets {
		out[code] = t
	}
	return out
}

// SeatCodes returns the seat codes that have tickets, sorted.
func (s *Screening) SeatCodes() []string {
	codes := make([]string, 0, len(s.tickets))
	for code := range s.tickets {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// IsSeatAvailable reports whether the ticket for seatCode can still be sold.
// A seat without a ticket is an error.
func (s *Screening) IsSeatAvailable(seatCode string) (bool, error) {
	t, ok := s.tickets[seatCode]
	if !ok {
		return false, domainerrors.InvalidArgumentf("seat %s has no ticket in this screening", seatCode)
	}
	return t.status != TicketPurchased && t.status != TicketScanned, nil
}

// AvailableSeats returns, in auditorium order, the seats whose ticket is
// neither purchased nor scanned.
func (s *Screening) AvailableSeats() []*Seat {
	if s.auditorium == nil {
		return nil
	}
	var seats []*Seat
	for _, seat := range s.auditorium.seats {
		t, ok := s.tickets[seat.code]
		if !ok {
			continue
		}
		if t.status != TicketPurchased && t.status != TicketScanned {
			seats = append(seats, seat)
		}
	}
	return seats
}

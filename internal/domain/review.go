package domain

import (
	"strings"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// ReviewParams holds the attributes of a review.
type ReviewParams struct {
	ID      string `json:"id" validate:"notblank"`
	Name    string `json:"name" validate:"notblank"`
	Surname string `json:"surname" validate:"notblank"`
	Rate    int    `json:"rate" validate:"gte=1,lte=10"`
	Comment string `json:"comment,omitempty"`
}

// ReviewPage is a viewer's opinion of a movie, optionally tied to the ticket
// they watched it with.
type ReviewPage struct {
	id      string
	name    string
	surname string
	rate    int
	comment string
	movie   *Movie
	ticket  *Ticket
}

// NewReviewPage creates a review of movie.
func NewReviewPage(p ReviewParams, movie *Movie) (*ReviewPage, error) {
	if movie == nil {
		return nil, domainerrors.InvalidArgument("movie is required")
	}
	return RestoreReviewPage(p, movie)
}

// RestoreReviewPage rebuilds a persisted review. movie may be nil for a
// review that was removed from its movie.
func RestoreReviewPage(p ReviewParams, movie *Movie) (*ReviewPage, error) {
	p = trimReviewParams(p)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	r := &ReviewPage{id: p.ID}
	r.apply(p)
	if movie != nil {
		movie.reviews = append(movie.reviews, r)
		r.movie = movie
	}
	return r, nil
}

func trimReviewParams(p ReviewParams) ReviewParams {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Surname = strings.TrimSpace(p.Surname)
	p.Comment = strings.TrimSpace(p.Comment)
	return p
}

func (r *ReviewPage) apply(p ReviewParams) {
	r.name = p.Name
	r.surname = p.Surname
	r.rate = p.Rate
	r.comment = p.Comment
}

func (r *ReviewPage) ID() string      { return r.id }
func (r *ReviewPage) Name() string    { return r.name }
func (r *ReviewPage) Surname() string { return r.surname }
func (r *ReviewPage) Rate() int       { return r.rate }
func (r *ReviewPage) Comment() string { return r.comment }
func (r *ReviewPage) Movie() *Movie   { return r.movie }
func (r *ReviewPage) Ticket() *Ticket { return r.ticket }

// Params returns the review's attributes.
func (r *ReviewPage) Params() ReviewParams {
	return ReviewParams{ID: r.id, Name: r.name, Surname: r.surname, Rate: r.rate, Comment: r.comment}
}

// Update replaces the review's attributes. The ID in p is ignored.
func (r *ReviewPage) Update(p ReviewParams) error {
	p = trimReviewParams(p)
	p.ID = r.id
	if err := validate.Validate(p); err != nil {
		return err
	}
	r.apply(p)
	return nil
}

// SetMovie moves the review to m.
func (r *ReviewPage) SetMovie(m *Movie) error {
	if m == nil {
		return domainerrors.InvalidArgument("movie is required")
	}
	if r.movie == m {
		return nil
	}
	return m.AddReview(r)
}

// SetTicket links the review to t. See Ticket.AddReview.
func (r *ReviewPage) SetTicket(t *Ticket) error {
	if t == nil {
		return domainerrors.InvalidArgument("ticket is required")
	}
	return t.AddReview(r)
}

// UpdateTicket links the review to t in place of its current ticket.
func (r *ReviewPage) UpdateTicket(t *Ticket) error {
	if t == nil {
		return domainerrors.InvalidArgument("ticket is required")
	}
	return t.UpdateReview(r)
}

// RemoveTicket unlinks the review from its ticket, if any.
func (r *ReviewPage) RemoveTicket() {
	if r.ticket != nil {
		unlinkTicketReview(r.ticket)
	}
}

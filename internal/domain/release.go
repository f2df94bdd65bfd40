package domain

import (
	"strings"
	"time"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// NewReleaseParams holds the attributes of a first-run release.
type NewReleaseParams struct {
	ID           string    `json:"id" validate:"notblank"`
	Exclusive    bool      `json:"exclusive"`
	PremiereDate time.Time `json:"premiere_date" validate:"required"`
	Distributor  string    `json:"distributor" validate:"notblank"`
}

// NewRelease marks a movie's first theatrical run. It belongs to at most one
// movie, and a movie with a NewRelease cannot also have a Rerelease.
type NewRelease struct {
	id           string
	exclusive    bool
	premiereDate time.Time
	distributor  string
	movie        *Movie
}

// NewNewRelease creates a release not yet attached to a movie.
func NewNewRelease(p NewReleaseParams) (*NewRelease, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Distributor = strings.TrimSpace(p.Distributor)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	return &NewRelease{
		id:           p.ID,
		exclusive:    p.Exclusive,
		premiereDate: p.PremiereDate,
		distributor:  p.Distributor,
	}, nil
}

func (r *NewRelease) ID() string              { return r.id }
func (r *NewRelease) Exclusive() bool         { return r.exclusive }
func (r *NewRelease) PremiereDate() time.Time { return r.premiereDate }
func (r *NewRelease) Distributor() string     { return r.distributor }
func (r *NewRelease) Movie() *Movie           { return r.movie }

// SetMovie attaches the release to m. See Movie.SetNewRelease.
func (r *NewRelease) SetMovie(m *Movie) error {
	if m == nil {
		return domainerrors.InvalidArgument("movie is required")
	}
	return m.SetNewRelease(r)
}

// RemoveMovie detaches the release from its movie, if any.
func (r *NewRelease) RemoveMovie() {
	if r.movie != nil {
		r.movie.RemoveNewRelease()
	}
}

// RereleaseParams holds the attributes of a re-release.
type RereleaseParams struct {
	ID         string    `json:"id" validate:"notblank"`
	Reason     string    `json:"reason" validate:"notblank"`
	Date       time.Time `json:"date" validate:"required"`
	Remastered *bool     `json:"remastered,omitempty"`
}

// Rerelease marks a movie returning to cinemas. It belongs to at most one
// movie, and a movie with a Rerelease cannot also have a NewRelease.
type Rerelease struct {
	id         string
	reason     string
	date       time.Time
	remastered *bool
	movie      *Movie
}

// NewRerelease creates a re-release not yet attached to a movie.
func NewRerelease(p RereleaseParams) (*Rerelease, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Reason = strings.TrimSpace(p.Reason)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	r := &Rerelease{id: p.ID, reason: p.Reason, date: p.Date}
	if p.Remastered != nil {
		v := *p.Remastered
		r.remastered = &v
	}
	return r, nil
}

func (r *Rerelease) ID() string      { return r.id }
func (r *Rerelease) Reason() string  { return r.reason }
func (r *Rerelease) Date() time.Time { return r.date }
func (r *Rerelease) Movie() *Movie   { return r.movie }

// Remastered reports whether the re-release is remastered; ok is false when
// this is unknown.
func (r *Rerelease) Remastered() (remastered, ok bool) {
	if r.remastered == nil {
		return false, false
	}
	return *r.remastered, true
}

// SetMovie attaches the re-release to m. See Movie.SetRerelease.
func (r *Rerelease) SetMovie(m *Movie) error {
	if m == nil {
		return domainerrors.InvalidArgument("movie is required")
	}
	return m.SetRerelease(r)
}

// RemoveMovie detaches the re-release from its movie, if any.
func (r *Rerelease) RemoveMovie() {
	if r.movie != nil {
		r.movie.RemoveRerelease()
	}
}

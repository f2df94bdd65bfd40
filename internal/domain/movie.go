package domain

import (
	"slices"
	"strings"
	"time"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// MovieParams holds the scalar attributes of a movie.
type MovieParams struct {
	ID             string         `json:"id" validate:"notblank"`
	Title          string         `json:"title" validate:"notblank"`
	Country        string         `json:"country" validate:"notblank"`
	Description    string         `json:"description" validate:"notblank"`
	Director       string         `json:"director" validate:"notblank"`
	Length         int            `json:"length" validate:"gt=0"`
	AgeRestriction AgeRestriction `json:"age_restriction,omitempty" validate:"omitempty,enum"`
}

// Movie is a film in the programme. It is composed of exactly one cut type
// and one or more genre components, and has at most one of NewRelease and
// Rerelease attached.
type Movie struct {
	id             string
	title          string
	country        string
	description    string
	director       string
	length         int
	ageRestriction AgeRestriction

	cut    CutType
	genres []Genre

	newRelease *NewRelease
	rerelease  *Rerelease

	reviews    []*ReviewPage
	screenings []*Screening
}

// NewMovie creates a movie. A nil cut defaults to NormalCut; at least one
// genre is required and each genre kind may appear once.
func NewMovie(p MovieParams, cut CutType, genres ...Genre) (*Movie, error) {
	p = trimMovieParams(p)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	if isNilCut(cut) {
		cut = NormalCut{}
	}
	if err := checkGenres(genres); err != nil {
		return nil, err
	}

	m := &Movie{id: p.ID, cut: cut, genres: slices.Clone(genres)}
	m.apply(p)
	return m, nil
}

func trimMovieParams(p MovieParams) MovieParams {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	p.Country = strings.TrimSpace(p.Country)
	p.Description = strings.TrimSpace(p.Description)
	p.Director = strings.TrimSpace(p.Director)
	return p
}

func (m *Movie) apply(p MovieParams) {
	m.title = p.Title
	m.country = p.Country
	m.description = p.Description
	m.director = p.Director
	m.length = p.Length
	m.ageRestriction = p.AgeRestriction
}

func isNilCut(cut CutType) bool {
	switch c := cut.(type) {
	case nil:
		return true
	case *DirectorCut:
		return c == nil
	case *ExtendedCut:
		return c == nil
	}
	return false
}

func isNilGenre(g Genre) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *Comedy:
		return v == nil
	case *Horror:
		return v == nil
	case *Romance:
		return v == nil
	}
	return false
}

func checkGenres(genres []Genre) error {
	if len(genres) == 0 {
		return domainerrors.InvalidArgument("movie must have at least one genre")
	}
	seen := make(map[GenreKind]bool, len(genres))
	for _, g := range genres {
		if isNilGenre(g) {
			return domainerrors.InvalidArgument("genre must not be nil")
		}
		if seen[g.Kind()] {
			return domainerrors.InvalidArgumentf("genre %s given more than once", g.Kind())
		}
		seen[g.Kind()] = true
	}
	return nil
}

func (m *Movie) ID() string                     { return m.id }
func (m *Movie) Title() string                  { return m.title }
func (m *Movie) Country() string                { return m.country }
func (m *Movie) Description() string            { return m.description }
func (m *Movie) Director() string               { return m.director }
func (m *Movie) Length() int                    { return m.length }
func (m *Movie) AgeRestriction() AgeRestriction { return m.ageRestriction }
func (m *Movie) Cut() CutType                   { return m.cut }
func (m *Movie) CutName() string                { return m.cut.Name() }
func (m *Movie) NewRelease() *NewRelease        { return m.newRelease }
func (m *Movie) Rerelease() *Rerelease          { return m.rerelease }

// Params returns the movie's current scalar attributes.
func (m *Movie) Params() MovieParams {
	return MovieParams{
		ID:             m.id,
		Title:          m.title,
		Country:        m.country,
		Description:    m.description,
		Director:       m.director,
		Length:         m.length,
		AgeRestriction: m.ageRestriction,
	}
}

// Update replaces the scalar attributes. The ID in p is ignored.
func (m *Movie) Update(p MovieParams) error {
	p = trimMovieParams(p)
	p.ID = m.id
	if err := validate.Validate(p); err != nil {
		return err
	}
	m.apply(p)
	return nil
}

// TotalRuntime is the length plus whatever the cut adds, in minutes.
func (m *Movie) TotalRuntime() int {
	return m.length + m.cut.ExtraMinutes()
}

// Runtime is TotalRuntime as a duration.
func (m *Movie) Runtime() time.Duration {
	return time.Duration(m.TotalRuntime()) * time.Minute
}

// SetCut switches the movie to another cut.
func (m *Movie) SetCut(cut CutType) error {
	if isNilCut(cut) {
		return domainerrors.InvalidArgument("cut type is required")
	}
	m.cut = cut
	return nil
}

// Genres returns the movie's genre components.
func (m *Movie) Genres() []Genre {
	return slices.Clone(m.genres)
}

// GenreKinds returns the kinds of the movie's genres in the order held.
func (m *Movie) GenreKinds() []GenreKind {
	kinds := make([]GenreKind, len(m.genres))
	for i, g := range m.genres {
		kinds[i] = g.Kind()
	}
	return kinds
}

// HasGenre reports whether the movie holds a component of kind k.
func (m *Movie) HasGenre(k GenreKind) bool {
	return m.genre(k) != nil
}

func (m *Movie) genre(k GenreKind) Genre {
	for _, g := range m.genres {
		if g.Kind() == k {
			return g
		}
	}
	return nil
}

// Comedy returns the comedy component, if any.
func (m *Movie) Comedy() (*Comedy, bool) {
	c, ok := m.genre(GenreComedy).(*Comedy)
	return c, ok
}

// Horror returns the horror component, if any.
func (m *Movie) Horror() (*Horror, bool) {
	h, ok := m.genre(GenreHorror).(*Horror)
	return h, ok
}

// Romance returns the romance component, if any.
func (m *Movie) Romance() (*Romance, bool) {
	r, ok := m.genre(GenreRomance).(*Romance)
	return r, ok
}

// SetGenres replaces every genre component.
func (m *Movie) SetGenres(genres ...Genre) error {
	if err := checkGenres(genres); err != nil {
		return err
	}
	m.genres = slices.Clone(genres)
	return nil
}

// AddGenre adds a component of a kind the movie does not hold yet.
func (m *Movie) AddGenre(g Genre) error {
	if isNilGenre(g) {
		return domainerrors.InvalidArgument("genre is required")
	}
	if m.HasGenre(g.Kind()) {
		return domainerrors.InvalidOperationf("movie %s is already %s", m.title, g.Kind())
	}
	m.genres = append(m.genres, g)
	return nil
}

// RemoveGenre drops the component of kind k. The last genre cannot be
// removed; kinds the movie does not hold are ignored.
func (m *Movie) RemoveGenre(k GenreKind) error {
	g := m.genre(k)
	if g == nil {
		return nil
	}
	if len(m.genres) == 1 {
		return domainerrors.InvalidOperation("movie must keep at least one genre")
	}
	m.genres, _ = removeItem(m.genres, g)
	return nil
}

// SetNewRelease attaches r. Fails when the movie already has a Rerelease or
// a different NewRelease, or when r belongs to another movie.
func (m *Movie) SetNewRelease(r *NewRelease) error {
	if r == nil {
		return domainerrors.InvalidArgument("new release is required")
	}
	if m.newRelease == r {
		return nil
	}
	if m.rerelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a rerelease", m.title)
	}
	if m.newRelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a new release", m.title)
	}
	if r.movie != nil {
		return domainerrors.InvalidOperationf("new release %s already belongs to movie %s", r.id, r.movie.title)
	}

	m.newRelease = r
	r.movie = m
	return nil
}

// UpdateNewRelease replaces the current NewRelease with r, detaching the old
// one. A movie with a Rerelease cannot take a NewRelease.
func (m *Movie) UpdateNewRelease(r *NewRelease) error {
	if r == nil {
		return domainerrors.InvalidArgument("new release is required")
	}
	if m.newRelease == r {
		return nil
	}
	if m.rerelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a rerelease", m.title)
	}
	if r.movie != nil {
		return domainerrors.InvalidOperationf("new release %s already belongs to movie %s", r.id, r.movie.title)
	}

	m.RemoveNewRelease()
	m.newRelease = r
	r.movie = m
	return nil
}

// RemoveNewRelease detaches the NewRelease, if any.
func (m *Movie) RemoveNewRelease() {
	if m.newRelease == nil {
		return
	}
	m.newRelease.movie = nil
	m.newRelease = nil
}

// SetRerelease attaches r. Fails when the movie already has a NewRelease or
// a different Rerelease, or when r belongs to another movie.
func (m *Movie) SetRerelease(r *Rerelease) error {
	if r == nil {
		return domainerrors.InvalidArgument("rerelease is required")
	}
	if m.rerelease == r {
		return nil
	}
	if m.newRelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a new release", m.title)
	}
	if m.rerelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a rerelease", m.title)
	}
	if r.movie != nil {
		return domainerrors.InvalidOperationf("rerelease %s already belongs to movie %s", r.id, r.movie.title)
	}

	m.rerelease = r
	r.movie = m
	return nil
}

// UpdateRerelease replaces the current Rerelease with r, detaching the old
// one. A movie with a NewRelease cannot take a Rerelease.
func (m *Movie) UpdateRerelease(r *Rerelease) error {
	if r == nil {
		return domainerrors.InvalidArgument("rerelease is required")
	}
	if m.rerelease == r {
		return nil
	}
	if m.newRelease != nil {
		return domainerrors.InvalidOperationf("movie %s already has a new release", m.title)
	}
	if r.movie != nil {
		return domainerrors.InvalidOperationf("rerelease %s already belongs to movie %s", r.id, r.movie.title)
	}

	m.RemoveRerelease()
	m.rerelease = r
	r.movie = m
	return nil
}

// RemoveRerelease detaches the Rerelease, if any.
func (m *Movie) RemoveRerelease() {
	if m.rerelease == nil {
		return
	}
	m.rerelease.movie = nil
	m.rerelease = nil
}

// Reviews returns the reviews written for the movie.
func (m *Movie) Reviews() []*ReviewPage {
	return slices.Clone(m.reviews)
}

// AddReview attaches r, moving it away from any other movie. Adding a
// review the movie already has is an error.
func (m *Movie) AddReview(r *ReviewPage) error {
	if r == nil {
		return domainerrors.InvalidArgument("review is required")
	}
	if r.movie == m {
		return domainerrors.InvalidOperationf("review %s is already linked to movie %s", r.id, m.title)
	}

	if r.movie != nil {
		r.movie.reviews, _ = removeItem(r.movie.reviews, r)
	}
	m.reviews = append(m.reviews, r)
	r.movie = m
	return nil
}

// RemoveReview detaches r, leaving it without a movie. The review must be
// attached to this movie.
func (m *Movie) RemoveReview(r *ReviewPage) error {
	if r == nil {
		return domainerrors.InvalidArgument("review is required")
	}
	if r.movie != m {
		return domainerrors.InvalidOperationf("review %s is not linked to movie %s", r.id, m.title)
	}

	m.reviews, _ = removeItem(m.reviews, r)
	r.movie = nil
	return nil
}

// AverageRate is the mean rate of the movie's reviews; ok is false when it
// has none.
func (m *Movie) AverageRate() (avg float64, ok bool) {
	if len(m.reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range m.reviews {
		sum += r.rate
	}
	return float64(sum) / float64(len(m.reviews)), true
}

// Screenings returns the movie's screenings.
func (m *Movie) Screenings() []*Screening {
	return slices.Clone(m.screenings)
}

// AddScreening moves s to this movie. See Screening.SetMovie.
func (m *Movie) AddScreening(s *Screening) error {
	if s == nil {
		return domainerrors.InvalidArgument("screening is required")
	}
	return s.SetMovie(m)
}

// RemoveScreening detaches s from both this movie and its auditorium.
// Screenings of other movies are ignored.
func (m *Movie) RemoveScreening(s *Screening) {
	if s == nil || s.movie != m {
		return
	}
	s.Detach()
}

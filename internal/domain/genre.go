package domain

import (
	"slices"
	"strings"
)

// GenreKind tags the genre components.
type GenreKind string

const (
	GenreComedy  GenreKind = "Comedy"
	GenreHorror  GenreKind = "Horror"
	GenreRomance GenreKind = "Romance"
)

func (k GenreKind) Valid() bool {
	switch k {
	case GenreComedy, GenreHorror, GenreRomance:
		return true
	}
	return false
}

// Genre is one genre component of a movie. A movie holds one or more,
// at most one of each kind.
type Genre interface {
	Kind() GenreKind
	genre()
}

// Comedy describes the comedic side of a movie.
type Comedy struct {
	humorType string
}

// NewComedy creates a comedy component; humorType must not be blank.
func NewComedy(humorType string) (*Comedy, error) {
	humorType = strings.TrimSpace(humorType)
	if err := validate.Var("humor_type", humorType, "notblank"); err != nil {
		return nil, err
	}
	return &Comedy{humorType: humorType}, nil
}

func (*Comedy) Kind() GenreKind     { return GenreComedy }
func (c *Comedy) HumorType() string { return c.humorType }
func (*Comedy) genre()              {}

// HorrorParams holds the attributes of a horror component.
type HorrorParams struct {
	BrutalityRating int      `json:"brutality_rating" validate:"gte=0,lte=10"`
	JumpScares      []string `json:"jump_scares,omitempty" validate:"dive,notblank"`
}

// Horror describes the horror side of a movie.
type Horror struct {
	p HorrorParams
}

// NewHorror validates p and creates the component.
func NewHorror(p HorrorParams) (*Horror, error) {
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	p.JumpScares = trimAll(p.JumpScares)
	return &Horror{p: p}, nil
}

func (*Horror) Kind() GenreKind        { return GenreHorror }
func (h *Horror) BrutalityRating() int { return h.p.BrutalityRating }
func (h *Horror) JumpScares() []string { return slices.Clone(h.p.JumpScares) }
func (*Horror) genre()                 {}

// RomanceParams holds the attributes of a romance component.
type RomanceParams struct {
	Intensity           int      `json:"intensity" validate:"gte=1,lte=5"`
	InappropriateScenes []string `json:"inappropriate_scenes,omitempty" validate:"dive,notblank"`
}

// Romance describes the romantic side of a movie.
type Romance struct {
	p RomanceParams
}

// NewRomance validates p and creates the component.
func NewRomance(p RomanceParams) (*Romance, error) {
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	p.InappropriateScenes = trimAll(p.InappropriateScenes)
	return &Romance{p: p}, nil
}

func (*Romance) Kind() GenreKind                 { return GenreRomance }
func (r *Romance) Intensity() int                { return r.p.Intensity }
func (r *Romance) InappropriateScenes() []string { return slices.Clone(r.p.InappropriateScenes) }
func (*Romance) genre()                          {}

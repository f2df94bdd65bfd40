package domain

import (
	"slices"
	"strings"
)

// CutKind tags the cut-type variants.
type CutKind string

const (
	CutNormal   CutKind = "Normal"
	CutDirector CutKind = "Director"
	CutExtended CutKind = "Extended"
)

func (k CutKind) Valid() bool {
	switch k {
	case CutNormal, CutDirector, CutExtended:
		return true
	}
	return false
}

// CutType is the edit of a movie being shown. Exactly one variant applies to
// every movie: NormalCut, *DirectorCut or *ExtendedCut.
type CutType interface {
	Kind() CutKind
	Name() string
	ExtraMinutes() int
	cutType()
}

// NormalCut is the theatrical edit. It adds no runtime.
type NormalCut struct{}

func (NormalCut) Kind() CutKind     { return CutNormal }
func (NormalCut) Name() string      { return "Normal Cut" }
func (NormalCut) ExtraMinutes() int { return 0 }
func (NormalCut) cutType()          {}

// DirectorCutParams holds the attributes of a director's cut.
type DirectorCutParams struct {
	ExtraMinutes       int    `json:"extra_minutes" validate:"gte=1"`
	ChangesDescription string `json:"changes_description" validate:"notblank"`
	AlternativeEnding  string `json:"alternative_ending,omitempty" validate:"omitempty,notblank"`
}

// DirectorCut is the director's preferred edit.
type DirectorCut struct {
	p DirectorCutParams
}

// NewDirectorCut validates p and creates the variant.
func NewDirectorCut(p DirectorCutParams) (*DirectorCut, error) {
	p.ChangesDescription = strings.TrimSpace(p.ChangesDescription)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	p.AlternativeEnding = strings.TrimSpace(p.AlternativeEnding)
	return &DirectorCut{p: p}, nil
}

func (*DirectorCut) Kind() CutKind                { return CutDirector }
func (*DirectorCut) Name() string                 { return "Director Cut" }
func (c *DirectorCut) ExtraMinutes() int          { return c.p.ExtraMinutes }
func (c *DirectorCut) ChangesDescription() string { return c.p.ChangesDescription }
func (c *DirectorCut) AlternativeEnding() string  { return c.p.AlternativeEnding }
func (c *DirectorCut) Params() DirectorCutParams  { return c.p }
func (*DirectorCut) cutType()                     {}

// ExtendedCutParams holds the attributes of an extended cut.
type ExtendedCutParams struct {
	ExtraMinutes           int      `json:"extra_minutes" validate:"gte=1"`
	ExtraScenesDescription string   `json:"extra_scenes_description" validate:"notblank"`
	AddedScenes            []string `json:"added_scenes" validate:"dive,notblank"`
}

// ExtendedCut is an edit with scenes restored or added.
type ExtendedCut struct {
	p ExtendedCutParams
}

// NewExtendedCut validates p and creates the variant.
func NewExtendedCut(p ExtendedCutParams) (*ExtendedCut, error) {
	p.ExtraScenesDescription = strings.TrimSpace(p.ExtraScenesDescription)
	if err := validate.Validate(p); err != nil {
		return nil, err
	}
	p.AddedScenes = trimAll(p.AddedScenes)
	return &ExtendedCut{p: p}, nil
}

func (*ExtendedCut) Kind() CutKind                    { return CutExtended }
func (*ExtendedCut) Name() string                     { return "Extended Cut" }
func (c *ExtendedCut) ExtraMinutes() int              { return c.p.ExtraMinutes }
func (c *ExtendedCut) ExtraScenesDescription() string { return c.p.ExtraScenesDescription }
func (c *ExtendedCut) AddedScenes() []string          { return slices.Clone(c.p.AddedScenes) }
func (*ExtendedCut) cutType()                         {}

// Params returns a copy of the variant's attributes.
func (c *ExtendedCut) Params() ExtendedCutParams {
	p := c.p
	p.AddedScenes = slices.Clone(p.AddedScenes)
	return p
}

func trimAll(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

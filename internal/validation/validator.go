// Package validation checks field invariants with go-playground/validator
// and reports violations as invalid-argument errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

var seatCodePattern = regexp.MustCompile(`^[0-9]{2}[A-Z]$`)

// Enum is implemented by the domain's enumerated string types.
type Enum interface {
	Valid() bool
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock notfuture compares against. It defaults to
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a validator with the cinema-specific tags registered:
//
//	notblank  string with at least one non-space character
//	seatcode  two digits followed by an uppercase letter ("07A")
//	notfuture time.Time not after the validator's clock
//	enum      value implementing Enum whose Valid() is true
//
// decimal.Decimal values are compared as float64, so numeric tags such as
// gt=0 apply to prices and salaries.
func New(opts ...Option) *Validator {
	val := &Validator{v: validator.New(), now: time.Now}
	for _, opt := range opts {
		opt(val)
	}
	v := val.v

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "seatcode", func(fl validator.FieldLevel) bool {
		return seatCodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.IsZero() && !t.After(val.now())
	})
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.Valid()
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return val
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate validates a struct and returns an invalid-argument error
// listing every failing field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err, "")
	}
	return nil
}

// Var validates a single value against tag, reporting failures under name.
func (v *Validator) Var(name string, value any, tag string) error {
	if err := v.v.Var(value, tag); err != nil {
		return v.formatError(err, name)
	}
	return nil
}

func (v *Validator) formatError(err error, name string) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.Wrap(err, domainerrors.CodeInvalidArgument, "validation failed")
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		if name != "" {
			field = name
		}
		fieldErrors[field] = friendlyMessage(e)
	}

	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+fieldErrors[field])
	}

	return domainerrors.InvalidArgumentWithDetails("validation failed: "+strings.Join(parts, "; "), fieldErrors)
}

//nolint:gocyclo // one case per tag
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "contains":
		return "must contain " + e.Param()
	case "seatcode":
		return "must be two digits followed by an uppercase letter"
	case "notfuture":
		return "must not be in the future"
	case "enum":
		return fmt.Sprintf("has unknown value %v", e.Value())
	case "min":
		return "must have at least " + e.Param() + " entries"
	case "dive":
		return "contains an invalid entry"
	case "gtfield":
		return "must be after " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	default:
		return "is invalid"
	}
}

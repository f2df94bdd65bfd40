// Package domain is the cinema entity model: cinemas, auditoriums, seats,
// movies, screenings, tickets, employees and reviews, together with the
// rules that keep their associations consistent.
//
// Every association is bidirectional. Mutating one side updates the other,
// operations validate before touching either side, and collection getters
// return copies.
package domain

import (
	"slices"
	"time"

	"github.com/marczakjulia/BYT-PROJECT/internal/validation"
)

// MinAuditoriumSeats is the seat floor an auditorium must hold before tickets
// can be issued, and below which seats can no longer be removed.
const MinAuditoriumSeats = 12

// now is the wall clock used for past-date checks. Tests replace it.
var now = time.Now

var validate = validation.New(validation.WithClock(func() time.Time { return now() }))

// removeItem deletes the first occurrence of item from s in place.
func removeItem[T comparable](s []T, item T) ([]T, bool) {
	i := slices.Index(s, item)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

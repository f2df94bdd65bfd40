package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate(Ticket)
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	prefixes := []Prefix{Cinema, Auditorium, Seat, Movie, NewRelease, Rerelease, Screening, Ticket, Review, Employee}

	for _, prefix := range prefixes {
		t.Run(string(prefix), func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, string(prefix)+"-"))
			assert.Len(t, id, len(prefix)+1+size)
			assert.Equal(t, prefix, PrefixOf(id))

			body := strings.TrimPrefix(id, string(prefix)+"-")
			assert.NotContains(t, body, "-")
		})
	}
}

func TestPrefixOf_NoPrefix(t *testing.T) {
	assert.Equal(t, Prefix(""), PrefixOf("plain"))
}

func TestMustGenerate_Format(t *testing.T) {
	id := MustGenerate(Screening)

	assert.True(t, strings.HasPrefix(id, "scr-"))
	assert.Equal(t, len("scr")+1+size, len(id))
}

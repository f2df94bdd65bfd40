// Package id generates the prefixed identifiers carried by every entity.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefix identifies the entity type an ID belongs to.
type Prefix string

// Entity prefixes.
const (
	Cinema     Prefix = "cin"
	Auditorium Prefix = "aud"
	Seat       Prefix = "seat"
	Movie      Prefix = "mov"
	NewRelease Prefix = "nr"
	Rerelease  Prefix = "rr"
	Screening  Prefix = "scr"
	Ticket     Prefix = "tkt"
	Review     Prefix = "rev"
	Employee   Prefix = "emp"
)

// alphabet omits '-' so the first hyphen always separates the prefix.
const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_"
	size     = 16
)

// Generate creates an ID of the form prefix-nanoid, e.g. "tkt-4f9K2hQ_x0bLmZ7a".
func Generate(prefix Prefix) (string, error) {
	n, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return string(prefix) + "-" + n, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix Prefix) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// PrefixOf returns the prefix part of id, or "" when id has none.
func PrefixOf(id string) Prefix {
	p, _, ok := strings.Cut(id, "-")
	if !ok {
		return ""
	}
	return Prefix(p)
}

package backup

import (
	"strings"
	"time"

	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// FormatVersion is the document format version. Increment major on breaking changes.
const FormatVersion = "1.0"

// Manifest describes document contents and metadata.
type Manifest struct {
	Version   string       `xml:"version,attr"`
	CreatedAt time.Time    `xml:"createdAt,attr"`
	Counts    store.Counts `xml:"counts"`

	// sha256 of the canonical encoding of the entities section, hex.
	Checksum string `xml:"checksum"`
}

func supportedVersion(v string) bool {
	major, _, _ := strings.Cut(FormatVersion, ".")
	got, _, _ := strings.Cut(v, ".")
	return got != "" && got == major
}

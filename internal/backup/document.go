package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

// Date layouts used in the document.
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Document is the root element of a saved graph.
type Document struct {
	XMLName  xml.Name `xml:"cinemaGraph"`
	Manifest Manifest `xml:"manifest"`
	Entities Entities `xml:"entities"`
}

// Entities lists every entity in dependency order. Associations are carried
// as ID attributes and resolved on import.
type Entities struct {
	Cinemas     []cinemaXML     `xml:"cinemas>cinema"`
	Auditoriums []auditoriumXML `xml:"auditoriums>auditorium"`
	Seats       []seatXML       `xml:"seats>seat"`
	Movies      []movieXML      `xml:"movies>movie"`
	NewReleases []newReleaseXML `xml:"newReleases>newRelease"`
	Rereleases  []rereleaseXML  `xml:"rereleases>rerelease"`
	Screenings  []screeningXML  `xml:"screenings>screening"`
	Tickets     []ticketXML     `xml:"tickets>ticket"`
	Reviews     []reviewXML     `xml:"reviews>review"`
	Employees   []employeeXML   `xml:"employees>employee"`
}

type cinemaXML struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"name"`
	Address      string `xml:"address"`
	Phone        string `xml:"phone"`
	Email        string `xml:"email"`
	OpeningHours string `xml:"openingHours"`
}

type auditoriumXML struct {
	ID          string `xml:"id,attr"`
	Cinema      string `xml:"cinema,attr,omitempty"`
	Name        string `xml:"name"`
	ScreenType  string `xml:"screenType"`
	SoundSystem string `xml:"soundSystem"`
}

type seatXML struct {
	ID         string `xml:"id,attr"`
	Auditorium string `xml:"auditorium,attr,omitempty"`
	Code       string `xml:"code,attr"`
	Type       string `xml:"type,attr"`
}

type movieXML struct {
	ID             string    `xml:"id,attr"`
	Title          string    `xml:"title"`
	Country        string    `xml:"country"`
	Description    string    `xml:"description"`
	Director       string    `xml:"director"`
	Length         int       `xml:"length"`
	AgeRestriction string    `xml:"ageRestriction,omitempty"`
	Cut            cutXML    `xml:"cut"`
	Genres         genresXML `xml:"genres"`
}

type cutXML struct {
	Kind               string   `xml:"kind,attr"`
	ExtraMinutes       int      `xml:"extraMinutes,attr,omitempty"`
	ChangesDescription string   `xml:"changes,omitempty"`
	AlternativeEnding  string   `xml:"alternativeEnding,omitempty"`
	ExtraScenes        string   `xml:"extraScenes,omitempty"`
	AddedScenes        []string `xml:"addedScene"`
}

type genresXML struct {
	Comedy  *comedyXML  `xml:"comedy"`
	Horror  *horrorXML  `xml:"horror"`
	Romance *romanceXML `xml:"romance"`
}

type comedyXML struct {
	HumorType string `xml:"humorType,attr"`
}

type horrorXML struct {
	BrutalityRating int      `xml:"brutalityRating,attr"`
	JumpScares      []string `xml:"jumpScare"`
}

type romanceXML struct {
	Intensity           int      `xml:"intensity,attr"`
	InappropriateScenes []string `xml:"inappropriateScene"`
}

type newReleaseXML struct {
	ID           string `xml:"id,attr"`
	Movie        string `xml:"movie,attr,omitempty"`
	Exclusive    bool   `xml:"exclusive,attr"`
	PremiereDate string `xml:"premiereDate,attr"`
	Distributor  string `xml:"distributor"`
}

type rereleaseXML struct {
	ID         string `xml:"id,attr"`
	Movie      string `xml:"movie,attr,omitempty"`
	Date       string `xml:"date,attr"`
	Remastered *bool  `xml:"remastered,attr,omitempty"`
	Reason     string `xml:"reason"`
}

type screeningXML struct {
	ID         string `xml:"id,attr"`
	Movie      string `xml:"movie,attr"`
	Auditorium string `xml:"auditorium,attr"`
	Status     string `xml:"status,attr"`
	Date       string `xml:"date,attr"`
	Start      string `xml:"start,attr"`
	Format     string `xml:"format,attr"`
	Version    string `xml:"version,attr"`
}

type ticketXML struct {
	ID        string `xml:"id,attr"`
	Screening string `xml:"screening,attr,omitempty"`
	Seat      string `xml:"seat,attr,omitempty"`
	Status    string `xml:"status,attr"`
	Payment   string `xml:"payment,attr"`
	Price     string `xml:"price,attr"`
	Reason    string `xml:"reason,omitempty"`
}

type reviewXML struct {
	ID      string `xml:"id,attr"`
	Movie   string `xml:"movie,attr,omitempty"`
	Ticket  string `xml:"ticket,attr,omitempty"`
	Rate    int    `xml:"rate,attr"`
	Name    string `xml:"name"`
	Surname string `xml:"surname"`
	Comment string `xml:"comment,omitempty"`
}

type employeeXML struct {
	ID          string      `xml:"id,attr"`
	Status      string      `xml:"status,attr"`
	Name        string      `xml:"name"`
	Surname     string      `xml:"surname"`
	PESEL       string      `xml:"pesel"`
	Email       string      `xml:"email"`
	DateOfBirth string      `xml:"dateOfBirth"`
	HireDate    string      `xml:"hireDate"`
	Address     addressXML  `xml:"address"`
	Cinemas     []refXML    `xml:"cinemas>cinema"`
	Worker      *workerXML  `xml:"worker"`
	Manager     *managerXML `xml:"manager"`
}

type addressXML struct {
	Street         string `xml:"street"`
	BuildingNumber string `xml:"buildingNumber"`
	City           string `xml:"city"`
	PostalCode     string `xml:"postalCode"`
	Country        string `xml:"country"`
}

type refXML struct {
	Ref string `xml:"ref,attr"`
}

type workerXML struct {
	Shift       string `xml:"shift,attr"`
	WorkType    string `xml:"workType,attr"`
	HoursWorked string `xml:"hoursWorked,attr"`
	HourlyRate  string `xml:"hourlyRate,attr"`
}

type managerXML struct {
	Department      string `xml:"department,attr"`
	BaseSalary      string `xml:"baseSalary,attr"`
	BonusPercentage string `xml:"bonusPercentage,attr"`
	Supervisor      string `xml:"supervisor,attr,omitempty"`
}

// counts returns the number of entries per entity type.
func (e *Entities) counts() store.Counts {
	return store.Counts{
		Cinemas:     len(e.Cinemas),
		Auditoriums: len(e.Auditoriums),
		Seats:       len(e.Seats),
		Movies:      len(e.Movies),
		NewReleases: len(e.NewReleases),
		Rereleases:  len(e.Rereleases),
		Screenings:  len(e.Screenings),
		Tickets:     len(e.Tickets),
		Reviews:     len(e.Reviews),
		Employees:   len(e.Employees),
	}
}

// checksum hashes the canonical encoding of the entities, so the value does
// not depend on the indentation of the file it was read from.
func (e *Entities) checksum() (string, error) {
	data, err := xml.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode entities: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Encode writes the document as indented XML with a header.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodeDocument parses data and checks its manifest: version, per-type
// counts and checksum.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !supportedVersion(doc.Manifest.Version) {
		return nil, fmt.Errorf("%w: %q", ErrVersionMismatch, doc.Manifest.Version)
	}

	if got, want := doc.Entities.counts(), doc.Manifest.Counts; got != want {
		return nil, fmt.Errorf("%w: manifest counts %+v, document holds %+v", ErrCorruptedDocument, want, got)
	}

	sum, err := doc.Entities.checksum()
	if err != nil {
		return nil, err
	}
	if sum != doc.Manifest.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptedDocument)
	}

	return &doc, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(field, s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, field, err)
	}
	return t, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func parseClock(field, s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, field, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

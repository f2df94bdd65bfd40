package pass

import (
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/id"
)

const (
	passIssuer   = "cinema-box-office"
	passAudience = "cinema-gate"

	// DefaultSize is the PNG edge length in pixels.
	DefaultSize = 256
)

// Encoder issues and reads ticket passes.
type Encoder struct {
	key   paseto.V4SymmetricKey
	grace time.Duration
	now   func() time.Time
}

// NewEncoder creates an encoder for a 32-byte key. Passes stay valid until
// the screening ends plus grace.
func NewEncoder(key []byte, grace time.Duration) (*Encoder, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("pass key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &Encoder{key: k, grace: grace, now: time.Now}, nil
}

// Payload returns the token encoded in a ticket's QR code. Only purchased
// tickets of a scheduled screening get one.
func (e *Encoder) Payload(t *domain.Ticket) (string, error) {
	if t == nil {
		return "", domainerrors.InvalidArgument("ticket is required")
	}
	if t.Status() != domain.TicketPurchased {
		return "", domainerrors.InvalidOperationf("ticket %s is %s, only purchased tickets get a pass", t.ID(), t.Status())
	}
	s := t.Screening()
	if s == nil || s.Movie() == nil || s.Auditorium() == nil {
		return "", domainerrors.InvalidOperationf("ticket %s is not tied to a scheduled screening", t.ID())
	}

	now := e.now()
	token := paseto.NewToken()

	token.SetIssuer(passIssuer)
	token.SetSubject(t.ID())
	token.SetAudience(passAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(s.EndsAt().Add(e.grace))

	tokenID, err := id.Generate("pass")
	if err != nil {
		return "", fmt.Errorf("generate pass ID: %w", err)
	}
	token.SetJti(tokenID)

	token.SetString("ticket_id", t.ID())
	token.SetString("screening_id", s.ID())
	token.SetString("movie", s.Movie().Title())
	token.SetString("auditorium", s.Auditorium().Name())
	token.SetString("seat", t.SeatCode())
	token.SetTime("starts_at", s.StartsAt())

	return token.V4Encrypt(e.key, nil), nil
}

// PNG renders the ticket's pass as a QR code image of size×size pixels.
func (e *Encoder) PNG(t *domain.Ticket, size int) ([]byte, error) {
	payload, err := e.Payload(t)
	if err != nil {
		return nil, err
	}
	return Render(payload, size)
}

// Render encodes payload as a QR code PNG. A non-positive size uses
// DefaultSize.
func Render(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// ParsePayload decrypts and checks a scanned pass. Forged, foreign and
// expired passes are rejected as invalid arguments.
func (e *Encoder) ParsePayload(payload string) (*Claims, error) {
	parser := paseto.NewParser()

	parser.AddRule(paseto.ForAudience(passAudience))
	parser.AddRule(paseto.IssuedBy(passIssuer))
	parser.AddRule(paseto.ValidAt(e.now()))

	token, err := parser.ParseV4Local(e.key, payload, nil)
	if err != nil {
		return nil, domainerrors.InvalidArgument("invalid pass").WithCause(err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse pass claims: %w", err)
	}

	return &claims, nil
}

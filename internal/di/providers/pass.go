package providers

import (
	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/pass"
)

// PassKey wraps the ticket pass key bytes.
type PassKey []byte

// ProvidePassKey loads or generates the ticket pass key.
func ProvidePassKey(i do.Injector) (PassKey, error) {
	cfg := do.MustInvoke[*config.Config](i)

	key, err := pass.LoadOrGenerateKey(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	return PassKey(key), nil
}

// ProvidePassEncoder provides the PASETO ticket pass encoder.
func ProvidePassEncoder(i do.Injector) (*pass.Encoder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[PassKey](i)

	return pass.NewEncoder([]byte(key), cfg.Tickets.PassGrace)
}

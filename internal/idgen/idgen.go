package idgen

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator produces record identifiers and human-readable business codes.
type Generator interface {
	NewID(prefix string) string
	NewCode(prefix string, now time.Time) string
}

type uuidGenerator struct{}

// New returns a uuid backed generator.
func New() Generator {
	return uuidGenerator{}
}

// NewID returns "<prefix>-<uuid v4>".
func (uuidGenerator) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// codeSuffixLen hex chars come from the random leading bits of a v4 uuid.
const codeSuffixLen = 12

// NewCode returns "<prefix><YYMMDD><12 hex chars>", e.g. TXN241003A1B2C3D4E5F6.
func (uuidGenerator) NewCode(prefix string, now time.Time) string {
	u := uuid.New()
	suffix := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:codeSuffixLen])
	return prefix + now.UTC().Format("060102") + suffix
}

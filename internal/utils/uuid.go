package utils

import "github.com/google/uuid"

const maxTraceIDLength = 64

// UUIDGenerator produces time-ordered identifiers used for trace IDs and
// blob versions.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4 UUID when
// the v7 generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// TraceIDOrNew keeps a caller-supplied trace ID if it is 1 to 64 characters
// of [A-Za-z0-9._-] and generates a new one otherwise. Trace IDs end up in
// log lines and response headers, so anything else is replaced.
func (g *UUIDGenerator) TraceIDOrNew(candidate string) string {
	if validTraceID(candidate) {
		return candidate
	}
	return g.Generate()
}

func validTraceID(s string) bool {
	if s == "" || len(s) > maxTraceIDLength {
		return false
	}
	for _, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

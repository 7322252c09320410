package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_GenerateV7(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestUUIDGenerator_TraceIDOrNew(t *testing.T) {
	g := NewUUIDGenerator()

	tests := []struct {
		name      string
		candidate string
		keep      bool
	}{
		{name: "uuid", candidate: "0192f3a4-7b1c-7def-8a00-0123456789ab", keep: true},
		{name: "custom", candidate: "device-42_run.7", keep: true},
		{name: "max length", candidate: strings.Repeat("a", 64), keep: true},
		{name: "empty", candidate: ""},
		{name: "too long", candidate: strings.Repeat("a", 65)},
		{name: "spaces", candidate: "trace id"},
		{name: "newline injection", candidate: "abc\r\nX-Evil: 1"},
		{name: "non ascii", candidate: "трасса"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.TraceIDOrNew(tt.candidate)
			if tt.keep {
				assert.Equal(t, tt.candidate, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

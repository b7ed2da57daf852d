package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/donk/internal/core/domain"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		raw  string
		kind domain.LineKind
		text string
	}{
		{raw: "echo hi", kind: domain.LinePlain, text: "echo hi"},
		{raw: "", kind: domain.LinePlain, text: ""},
		{raw: "@echo hi", kind: domain.LineQuiet, text: "echo hi"},
		{raw: "@", kind: domain.LineQuiet, text: ""},
		{raw: "+build", kind: domain.LineNamedRef, text: "build"},
		{raw: "+build  ", kind: domain.LineNamedRef, text: "build"},
		{raw: "<setup", kind: domain.LineInlineRef, text: "setup"},
		{raw: " +build", kind: domain.LinePlain, text: " +build"},
		{raw: "echo +x <y @z", kind: domain.LinePlain, text: "echo +x <y @z"},
		{raw: `echo "a 'b'" \$c`, kind: domain.LinePlain, text: `echo "a 'b'" \$c`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			entry, err := domain.ParseLine(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, entry.Kind)
			assert.Equal(t, tt.text, entry.Text)
		})
	}
}

func TestParseLine_MalformedReference(t *testing.T) {
	for _, raw := range []string{"+", "<", "+ build", "< setup", "+a b", "<  "} {
		t.Run(raw, func(t *testing.T) {
			_, err := domain.ParseLine(raw)
			require.ErrorIs(t, err, domain.ErrMalformedReference)
		})
	}
}

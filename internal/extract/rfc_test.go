package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRFC(t *testing.T) {
	p := NewPostProcessor()

	tests := []struct {
		name           string
		fullText       string
		hint           string
		wantFound      bool
		wantRFC        string
		wantConfidence float64
	}{
		{
			name:           "valid hint wins over text",
			fullText:       "RFC: XYZ654321AB1",
			hint:           "abc-123456-xy9",
			wantFound:      true,
			wantRFC:        "ABC123456XY9",
			wantConfidence: 0.9,
		},
		{
			name:           "hyphenated rfc in text",
			fullText:       "EMISOR RFC: ABC-123456-XY9 SUCURSAL CENTRO",
			wantFound:      true,
			wantRFC:        "ABC123456XY9",
			wantConfidence: 0.85,
		},
		{
			name:           "plain individual rfc in text",
			fullText:       "rfc emisor: abcd123456xy9",
			wantFound:      true,
			wantRFC:        "ABCD123456XY9",
			wantConfidence: 0.85,
		},
		{
			name:           "invalid hint falls through to text",
			fullText:       "RFC: ABC123456XY9",
			hint:           "NOT-AN-RFC",
			wantFound:      true,
			wantRFC:        "ABC123456XY9",
			wantConfidence: 0.85,
		},
		{
			name:      "shape-invalid candidates are skipped",
			fullText:  "FOLIO: AB-123456-XX TICKET 999",
			wantFound: false,
		},
		{
			name:      "no rfc anywhere",
			fullText:  "GRACIAS POR SU COMPRA",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractRFC(tt.fullText, tt.hint)

			if !tt.wantFound {
				assert.False(t, got.Found())
				assert.Zero(t, got.Confidence)
				return
			}

			require.True(t, got.Found())
			assert.Equal(t, tt.wantRFC, *got.Value)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
		})
	}
}

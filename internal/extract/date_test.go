package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	p := NewPostProcessor()

	tests := []struct {
		name           string
		fullText       string
		hint           string
		wantFound      bool
		wantDate       time.Time
		wantConfidence float64
	}{
		{
			name:           "iso hint wins",
			fullText:       "FECHA: 01/01/2023",
			hint:           "2024-03-15",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantConfidence: 0.85,
		},
		{
			name:           "rfc3339 hint",
			hint:           "2024-03-15T10:30:00Z",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
			wantConfidence: 0.85,
		},
		{
			name:           "slash date in text is day first",
			fullText:       "FECHA: 15/03/2024 HORA: 14:22",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantConfidence: 0.8,
		},
		{
			name:           "dash date in text",
			fullText:       "FECHA 15-03-2024",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantConfidence: 0.8,
		},
		{
			name:           "iso date in text",
			fullText:       "EMITIDO 2024-03-15",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantConfidence: 0.8,
		},
		{
			name:           "unparseable hint falls through to text",
			fullText:       "FECHA: 15/03/2024",
			hint:           "el quince de marzo",
			wantFound:      true,
			wantDate:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantConfidence: 0.8,
		},
		{
			name:      "dates before the window are discarded",
			fullText:  "FECHA: 15/03/2019",
			wantFound: false,
		},
		{
			name:      "future dates are discarded",
			fullText:  "FECHA: 15/03/2095",
			wantFound: false,
		},
		{
			name:      "invalid calendar date is skipped",
			fullText:  "FECHA: 99/99/2024",
			wantFound: false,
		},
		{
			name:      "no date",
			fullText:  "GRACIAS POR SU COMPRA",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractDate(tt.fullText, tt.hint)

			if !tt.wantFound {
				assert.False(t, got.Found())
				assert.Zero(t, got.Confidence)
				return
			}

			require.True(t, got.Found())
			assert.True(t, got.Value.Equal(tt.wantDate), "date = %s", got.Value)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
		})
	}
}

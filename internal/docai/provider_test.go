package docai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanResponse(t *testing.T) {
	raw := `{
		"full_text": "OXXO\nTOTAL $58.50",
		"entities": [
			{"type": "supplier_name", "mention_text": "OXXO", "confidence": 0.98},
			{"type": "line_item", "mention_text": "COCA 600ML 18.50", "confidence": 0.9,
			 "properties": [
				{"type": "line_item/description", "mention_text": "COCA 600ML", "confidence": 0.9},
				{"type": "line_item/amount", "mention_text": "18.50", "confidence": 0.9}
			 ]}
		]
	}`

	out, err := parseScanResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, "OXXO\nTOTAL $58.50", out.FullText)
	require.Len(t, out.Entities, 2)
	assert.Equal(t, EntitySupplierName, out.Entities[0].Type)
	assert.Equal(t, 0.98, out.Entities[0].Confidence)
	require.Len(t, out.Entities[1].Properties, 2)
	assert.Equal(t, "line_item/description", out.Entities[1].Properties[0].Type)
}

func TestParseScanResponseStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"full_text\": \"PEMEX\", \"entities\": []}\n```"

	out, err := parseScanResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, "PEMEX", out.FullText)
	assert.Empty(t, out.Entities)
}

func TestParseScanResponseRejectsGarbage(t *testing.T) {
	_, err := parseScanResponse("lo siento, no puedo leer la imagen")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse provider response")
}

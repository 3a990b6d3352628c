package docai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider("test-key", "", "")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.model)
	assert.Equal(t, "openai", p.Name())
}

func TestNewOpenAIProviderCustomModel(t *testing.T) {
	p, err := NewOpenAIProvider("test-key", "https://azure.example.com", "gpt-4-turbo")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", p.model)
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

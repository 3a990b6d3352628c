// Package models holds the service configuration types.
package models

// Config is the service configuration loaded from config.yaml.
type Config struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	DocAI DocAIConfig `yaml:"docai"`
}

// DocAIConfig selects and configures the document-understanding provider.
type DocAIConfig struct {
	// Default provider: "gemini" or "openai"
	DefaultProvider string `yaml:"default_provider"`

	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
}

// GeminiConfig for Google Gemini.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// OpenAIConfig for OpenAI/Azure OpenAI.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o"
}

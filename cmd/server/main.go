package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DanielGalvanS/FinanZapp/api"
	"github.com/DanielGalvanS/FinanZapp/internal/auth"
	"github.com/DanielGalvanS/FinanZapp/internal/db"
	"github.com/DanielGalvanS/FinanZapp/internal/docai"
	"github.com/DanielGalvanS/FinanZapp/internal/models"
	"github.com/DanielGalvanS/FinanZapp/internal/storage"
)

func main() {
	// Initialize JWT
	if err := auth.Init(); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	log.Println("JWT authentication initialized")

	// Initialize database connection pool
	if err := db.Init(); err != nil {
		log.Printf("Warning: Database not available: %v", err)
		log.Println("Running in scan-only mode (no persistence)")
	} else {
		defer db.Close()
		log.Println("Database connection pool initialized")
	}

	// Initialize MinIO storage
	if err := storage.Init(); err != nil {
		log.Printf("Warning: MinIO storage not available: %v", err)
		log.Println("Receipt images will not be stored")
	} else {
		log.Println("MinIO storage initialized")
	}

	// Load configuration
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	provider, err := buildProvider(context.Background(), config)
	if err != nil {
		log.Fatalf("Failed to initialize document AI provider: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(config, provider)
	router := handler.SetupRoutes()

	// Add login endpoint
	router.HandleFunc("/api/login", auth.LoginHandler).Methods("POST")

	// Wrap router with JWT middleware (skips /health and /api/login)
	protectedRouter := auth.JWTMiddleware(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Printf("Starting FinanZapp Receipt Service v%s on %s", api.Version, addr)
	log.Printf("Document AI Provider: %s", provider.Name())
	log.Printf("Database: %v", db.Pool != nil)
	log.Printf("Storage: %v", storage.Client != nil)
	log.Printf("Endpoints:")
	log.Printf("  POST http://%s/api/login                        - Authenticate", addr)
	log.Printf("  POST http://%s/api/ocr/scan                     - Scan receipt (requires JWT)", addr)
	log.Printf("  POST http://%s/api/ocr/scan-and-create-expense  - Scan and create expense (requires JWT)", addr)
	log.Printf("  POST http://%s/api/ocr/validate-rfc             - Validate RFC (requires JWT)", addr)
	log.Printf("  POST http://%s/api/ocr/calculate-tax            - IVA breakdown (requires JWT)", addr)
	log.Printf("  POST http://%s/api/ocr/check-deductible         - Deductibility check (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/expenses                     - List expenses (requires JWT)", addr)
	log.Printf("  GET  http://%s/health                           - Health check", addr)

	if err := http.ListenAndServe(addr, protectedRouter); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildProvider creates the configured document AI provider.
func buildProvider(ctx context.Context, config *models.Config) (docai.Provider, error) {
	switch config.DocAI.DefaultProvider {
	case "openai":
		return docai.NewOpenAIProvider(config.DocAI.OpenAI.APIKey, config.DocAI.OpenAI.BaseURL, config.DocAI.OpenAI.Model)
	case "gemini", "":
		return docai.NewGeminiProvider(ctx, config.DocAI.Gemini.APIKey, config.DocAI.Gemini.Model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", config.DocAI.DefaultProvider)
	}
}

func loadConfig(path string) (*models.Config, error) {
	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config models.Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Port)
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if provider := os.Getenv("DOCAI_PROVIDER"); provider != "" {
		config.DocAI.DefaultProvider = provider
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.DocAI.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.DocAI.Gemini.Model = model
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.DocAI.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.DocAI.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.DocAI.OpenAI.Model = model
	}

	// Defaults
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Host == "" {
		config.Host = "0.0.0.0"
	}

	return &config, nil
}

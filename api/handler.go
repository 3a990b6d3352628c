package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/DanielGalvanS/FinanZapp/internal/db"
	"github.com/DanielGalvanS/FinanZapp/internal/docai"
	"github.com/DanielGalvanS/FinanZapp/internal/extract"
	"github.com/DanielGalvanS/FinanZapp/internal/models"
	"github.com/DanielGalvanS/FinanZapp/internal/ocr"
	"github.com/DanielGalvanS/FinanZapp/internal/storage"
	"github.com/DanielGalvanS/FinanZapp/internal/tax"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	Version       = "1.0.0"
)

// Handler handles HTTP requests for receipt scanning and expenses
type Handler struct {
	config    *models.Config
	provider  docai.Provider
	processor *extract.PostProcessor
	pre       *ocr.Preprocessor
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config, provider docai.Provider) *Handler {
	return &Handler{
		config:    config,
		provider:  provider,
		processor: extract.NewPostProcessor(),
		pre:       ocr.NewPreprocessor(),
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	// OCR pipeline
	router.HandleFunc("/api/ocr/scan", h.ScanReceipt).Methods("POST")
	router.HandleFunc("/api/ocr/scan-and-create-expense", h.ScanAndCreateExpense).Methods("POST")

	// Standalone tax utilities
	router.HandleFunc("/api/ocr/validate-rfc", h.ValidateRFC).Methods("POST")
	router.HandleFunc("/api/ocr/calculate-tax", h.CalculateTax).Methods("POST")
	router.HandleFunc("/api/ocr/check-deductible", h.CheckDeductible).Methods("POST")

	// Expense CRUD
	router.HandleFunc("/api/expenses", h.CreateExpense).Methods("POST")
	router.HandleFunc("/api/expenses", h.GetExpenses).Methods("GET")
	router.HandleFunc("/api/expenses/{id}", h.GetExpense).Methods("GET")
	router.HandleFunc("/api/expenses/{id}", h.UpdateExpense).Methods("PUT")
	router.HandleFunc("/api/expenses/{id}", h.DeleteExpense).Methods("DELETE")

	// Comments
	router.HandleFunc("/api/expenses/{id}/comments", h.AddComment).Methods("POST")
	router.HandleFunc("/api/comments/{id}", h.DeleteComment).Methods("DELETE")

	// Health check
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// ScanResponse is the payload returned by the scan endpoints.
type ScanResponse struct {
	FullText            string                    `json:"full_text"`
	Extraction          *extract.ExtractionResult `json:"extraction"`
	PaymentMethod       string                    `json:"payment_method,omitempty"`
	LineItems           []extract.LineItem        `json:"line_items,omitempty"`
	RFCValidation       tax.RFCValidation         `json:"rfc_validation"`
	TaxBreakdown        *tax.TaxBreakdown         `json:"tax_breakdown,omitempty"`
	DeductibleInfo      tax.DeductibilityVerdict  `json:"deductible_info"`
	ConfidenceBreakdown map[string]float64        `json:"confidence_breakdown"`
}

// ScanReceipt runs the full OCR pipeline on an uploaded receipt image and
// returns the extraction plus tax analysis, without persisting anything.
func (h *Handler) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	image, mimeType, err := h.readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, result, hints, err := h.runScan(r, image, mimeType)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.buildScanResponse(raw, result, hints))
}

// runScan enhances the image, calls the provider and runs the extraction
// engine.
func (h *Handler) runScan(r *http.Request, image []byte, mimeType string) (*docai.RawOcrOutput, *extract.ExtractionResult, extract.Hints, error) {
	enhanced := h.pre.Enhance(image)

	raw, err := h.provider.ScanReceipt(r.Context(), enhanced, mimeType)
	if err != nil {
		return nil, nil, extract.Hints{}, fmt.Errorf("failed to scan receipt: %w", err)
	}

	result := h.processor.Process(raw)
	hints := extract.CollectHints(raw.Entities)
	return raw, result, hints, nil
}

func (h *Handler) buildScanResponse(raw *docai.RawOcrOutput, result *extract.ExtractionResult, hints extract.Hints) ScanResponse {
	resp := ScanResponse{
		FullText:      raw.FullText,
		Extraction:    result,
		PaymentMethod: hints.PaymentMethod,
		LineItems:     hints.LineItems,
		RFCValidation: tax.RFCValidation{Valid: false, Error: "No se encontró RFC"},
		ConfidenceBreakdown: map[string]float64{
			"merchant": result.Merchant.Confidence,
			"rfc":      result.RFC.Confidence,
			"amount":   result.TotalAmount.Confidence,
			"date":     result.Date.Confidence,
			"category": result.Category.Confidence,
			"overall":  result.OverallConfidence,
		},
	}

	if result.RFC.Found() {
		resp.RFCValidation = tax.ValidateRFC(*result.RFC.Value)
	}

	if result.TotalAmount.Found() {
		total := *result.TotalAmount.Value
		var breakdown tax.TaxBreakdown
		switch {
		case hints.Tax != nil:
			breakdown = tax.SplitKnownTax(total, *hints.Tax)
		case hints.Subtotal != nil && hints.Subtotal.IsPositive() && hints.Subtotal.LessThan(total):
			// The receipt printed its own subtotal; the tax is the difference
			breakdown = tax.SplitKnownTax(total, total.Sub(*hints.Subtotal))
		default:
			breakdown = tax.ExtractIVAFromTotal(total)
		}
		resp.TaxBreakdown = &breakdown
	}

	category := ""
	if result.Category.Found() {
		category = *result.Category.Value
	}
	// A plain point-of-sale receipt is not a CFDI, so hasInvoice is false at
	// scan time; the user can flag it later on the expense.
	resp.DeductibleInfo = tax.EvaluateDeductibility(category, resp.RFCValidation.Valid, false)

	return resp
}

// readUpload extracts the uploaded receipt file from a multipart request.
func (h *Handler) readUpload(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, "", fmt.Errorf("invalid multipart request: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("file field is required")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return nil, "", fmt.Errorf("file must be an image or PDF")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty file")
	}

	return data, contentType, nil
}

// ValidateRFCRequest is the body for the standalone RFC validation endpoint.
type ValidateRFCRequest struct {
	RFC string `json:"rfc"`
}

// ValidateRFC validates an RFC without running the pipeline.
func (h *Handler) ValidateRFC(w http.ResponseWriter, r *http.Request) {
	var req ValidateRFCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, tax.ValidateRFC(req.RFC))
}

// CalculateTaxRequest is the body for the IVA calculation endpoint.
type CalculateTaxRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CalculateTax computes the 16% IVA breakdown over a subtotal.
func (h *Handler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	var req CalculateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, tax.ComputeIVA(req.Subtotal))
}

// CheckDeductibleRequest is the body for the deductibility endpoint.
type CheckDeductibleRequest struct {
	Category   string `json:"category"`
	HasRFC     bool   `json:"has_rfc"`
	HasInvoice bool   `json:"has_invoice"`
}

// CheckDeductible evaluates the SAT deductibility rules.
func (h *Handler) CheckDeductible(w http.ResponseWriter, r *http.Request) {
	var req CheckDeductibleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, tax.EvaluateDeductibility(req.Category, req.HasRFC, req.HasInvoice))
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status      string        `json:"status"`
	Version     string        `json:"version"`
	Timestamp   string        `json:"timestamp"`
	Uptime      string        `json:"uptime"`
	Memory      MemoryStats   `json:"memory"`
	ImageMagick ServiceStatus `json:"imageMagick"`
	Database    ServiceStatus `json:"database"`
	Storage     ServiceStatus `json:"storage"`
	Provider    string        `json:"provider"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		ImageMagick: ServiceStatus{Available: ocr.Available()},
		Database:    h.checkDatabase(r),
		Storage:     ServiceStatus{Available: storage.Client != nil},
		Provider:    h.provider.Name(),
	}

	if !response.ImageMagick.Available {
		response.ImageMagick.Error = "imagemagick not found or not executable"
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) checkDatabase(r *http.Request) ServiceStatus {
	if db.Pool == nil {
		return ServiceStatus{Available: false, Error: "not configured"}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return ServiceStatus{Available: false, Error: err.Error()}
	}
	return ServiceStatus{Available: true}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

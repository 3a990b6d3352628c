package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/DanielGalvanS/FinanZapp/internal/auth"
	"github.com/DanielGalvanS/FinanZapp/internal/db"
	"github.com/DanielGalvanS/FinanZapp/internal/storage"
	"github.com/DanielGalvanS/FinanZapp/internal/tax"
)

// ScanAndCreateExpense is the full automation flow: scan the receipt, run
// the extraction engine, upload the image and create the expense with the
// extracted data.
func (h *Handler) ScanAndCreateExpense(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	image, mimeType, err := h.readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	projectID, err := uuid.Parse(r.FormValue("project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	raw, result, hints, err := h.runScan(r, image, mimeType)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	scan := h.buildScanResponse(raw, result, hints)

	// Defaults for fields the scan could not resolve
	name := "Gasto sin nombre"
	if result.Merchant.Found() {
		name = *result.Merchant.Value
	}

	amount := decimal.New(1, -2) // 0.01 floor, expenses must be positive
	if result.TotalAmount.Found() {
		amount = *result.TotalAmount.Value
	}

	date := time.Now()
	if result.Date.Found() {
		date = *result.Date.Value
	}

	expense := &db.Expense{
		UserID:        h.currentUserID(r),
		ProjectID:     projectID,
		Name:          name,
		Description:   "Escaneado automáticamente",
		Amount:        amount.InexactFloat64(),
		Date:          date,
		PaymentMethod: hints.PaymentMethod,
		IsDeductible:  scan.DeductibleInfo.Deductible,
		HasInvoice:    false,
	}
	if result.Merchant.Found() {
		expense.MerchantName = *result.Merchant.Value
	}
	if result.RFC.Found() {
		expense.RFC = *result.RFC.Value
	}
	if scan.TaxBreakdown != nil {
		iva := scan.TaxBreakdown.IVA.InexactFloat64()
		expense.TaxAmount = &iva
	}

	if err := db.SaveExpense(r.Context(), expense); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create expense: "+err.Error())
		return
	}

	// Upload the receipt image; a storage failure does not lose the expense
	var imageURL string
	if storage.Client != nil {
		filename := uuid.NewString() + storage.GetFileExtension(mimeType)
		imageURL, err = storage.UploadReceiptImage(r.Context(), projectID.String(), filename,
			bytes.NewReader(image), int64(len(image)), mimeType)
		if err != nil {
			log.Printf("Warning: failed to upload receipt image: %v", err)
			imageURL = ""
		}
	}

	receipt := &db.Receipt{
		ExpenseID: expense.ID,
		ImageURL:  imageURL,
		OCRText:   raw.FullText,
	}
	if data, err := json.Marshal(result); err == nil {
		receipt.OCRData = string(data)
	}
	if err := db.SaveReceipt(r.Context(), receipt); err != nil {
		log.Printf("Warning: failed to save receipt row: %v", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"expense":     expense,
		"receipt_url": imageURL,
		"ocr_data":    scan,
	})
}

// CreateExpenseRequest is the body for manual expense creation.
type CreateExpenseRequest struct {
	ProjectID   uuid.UUID       `json:"project_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`

	MerchantName  string           `json:"merchant_name,omitempty"`
	RFC           string           `json:"rfc,omitempty"`
	TaxAmount     *decimal.Decimal `json:"tax_amount,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	HasInvoice    bool             `json:"has_invoice"`
	Category      string           `json:"category,omitempty"` // for deductibility
}

// CreateExpense creates an expense from user-provided data.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || !req.Amount.IsPositive() || req.ProjectID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "name, positive amount and project_id are required")
		return
	}

	hasRFC := tax.ValidateRFC(req.RFC).Valid
	verdict := tax.EvaluateDeductibility(req.Category, hasRFC, req.HasInvoice)

	expense := &db.Expense{
		UserID:        h.currentUserID(r),
		ProjectID:     req.ProjectID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Amount:        req.Amount.InexactFloat64(),
		Date:          req.Date,
		MerchantName:  req.MerchantName,
		RFC:           req.RFC,
		PaymentMethod: req.PaymentMethod,
		IsDeductible:  verdict.Deductible,
		HasInvoice:    req.HasInvoice,
	}
	if req.TaxAmount != nil {
		v := req.TaxAmount.InexactFloat64()
		expense.TaxAmount = &v
	}

	if err := db.SaveExpense(r.Context(), expense); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create expense: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":         true,
		"expense":         expense,
		"deductible_info": verdict,
	})
}

// GetExpenses lists expenses with optional project_id/category_id filters
// and limit/offset pagination.
func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	var projectID, categoryID *uuid.UUID
	if v := r.URL.Query().Get("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid project_id")
			return
		}
		projectID = &id
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		categoryID = &id
	}

	limit := intQuery(r, "limit", 50)
	offset := intQuery(r, "offset", 0)

	expenses, err := db.GetExpenses(r.Context(), projectID, categoryID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(expenses),
		"data":    expenses,
	})
}

// GetExpense retrieves one expense with its receipts.
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	expense, err := db.GetExpenseByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	receipts, err := db.GetReceiptsByExpense(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load receipts: "+err.Error())
		return
	}

	// Presign image URLs so the client can fetch them directly
	for i := range receipts {
		if receipts[i].ImageURL == "" || storage.Client == nil {
			continue
		}
		if url, err := storage.GetPresignedURL(r.Context(), receipts[i].ImageURL); err == nil {
			receipts[i].ImageURL = url
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"data":     expense,
		"receipts": receipts,
	})
}

// UpdateExpenseRequest carries the updatable fields; nil means unchanged.
type UpdateExpenseRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	HasInvoice  *bool            `json:"has_invoice,omitempty"`
}

// UpdateExpense applies a partial update.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			writeError(w, http.StatusBadRequest, "amount must be positive")
			return
		}
		updates["amount"] = req.Amount.InexactFloat64()
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.HasInvoice != nil {
		updates["has_invoice"] = *req.HasInvoice
	}

	if len(updates) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := db.UpdateExpense(r.Context(), id, updates); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteExpense removes an expense and its stored receipt images.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	// Delete stored images first; rows go with the expense
	if storage.Client != nil {
		if receipts, err := db.GetReceiptsByExpense(r.Context(), id); err == nil {
			for _, rc := range receipts {
				if rc.ImageURL != "" {
					if err := storage.DeleteImage(r.Context(), rc.ImageURL); err != nil {
						log.Printf("Warning: failed to delete image %s: %v", rc.ImageURL, err)
					}
				}
			}
		}
	}

	if err := db.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// AddCommentRequest is the body for adding a comment.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// AddComment attaches a comment to an expense.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	expenseID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	comment := &db.Comment{
		ExpenseID: expenseID,
		UserID:    h.currentUserID(r),
		Text:      req.Text,
	}
	if err := db.AddComment(r.Context(), comment); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add comment: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    comment,
	})
}

// DeleteComment removes a comment.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if db.Pool == nil {
		writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := db.DeleteComment(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// currentUserID resolves the authenticated user from the JWT claims.
func (h *Handler) currentUserID(r *http.Request) uuid.UUID {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

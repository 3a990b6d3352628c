// Package docai talks to the upstream document-understanding providers.
// Each provider receives raw image bytes and returns the full receipt text
// plus a list of typed entities with per-entity confidence, matching the
// Document AI receipt-parser contract that the extraction engine consumes.
package docai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Entity is one typed value detected on the receipt. Line items carry their
// sub-fields (description, quantity, unit_price, amount) as nested
// properties.
type Entity struct {
	Type        string   `json:"type"`
	MentionText string   `json:"mention_text"`
	Confidence  float64  `json:"confidence"`
	Properties  []Entity `json:"properties,omitempty"`
}

// RawOcrOutput is the provider response the extraction engine works on.
// Entity order is preserved from the provider; duplicate types may occur and
// the first occurrence per type is authoritative downstream.
type RawOcrOutput struct {
	FullText string   `json:"full_text"`
	Entities []Entity `json:"entities"`
}

// Provider scans a receipt image and returns its text and entities.
type Provider interface {
	ScanReceipt(ctx context.Context, image []byte, mimeType string) (*RawOcrOutput, error)
	Name() string
}

// Entity types produced by the receipt parsers.
const (
	EntitySupplierName   = "supplier_name"
	EntityTotalAmount    = "total_amount"
	EntityNetAmount      = "net_amount"
	EntityTotalTaxAmount = "total_tax_amount"
	EntityReceiptDate    = "receipt_date"
	EntitySupplierTaxID  = "supplier_tax_id"
	EntityPaymentType    = "payment_type"
	EntityLineItem       = "line_item"
)

// buildReceiptPrompt asks the model to behave as a receipt parser and emit
// the entity contract as plain JSON.
func buildReceiptPrompt() string {
	return `Eres un parser de recibos y tickets de compra mexicanos. Lee la imagen
caracter por caracter y devuelve SOLO JSON válido (sin markdown, sin comentarios):
{
  "full_text": "todo el texto visible del recibo, línea por línea",
  "entities": [
    {"type": "supplier_name", "mention_text": "nombre del comercio", "confidence": 0.0-1.0},
    {"type": "supplier_tax_id", "mention_text": "RFC del emisor si aparece", "confidence": 0.0-1.0},
    {"type": "total_amount", "mention_text": "monto total, ej 123.45", "confidence": 0.0-1.0},
    {"type": "net_amount", "mention_text": "subtotal antes de IVA", "confidence": 0.0-1.0},
    {"type": "total_tax_amount", "mention_text": "IVA del ticket", "confidence": 0.0-1.0},
    {"type": "receipt_date", "mention_text": "fecha en formato YYYY-MM-DD", "confidence": 0.0-1.0},
    {"type": "payment_type", "mention_text": "efectivo/tarjeta/transferencia", "confidence": 0.0-1.0},
    {"type": "line_item", "mention_text": "línea completa del artículo", "confidence": 0.0-1.0,
     "properties": [
       {"type": "line_item/description", "mention_text": "...", "confidence": 0.0-1.0},
       {"type": "line_item/quantity", "mention_text": "1", "confidence": 0.0-1.0},
       {"type": "line_item/unit_price", "mention_text": "10.00", "confidence": 0.0-1.0},
       {"type": "line_item/amount", "mention_text": "10.00", "confidence": 0.0-1.0}
     ]}
  ]
}

REGLAS:
1. Omite del arreglo cualquier entidad que no puedas leer. NUNCA inventes datos.
2. El RFC mexicano tiene 12 o 13 caracteres (letras + 6 dígitos + homoclave).
3. Los montos van sin símbolo de moneda y con punto decimal.
4. confidence refleja qué tan legible es el dato en la imagen.
5. full_text es obligatorio aunque no detectes ninguna entidad.`
}

// parseScanResponse cleans a model response (the providers like to wrap JSON
// in markdown fences) and decodes it into RawOcrOutput.
func parseScanResponse(response string) (*RawOcrOutput, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var out RawOcrOutput
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	return &out, nil
}

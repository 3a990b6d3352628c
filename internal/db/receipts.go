package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Receipt is the database row for a stored receipt image.
type Receipt struct {
	ID        uuid.UUID `json:"id"`
	ExpenseID uuid.UUID `json:"expense_id"`
	ImageURL  string    `json:"image_url"`
	OCRText   string    `json:"ocr_text"`
	OCRData   string    `json:"ocr_data"` // extraction result as JSONB
	CreatedAt time.Time `json:"created_at"`
}

// SaveReceipt attaches a receipt image and its OCR capture to an expense.
func SaveReceipt(ctx context.Context, r *Receipt) error {
	query := `
		INSERT INTO receipts (expense_id, image_url, ocr_text, ocr_data)
		VALUES ($1, $2, $3, NULLIF($4, '')::jsonb)
		RETURNING id, created_at
	`
	return Pool.QueryRow(ctx, query, r.ExpenseID, r.ImageURL, r.OCRText, r.OCRData).
		Scan(&r.ID, &r.CreatedAt)
}

// GetReceiptsByExpense lists the receipts of an expense.
func GetReceiptsByExpense(ctx context.Context, expenseID uuid.UUID) ([]Receipt, error) {
	query := `
		SELECT id, expense_id, image_url, COALESCE(ocr_text, ''), COALESCE(ocr_data::text, ''), created_at
		FROM receipts
		WHERE expense_id = $1
		ORDER BY created_at
	`

	rows, err := Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		var r Receipt
		if err := rows.Scan(&r.ID, &r.ExpenseID, &r.ImageURL, &r.OCRText, &r.OCRData, &r.CreatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}

	return receipts, rows.Err()
}

// Comment is the database row for an expense comment.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ExpenseID uuid.UUID `json:"expense_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AddComment stores a comment on an expense.
func AddComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (expense_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return Pool.QueryRow(ctx, query, c.ExpenseID, c.UserID, c.Text).Scan(&c.ID, &c.CreatedAt)
}

// DeleteComment removes a comment.
func DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	tag, err := Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

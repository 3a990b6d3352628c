package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is the database row for an expense.
type Expense struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	Date          time.Time  `json:"date"`
	MerchantName  string     `json:"merchant_name"`
	RFC           string     `json:"rfc"`
	TaxAmount     *float64   `json:"tax_amount,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	IsDeductible  bool       `json:"is_deductible"`
	HasInvoice    bool       `json:"has_invoice"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

const expenseColumns = `id, user_id, project_id, category_id, name, COALESCE(description, ''),
	       amount, date, COALESCE(merchant_name, ''), COALESCE(rfc, ''), tax_amount,
	       COALESCE(payment_method, ''), is_deductible, has_invoice, created_at, updated_at`

// SaveExpense inserts an expense and fills in its ID and creation time.
func SaveExpense(ctx context.Context, e *Expense) error {
	query := `
		INSERT INTO expenses (
			user_id, project_id, category_id, name, description, amount, date,
			merchant_name, rfc, tax_amount, payment_method, is_deductible, has_invoice
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := Pool.QueryRow(ctx, query,
		e.UserID, e.ProjectID, e.CategoryID, e.Name, e.Description, e.Amount, e.Date,
		e.MerchantName, e.RFC, e.TaxAmount, e.PaymentMethod, e.IsDeductible, e.HasInvoice,
	).Scan(&e.ID, &e.CreatedAt)

	return err
}

// GetExpenses lists expenses, newest first, optionally filtered by project
// and category.
func GetExpenses(ctx context.Context, projectID, categoryID *uuid.UUID, limit, offset int) ([]Expense, error) {
	if limit <= 0 {
		limit = 50
	}

	conditions := []string{}
	args := []interface{}{}
	i := 1

	if projectID != nil {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", i))
		args = append(args, *projectID)
		i++
	}
	if categoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", i))
		args = append(args, *categoryID)
		i++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, expenseColumns, where, i, i+1)
	args = append(args, limit, offset)

	rows, err := Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := scanExpense(rows.Scan, &e); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// GetExpenseByID retrieves a single expense.
func GetExpenseByID(ctx context.Context, expenseID uuid.UUID) (*Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE id = $1`, expenseColumns)

	var e Expense
	if err := scanExpense(Pool.QueryRow(ctx, query, expenseID).Scan, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense applies the given column updates.
func UpdateExpense(ctx context.Context, expenseID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	// Build dynamic UPDATE query
	sets := []string{}
	args := []interface{}{}
	i := 1
	for column, value := range updates {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, expenseID)

	query := fmt.Sprintf(`UPDATE expenses SET %s WHERE id = $%d`, strings.Join(sets, ", "), i)

	tag, err := Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found")
	}
	return nil
}

// DeleteExpense removes an expense and, through FK cascade, its receipts and
// comments.
func DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	tag, err := Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found")
	}
	return nil
}

func scanExpense(scan func(dest ...interface{}) error, e *Expense) error {
	return scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.CategoryID, &e.Name, &e.Description,
		&e.Amount, &e.Date, &e.MerchantName, &e.RFC, &e.TaxAmount,
		&e.PaymentMethod, &e.IsDeductible, &e.HasInvoice, &e.CreatedAt, &e.UpdatedAt,
	)
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/storage"
)

const expenseColumns = `
	SELECT e.id, e.group_id, g.name, e.amount, e.description, e.paid_by, u.name, e.created_at
	FROM expenses e
	JOIN groups g ON g.id = e.group_id
	JOIN users u ON u.id = e.paid_by`

// CreateExpense inserts an expense and all its splits in one transaction.
// A payer-only expense with no splits must never be visible to readers, so
// either every row commits or none do.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if len(expense.Splits) == 0 {
		return storage.ErrNoSplits
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (group_id, amount, description, paid_by, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.GroupID, expense.Amount.String(), expense.Description, expense.PaidByID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, share_amount) VALUES (?, ?, ?)",
			id, split.UserID, split.ShareAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	expense.ID = id
	return nil
}

// GetExpenseWithSplits retrieves an expense with its splits materialized.
func (s *SQLiteStore) GetExpenseWithSplits(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx, expenseColumns+" WHERE e.id = ?", expenseID).Scan(
		&expense.ID, &expense.GroupID, &expense.GroupName, &expense.Amount,
		&expense.Description, &expense.PaidByID, &expense.PaidByName, &expense.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadSplits(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetGroupExpenses lists a group's expenses, newest first.
func (s *SQLiteStore) GetGroupExpenses(ctx context.Context, groupID int64) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		expenseColumns+" WHERE e.group_id = ? ORDER BY e.created_at DESC, e.id DESC", groupID)
}

// GetUserExpenses lists every expense the user paid or holds a split in,
// newest first. Historical splits stay included after the user leaves a
// group; membership revocation is not retroactive.
func (s *SQLiteStore) GetUserExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return s.queryExpenses(ctx, expenseColumns+`
		WHERE e.paid_by = ?
		   OR e.id IN (SELECT expense_id FROM expense_splits WHERE user_id = ?)
		ORDER BY e.created_at DESC, e.id DESC`,
		userID, userID)
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(
			&expense.ID, &expense.GroupID, &expense.GroupName, &expense.Amount,
			&expense.Description, &expense.PaidByID, &expense.PaidByName, &expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadSplits(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *SQLiteStore) loadSplits(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT es.user_id, u.name, es.share_amount
		FROM expense_splits es
		JOIN users u ON u.id = es.user_id
		WHERE es.expense_id = ?
		ORDER BY es.id`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.UserID, &split.UserName, &split.ShareAmount); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense and its splits in one transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Skye-project/phantom-mask/internal/domain/account"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/monitoring"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(conn *Connection) *AccountRepository {
	return &AccountRepository{
		db: conn.GetDB(),
	}
}

func (r *AccountRepository) TopUsersByAmount(ctx context.Context, top int, from, to *time.Time) ([]account.TopUser, error) {
	query := `
		SELECT u.id, u.name, u.cash_balance, SUM(ph.transaction_amount) AS total_amount
		FROM users u
		JOIN purchase_histories ph ON ph.user_id = u.id
	`

	conditions, args := dateRangeConditions(from, to)
	query += conditions
	args = append(args, top)
	query += fmt.Sprintf(`
		GROUP BY u.id, u.name, u.cash_balance
		ORDER BY total_amount DESC
		LIMIT $%d
	`, len(args))

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "purchase_histories", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []account.TopUser
	for rows.Next() {
		var u account.TopUser
		if err := rows.Scan(&u.ID, &u.Name, &u.CashBalance, &u.TotalAmount); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *AccountRepository) SummarizeTransactions(ctx context.Context, from, to *time.Time) (*account.TransactionSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(ph.transaction_amount), 0)
		FROM purchase_histories ph
	`

	conditions, args := dateRangeConditions(from, to)
	query += conditions

	var s account.TransactionSummary
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "purchase_histories", query, args...)
	if err := row.Scan(&s.TotalTransactions, &s.TotalAmount); err != nil {
		return nil, err
	}

	return &s, nil
}

func dateRangeConditions(from, to *time.Time) (string, []interface{}) {
	var clause string
	var args []interface{}

	if from != nil {
		args = append(args, *from)
		clause += fmt.Sprintf(" WHERE ph.transaction_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		if clause == "" {
			clause += fmt.Sprintf(" WHERE ph.transaction_date <= $%d", len(args))
		} else {
			clause += fmt.Sprintf(" AND ph.transaction_date <= $%d", len(args))
		}
	}

	return clause, args
}

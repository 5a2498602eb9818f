package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
)

const (
	selectAccountsSQL = `SELECT branch_id, account_id, balance FROM accounts ORDER BY position`
	deleteAccountsSQL = `DELETE FROM accounts`
)

var accountColumns = []string{"position", "branch_id", "account_id", "balance"}

// Store keeps the account set in the accounts table. Row order is the
// registry order.
type Store struct {
	pool    pgxPool
	retrier *Retrier
}

// NewStore creates a Store on top of pool.
func NewStore(pool *pgxpool.Pool, retrier *Retrier) *Store {
	return newStoreWithPool(pool, retrier)
}

func newStoreWithPool(pool pgxPool, retrier *Retrier) *Store {
	return &Store{pool: pool, retrier: retrier}
}

// Load reads every row in position order.
func (s *Store) Load(ctx context.Context) (usecase.LoadResult, error) {
	rows, err := s.pool.Query(ctx, selectAccountsSQL)
	if err != nil {
		return usecase.LoadResult{}, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var result usecase.LoadResult
	for rows.Next() {
		var (
			branchID  string
			accountID int
			balance   int64
		)
		if err := rows.Scan(&branchID, &accountID, &balance); err != nil {
			return usecase.LoadResult{}, fmt.Errorf("failed to scan account: %w", err)
		}
		result.Records = append(result.Records, usecase.AccountRecord{
			Number:  branchID + "-" + strconv.Itoa(accountID),
			Balance: strconv.FormatInt(balance, 10),
		})
	}
	if err := rows.Err(); err != nil {
		return usecase.LoadResult{}, fmt.Errorf("failed to read accounts: %w", err)
	}

	return result, nil
}

// Save replaces the table contents with accounts in a single transaction.
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	rows := make([][]any, len(accounts))
	for i, acct := range accounts {
		n := acct.Number()
		rows[i] = []any{i, n.BranchID(), n.AccountID(), acct.Balance()}
	}

	return s.retrier.Retry(ctx, func() error {
		return inTx(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, deleteAccountsSQL); err != nil {
				return fmt.Errorf("failed to clear accounts: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{"accounts"}, accountColumns, pgx.CopyFromRows(rows)); err != nil {
				return fmt.Errorf("failed to copy accounts: %w", err)
			}
			return nil
		})
	})
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/transaction"
)

type accountRow struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Balance   int       `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ledgerEntryRow struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	BookingID string    `db:"booking_id"`
	Amount    int       `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

// AccountRepository はアカウントと決済レジャーのPostgreSQLリポジトリ
type AccountRepository struct{ db *sqlx.DB }

// NewAccountRepository は新しいAccountRepositoryを作成する
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `INSERT INTO accounts (username, email, role, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		a.Username, a.Email, string(a.Role), a.Balance, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID); err != nil {
		return fmt.Errorf("アカウント作成に失敗: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var row accountRow
	query := `SELECT id, username, email, role, balance, created_at, updated_at FROM accounts WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("アカウント取得に失敗: %w", err)
	}
	return toAccountEntity(&row), nil
}

// Debit は残高の条件付き減算とレジャー記録の追加を同一トランザクションで行う
// 条件付きUPDATEが行ロックを取るため、同一アカウントへの並行引き落としは
// ここで直列化される。booking_id のユニーク制約が二重引き落としを防ぐ
func (r *AccountRepository) Debit(ctx context.Context, tx transaction.Tx, accountID, bookingID string, amount int) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("不正なトランザクション型です")
	}
	if amount <= 0 {
		return account.ErrInvalidAmount
	}

	if _, err := sqlxTx.ExecContext(ctx,
		`INSERT INTO ledger_entries (account_id, booking_id, amount) VALUES ($1, $2, $3)`,
		accountID, bookingID, amount,
	); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return account.ErrAlreadySettled
		}
		return fmt.Errorf("レジャー記録に失敗: %w", err)
	}

	result, err := sqlxTx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - $1, updated_at = NOW() WHERE id = $2 AND balance >= $1`,
		amount, accountID,
	)
	if err != nil {
		return fmt.Errorf("引き落としに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// アカウントが存在しないか残高不足。どちらかを区別して返す
		var exists bool
		if err := sqlxTx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, accountID); err != nil {
			return fmt.Errorf("アカウント確認に失敗: %w", err)
		}
		if !exists {
			return account.ErrAccountNotFound
		}
		return account.ErrInsufficientBalance
	}
	return nil
}

func (r *AccountRepository) Credit(ctx context.Context, accountID string, amount int) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		amount, accountID,
	)
	if err != nil {
		return fmt.Errorf("チャージに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) GetLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]*account.LedgerEntry, error) {
	var rows []ledgerEntryRow
	query := `SELECT id, account_id, booking_id, amount, created_at FROM ledger_entries
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, accountID, limit, offset); err != nil {
		return nil, fmt.Errorf("レジャー履歴の取得に失敗: %w", err)
	}
	result := make([]*account.LedgerEntry, len(rows))
	for i, row := range rows {
		result[i] = &account.LedgerEntry{
			ID:        row.ID,
			AccountID: row.AccountID,
			BookingID: row.BookingID,
			Amount:    row.Amount,
			CreatedAt: row.CreatedAt,
		}
	}
	return result, nil
}

func toAccountEntity(row *accountRow) *account.Account {
	return &account.Account{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		Role:      account.Role(row.Role),
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

var _ account.Repository = (*AccountRepository)(nil)

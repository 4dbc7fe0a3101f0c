package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mixelka/codefetch/pkg/models"
)

// UpsertAccount creates an account or refreshes its session binding
func (db *DB) UpsertAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (email, account_id, session_token, imap_server, imap_password, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			account_id = excluded.account_id,
			session_token = excluded.session_token,
			imap_server = excluded.imap_server,
			imap_password = excluded.imap_password
	`
	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		account.Email,
		account.AccountID,
		account.SessionToken,
		account.IMAPServer,
		account.IMAPPassword,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	// last_insert_rowid is not updated on the conflict path, read the id back
	var id int64
	if err := db.GetContext(ctx, &id, `SELECT id FROM accounts WHERE email = ?`, account.Email); err != nil {
		return fmt.Errorf("failed to get account id: %w", err)
	}

	account.ID = id
	return nil
}

// GetAccountByEmail returns an account by email address
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	query := `SELECT * FROM accounts WHERE email = ?`
	err := db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// ListAccounts returns all accounts, most recently used first
func (db *DB) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	query := `SELECT * FROM accounts ORDER BY last_used_at DESC`
	err := db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// TouchAccount updates the last-used timestamp
func (db *DB) TouchAccount(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET last_used_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to touch account: %w", err)
	}
	return nil
}

// DeleteAccount removes an account
func (db *DB) DeleteAccount(ctx context.Context, email string) error {
	query := `DELETE FROM accounts WHERE email = ?`
	_, err := db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

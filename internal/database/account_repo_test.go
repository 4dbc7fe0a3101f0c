package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mixelka/codefetch/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestUpsertAccount_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	account := &models.Account{
		Email:        "user@example.com",
		AccountID:    "acct-1",
		SessionToken: "tok-1",
	}
	if err := db.UpsertAccount(ctx, account); err != nil {
		t.Fatalf("UpsertAccount() error = %v", err)
	}
	if account.ID == 0 {
		t.Error("UpsertAccount() did not set ID")
	}

	got, err := db.GetAccountByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail() error = %v", err)
	}
	if got.AccountID != "acct-1" || got.SessionToken != "tok-1" {
		t.Errorf("unexpected account: %+v", got)
	}
}

func TestUpsertAccount_RefreshesSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &models.Account{Email: "user@example.com", AccountID: "acct-1", SessionToken: "tok-1"}
	if err := db.UpsertAccount(ctx, first); err != nil {
		t.Fatalf("UpsertAccount() error = %v", err)
	}

	second := &models.Account{Email: "user@example.com", AccountID: "acct-1", SessionToken: "tok-2"}
	if err := db.UpsertAccount(ctx, second); err != nil {
		t.Fatalf("UpsertAccount() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %d != %d", second.ID, first.ID)
	}

	got, err := db.GetAccountByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail() error = %v", err)
	}
	if got.SessionToken != "tok-2" {
		t.Errorf("session token = %q, want tok-2", got.SessionToken)
	}
}

func TestGetAccountByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetAccountByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	account := &models.Account{Email: "user@example.com", AccountID: "acct-1", SessionToken: "tok-1"}
	if err := db.UpsertAccount(ctx, account); err != nil {
		t.Fatalf("UpsertAccount() error = %v", err)
	}
	if err := db.DeleteAccount(ctx, "user@example.com"); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if _, err := db.GetAccountByEmail(ctx, "user@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("account still present after delete: %v", err)
	}
}

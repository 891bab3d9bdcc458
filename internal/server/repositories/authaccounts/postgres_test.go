package authaccounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_PasswordAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a-1", now, now)
	mock.ExpectQuery(`INSERT\s+INTO\s+auth_accounts`).
		WithArgs("u-1", models.ProviderPassword, sql.NullString{}, sql.NullString{String: "$2a$10$digest", Valid: true}).
		WillReturnRows(rows)

	acc := &models.AuthAccount{
		UserID:       "u-1",
		ProviderType: models.ProviderPassword,
		PasswordHash: sql.NullString{String: "$2a$10$digest", Valid: true},
	}
	got, err := repo.Create(context.Background(), acc)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestCreate_DuplicateProvider(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+auth_accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.AuthAccount{
		UserID:       "u-1",
		ProviderType: models.ProviderPassword,
	})
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestFindByProvider_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "provider_type", "provider_user_id", "password_hash", "created_at", "updated_at"}).
		AddRow("a-2", "u-1", "google", "ext-123", nil, now, now)
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,.*FROM\s+auth_accounts\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+provider_type\s*=\s*\$2`).
		WithArgs("u-1", models.ProviderGoogle).
		WillReturnRows(rows)

	got, err := repo.FindByProvider(context.Background(), "u-1", models.ProviderGoogle)
	if err != nil {
		t.Fatalf("FindByProvider error: %v", err)
	}
	if got.ProviderUserID.String != "ext-123" || got.PasswordHash.Valid {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestFindByProvider_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id,.*FROM\s+auth_accounts`).
		WithArgs("u-1", models.ProviderGoogle).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByProvider(context.Background(), "u-1", models.ProviderGoogle)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateProviderUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+auth_accounts\s+SET\s+provider_user_id`).
		WithArgs("a-2", "ext-456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateProviderUserID(context.Background(), "a-2", "ext-456"); err != nil {
		t.Fatalf("UpdateProviderUserID error: %v", err)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
)

func newTestProcessedRepo(t *testing.T) (*processedOpRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &processedOpRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestGetOutcome_Found(t *testing.T) {
	repo, mock, db := newTestProcessedRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"outcome"}).
		AddRow([]byte(`{"status":"rejected","reason":"conflict","conflictId":"c-1"}`))

	mock.ExpectQuery("FROM processed_operations").
		WithArgs("op-1", "tenant-1", "user-1").
		WillReturnRows(rows)

	outcome, seen, err := repo.GetOutcome(context.Background(), "tenant-1", "user-1", "op-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Fatal("expected outcome to be found")
	}
	if outcome.Status != models.OutcomeRejected {
		t.Errorf("expected rejected status, got %s", outcome.Status)
	}
	if outcome.ConflictID != "c-1" {
		t.Errorf("expected conflict c-1, got %s", outcome.ConflictID)
	}
}

func TestGetOutcome_NotSeen(t *testing.T) {
	repo, mock, db := newTestProcessedRepo(t)
	defer db.Close()

	mock.ExpectQuery("FROM processed_operations").
		WillReturnError(sql.ErrNoRows)

	_, seen, err := repo.GetOutcome(context.Background(), "tenant-1", "user-1", "op-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Error("expected not-seen for unknown operation id")
	}
}

func TestGetOutcome_QueryError(t *testing.T) {
	repo, mock, db := newTestProcessedRepo(t)
	defer db.Close()

	mock.ExpectQuery("FROM processed_operations").
		WillReturnError(errors.New("db network error"))

	_, _, err := repo.GetOutcome(context.Background(), "tenant-1", "user-1", "op-1")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

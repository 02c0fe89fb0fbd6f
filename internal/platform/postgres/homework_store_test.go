package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssignment(t *testing.T) *domain.HomeworkAssignment {
	t.Helper()
	h, err := domain.NewHomeworkAssignment("Week 3", "ada", "$2a$10$hash", []domain.HomeworkItem{
		{Operation: domain.OperationAddition, OperandA: 478, OperandB: 365},
		{Operation: domain.OperationDivision, OperandA: 1729, OperandB: 8},
	}, nil)
	require.NoError(t, err)
	return h
}

func TestPostgresHomeworkStore_Create(t *testing.T) {
	t.Parallel()

	h := testAssignment(t)
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO homework_assignments")).
		WithArgs(h.ID, "Week 3", "ada", "$2a$10$hash", h.CreatedAt, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, item := range h.Items {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO homework_items")).
			WithArgs(item.ID, h.ID, item.Position, string(item.Operation), item.OperandA, item.OperandB).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, NewPostgresHomeworkStore(db, nil).Create(context.Background(), h))
}

func TestPostgresHomeworkStore_CreateItemFailure(t *testing.T) {
	t.Parallel()

	h := testAssignment(t)
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO homework_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO homework_items")).
		WillReturnError(newPgError(checkViolationCode))

	err := NewPostgresHomeworkStore(db, nil).Create(context.Background(), h)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresHomeworkStore_GetByID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	id, item1, item2, resultID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	due := created.Add(72 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM homework_assignments")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "player_name", "access_code_hash", "created_at", "due_at"}).
			AddRow(id.String(), "Week 3", "ada", "hash", created, due))
	mock.ExpectQuery(regexp.QuoteMeta("FROM homework_items")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "assignment_id", "position", "operation", "operand_a", "operand_b", "result_id"}).
			AddRow(item1.String(), id.String(), 0, "addition", 478, 365, resultID.String()).
			AddRow(item2.String(), id.String(), 1, "division", 1729, 8, nil))

	h, err := NewPostgresHomeworkStore(db, nil).GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Week 3", h.Title)
	require.NotNil(t, h.DueAt)
	assert.True(t, due.Equal(*h.DueAt))
	require.Len(t, h.Items, 2)
	assert.True(t, h.Items[0].Done())
	assert.False(t, h.Items[1].Done())
	assert.Equal(t, domain.OperationDivision, h.Items[1].Operation)

	done, total := h.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestPostgresHomeworkStore_GetByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM homework_assignments")).
		WillReturnError(sql.ErrNoRows)

	_, err := NewPostgresHomeworkStore(db, nil).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrHomeworkNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestPostgresHomeworkStore_MarkItemDone(t *testing.T) {
	t.Parallel()

	itemID, resultID := uuid.New(), uuid.New()
	lookup := regexp.QuoteMeta("SELECT result_id FROM homework_items")

	t.Run("marks", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(lookup).WithArgs(itemID).
			WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(nil))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE homework_items")).
			WithArgs(itemID, resultID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgresHomeworkStore(db, nil).MarkItemDone(context.Background(), itemID, resultID))
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(lookup).WillReturnError(sql.ErrNoRows)

		err := NewPostgresHomeworkStore(db, nil).MarkItemDone(context.Background(), itemID, resultID)
		assert.ErrorIs(t, err, store.ErrHomeworkItemNotFound)
	})

	t.Run("already done", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(lookup).
			WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(uuid.New().String()))

		err := NewPostgresHomeworkStore(db, nil).MarkItemDone(context.Background(), itemID, resultID)
		assert.ErrorIs(t, err, store.ErrItemAlreadyDone)
		assert.True(t, store.IsDuplicateError(err))
	})
}

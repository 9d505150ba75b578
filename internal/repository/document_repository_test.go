package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/repository"
	"rag-platform-server/internal/service"
)

var documentColumns = []string{
	"uuid", "user_uuid", "filename", "original_filename", "file_path", "file_size",
	"file_type", "mime_type", "status", "error_message", "page_count", "word_count",
	"created_at", "updated_at", "processed_at",
}

func newTestDocumentRepository(t *testing.T) (*repository.DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := repository.NewDocumentRepository(&config.Database{DB: sqlxDB})

	return repo, mock
}

func documentRow(doc *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(documentColumns).AddRow(
		doc.UUID, doc.UserUUID, doc.Filename, doc.OriginalFilename, doc.FilePath,
		doc.FileSize, doc.FileType, doc.MimeType, doc.Status, doc.ErrorMessage,
		doc.PageCount, doc.WordCount, doc.CreatedAt, doc.UpdatedAt, doc.ProcessedAt,
	)
}

func TestDocumentRepository_Create(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	pageCount := 3
	doc := &model.Document{
		UUID:             "doc-uuid",
		UserUUID:         "user-uuid",
		Filename:         "20240101_120000_useruuid_abcdef123456.pdf",
		OriginalFilename: "report.pdf",
		FilePath:         "uploads/pdf/20240101_120000_useruuid_abcdef123456.pdf",
		FileSize:         1024,
		FileType:         model.TypePDF,
		MimeType:         "application/pdf",
		Status:           model.StatusPending,
		PageCount:        &pageCount,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.UUID, doc.UserUUID, doc.Filename, doc.OriginalFilename, doc.FilePath,
			doc.FileSize, doc.FileType, doc.MimeType, doc.Status, doc.PageCount, doc.WordCount).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, repo.DB, doc)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetByUUID(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	doc := &model.Document{
		UUID:      "doc-uuid",
		UserUUID:  "user-uuid",
		Filename:  "file.pdf",
		FileType:  model.TypePDF,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery("(?s)SELECT (.+) FROM documents").
		WithArgs("doc-uuid", "user-uuid").
		WillReturnRows(documentRow(doc))

	got, err := repo.GetByUUID(ctx, repo.DB, "doc-uuid", "user-uuid")

	require.NoError(t, err)
	assert.Equal(t, doc.UUID, got.UUID)
	assert.Equal(t, doc.UserUUID, got.UserUUID)
	assert.Equal(t, model.StatusPending, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetByUUID_NotFound(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	// чужой либо несуществующий uuid: запрос просто не находит строку
	mock.ExpectQuery("(?s)SELECT (.+) FROM documents").
		WithArgs("doc-uuid", "another-user").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	got, err := repo.GetByUUID(ctx, repo.DB, "doc-uuid", "another-user")

	require.ErrorIs(t, err, service.ErrDocumentNotFound)
	assert.Nil(t, got)
}

func TestDocumentRepository_ListByOwner(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.NewRows(documentColumns).
		AddRow("doc-1", "user-uuid", "a.pdf", "a.pdf", "uploads/pdf/a.pdf", int64(10),
			model.TypePDF, "application/pdf", model.StatusPending, nil, nil, nil, now, nil, nil).
		AddRow("doc-2", "user-uuid", "b.txt", "b.txt", "uploads/txt/b.txt", int64(20),
			model.TypeTXT, "text/plain", model.StatusCompleted, nil, nil, nil, now, nil, nil)

	mock.ExpectQuery("(?s)SELECT (.+) FROM documents").
		WithArgs("user-uuid", 0, 100).
		WillReturnRows(rows)

	docs, err := repo.ListByOwner(ctx, repo.DB, "user-uuid", 0, 100)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].UUID)
	assert.Equal(t, "doc-2", docs[1].UUID)
}

func TestDocumentRepository_ListByOwner_Empty(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("(?s)SELECT (.+) FROM documents").
		WithArgs("user-uuid", 0, 100).
		WillReturnRows(sqlmock.NewRows(documentColumns))

	docs, err := repo.ListByOwner(ctx, repo.DB, "user-uuid", 0, 100)

	require.NoError(t, err)
	// пустой срез, а не nil: JSON сериализует его как []
	assert.NotNil(t, docs)
	assert.Len(t, docs, 0)
}

func TestDocumentRepository_CountByOwner(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-uuid").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.CountByOwner(ctx, repo.DB, "user-uuid")

	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestDocumentRepository_Delete(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-uuid", "user-uuid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(ctx, repo.DB, "doc-uuid", "user-uuid")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-uuid", "another-user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(ctx, repo.DB, "doc-uuid", "another-user")

	require.ErrorIs(t, err, service.ErrDocumentNotFound)
}

func TestDocumentRepository_BeginTX(t *testing.T) {
	repo, mock := newTestDocumentRepository(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	exec, rollback, commit, err := repo.BeginTX(ctx)

	require.NoError(t, err)
	require.NotNil(t, exec)
	require.NotNil(t, rollback)
	require.NoError(t, commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

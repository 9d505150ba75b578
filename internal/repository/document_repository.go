package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/service"
	"rag-platform-server/internal/util"
)

type DocumentRepository struct {
	*config.Database
}

func NewDocumentRepository(database *config.Database) *DocumentRepository {
	return &DocumentRepository{database}
}

// Create : сохраняет новый документ
func (r *DocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	query := `
		INSERT INTO documents (uuid, user_uuid, filename, original_filename, file_path,
		                       file_size, file_type, mime_type, status, page_count, word_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := exec.ExecContext(
		ctx,
		query,
		document.UUID,
		document.UserUUID,
		document.Filename,
		document.OriginalFilename,
		document.FilePath,
		document.FileSize,
		document.FileType,
		document.MimeType,
		document.Status,
		document.PageCount,
		document.WordCount,
	)

	if err != nil {
		return util.LogError("[DocumentRepo] ошибка вставки документа в БД", err)
	}
	return nil
}

// GetByUUID : возвращает документ только владельцу
// Чужой uuid неотличим от несуществующего: в обоих случаях ErrDocumentNotFound
func (r *DocumentRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID, ownerUUID string) (*model.Document, error) {
	query := `
		SELECT uuid, user_uuid, filename, original_filename, file_path, file_size, file_type,
		       mime_type, status, error_message, page_count, word_count,
		       created_at, updated_at, processed_at
		FROM documents
		WHERE uuid = $1 AND user_uuid = $2
	`

	var document model.Document
	err := sqlx.GetContext(ctx, exec, &document, query, documentUUID, ownerUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrDocumentNotFound
		}
		return nil, util.LogError("[DocumentRepo] не удалось получить документ", err)
	}

	return &document, nil
}

// ListByOwner : страница документов владельца с OFFSET/LIMIT
// Сортировка по (created_at, uuid) даёт стабильные непересекающиеся страницы
func (r *DocumentRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, skip, limit int) ([]model.Document, error) {
	query := `
		SELECT uuid, user_uuid, filename, original_filename, file_path, file_size, file_type,
		       mime_type, status, error_message, page_count, word_count,
		       created_at, updated_at, processed_at
		FROM documents
		WHERE user_uuid = $1
		ORDER BY created_at ASC, uuid ASC
		OFFSET $2 LIMIT $3
	`

	docs := []model.Document{}
	if err := sqlx.SelectContext(ctx, exec, &docs, query, ownerUUID, skip, limit); err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить список документов", err)
	}

	return docs, nil
}

// CountByOwner : полное число документов владельца, не зависит от страницы
func (r *DocumentRepository) CountByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM documents WHERE user_uuid = $1`
	if err := sqlx.GetContext(ctx, exec, &total, query, ownerUUID); err != nil {
		return 0, util.LogError("[DocumentRepo] не удалось посчитать документы", err)
	}
	return total, nil
}

// Delete : удаляет запись, только если она принадлежит владельцу
func (r *DocumentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, documentUUID, ownerUUID string) error {
	query := `DELETE FROM documents WHERE uuid = $1 AND user_uuid = $2`

	result, err := exec.ExecContext(ctx, query, documentUUID, ownerUUID)
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось удалить документ", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось проверить удаление", err)
	}
	if affected == 0 {
		return service.ErrDocumentNotFound
	}

	return nil
}

// Exec : соединение вне транзакции, для read-only запросов
func (r *DocumentRepository) Exec() sqlx.ExtContext {
	return r.DB
}

// BeginTX : возвращает (exec, rollback, commit)
func (r *DocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

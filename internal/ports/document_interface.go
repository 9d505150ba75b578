package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rag-platform-server/internal/model"
)

// DocumentRepository : SQL слой
// GetByUUID и Delete выбирают только по паре (uuid, владелец):
// чужой документ неотличим от несуществующего
type DocumentRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID, ownerUUID string) (*model.Document, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, skip, limit int) ([]model.Document, error)
	CountByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) (int, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, documentUUID, ownerUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
	Exec() sqlx.ExtContext
}

type DocumentService interface {
	UploadDocument(ctx context.Context, ownerUUID, originalFilename string, content []byte) (*model.Document, error)
	GetDocument(ctx context.Context, documentUUID, ownerUUID string) (*model.Document, error)
	ListDocuments(ctx context.Context, ownerUUID string, skip, limit int) ([]model.Document, int, error)
	DeleteDocument(ctx context.Context, documentUUID, ownerUUID string) error
}

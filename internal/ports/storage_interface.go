package ports

import "rag-platform-server/internal/model"

// FileStorage : локальное файловое хранилище загруженных документов
type FileStorage interface {
	Validate(filename string, content []byte) error
	GenerateUniqueName(originalFilename, ownerUUID string) (string, error)
	Save(content []byte, uniqueName, ext string) (string, int64, error)
	SniffMimeType(content []byte) string
	ExtractPDFMetadata(path string) model.PDFMetadata
	Delete(path string) bool
}

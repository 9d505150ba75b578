package service

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"rag-platform-server/internal/model"
	"rag-platform-server/internal/ports"
	"rag-platform-server/internal/util"
)

type DocumentService struct {
	documentRepository ports.DocumentRepository
	cacheRepository    ports.CacheRepository
	fileStorage        ports.FileStorage
}

func NewDocumentService(
	documentRepository ports.DocumentRepository,
	cacheRepository ports.CacheRepository,
	fileStorage ports.FileStorage,
) *DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		cacheRepository:    cacheRepository,
		fileStorage:        fileStorage,
	}
}

// UploadDocument : валидация -> уникальное имя -> запись на диск -> тип и MIME ->
// метаданные (для PDF) -> запись в БД
// Контракт отката: после того как файл физически записан, любой сбой обязан
// удалить этот файл и откатить транзакцию — осиротевших файлов не остаётся.
// Связывает файловое хранилище и персистентность только этот сервис
func (s *DocumentService) UploadDocument(ctx context.Context, ownerUUID, originalFilename string, content []byte) (*model.Document, error) {
	if err := s.fileStorage.Validate(originalFilename, content); err != nil {
		return nil, err
	}

	uniqueName, err := s.fileStorage.GenerateUniqueName(originalFilename, ownerUUID)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось сгенерировать имя файла", err)
	}

	ext := filepath.Ext(originalFilename)
	path, size, err := s.fileStorage.Save(content, uniqueName, ext)
	if err != nil {
		return nil, util.LogError("[DocumentService] не удалось сохранить файл", err)
	}

	docType := model.DocumentTypeFromExtension(ext)
	mimeType := s.fileStorage.SniffMimeType(content)

	var metadata model.PDFMetadata
	if docType == model.TypePDF {
		metadata = s.fileStorage.ExtractPDFMetadata(path)
	}

	document := &model.Document{
		UUID:             uuid.New().String(),
		UserUUID:         ownerUUID,
		Filename:         uniqueName,
		OriginalFilename: originalFilename,
		FilePath:         path,
		FileSize:         size,
		FileType:         docType,
		MimeType:         mimeType,
		Status:           model.StatusPending,
		PageCount:        metadata.PageCount,
		WordCount:        metadata.WordCount,
		CreatedAt:        time.Now(),
	}

	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		s.cleanupFile(path)
		return nil, util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}

	if err := s.documentRepository.Create(ctx, exec, document); err != nil {
		if rbErr := rollback(); rbErr != nil {
			log.Printf("[DocumentService] ошибка отката транзакции: %v", rbErr)
		}
		s.cleanupFile(path)
		return nil, util.LogError("[DocumentService] не удалось сохранить документ в БД", err)
	}

	if err := commit(); err != nil {
		s.cleanupFile(path)
		return nil, util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	if err := s.cacheRepository.SetDocument(ctx, document); err != nil {
		log.Printf("[DocumentService] ошибка кэширования документа: %v", err)
	}

	log.Printf("[DocumentService] документ %s успешно загружен как %s", originalFilename, uniqueName)
	return document, nil
}

// GetDocument : возвращает документ владельцу, сначала из кэша
func (s *DocumentService) GetDocument(ctx context.Context, documentUUID, ownerUUID string) (*model.Document, error) {
	cached, err := s.cacheRepository.GetDocument(ctx, documentUUID)
	if err != nil {
		log.Printf("[DocumentService] ошибка чтения из кэша: %v", err)
	}
	if cached != nil {
		// скоупинг по владельцу действует и для кэша
		if cached.UserUUID != ownerUUID {
			return nil, ErrDocumentNotFound
		}
		return cached, nil
	}

	document, err := s.documentRepository.GetByUUID(ctx, s.documentRepository.Exec(), documentUUID, ownerUUID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetDocument(ctx, document); err != nil {
		log.Printf("[DocumentService] ошибка кэширования документа: %v", err)
	}

	return document, nil
}

// ListDocuments : страница документов владельца + полное количество
func (s *DocumentService) ListDocuments(ctx context.Context, ownerUUID string, skip, limit int) ([]model.Document, int, error) {
	exec := s.documentRepository.Exec()

	total, err := s.documentRepository.CountByOwner(ctx, exec, ownerUUID)
	if err != nil {
		return nil, 0, err
	}

	docs, err := s.documentRepository.ListByOwner(ctx, exec, ownerUUID, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// DeleteDocument : сначала удаляется файл (best-effort), затем запись
// Чужой документ -> ErrDocumentNotFound, как и несуществующий
func (s *DocumentService) DeleteDocument(ctx context.Context, documentUUID, ownerUUID string) error {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}

	document, err := s.documentRepository.GetByUUID(ctx, exec, documentUUID, ownerUUID)
	if err != nil {
		if rbErr := rollback(); rbErr != nil {
			log.Printf("[DocumentService] ошибка отката транзакции: %v", rbErr)
		}
		return err
	}

	if !s.fileStorage.Delete(document.FilePath) {
		log.Printf("[DocumentService] файл %s не был удалён", document.FilePath)
	}

	if err := s.documentRepository.Delete(ctx, exec, documentUUID, ownerUUID); err != nil {
		if rbErr := rollback(); rbErr != nil {
			log.Printf("[DocumentService] ошибка отката транзакции: %v", rbErr)
		}
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[DocumentService] не удалось закоммитить транзакцию", err)
	}

	if err := s.cacheRepository.DeleteDocument(ctx, documentUUID); err != nil {
		log.Printf("[DocumentService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

func (s *DocumentService) cleanupFile(path string) {
	if !s.fileStorage.Delete(path) {
		log.Printf("[DocumentService] не удалось убрать осиротевший файл %s", path)
	}
}

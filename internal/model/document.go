package model

import (
	"strings"
	"time"
)

// DocumentStatus : статус обработки документа
// PENDING -> PROCESSING -> {COMPLETED, FAILED}
// Переходы после PENDING выполняет внешний воркер, здесь задан только контракт
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// CanTransition : проверяет допустимость перехода статуса
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	case StatusCompleted, StatusFailed:
		return false
	}
	return false
}

// DocumentType : тип документа, выводится из расширения файла
type DocumentType string

const (
	TypePDF  DocumentType = "pdf"
	TypeDOCX DocumentType = "docx"
	TypeTXT  DocumentType = "txt"
	TypePPTX DocumentType = "pptx"
)

// DocumentTypeFromExtension : определяет тип по расширению (с точкой или без)
// Неизвестное расширение трактуется как PDF — до вызова контент уже проходит валидацию
func DocumentTypeFromExtension(ext string) DocumentType {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return TypePDF
	case "docx":
		return TypeDOCX
	case "txt":
		return TypeTXT
	case "pptx":
		return TypePPTX
	}
	return TypePDF
}

type Document struct {
	UUID             string         `db:"uuid" json:"id"`
	UserUUID         string         `db:"user_uuid" json:"user_id"`
	Filename         string         `db:"filename" json:"filename"`
	OriginalFilename string         `db:"original_filename" json:"original_filename"`
	FilePath         string         `db:"file_path" json:"file_path"`
	FileSize         int64          `db:"file_size" json:"file_size"`
	FileType         DocumentType   `db:"file_type" json:"file_type"`
	MimeType         string         `db:"mime_type" json:"mime_type"`
	Status           DocumentStatus `db:"status" json:"status"`
	ErrorMessage     *string        `db:"error_message" json:"error_message,omitempty"`
	PageCount        *int           `db:"page_count" json:"page_count,omitempty"`
	WordCount        *int           `db:"word_count" json:"word_count,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
	ProcessedAt      *time.Time     `db:"processed_at" json:"processed_at,omitempty"`
}

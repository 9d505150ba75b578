package requestresponse

import (
	"time"

	"rag-platform-server/internal/model"
)

// DocumentResponse : описывает документ для JSON-ответа
type DocumentResponse struct {
	UUID             string `json:"id" example:"qwdj1q4o34u34ih759ou1"`
	Filename         string `json:"filename" example:"20250823_143056_b6a1e1c4_9f86d081aa3b.pdf"`
	OriginalFilename string `json:"original_filename" example:"report.pdf"`
	FileSize         int64  `json:"file_size" example:"204800"`
	FileType         string `json:"file_type" example:"pdf"`
	MimeType         string `json:"mime_type" example:"application/pdf"`
	Status           string `json:"status" example:"pending"`
	PageCount        *int   `json:"page_count,omitempty" example:"5"`
	WordCount        *int   `json:"word_count,omitempty" example:"1200"`
	CreatedAt        string `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

// DocumentResponseFromModel : конвертирует model.Document в DocumentResponse
func DocumentResponseFromModel(doc *model.Document) DocumentResponse {
	return DocumentResponse{
		UUID:             doc.UUID,
		Filename:         doc.Filename,
		OriginalFilename: doc.OriginalFilename,
		FileSize:         doc.FileSize,
		FileType:         string(doc.FileType),
		MimeType:         doc.MimeType,
		Status:           string(doc.Status),
		PageCount:        doc.PageCount,
		WordCount:        doc.WordCount,
		CreatedAt:        doc.CreatedAt.Format(time.RFC3339),
	}
}

// UploadDocumentResponse : ответ на успешную загрузку
type UploadDocumentResponse struct {
	Message  string           `json:"message" example:"Document uploaded successfully. Processing will start shortly."`
	Document DocumentResponse `json:"document"`
}

// ListDocumentsResponse : ответ API со списком документов
// total_count отражает полный набор документов владельца вне зависимости от страницы
type ListDocumentsResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	TotalCount int                `json:"total_count" example:"15"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Document deleted successfully"`
}

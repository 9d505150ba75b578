package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rag-platform-server/internal/model/requestresponse"
	"rag-platform-server/internal/ports"
	"rag-platform-server/internal/security"
	"rag-platform-server/internal/service"
	"rag-platform-server/internal/util"
)

const (
	multipartMemoryLimit = 1 << 20

	defaultListLimit = 100
	maxListLimit     = 100
)

type DocumentHandler struct {
	documentService ports.DocumentService
}

func NewDocumentHandler(documentService ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService}
}

// UploadDocument godoc
// @Summary Загрузка нового документа
// @Description Принимает multipart/form-data файл, сохраняет его на диск и создаёт запись со статусом pending
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл документа (pdf, docx, txt, pptx)"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadDocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Файл не прошёл валидацию"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/upload [post]
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		util.HandleError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	document, err := h.documentService.UploadDocument(ctx, claims.Subject, header.Filename, content)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			util.HandleError(w, validationErr.Message, http.StatusBadRequest)
		default:
			log.Println(err)
			util.HandleError(w, "Failed to process document", http.StatusInternalServerError)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UploadDocumentResponse{
		Message:  "Document uploaded successfully. Processing will start shortly.",
		Document: requestresponse.DocumentResponseFromModel(document),
	})
}

// ListDocuments godoc
// @Summary Список документов пользователя
// @Description Возвращает страницу документов владельца и общее количество
// @Tags Documents
// @Produce json
// @Param skip query int false "Сколько документов пропустить" default(0) minimum(0)
// @Param limit query int false "Размер страницы" default(100) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListDocumentsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/ [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skip := 0
	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		parsed, err := strconv.Atoi(skipStr)
		if err != nil || parsed < 0 {
			util.HandleError(w, "неверное значение skip", http.StatusBadRequest)
			return
		}
		skip = parsed
	}

	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			util.HandleError(w, "неверное значение limit", http.StatusBadRequest)
			return
		}
		if parsed > maxListLimit {
			limit = maxListLimit
		} else {
			limit = parsed
		}
	}

	docs, total, err := h.documentService.ListDocuments(r.Context(), claims.Subject, skip, limit)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	responses := make([]requestresponse.DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, requestresponse.DocumentResponseFromModel(&docs[i]))
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.ListDocumentsResponse{
		Documents:  responses,
		TotalCount: total,
	})
}

// GetDocument godoc
// @Summary Получение документа по ID
// @Description Возвращает документ владельца; чужой или несуществующий ID даёт 404
// @Tags Documents
// @Produce json
// @Param document_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DocumentResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/{document_id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	documentUUID := chi.URLParam(r, "document_id")
	if documentUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	document, err := h.documentService.GetDocument(r.Context(), documentUUID, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			util.HandleError(w, "Document not found", http.StatusNotFound)
		default:
			log.Println(err)
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.DocumentResponseFromModel(document))
}

// DeleteDocument godoc
// @Summary Удаление документа
// @Description Удаляет запись и её файл на диске; чужой или несуществующий ID даёт 404
// @Tags Documents
// @Produce json
// @Param document_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/{document_id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	documentUUID := chi.URLParam(r, "document_id")
	if documentUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), documentUUID, claims.Subject); err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			util.HandleError(w, "Document not found", http.StatusNotFound)
		default:
			log.Println(err)
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{
		Message: "Document deleted successfully",
	})
}

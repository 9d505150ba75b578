package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
)

const (
	defaultMaxFileSize = 10 << 20 // 10 MiB
	sniffLength        = 2048

	// количество страниц, по которым оценивается word count
	wordCountPages = 5
)

var defaultAllowedExtensions = []string{"pdf", "docx", "txt", "pptx"}

var allowedMimeTypes = []string{
	"application/pdf",
	"text/plain",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// FileService : валидация, именование и персистентность загружаемых файлов
// Владеет физической раскладкой хранилища: по поддиректории на каждое
// разрешённое расширение. Конфигурация фиксируется при создании,
// никакого глобального состояния
type FileService struct {
	uploadDir   string
	maxFileSize int64
	allowedExt  map[string]struct{}
}

// NewFileService : создаёт сервис и идемпотентно подготавливает дерево директорий
func NewFileService(cfg *config.StorageConfig) (*FileService, error) {
	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	maxFileSize := cfg.MaxFileSizeMB << 20
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}

	extensions := cfg.AllowedExtensions
	if len(extensions) == 0 {
		extensions = defaultAllowedExtensions
	}

	allowedExt := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowedExt[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("[FileService] ошибка создания директории хранилища: %w", err)
	}
	for ext := range allowedExt {
		if err := os.MkdirAll(filepath.Join(uploadDir, ext), 0755); err != nil {
			return nil, fmt.Errorf("[FileService] ошибка создания поддиректории %s: %w", ext, err)
		}
	}

	return &FileService{
		uploadDir:   uploadDir,
		maxFileSize: maxFileSize,
		allowedExt:  allowedExt,
	}, nil
}

// Validate : проверки по порядку, первая неудавшаяся останавливает остальные
// Любое отклонение — *ValidationError (HTTP 400), не сбой процесса
func (s *FileService) Validate(filename string, content []byte) error {
	if filename == "" {
		return &ValidationError{Message: "No file provided"}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := s.allowedExt[ext]; !ok {
		return &ValidationError{Message: fmt.Sprintf(
			"File type not allowed. Allowed types are: %s", strings.Join(s.allowedExtensions(), ", "))}
	}

	size := int64(len(content))
	if size > s.maxFileSize {
		return &ValidationError{Message: fmt.Sprintf(
			"File size exceeds the maximum limit of %d MB", s.maxFileSize>>20)}
	}

	if size == 0 {
		return &ValidationError{Message: "File is empty"}
	}

	detected := s.detect(content)
	for _, allowed := range allowedMimeTypes {
		if detected.Is(allowed) {
			return nil
		}
	}
	return &ValidationError{Message: fmt.Sprintf("Invalid file type. Detected: %s", detected.String())}
}

// SniffMimeType : определяет фактический тип контента по первым 2048 байтам,
// расширению файла не доверяет
func (s *FileService) SniffMimeType(content []byte) string {
	return s.detect(content).String()
}

func (s *FileService) detect(content []byte) *mimetype.MIME {
	head := content
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	return mimetype.Detect(head)
}

// GenerateUniqueName : <timestamp>_<owner8>_<hash12><ext>
// В хэш, помимо имени файла, владельца и секундной метки, подмешиваются
// случайные байты: два одинаковых запроса в одну секунду не коллидируют
func (s *FileService) GenerateUniqueName(originalFilename, ownerUUID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	timestamp := time.Now().Format("20060102_150405")

	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("[FileService] ошибка генерации случайного суффикса: %w", err)
	}

	sum := sha256.Sum256(append([]byte(originalFilename+ownerUUID+timestamp), nonce...))
	fileHash := hex.EncodeToString(sum[:])[:12]

	ownerPrefix := ownerUUID
	if len(ownerPrefix) > 8 {
		ownerPrefix = ownerPrefix[:8]
	}

	return fmt.Sprintf("%s_%s_%s%s", timestamp, ownerPrefix, fileHash, ext), nil
}

// Save : записывает контент в поддиректорию своего расширения
// O_EXCL ловит случайную коллизию имён вместо молчаливой перезаписи.
// Атомарность с точки зрения вызывающего: либо файл целиком лежит по
// возвращённому пути, либо его нет и возвращается *StorageError
func (s *FileService) Save(content []byte, uniqueName, ext string) (string, int64, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	path := filepath.Join(s.uploadDir, ext, uniqueName)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, &StorageError{Err: err}
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		s.removePartial(path)
		return "", 0, &StorageError{Err: err}
	}

	if err := file.Close(); err != nil {
		s.removePartial(path)
		return "", 0, &StorageError{Err: err}
	}

	return path, int64(len(content)), nil
}

// ExtractPDFMetadata : количество страниц, флаг шифрования, word count по
// первым страницам и Title/Author/Subject из Info-словаря
// Best-effort: любая ошибка извлечения даёт пустые метаданные и никогда
// не мешает загрузке
func (s *FileService) ExtractPDFMetadata(path string) (meta model.PDFMetadata) {
	// библиотека паникует на отдельных повреждённых файлах
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[FileService] ошибка извлечения метаданных PDF %s: %v", path, r)
			meta = model.PDFMetadata{}
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("[FileService] ошибка чтения PDF %s: %v", path, err)
		return model.PDFMetadata{}
	}
	defer file.Close()

	pageCount := reader.NumPage()
	meta.PageCount = &pageCount
	meta.IsEncrypted = !reader.Trailer().Key("Encrypt").IsNull()

	var text strings.Builder
	for i := 1; i <= pageCount && i <= wordCountPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		text.WriteString(" ")
	}
	wordCount := len(strings.Fields(text.String()))
	meta.WordCount = &wordCount

	info := reader.Trailer().Key("Info")
	if info.Kind() == pdf.Dict {
		meta.Title = stringValue(info.Key("Title"))
		meta.Author = stringValue(info.Key("Author"))
		meta.Subject = stringValue(info.Key("Subject"))
	}

	return meta
}

// Delete : удаляет файл, если он существует; true — файл действительно удалён
// Ошибки ФС логируются и дают false: удаление всегда best-effort очистка
func (s *FileService) Delete(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	if err := os.Remove(path); err != nil {
		log.Printf("[FileService] ошибка удаления файла %s: %v", path, err)
		return false
	}

	return true
}

func (s *FileService) removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[FileService] не удалось удалить частично записанный файл %s: %v", path, err)
	}
}

func (s *FileService) allowedExtensions() []string {
	extensions := make([]string, 0, len(s.allowedExt))
	for _, ext := range defaultAllowedExtensions {
		if _, ok := s.allowedExt[ext]; ok {
			extensions = append(extensions, "."+ext)
		}
	}
	for ext := range s.allowedExt {
		known := false
		for _, d := range defaultAllowedExtensions {
			if ext == d {
				known = true
				break
			}
		}
		if !known {
			extensions = append(extensions, "."+ext)
		}
	}
	return extensions
}

func stringValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return v.RawString()
}

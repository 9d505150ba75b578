package model

// PDFMetadata : метаданные, извлечённые из PDF при загрузке
// Извлечение best-effort: при ошибке PageCount и WordCount остаются nil
type PDFMetadata struct {
	PageCount   *int
	WordCount   *int
	IsEncrypted bool
	Title       string
	Author      string
	Subject     string
}

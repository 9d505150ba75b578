package service

import "errors"

// Таксономия ошибок уровня сервисов. Хэндлеры сопоставляют их
// с HTTP-статусами через errors.Is / errors.As.
var (
	// ErrDocumentNotFound : документ отсутствует либо принадлежит другому пользователю;
	// снаружи эти случаи неразличимы
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidCredentials : неверный логин или пароль, причина не детализируется
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInactiveUser : учётная запись деактивирована
	ErrInactiveUser = errors.New("inactive user")

	// ErrUserExists : login или email уже заняты
	ErrUserExists = errors.New("username or email already exists")
)

// ValidationError : отклонение входных данных при загрузке файла, HTTP 400
// Ни одно из таких отклонений не является сбоем системы и не логируется как fault
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError : сбой записи на диск, HTTP 500
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "failed to save file: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

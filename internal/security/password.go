package security

import "golang.org/x/crypto/bcrypt"

// HashPassword : хэширует пароль через bcrypt
// Хэш солёный: два вызова для одного пароля дают разные строки
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword : true, если пароль соответствует хэшу
// Возвращает false и на битом хэше, ошибок наружу не отдаёт
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

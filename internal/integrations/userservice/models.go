package userservice

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`   // RESIDENT | ADMIN
	Status   string `json:"status"` // ACTIVE | BLOCKED
}

// IsBlocked returns true if the user cannot act in the system
func (u *User) IsBlocked() bool {
	return u.Status == "BLOCKED"
}

// RegisterRequest запрос на регистрацию пользователя (walk-in сценарий).
// Пароль передается открытым текстом, хеширование выполняет UserService.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

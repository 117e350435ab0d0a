package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// Идентичность прокидывает gateway после проверки токена.
// Сервис доверяет заголовкам и сам токены не разбирает.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "ADMIN"
)

type authCtxKey string

const (
	userIDKey   authCtxKey = "auth_user_id"
	userRoleKey authCtxKey = "auth_user_role"
)

// Auth требует заголовок X-User-ID и кладет идентичность в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"message":"требуется аутентификация"}`))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, r.Header.Get(HeaderUserRole))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пускает дальше только запросы с ролью ADMIN.
// Вешается после Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":403,"message":"требуются права администратора"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsAdmin проверяет, что запрос выполняет администратор
func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == RoleAdmin
}

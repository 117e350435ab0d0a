package walkin_booking

import "time"

// Request модель запроса на walk-in бронирование с ресепшена
type Request struct {
	Email    string    // Email посетителя
	FullName string    // Имя посетителя (для регистрации нового)
	SpaceID  int64     // ID пространства
	StartsAt time.Time // Начало интервала
	EndsAt   time.Time // Конец интервала (не включается)
}

// Response модель ответа walk-in бронирования.
// TempPassword заполнен только для нового пользователя и показывается
// посетителю один раз.
type Response struct {
	UserID       int64     // ID пользователя (найденного или созданного)
	BookingID    int64     // ID созданного бронирования
	StartsAt     time.Time // Начало интервала
	EndsAt       time.Time // Конец интервала
	Status       string    // Статус бронирования (PENDING)
	ExistingUser bool      // true, если пользователь уже был зарегистрирован
	TempPassword *string   // Временный пароль нового пользователя
}

package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64     // ID пользователя
	SpaceID  int64     // ID пространства
	StartsAt time.Time // Начало интервала
	EndsAt   time.Time // Конец интервала (не включается)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	UserID     int64     // ID пользователя
	SpaceID    int64     // ID пространства
	StartsAt   time.Time // Начало интервала
	EndsAt     time.Time // Конец интервала
	Status     string    // Статус бронирования (PENDING)
	TotalCents int64     // Стоимость, считается внешним биллингом
	CreatedAt  time.Time // Время создания
}

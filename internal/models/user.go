// Package models содержит доменные структуры медицинского дневника,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет пользователя приложения.
type User struct {
	UID          string    // UID пользователя в базе
	Email        string    // Почта для уведомлений
	Username     string    // Уникальное имя пользователя
	PasswordHash string    // bcrypt-хэш пароля
	Role         string    // Роль: "user" или "admin"
	CreatedAt    time.Time // Дата регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`            // Почта пользователя
	Username string `json:"username" validate:"required,alphanum"`      // Имя пользователя
	Password string `json:"password" validate:"required,min=8,max=72"`  // Пароль (bcrypt ограничен 72 байтами)
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required"`          // Пароль
}

package models

import "time"

// Disease представляет запись о заболевании пользователя.
type Disease struct {
	ID          int        // ID записи
	Username    string     // Имя пользователя, которому принадлежит запись
	UserUID     string     // UID пользователя
	Name        string     // Название заболевания
	DiagnosedAt time.Time  // Дата постановки диагноза
	RecoveredAt *time.Time // Дата выздоровления (nil — болезнь текущая)
	Memo        string     // Заметки
}

// RecordDate возвращает дату диагноза для фильтрации по календарной дате.
func (d *Disease) RecordDate() time.Time { return d.DiagnosedAt }

// DummyDisease используется для приёма записи о заболевании из JSON-запроса.
// Даты приходят строками в формате 2006-01-02.
type DummyDisease struct {
	Name        string `json:"name" validate:"required,max=200"`                                // Название заболевания
	DiagnosedAt string `json:"diagnosed_at" validate:"required"`                   // Дата диагноза в формате 2006-01-02
	RecoveredAt string `json:"recovered_at,omitempty" validate:"omitempty"`        // Дата выздоровления в формате 2006-01-02
	Memo        string `json:"memo,omitempty" validate:"omitempty,max=1000"`                    // Заметки
}

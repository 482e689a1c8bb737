package types

import (
	"fmt"
	"time"
)

// DateTimeFormat формат наивной локальной даты-времени (секундная точность)
const DateTimeFormat = "2006-01-02 15:04:05"

// DateFormat формат даты без времени
const DateFormat = "2006-01-02"

// DateTime наивная локальная дата-время в виде строки "YYYY-MM-DD HH:MM:SS".
// Хранится и передаётся без таймзоны, интерпретируется в локальной зоне сервиса.
type DateTime string

// NewDateTime создает DateTime из time.Time
func NewDateTime(t time.Time) DateTime {
	return DateTime(t.Format(DateTimeFormat))
}

// String возвращает строковое представление
func (d DateTime) String() string {
	return string(d)
}

// IsZero проверяет, что значение не задано
func (d DateTime) IsZero() bool {
	return d == ""
}

// Validate проверяет формат значения
func (d DateTime) Validate() error {
	if _, err := time.ParseInLocation(DateTimeFormat, string(d), time.Local); err != nil {
		return fmt.Errorf("invalid datetime %q: must match %q", string(d), DateTimeFormat)
	}
	return nil
}

// Time парсит значение в time.Time в указанной локации
func (d DateTime) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateTimeFormat, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: %v", string(d), err)
	}
	return t, nil
}

// Before сравнивает два значения (лексикографическое сравнение корректно для этого формата)
func (d DateTime) Before(other DateTime) bool {
	return string(d) < string(other)
}

// After сравнивает два значения
func (d DateTime) After(other DateTime) bool {
	return string(d) > string(other)
}

// SanitizeDateTime возвращает нормализованную строку даты-времени или пустую строку
func SanitizeDateTime(raw string) DateTime {
	t, err := time.ParseInLocation(DateTimeFormat, raw, time.Local)
	if err != nil {
		return ""
	}
	return NewDateTime(t)
}

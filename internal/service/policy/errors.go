package policy

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrGroupNotFound возвращается, когда группа бронирований не найдена
	ErrGroupNotFound = errors.New("booking group not found")

	// ErrUnknownStatus возвращается, когда целевой статус не входит в словарь.
	// Это ошибка вызывающего кода, а не бизнес-отказ
	ErrUnknownStatus = errors.New("unknown booking status")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("policy service: internal error")
)

package capacity

import "errors"

var (
	// ErrNoPickedEvents возвращается, когда срез занятости запрошен без событий
	ErrNoPickedEvents = errors.New("no picked events to evaluate")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("capacity service: internal error")
)

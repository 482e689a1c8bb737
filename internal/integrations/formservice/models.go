package formservice

// AvailabilityResponse ответ FormService на проверку доступности события на форме
type AvailabilityResponse struct {
	FormID    int64 `json:"form_id"`
	EventID   int64 `json:"event_id"`
	Available bool  `json:"available"`
}

// ManagedCalendarsResponse ответ FormService со списком управляемых календарей
type ManagedCalendarsResponse struct {
	UserID      int64   `json:"user_id"`
	CalendarIDs []int64 `json:"calendar_ids"`
}

// Form модель формы бронирования из FormService
type Form struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
}

// ErrorResponse модель ошибки от FormService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

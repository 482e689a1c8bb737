package refunds

// Встроенные механизмы возврата
const (
	// ActionEmail запрос возврата письмом, доступен только клиентам
	ActionEmail = "email"
)

// Action описывает доступный механизм возврата для выбранных записей.
// BookingsNb показывает, к скольким из выбранных записей механизм
// применим, чтобы вызывающий слой мог предупредить о частичном покрытии
type Action struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	BookingIDs  []int64 `json:"booking_ids,omitempty"`
	GroupIDs    []int64 `json:"booking_group_ids,omitempty"`
	BookingsNb  int     `json:"bookings_nb"`
	TotalNb     int     `json:"total_nb"`
}

// Selection выбранные бронирования и группы для резолвинга возврата
type Selection struct {
	BookingIDs []int64
	GroupIDs   []int64
}

package reschedule_booking

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	EventID    int64  `json:"eventId"`
	EventStart string `json:"eventStart"`
	EventEnd   string `json:"eventEnd"`
}

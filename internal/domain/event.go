package domain

// Event is an event occurrence template as the reschedule validation sees
// it: which activity it runs and which calendar (template) offers it.
// Capacity per occurrence is queried separately.
type Event struct {
	ID         int64
	ActivityID int64
	TemplateID int64
	Title      string
}

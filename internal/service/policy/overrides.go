package policy

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Overrides реестр именованных переопределений решений политики.
// Расширения регистрируют их до начала обработки запросов, поэтому
// реестр не требует синхронизации
type Overrides struct {
	// AllowOthersChanges переопределяет проверку владельца
	AllowOthersChanges func(actor domain.ActorContext, owner domain.UserIdentity) bool
	// AllowGroupedChanges разрешает менять участника группы отдельно от неё
	AllowGroupedChanges func(booking *domain.Booking) bool
	// BypassDeadline отключает проверку окна изменений для записи
	BypassDeadline func(activityID int64) bool
}

// ownerAllowed проверяет владение записью с учетом переопределения
func (o *Overrides) ownerAllowed(actor domain.ActorContext, owner domain.UserIdentity) bool {
	if o != nil && o.AllowOthersChanges != nil && o.AllowOthersChanges(actor, owner) {
		return true
	}
	return actor.User.Equal(owner)
}

// groupedChangeAllowed проверяет разрешение на отдельное изменение
// участника группы
func (o *Overrides) groupedChangeAllowed(booking *domain.Booking) bool {
	return o != nil && o.AllowGroupedChanges != nil && o.AllowGroupedChanges(booking)
}

// deadlineBypassed проверяет отключение окна изменений
func (o *Overrides) deadlineBypassed(activityID int64) bool {
	return o != nil && o.BypassDeadline != nil && o.BypassDeadline(activityID)
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"form_id",
	"order_id",
	"group_id",
	"activity_id",
	"event_id",
	"event_start",
	"event_end",
	"quantity",
	"status",
	"payment_status",
	"expiration_date",
	"creation_date",
	"active",
}

var groupColumns = []string{
	"id",
	"user_id",
	"form_id",
	"order_id",
	"event_group_id",
	"category_id",
	"group_date",
	"quantity",
	"status",
	"payment_status",
	"expiration_date",
	"creation_date",
	"active",
}

// Repository репозиторий бронирований и групп бронирований.
// Все прочитанные записи проходят нормализацию через domain.SanitizeBooking,
// поэтому наверх всегда уходят валидные статусы и производный флаг active.
type Repository struct {
	db       DBExecutor
	registry *domain.StatusRegistry
	defaults domain.Defaults
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, registry *domain.StatusRegistry, defaults domain.Defaults) *Repository {
	return &Repository{db: db, registry: registry, defaults: defaults}
}

func (r *Repository) scanBooking(row squirrel.RowScanner) (*domain.Booking, error) {
	var (
		raw                       domain.RawBooking
		eventStart, eventEnd      sql.NullTime
		expirationDate, createdAt sql.NullTime
		active                    sql.NullInt64
	)

	err := row.Scan(
		&raw.ID,
		&raw.UserID,
		&raw.FormID,
		&raw.OrderID,
		&raw.GroupID,
		&raw.ActivityID,
		&raw.EventID,
		&eventStart,
		&eventEnd,
		&raw.Quantity,
		&raw.Status,
		&raw.PaymentStatus,
		&expirationDate,
		&createdAt,
		&active,
	)
	if err != nil {
		return nil, err
	}

	raw.EventStart = formatNullTime(eventStart)
	raw.EventEnd = formatNullTime(eventEnd)
	raw.ExpirationDate = formatNullTime(expirationDate)
	raw.CreationDate = formatNullTime(createdAt)
	raw.Active = domain.ActiveUnknown
	if active.Valid {
		raw.Active = int(active.Int64)
	}

	booking := domain.SanitizeBooking(raw, r.registry, r.defaults)
	return &booking, nil
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(types.DateTimeFormat)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}
	return booking, nil
}

// GetGroupByID получает группу бронирований по ID вместе со списком
// входящих в нее событий
func (r *Repository) GetGroupByID(ctx context.Context, id int64) (*domain.BookingGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groupColumns...).
		From("booking_groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		raw                       domain.RawBookingGroup
		groupDate                 sql.NullTime
		expirationDate, createdAt sql.NullTime
		active                    sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&raw.ID,
		&raw.UserID,
		&raw.FormID,
		&raw.OrderID,
		&raw.EventGroupID,
		&raw.CategoryID,
		&groupDate,
		&raw.Quantity,
		&raw.Status,
		&raw.PaymentStatus,
		&expirationDate,
		&createdAt,
		&active,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupByID - scan: %v", ErrScanRow, err)
	}

	raw.GroupDate = formatNullTime(groupDate)
	raw.ExpirationDate = formatNullTime(expirationDate)
	raw.CreationDate = formatNullTime(createdAt)
	raw.Active = domain.ActiveUnknown
	if active.Valid {
		raw.Active = int(active.Int64)
	}

	group := domain.SanitizeBookingGroup(raw, r.registry, r.defaults)

	groupedEvents, err := r.getGroupedEvents(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	group.GroupedEvents = groupedEvents

	return &group, nil
}

func (r *Repository) getGroupedEvents(ctx context.Context, executor DBExecutor, groupID int64) ([]domain.PickedEvent, error) {
	query, args, err := psqlbuilder.Select("event_id", "event_start", "event_end").
		From("booking_group_events").
		Where(squirrel.Eq{"group_id": groupID}).
		OrderBy("event_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getGroupedEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getGroupedEvents - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var events []domain.PickedEvent
	for rows.Next() {
		var (
			event      domain.PickedEvent
			start, end time.Time
		)
		if err := rows.Scan(&event.ID, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: getGroupedEvents - scan: %v", ErrScanRow, err)
		}
		event.Start = types.NewDateTime(start)
		event.End = types.NewDateTime(end)
		event.GroupID = groupID
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getGroupedEvents - rows: %v", ErrScanRow, err)
	}
	return events, nil
}

// GetGroupBookings получает бронирования, входящие в группу
func (r *Repository) GetGroupBookings(ctx context.Context, groupID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"group_id": groupID}).
		OrderBy("event_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupBookings - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetGroupBookings - scan: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetGroupBookings - rows: %v", ErrScanRow, err)
	}
	return bookings, nil
}

// UpdateStatus обновляет статус бронирования и производный флаг active
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("active", boolToInt(active)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, ErrBookingNotFound)
}

// UpdateGroupStatus обновляет статус группы и всех входящих в нее
// бронирований одним логическим изменением
func (r *Repository) UpdateGroupStatus(ctx context.Context, groupID int64, status domain.BookingStatus, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_groups").
		Set("status", string(status)).
		Set("active", boolToInt(active)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateGroupStatus - build update query: %v", ErrBuildQuery, err)
	}
	if err := r.execExpectingRow(ctx, executor, query, args, ErrGroupNotFound); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("active", boolToInt(active)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"group_id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateGroupStatus - build members update query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateGroupStatus - update members: %v", ErrExecQuery, err)
	}
	return nil
}

// UpdateQuantity обновляет количество мест бронирования
func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateQuantity - build update query: %v", ErrBuildQuery, err)
	}
	return r.execExpectingRow(ctx, executor, query, args, ErrBookingNotFound)
}

// UpdateGroupQuantity обновляет количество мест группы и всех ее бронирований
func (r *Repository) UpdateGroupQuantity(ctx context.Context, groupID int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_groups").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateGroupQuantity - build update query: %v", ErrBuildQuery, err)
	}
	if err := r.execExpectingRow(ctx, executor, query, args, ErrGroupNotFound); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Update("bookings").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"group_id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateGroupQuantity - build members update query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateGroupQuantity - update members: %v", ErrExecQuery, err)
	}
	return nil
}

// Reschedule переносит бронирование на другое событие
func (r *Repository) Reschedule(ctx context.Context, id int64, eventID int64, start, end types.DateTime) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	startTime, err := start.Time(nil)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - invalid start: %v", ErrBuildQuery, err)
	}
	endTime, err := end.Time(nil)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - invalid end: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("event_id", eventID).
		Set("event_start", startTime).
		Set("event_end", endTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}
	return r.execExpectingRow(ctx, executor, query, args, ErrBookingNotFound)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, notFound error) error {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

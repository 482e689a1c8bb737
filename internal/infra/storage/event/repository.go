package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий событий и срезов занятости их вхождений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "activity_id", "template_id", "title").
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var event domain.Event
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.ActivityID,
		&event.TemplateID,
		&event.Title,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}
	return &event, nil
}

// GetCapacityAndActiveBookings возвращает сырой срез занятости одного
// вхождения события: его вместимость и активное забронированное
// количество по каждому пользователю
func (r *Repository) GetCapacityAndActiveBookings(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("availability").
		From("events").
		Where(squirrel.Eq{"id": picked.ID}).
		ToSql()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - build capacity query: %v", ErrBuildQuery, err)
	}

	var capacity int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&capacity)
	if err == sql.ErrNoRows {
		return 0, nil, ErrEventNotFound
	}
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - scan capacity: %v", ErrScanRow, err)
	}

	startTime, err := picked.Start.Time(nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - invalid start: %v", ErrBuildQuery, err)
	}
	endTime, err := picked.End.Time(nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - invalid end: %v", ErrBuildQuery, err)
	}

	query, args, err = psqlbuilder.Select("user_id", "SUM(quantity) AS quantity").
		From("bookings").
		Where(squirrel.Eq{
			"event_id":    picked.ID,
			"event_start": startTime,
			"event_end":   endTime,
			"active":      1,
		}).
		GroupBy("user_id").
		ToSql()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - build bookings query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - execute bookings query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	activeByUser := make(map[string]int)
	for rows.Next() {
		var (
			userID   string
			quantity int
		)
		if err := rows.Scan(&userID, &quantity); err != nil {
			return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - scan bookings: %v", ErrScanRow, err)
		}
		if key := domain.ParseUserIdentity(userID).Key(); key != "" {
			activeByUser[key] += quantity
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: GetCapacityAndActiveBookings - rows: %v", ErrScanRow, err)
	}

	return capacity, activeByUser, nil
}

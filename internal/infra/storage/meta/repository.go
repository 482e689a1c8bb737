package meta

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Типы объектов, к которым привязаны метаданные
const (
	objectTypeActivity = "activity"
	objectTypeCategory = "group_category"
)

// Repository репозиторий key-value метаданных активностей и категорий групп.
// Отсутствующие или некорректные значения не являются ошибкой: парсинг
// в domain.ParseActivityMeta приводит их к безопасным значениям по умолчанию.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория метаданных
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) getMeta(ctx context.Context, objectType string, objectID int64) (map[string]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("meta_key", "meta_value").
		From("object_meta").
		Where(squirrel.Eq{"object_type": objectType, "object_id": objectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getMeta - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMeta - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: getMeta - scan: %v", ErrScanRow, err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMeta - rows: %v", ErrScanRow, err)
	}
	return values, nil
}

// GetActivityMeta возвращает настройки активности.
// activityID = 0 означает отсутствие активности - возвращаются значения по умолчанию.
func (r *Repository) GetActivityMeta(ctx context.Context, activityID int64) (domain.ActivityMeta, error) {
	if activityID <= 0 {
		return domain.ActivityMeta{}, nil
	}
	raw, err := r.getMeta(ctx, objectTypeActivity, activityID)
	if err != nil {
		return domain.ActivityMeta{}, err
	}
	return domain.ParseActivityMeta(raw), nil
}

// GetCategoryMeta возвращает настройки категории групп событий
func (r *Repository) GetCategoryMeta(ctx context.Context, categoryID int64) (domain.ActivityMeta, error) {
	if categoryID <= 0 {
		return domain.ActivityMeta{}, nil
	}
	raw, err := r.getMeta(ctx, objectTypeCategory, categoryID)
	if err != nil {
		return domain.ActivityMeta{}, err
	}
	return domain.ParseActivityMeta(raw), nil
}

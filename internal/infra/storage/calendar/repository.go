package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Repository репозиторий календарной конфигурации и справочника услуг.
// Конфигурация - slowly-changing reference data: движок читает её,
// мутации идут только через административные ручки.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig получает календарную конфигурацию вместе с часами работы и праздниками.
// Конфигурация хранится одной строкой (единый календарь бизнеса).
func (r *Repository) GetConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"timezone",
		"slot_interval_minutes",
		"lead_time_minutes",
		"buffer_minutes",
		"hold_ttl_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("calendar_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.CalendarConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Timezone,
		&cfg.SlotIntervalMinutes,
		&cfg.LeadTimeMinutes,
		&cfg.BufferMinutes,
		&cfg.HoldTTLMinutes,
		&cfg.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	if err := r.loadHours(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := r.loadHolidays(ctx, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UpdateConfig полностью заменяет календарную конфигурацию, часы и праздники.
// Вызывается административным usecase внутри транзакции.
func (r *Repository) UpdateConfig(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendar_config").
		Set("timezone", cfg.Timezone).
		Set("slot_interval_minutes", cfg.SlotIntervalMinutes).
		Set("lead_time_minutes", cfg.LeadTimeMinutes).
		Set("buffer_minutes", cfg.BufferMinutes).
		Set("hold_ttl_minutes", cfg.HoldTTLMinutes).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	if err := r.replaceHours(ctx, cfg); err != nil {
		return nil, err
	}
	if err := r.replaceHolidays(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"service_type",
		"duration_minutes",
		"base_price",
		"active",
		"lead_time_minutes",
		"buffer_minutes",
		"open_override",
		"close_override",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var openOverride, closeOverride sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.ServiceType,
		&svc.DurationMinutes,
		&svc.BasePrice,
		&svc.Active,
		&svc.LeadTimeMinutes,
		&svc.BufferMinutes,
		&openOverride,
		&closeOverride,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	if openOverride.Valid {
		ts := types.TimeString(openOverride.String)
		svc.OpenOverride = &ts
	}
	if closeOverride.Valid {
		ts := types.TimeString(closeOverride.String)
		svc.CloseOverride = &ts
	}
	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

func (r *Repository) loadHours(ctx context.Context, cfg *domain.CalendarConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From("calendar_hours").
		Where(squirrel.Eq{"config_id": cfg.ID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var isOpen bool
		var openTime, closeTime sql.NullString

		if err := rows.Scan(&weekday, &isOpen, &openTime, &closeTime); err != nil {
			return fmt.Errorf("%w: loadHours - scan row: %v", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			continue
		}

		cfg.Hours[weekday] = domain.DayHours{
			IsOpen: isOpen,
			Open:   types.TimeString(openTime.String),
			Close:  types.TimeString(closeTime.String),
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadHours - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadHolidays(ctx context.Context, cfg *domain.CalendarConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("holiday_date").
		From("calendar_holidays").
		Where(squirrel.Eq{"config_id": cfg.ID}).
		OrderBy("holiday_date ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]string, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return fmt.Errorf("%w: loadHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, day.Format(domain.DateFormat))
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadHolidays - rows error: %v", ErrScanRow, err)
	}

	cfg.Holidays = holidays
	return nil
}

func (r *Repository) replaceHours(ctx context.Context, cfg *domain.CalendarConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_hours").
		Where(squirrel.Eq{"config_id": cfg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute delete: %v", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert("calendar_hours").
		Columns("config_id", "weekday", "is_open", "open_time", "close_time")
	for weekday, hours := range cfg.Hours {
		var open, close interface{}
		if hours.IsOpen {
			open, close = hours.Open.String(), hours.Close.String()
		}
		insert = insert.Values(cfg.ID, weekday, hours.IsOpen, open, close)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) replaceHolidays(ctx context.Context, cfg *domain.CalendarConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_holidays").
		Where(squirrel.Eq{"config_id": cfg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHolidays - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHolidays - execute delete: %v", ErrExecQuery, err)
	}

	if len(cfg.Holidays) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("calendar_holidays").Columns("config_id", "holiday_date")
	for _, day := range cfg.Holidays {
		insert = insert.Values(cfg.ID, day)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHolidays - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHolidays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

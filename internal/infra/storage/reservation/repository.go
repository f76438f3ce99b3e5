package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Код unique_violation в PostgreSQL
const pgUniqueViolation = "23505"

// Repository репозиторий резервов слотов.
// Резерв - time-boxed hold: ровно один переход из held в терминальный статус,
// воскрешение запрещено, expires_at никогда не продлевается.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резервов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новый hold. Частичный уникальный индекс
// (service_id, slot_key) WHERE status = 'held' - страховка хранилища
// поверх сериализуемой транзакции: второй конкурентный insert на тот же слот
// падает с unique_violation и мапится в ErrDuplicateSlot.
func (r *Repository) Create(ctx context.Context, resv *domain.SlotReservation) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns(
			"service_id",
			"scheduled_at",
			"duration_minutes",
			"slot_key",
			"holder_token",
			"status",
			"expires_at",
		).
		Values(
			resv.ServiceID,
			resv.ScheduledAt.UTC(),
			resv.DurationMinutes,
			resv.SlotKey,
			resv.HolderToken,
			resv.Status,
			resv.ExpiresAt.UTC(),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	resv.CreatedAt = createdAt.Time
	resv.UpdatedAt = updatedAt.Time

	return resv, nil
}

// GetByID получает резерв по ID.
// Внутри транзакции читает с FOR UPDATE - конвертация блокирует строку.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	resv, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return resv, nil
}

// GetActiveInRange получает живые holds услуги в окне [from, to):
// status = held И expires_at > now. Протухшие резервы отфильтровываются
// прямо в запросе - они перестают блокировать сразу, без ожидания уборки.
// Внутри транзакции добавляет FOR UPDATE.
func (r *Repository) GetActiveInRange(ctx context.Context, serviceID int64, from, to, now time.Time) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": domain.ReservationHeld}).
		Where(squirrel.Gt{"expires_at": now.UTC()}).
		Where(squirrel.GtOrEq{"scheduled_at": from.UTC()}).
		Where(squirrel.Lt{"scheduled_at": to.UTC()}).
		OrderBy("scheduled_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// MarkConverted переводит резерв held → converted.
// WHERE status = 'held' гарантирует ровно один переход из held:
// повторная конвертация или конвертация после release/expire вернет ErrNotHeld.
func (r *Repository) MarkConverted(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.ReservationConverted, "MarkConverted")
}

// MarkReleased переводит резерв held → released.
// Нулевое число затронутых строк - штатный no-op (идемпотентный release).
func (r *Repository) MarkReleased(ctx context.Context, id int64) error {
	err := r.transition(ctx, id, domain.ReservationReleased, "MarkReleased")
	if errors.Is(err, ErrNotHeld) {
		return nil
	}
	return err
}

// ExpireOverdueBySlot переводит просроченные holds одного слота в expired.
// Вызывается перед вставкой нового резерва: освобождает частичный уникальный
// индекс (service_id, slot_key), не дожидаясь фоновой уборки.
func (r *Repository) ExpireOverdueBySlot(ctx context.Context, serviceID int64, slotKey string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_reservations").
		Set("status", domain.ReservationExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"slot_key": slotKey}).
		Where(squirrel.Eq{"status": domain.ReservationHeld}).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ExpireOverdueBySlot - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ExpireOverdueBySlot - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ExpireOverdue переводит все просроченные holds в expired и возвращает их -
// вызывающий публикует события и сбрасывает кеш по затронутым (service, date).
func (r *Repository) ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_reservations").
		Set("status", domain.ReservationExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.ReservationHeld}).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()}).
		Suffix("RETURNING id, service_id, scheduled_at, duration_minutes, slot_key, holder_token, status, expires_at, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *Repository) transition(ctx context.Context, id int64, to domain.ReservationStatus, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReservationHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotHeld
	}

	return nil
}

func selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"service_id",
		"scheduled_at",
		"duration_minutes",
		"slot_key",
		"holder_token",
		"status",
		"expires_at",
		"created_at",
		"updated_at",
	).From("slot_reservations")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.SlotReservation, error) {
	var resv domain.SlotReservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&resv.ID,
		&resv.ServiceID,
		&resv.ScheduledAt,
		&resv.DurationMinutes,
		&resv.SlotKey,
		&resv.HolderToken,
		&resv.Status,
		&resv.ExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	resv.ScheduledAt = resv.ScheduledAt.UTC()
	resv.ExpiresAt = resv.ExpiresAt.UTC()
	resv.CreatedAt = createdAt.Time
	resv.UpdatedAt = updatedAt.Time

	return &resv, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.SlotReservation, error) {
	reservations := make([]*domain.SlotReservation, 0)

	for rows.Next() {
		resv, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, resv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) absence.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday absence.Holiday) (absence.Holiday, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, description)
		VALUES (uuidv7(), $1, $2)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, holiday.Date, holiday.Description).Scan(&holiday.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return absence.Holiday{}, absence.ErrHolidayExists
		}
		return absence.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday, nil
}

func (r *holidayRepositoryImpl) GetByDateRange(ctx context.Context, start, end time.Time) ([]absence.Holiday, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, description
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []absence.Holiday
	for rows.Next() {
		var h absence.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Description); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return holidays, nil
}

func (r *holidayRepositoryImpl) List(ctx context.Context) ([]absence.Holiday, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, date, description FROM holidays ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []absence.Holiday
	for rows.Next() {
		var h absence.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Description); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return holidays, nil
}

func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return absence.ErrHolidayNotFound
	}

	return nil
}

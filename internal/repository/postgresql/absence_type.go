package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
)

type typeRepositoryImpl struct {
	db *database.DB
}

func NewTypeRepository(db *database.DB) absence.TypeRepository {
	return &typeRepositoryImpl{db: db}
}

func (r *typeRepositoryImpl) Create(ctx context.Context, absenceType absence.AbsenceType) (absence.AbsenceType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_types (
			id, name, description, max_days, day_policy,
			requires_justification, require_chargeable_days, deducts_allotment
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		absenceType.Name, absenceType.Description, absenceType.MaxDays, absenceType.DayPolicy,
		absenceType.RequiresJustification, absenceType.RequireChargeableDays, absenceType.DeductsAllotment,
	).Scan(&absenceType.ID, &absenceType.CreatedAt, &absenceType.UpdatedAt)
	if err != nil {
		return absence.AbsenceType{}, fmt.Errorf("failed to create absence type: %w", err)
	}

	return absenceType, nil
}

func (r *typeRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, max_days, day_policy,
			   requires_justification, require_chargeable_days, deducts_allotment,
			   created_at, updated_at
		FROM absence_types
		WHERE id = $1
	`

	var at absence.AbsenceType
	err := q.QueryRow(ctx, query, id).Scan(
		&at.ID, &at.Name, &at.Description, &at.MaxDays, &at.DayPolicy,
		&at.RequiresJustification, &at.RequireChargeableDays, &at.DeductsAllotment,
		&at.CreatedAt, &at.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to get absence type: %w", err)
	}

	return at, nil
}

func (r *typeRepositoryImpl) List(ctx context.Context) ([]absence.AbsenceType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, max_days, day_policy,
			   requires_justification, require_chargeable_days, deducts_allotment,
			   created_at, updated_at
		FROM absence_types
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence types: %w", err)
	}
	defer rows.Close()

	var types []absence.AbsenceType
	for rows.Next() {
		var at absence.AbsenceType
		err := rows.Scan(
			&at.ID, &at.Name, &at.Description, &at.MaxDays, &at.DayPolicy,
			&at.RequiresJustification, &at.RequireChargeableDays, &at.DeductsAllotment,
			&at.CreatedAt, &at.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types = append(types, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return types, nil
}

func (r *typeRepositoryImpl) Update(ctx context.Context, absenceType absence.AbsenceType) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_types
		SET name = $1, description = $2, max_days = $3, day_policy = $4,
			requires_justification = $5, require_chargeable_days = $6,
			deducts_allotment = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		absenceType.Name, absenceType.Description, absenceType.MaxDays, absenceType.DayPolicy,
		absenceType.RequiresJustification, absenceType.RequireChargeableDays,
		absenceType.DeductsAllotment, absenceType.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.ErrAbsenceTypeNotFound
		}
		return fmt.Errorf("failed to update absence type: %w", err)
	}

	return nil
}

func (r *typeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM absence_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence type: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return absence.ErrAbsenceTypeNotFound
	}

	return nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
)

type approverRepositoryImpl struct {
	db *database.DB
}

func NewApproverRepository(db *database.DB) user.ApproverRepository {
	return &approverRepositoryImpl{db: db}
}

func (r *approverRepositoryImpl) Assign(ctx context.Context, subordinateID, approverID string) (user.ApproverAssignment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approver_assignments (id, subordinate_id, approver_id)
		VALUES (uuidv7(), $1, $2)
		RETURNING id, assigned_at
	`

	assignment := user.ApproverAssignment{
		SubordinateID: subordinateID,
		ApproverID:    approverID,
	}
	err := q.QueryRow(ctx, query, subordinateID, approverID).Scan(&assignment.ID, &assignment.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return user.ApproverAssignment{}, user.ErrAssignmentExists
			case "23503":
				return user.ApproverAssignment{}, user.ErrUserNotFound
			}
		}
		return user.ApproverAssignment{}, fmt.Errorf("failed to assign approver: %w", err)
	}

	return assignment, nil
}

func (r *approverRepositoryImpl) Remove(ctx context.Context, subordinateID, approverID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		DELETE FROM approver_assignments
		WHERE subordinate_id = $1 AND approver_id = $2
	`

	commandTag, err := q.Exec(ctx, query, subordinateID, approverID)
	if err != nil {
		return fmt.Errorf("failed to remove approver assignment: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrAssignmentNotFound
	}

	return nil
}

func (r *approverRepositoryImpl) ApproversOf(ctx context.Context, subordinateID string) ([]user.User, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.annual_allotment,
			   u.joined_at, u.created_at, u.updated_at
		FROM approver_assignments aa
		JOIN users u ON aa.approver_id = u.id
		WHERE aa.subordinate_id = $1
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, subordinateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvers: %w", err)
	}
	defer rows.Close()

	var approvers []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approver: %w", err)
		}
		approvers = append(approvers, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return approvers, nil
}

func (r *approverRepositoryImpl) SubordinateIDsOf(ctx context.Context, approverID string) ([]string, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT subordinate_id
		FROM approver_assignments
		WHERE approver_id = $1
	`

	rows, err := q.Query(ctx, query, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subordinates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subordinate id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

func (r *approverRepositoryImpl) IsApproverFor(ctx context.Context, approverID, subordinateID string) (bool, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM approver_assignments
			WHERE approver_id = $1 AND subordinate_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, approverID, subordinateID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approver assignment: %w", err)
	}

	return exists, nil
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) absence.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// requestTable maps a category to its table. Both tables share the
// versioning columns; leave_requests additionally carries absence_type_id.
func requestTable(category absence.Category) string {
	if category == absence.CategoryLeave {
		return "leave_requests"
	}
	return "vacation_requests"
}

func (r *requestRepositoryImpl) LockOwner(ctx context.Context, ownerID string) error {
	q := database.GetQuerier(ctx, r.db)

	// Advisory lock keyed on the owner serializes concurrent submissions
	// and cancellations for one user; released at transaction end.
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to acquire owner lock: %w", err)
	}
	return nil
}

func (r *requestRepositoryImpl) Insert(ctx context.Context, request absence.Request) (absence.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	if request.Category == absence.CategoryLeave {
		query := `
			INSERT INTO leave_requests (
				id, group_id, version, is_current, rectification_note,
				owner_id, absence_type_id,
				start_date, end_date, days_requested, reason,
				status, requested_at, responded_at, approver_id, decision_comment,
				calendar_event_id
			) VALUES (
				uuidv7(), $1, $2, $3, $4,
				$5, $6,
				$7, $8, $9, $10,
				$11, NOW(), $12, $13, $14,
				$15
			) RETURNING id, requested_at
		`
		err := q.QueryRow(ctx, query,
			request.GroupID, request.Version, request.IsCurrent, request.RectificationNote,
			request.OwnerID, request.AbsenceTypeID,
			request.StartDate, request.EndDate, request.DaysRequested, request.Reason,
			request.Status, request.RespondedAt, request.ApproverID, request.DecisionComment,
			request.CalendarEventID,
		).Scan(&request.ID, &request.RequestedAt)
		if err != nil {
			return absence.Request{}, fmt.Errorf("failed to insert leave request: %w", err)
		}
		return request, nil
	}

	query := `
		INSERT INTO vacation_requests (
			id, group_id, version, is_current, rectification_note,
			owner_id,
			start_date, end_date, days_requested, reason,
			status, requested_at, responded_at, approver_id, decision_comment,
			calendar_event_id
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5,
			$6, $7, $8, $9,
			$10, NOW(), $11, $12, $13,
			$14
		) RETURNING id, requested_at
	`
	err := q.QueryRow(ctx, query,
		request.GroupID, request.Version, request.IsCurrent, request.RectificationNote,
		request.OwnerID,
		request.StartDate, request.EndDate, request.DaysRequested, request.Reason,
		request.Status, request.RespondedAt, request.ApproverID, request.DecisionComment,
		request.CalendarEventID,
	).Scan(&request.ID, &request.RequestedAt)
	if err != nil {
		return absence.Request{}, fmt.Errorf("failed to insert vacation request: %w", err)
	}
	return request, nil
}

// selectColumns is the shared projection for both request tables. Vacation
// rows project NULL for the absence type columns so scans line up.
func selectColumns(category absence.Category) string {
	if category == absence.CategoryLeave {
		return `
			SELECT r.id, r.group_id, r.version, r.is_current, r.rectification_note,
				   r.owner_id, r.absence_type_id,
				   r.start_date, r.end_date, r.days_requested, r.reason,
				   r.status, r.requested_at, r.responded_at, r.approver_id, r.decision_comment,
				   r.calendar_event_id,
				   at.name as absence_type_name,
				   u.name as owner_name
			FROM leave_requests r
			LEFT JOIN absence_types at ON r.absence_type_id = at.id
			JOIN users u ON r.owner_id = u.id
		`
	}
	return `
		SELECT r.id, r.group_id, r.version, r.is_current, r.rectification_note,
			   r.owner_id, NULL::text,
			   r.start_date, r.end_date, r.days_requested, r.reason,
			   r.status, r.requested_at, r.responded_at, r.approver_id, r.decision_comment,
			   r.calendar_event_id,
			   NULL::text as absence_type_name,
			   u.name as owner_name
		FROM vacation_requests r
		JOIN users u ON r.owner_id = u.id
	`
}

func scanRequest(row pgx.Row, category absence.Category) (absence.Request, error) {
	var req absence.Request
	req.Category = category

	err := row.Scan(
		&req.ID, &req.GroupID, &req.Version, &req.IsCurrent, &req.RectificationNote,
		&req.OwnerID, &req.AbsenceTypeID,
		&req.StartDate, &req.EndDate, &req.DaysRequested, &req.Reason,
		&req.Status, &req.RequestedAt, &req.RespondedAt, &req.ApproverID, &req.DecisionComment,
		&req.CalendarEventID,
		&req.AbsenceTypeName,
		&req.OwnerName,
	)
	if err != nil {
		return absence.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, category absence.Category, id string) (absence.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := selectColumns(category) + ` WHERE r.id = $1`
	req, err := scanRequest(q.QueryRow(ctx, query, id), category)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.Request{}, absence.ErrRequestNotFound
		}
		return absence.Request{}, fmt.Errorf("failed to get %s request: %w", category, err)
	}
	return req, nil
}

func (r *requestRepositoryImpl) RetireCurrent(ctx context.Context, category absence.Category, groupID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s
		SET is_current = false
		WHERE group_id = $1 AND is_current = true
	`, requestTable(category))

	commandTag, err := q.Exec(ctx, query, groupID)
	if err != nil {
		return fmt.Errorf("failed to retire current version of group %s: %w", groupID, err)
	}
	if commandTag.RowsAffected() != 1 {
		return absence.ErrRequestNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, params absence.UpdateStatusParams) error {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, approver_id = $2, responded_at = $3, decision_comment = $4
		WHERE id = $5 AND is_current = true
		RETURNING id
	`, requestTable(params.Category))

	var updatedID string
	err := q.QueryRow(ctx, query,
		params.Status, params.ApproverID, params.RespondedAt, params.DecisionComment, params.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update status for request %s: %w", params.ID, err)
	}
	return nil
}

func (r *requestRepositoryImpl) SetCalendarEventID(ctx context.Context, category absence.Category, id, eventID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s
		SET calendar_event_id = $1
		WHERE id = $2
		RETURNING id
	`, requestTable(category))

	var updatedID string
	if err := q.QueryRow(ctx, query, eventID, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return absence.ErrRequestNotFound
		}
		return fmt.Errorf("failed to set calendar event for request %s: %w", id, err)
	}
	return nil
}

func (r *requestRepositoryImpl) HasOverlap(ctx context.Context, oq absence.OverlapQuery) (bool, error) {
	q := database.GetQuerier(ctx, r.db)

	// Inclusive bounds on both sides: touching ranges count as overlap.
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1
			FROM %s
			WHERE owner_id = $1
			AND is_current = true
			AND status IN ('pending', 'approved')
			AND start_date <= $2
			AND end_date >= $3
			AND ($4::uuid IS NULL OR id <> $4)
		)
	`, requestTable(oq.Category))

	var exists bool
	err := q.QueryRow(ctx, query, oq.OwnerID, oq.EndDate, oq.StartDate, oq.ExcludeRequestID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping %s requests: %w", oq.Category, err)
	}
	return exists, nil
}

func (r *requestRepositoryImpl) SumApprovedVacationDays(ctx context.Context, ownerID string) (int, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days_requested), 0)
		FROM vacation_requests
		WHERE owner_id = $1
		AND is_current = true
		AND status = 'approved'
	`

	var total int
	if err := q.QueryRow(ctx, query, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved vacation days: %w", err)
	}
	return total, nil
}

func (r *requestRepositoryImpl) listBoth(ctx context.Context, where string, args ...interface{}) ([]absence.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	var requests []absence.Request
	for _, category := range []absence.Category{absence.CategoryVacation, absence.CategoryLeave} {
		query := selectColumns(category) + where + ` ORDER BY r.requested_at DESC`

		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s requests: %w", category, err)
		}

		for rows.Next() {
			req, err := scanRequest(rows, category)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s request: %w", category, err)
			}
			requests = append(requests, req)
		}
		rowsErr := rows.Err()
		rows.Close()
		if rowsErr != nil {
			return nil, fmt.Errorf("rows iteration error: %w", rowsErr)
		}
	}

	return requests, nil
}

func (r *requestRepositoryImpl) ListActiveByOwner(ctx context.Context, ownerID string) ([]absence.Request, error) {
	return r.listBoth(ctx, `
		WHERE r.owner_id = $1
		AND r.is_current = true
		AND r.status IN ('pending', 'approved')
	`, ownerID)
}

func (r *requestRepositoryImpl) ListPendingForOwners(ctx context.Context, ownerIDs []string) ([]absence.Request, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	return r.listBoth(ctx, `
		WHERE r.owner_id = ANY($1)
		AND r.is_current = true
		AND r.status = 'pending'
	`, ownerIDs)
}

func (r *requestRepositoryImpl) ListApproved(ctx context.Context) ([]absence.Request, error) {
	return r.listBoth(ctx, `
		WHERE r.is_current = true
		AND r.status = 'approved'
	`)
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// RequestFilter captures search parameters for maintenance requests.
// SearchTerm matches the request subject and the equipment name.
type RequestFilter struct {
	RequesterID   *int64
	TeamID        *int64
	TechnicianID  *int64
	EquipmentID   *int64
	Statuses      []domain.RequestStatus
	Types         []domain.RequestType
	Priorities    []domain.RequestPriority
	SearchTerm    *string
	ScheduledOnly bool
	Limit         int
	Offset        int
}

// RequestRepository encapsulates maintenance request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.MaintenanceRequest) error
	Update(ctx context.Context, request *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.MaintenanceRequest, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates the repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `r.id, r.subject, r.description, r.request_type, r.equipment_id, r.team_id,
       r.technician_id, r.requester_id, r.priority, r.status, r.scheduled_date,
       r.completed_date, r.duration_hours, r.created_at, r.updated_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	const query = `
        INSERT INTO maintenance_requests
            (subject, description, request_type, equipment_id, team_id, technician_id,
             requester_id, priority, status, scheduled_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.Subject,
		request.Description,
		request.Type,
		request.EquipmentID,
		request.TeamID,
		request.TechnicianID,
		request.RequesterID,
		request.Priority,
		request.Status,
		request.ScheduledDate,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) Update(ctx context.Context, request *domain.MaintenanceRequest) error {
	const query = `
        UPDATE maintenance_requests
        SET subject=$1, description=$2, request_type=$3, team_id=$4, technician_id=$5,
            priority=$6, status=$7, scheduled_date=$8, completed_date=$9,
            duration_hours=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		request.Subject,
		request.Description,
		request.Type,
		request.TeamID,
		request.TechnicianID,
		request.Priority,
		request.Status,
		request.ScheduledDate,
		request.CompletedDate,
		request.DurationHours,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_requests r WHERE r.id=$1`, requestColumns)
	var request domain.MaintenanceRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.Subject,
		&request.Description,
		&request.Type,
		&request.EquipmentID,
		&request.TeamID,
		&request.TechnicianID,
		&request.RequesterID,
		&request.Priority,
		&request.Status,
		&request.ScheduledDate,
		&request.CompletedDate,
		&request.DurationHours,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.MaintenanceRequest, error) {
	base := fmt.Sprintf(`SELECT %s FROM maintenance_requests r
             LEFT JOIN equipment e ON e.id = r.equipment_id`, requestColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("r.requester_id=$%d", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		clauses = append(clauses, fmt.Sprintf("r.team_id=$%d", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("r.technician_id=$%d", len(args)))
	}
	if filter.EquipmentID != nil {
		args = append(args, *filter.EquipmentID)
		clauses = append(clauses, fmt.Sprintf("r.equipment_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("r.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("r.request_type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("r.priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(r.subject) LIKE %s OR LOWER(e.name) LIKE %s)", placeholder, placeholder))
	}
	if filter.ScheduledOnly {
		clauses = append(clauses, "r.scheduled_date IS NOT NULL")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY r.updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.MaintenanceRequest, error) {
	var result []domain.MaintenanceRequest
	for rows.Next() {
		var request domain.MaintenanceRequest
		if err := rows.Scan(
			&request.ID,
			&request.Subject,
			&request.Description,
			&request.Type,
			&request.EquipmentID,
			&request.TeamID,
			&request.TechnicianID,
			&request.RequesterID,
			&request.Priority,
			&request.Status,
			&request.ScheduledDate,
			&request.CompletedDate,
			&request.DurationHours,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

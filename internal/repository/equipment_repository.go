package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// EquipmentFilter captures equipment search parameters. SearchTerm matches
// name and serial number. Equipment has no role-based row scoping.
type EquipmentFilter struct {
	SearchTerm   *string
	Status       *domain.EquipmentStatus
	DepartmentID *int64
	CategoryID   *int64
	TeamID       *int64
	Limit        int
	Offset       int
}

// EquipmentRepository manages persistence for equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	Update(ctx context.Context, equipment *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ListWithFilter(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error)
	SetStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository constructs the repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

const equipmentColumns = `id, name, serial_number, description, category_id, department_id,
       location_id, team_id, default_technician_id, status, created_at, updated_at`

func (r *equipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        INSERT INTO equipment
            (name, serial_number, description, category_id, department_id, location_id,
             team_id, default_technician_id, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		equipment.Name,
		equipment.SerialNumber,
		equipment.Description,
		equipment.CategoryID,
		equipment.DepartmentID,
		equipment.LocationID,
		equipment.TeamID,
		equipment.DefaultTechnicianID,
		equipment.Status,
	).Scan(&equipment.ID, &equipment.CreatedAt, &equipment.UpdatedAt)
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        UPDATE equipment
        SET name=$1, serial_number=$2, description=$3, category_id=$4, department_id=$5,
            location_id=$6, team_id=$7, default_technician_id=$8, status=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		equipment.Name,
		equipment.SerialNumber,
		equipment.Description,
		equipment.CategoryID,
		equipment.DepartmentID,
		equipment.LocationID,
		equipment.TeamID,
		equipment.DefaultTechnicianID,
		equipment.Status,
		equipment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE id=$1`, equipmentColumns)
	var equipment domain.Equipment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&equipment.ID,
		&equipment.Name,
		&equipment.SerialNumber,
		&equipment.Description,
		&equipment.CategoryID,
		&equipment.DepartmentID,
		&equipment.LocationID,
		&equipment.TeamID,
		&equipment.DefaultTechnicianID,
		&equipment.Status,
		&equipment.CreatedAt,
		&equipment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) ListWithFilter(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error) {
	base := fmt.Sprintf(`SELECT %s FROM equipment`, equipmentColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		clauses = append(clauses, fmt.Sprintf("team_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(serial_number) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Equipment
	for rows.Next() {
		var equipment domain.Equipment
		if err := rows.Scan(
			&equipment.ID,
			&equipment.Name,
			&equipment.SerialNumber,
			&equipment.Description,
			&equipment.CategoryID,
			&equipment.DepartmentID,
			&equipment.LocationID,
			&equipment.TeamID,
			&equipment.DefaultTechnicianID,
			&equipment.Status,
			&equipment.CreatedAt,
			&equipment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, equipment)
	}
	return result, rows.Err()
}

func (r *equipmentRepository) SetStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error {
	const query = `UPDATE equipment SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// ActivityRepository stores the immutable audit trail of request changes.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.RequestActivity) error
	ListByRequest(ctx context.Context, requestID int64, limit, offset int) ([]domain.RequestActivity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.RequestActivity) error {
	oldJSON, err := json.Marshal(entry.OldValue)
	if err != nil {
		return err
	}
	newJSON, err := json.Marshal(entry.NewValue)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO request_activity (request_id, actor_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.RequestID,
		entry.ActorID,
		entry.ChangeType,
		oldJSON,
		newJSON,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) ListByRequest(ctx context.Context, requestID int64, limit, offset int) ([]domain.RequestActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, request_id, actor_id, change_type, old_value, new_value, created_at
        FROM request_activity
        WHERE request_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, requestID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestActivity
	for rows.Next() {
		var entry domain.RequestActivity
		var oldJSON, newJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.ActorID,
			&entry.ChangeType,
			&oldJSON,
			&newJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(oldJSON) > 0 {
			if err := json.Unmarshal(oldJSON, &entry.OldValue); err != nil {
				return nil, err
			}
		}
		if len(newJSON) > 0 {
			if err := json.Unmarshal(newJSON, &entry.NewValue); err != nil {
				return nil, err
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

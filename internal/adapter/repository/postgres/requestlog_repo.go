package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
)

// RequestLogRepository implements request audit log persistence
type RequestLogRepository struct {
	pool *pgxpool.Pool
}

// NewRequestLogRepository creates a new request log repository
func NewRequestLogRepository(pool *pgxpool.Pool) *RequestLogRepository {
	return &RequestLogRepository{pool: pool}
}

// Create inserts a new request log entry
func (r *RequestLogRepository) Create(ctx context.Context, log *domain.RequestLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var bodyJSON []byte
	var err error

	if log.Body != nil {
		bodyJSON, err = json.Marshal(log.Body)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO request_logs (id, method, path, user_id, status, body, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		log.ID,
		log.Method,
		log.Path,
		log.UserID,
		log.Status,
		bodyJSON,
		log.CreatedAt,
	)

	return err
}

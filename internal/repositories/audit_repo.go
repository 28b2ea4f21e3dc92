package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Insert writes one record. Rows are never updated or deleted afterwards.
func (r *AuditRepo) Insert(ctx context.Context, entry models.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (hotel_id, actor_user_id, actor_email, actor_role, actor_type,
			action, resource_type, resource_id, previous, next, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, entry.HotelID, entry.ActorUserID, entry.ActorEmail, entry.ActorRole, entry.ActorType,
		entry.Action, entry.ResourceType, entry.ResourceID, entry.Previous, entry.Next,
		entry.IP, entry.UserAgent, entry.CreatedAt)
	return err
}

type AuditFilter struct {
	HotelID      uuid.UUID
	ActorUserID  *uuid.UUID
	ResourceType *string
	ResourceID   *uuid.UUID
	Action       *string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (r *AuditRepo) Query(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	query := `
		SELECT id, hotel_id, actor_user_id, actor_email, actor_role, actor_type,
		       action, resource_type, resource_id, previous, next, ip, user_agent, created_at
		FROM audit_log`
	where := []string{"hotel_id = $1"}
	args := []any{f.HotelID}
	argIdx := 2

	if f.ActorUserID != nil {
		where = append(where, fmt.Sprintf("actor_user_id = $%d", argIdx))
		args = append(args, *f.ActorUserID)
		argIdx++
	}
	if f.ResourceType != nil {
		where = append(where, fmt.Sprintf("resource_type = $%d", argIdx))
		args = append(args, *f.ResourceType)
		argIdx++
	}
	if f.ResourceID != nil {
		where = append(where, fmt.Sprintf("resource_id = $%d", argIdx))
		args = append(args, *f.ResourceID)
		argIdx++
	}
	if f.Action != nil {
		where = append(where, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, *f.Action)
		argIdx++
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *f.To)
		argIdx++
	}

	query += " WHERE " + strings.Join(where, " AND ")
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.HotelID, &l.ActorUserID, &l.ActorEmail, &l.ActorRole,
			&l.ActorType, &l.Action, &l.ResourceType, &l.ResourceID, &l.Previous, &l.Next,
			&l.IP, &l.UserAgent, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

package grants

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/platform/db"
)

var (
	ErrNotFound   = errors.New("grant not found")
	ErrValidation = errors.New("grant validation failed")
)

// Repository defines data access for the direct grant ledger. Deletes are
// idempotent: removing a row that is already gone is not an error.
type Repository interface {
	Create(ctx context.Context, row UserPermission) (UserPermission, error)
	CreateBatch(ctx context.Context, rows []UserPermission) ([]UserPermission, error)
	ListActive(ctx context.Context, userID int64, now time.Time) ([]UserPermission, error)
	HasActive(ctx context.Context, userID int64, permissionName string, now time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const listColumns = `
	up.id, up.user_id, up.granted_at, up.granted_by, up.expires_at,
	p.id, p.name, p.description, p.type, p.resource, p.action, p.created_at, p.updated_at,
	r.id, r.name`

func (r *repository) Create(ctx context.Context, row UserPermission) (UserPermission, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_permissions (user_id, permission_id, role_id, expires_at, granted_at, granted_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		row.UserID, row.Permission.ID, roleID(row.Role), row.ExpiresAt, row.GrantedAt, row.GrantedBy,
	).Scan(&row.ID)
	if err != nil {
		return UserPermission{}, err
	}
	return row, nil
}

func (r *repository) CreateBatch(ctx context.Context, rows []UserPermission) ([]UserPermission, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range rows {
			if err := tx.QueryRow(ctx, `
				INSERT INTO user_permissions (user_id, permission_id, role_id, expires_at, granted_at, granted_by)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				rows[i].UserID, rows[i].Permission.ID, roleID(rows[i].Role),
				rows[i].ExpiresAt, rows[i].GrantedAt, rows[i].GrantedBy,
			).Scan(&rows[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListActive(ctx context.Context, userID int64, now time.Time) ([]UserPermission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listColumns+`
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		LEFT JOIN roles r ON r.id = up.role_id
		WHERE up.user_id = $1 AND (up.expires_at IS NULL OR up.expires_at > $2)
		ORDER BY up.id`, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserPermission{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) HasActive(ctx context.Context, userID int64, permissionName string, now time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM user_permissions up
			JOIN permissions p ON p.id = up.permission_id
			WHERE up.user_id = $1 AND p.name = $2
			  AND (up.expires_at IS NULL OR up.expires_at > $3)
		)`, userID, permissionName, now).Scan(&exists)
	return exists, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_permissions WHERE id = $1`, id)
	return err
}

func (r *repository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, userID)
	return err
}

func (r *repository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM user_permissions
		WHERE expires_at IS NOT NULL AND expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func roleID(ref *RoleRef) *int64 {
	if ref == nil {
		return nil
	}
	return &ref.ID
}

func scanRow(rows pgx.Rows) (UserPermission, error) {
	var (
		row              UserPermission
		resource, action *string
		refID            *int64
		refName          *string
	)
	if err := rows.Scan(
		&row.ID, &row.UserID, &row.GrantedAt, &row.GrantedBy, &row.ExpiresAt,
		&row.Permission.ID, &row.Permission.Name, &row.Permission.Description,
		&row.Permission.Type, &resource, &action,
		&row.Permission.CreatedAt, &row.Permission.UpdatedAt,
		&refID, &refName,
	); err != nil {
		return UserPermission{}, err
	}
	if resource != nil {
		row.Permission.Resource = *resource
	}
	if action != nil {
		row.Permission.Action = permissions.Action(*action)
	}
	if refID != nil && refName != nil {
		row.Role = &RoleRef{ID: *refID, Name: *refName}
	}
	return row, nil
}

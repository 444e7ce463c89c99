package assignments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smauel/access/internal/permissions"
)

var (
	ErrNotFound        = errors.New("assignment not found")
	ErrAlreadyAssigned = errors.New("role already assigned")
	ErrValidation      = errors.New("assignment validation failed")
)

// Repository defines data access for the role assignment ledger. Assignments
// are loaded with the role's current permission set so callers always see
// live role contents. Deletes are idempotent.
type Repository interface {
	Create(ctx context.Context, row UserRoleAssignment) (UserRoleAssignment, error)
	HasActive(ctx context.Context, userID, roleID int64, now time.Time) (bool, error)
	ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]UserRoleAssignment, error)
	Delete(ctx context.Context, userID, roleID int64) error
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

func (r *repository) Create(ctx context.Context, row UserRoleAssignment) (UserRoleAssignment, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_role_assignments (user_id, role_id, assigned_at, assigned_by, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		row.UserID, row.Role.ID, row.AssignedAt, row.AssignedBy, row.ExpiresAt,
	).Scan(&row.ID)
	if err != nil {
		// The partial unique index on active (user_id, role_id) pairs
		// closes the check-then-insert race for open-ended assignments.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return UserRoleAssignment{}, ErrAlreadyAssigned
		}
		return UserRoleAssignment{}, err
	}
	return row, nil
}

func (r *repository) HasActive(ctx context.Context, userID, roleID int64, now time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_role_assignments
			WHERE user_id = $1 AND role_id = $2
			  AND (expires_at IS NULL OR expires_at > $3)
		)`, userID, roleID, now).Scan(&exists)
	return exists, err
}

func (r *repository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]UserRoleAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.assigned_at, a.assigned_by, a.expires_at,
		       r.id, r.name, r.description, r.created_at, r.updated_at
		FROM user_role_assignments a
		JOIN roles r ON r.id = a.role_id
		WHERE a.user_id = $1 AND (a.expires_at IS NULL OR a.expires_at > $2)
		ORDER BY a.id`, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserRoleAssignment{}
	for rows.Next() {
		var a UserRoleAssignment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.AssignedAt, &a.AssignedBy, &a.ExpiresAt,
			&a.Role.ID, &a.Role.Name, &a.Role.Description, &a.Role.CreatedAt, &a.Role.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		perms, err := r.rolePermissions(ctx, out[i].Role.ID)
		if err != nil {
			return nil, err
		}
		out[i].Role.Permissions = perms
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_role_assignments
		WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	return err
}

func (r *repository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_role_assignments WHERE user_id = $1`, userID)
	return err
}

func (r *repository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM user_role_assignments
		WHERE expires_at IS NOT NULL AND expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) rolePermissions(ctx context.Context, roleID int64) ([]permissions.Permission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.type, p.resource, p.action, p.created_at, p.updated_at
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.id`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := []permissions.Permission{}
	for rows.Next() {
		var p permissions.Permission
		var resource, action *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &resource, &action, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if resource != nil {
			p.Resource = *resource
		}
		if action != nil {
			p.Action = permissions.Action(*action)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

package permissions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("permission not found")
	ErrAlreadyExists = errors.New("permission already exists")
	ErrValidation    = errors.New("permission validation failed")
)

// Repository defines data access methods for the permission catalog.
type Repository interface {
	Create(ctx context.Context, p Permission) (Permission, error)
	GetByID(ctx context.Context, id int64) (Permission, error)
	GetByName(ctx context.Context, name string) (Permission, error)
	List(ctx context.Context) ([]Permission, error)
	ListByResource(ctx context.Context, resource string) ([]Permission, error)
	ListByTypeAndResource(ctx context.Context, t Type, resource string) ([]Permission, error)
	Delete(ctx context.Context, id int64) error
}

const permissionColumns = `id, name, description, type, resource, action, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, p Permission) (Permission, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO permissions (name, description, type, resource, action)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+permissionColumns,
		p.Name, p.Description, string(p.Type), nullable(p.Resource), nullable(string(p.Action)),
	)
	created, err := scanPermission(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Permission{}, ErrAlreadyExists
		}
		return Permission{}, err
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (Permission, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, ErrNotFound
		}
		return Permission{}, err
	}
	return p, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (Permission, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE name = $1`, name)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, ErrNotFound
		}
		return Permission{}, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPermissions(rows)
}

func (r *repository) ListByResource(ctx context.Context, resource string) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE resource = $1 ORDER BY id`, resource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPermissions(rows)
}

func (r *repository) ListByTypeAndResource(ctx context.Context, t Type, resource string) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE type = $1 AND resource = $2 ORDER BY id`, string(t), resource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPermissions(rows)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPermission(row pgx.Row) (Permission, error) {
	var p Permission
	var resource, action *string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &resource, &action, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Permission{}, err
	}
	if resource != nil {
		p.Resource = *resource
	}
	if action != nil {
		p.Action = Action(*action)
	}
	return p, nil
}

func collectPermissions(rows pgx.Rows) ([]Permission, error) {
	perms := []Permission{}
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

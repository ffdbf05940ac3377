package repository

import (
	"context"
	"database/sql"
	"errors"

	"courseapp/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned when an email is already registered within the
// same principal kind. The (kind, email) unique constraint is the enforcement
// point, so the same email may exist once per kind.
var ErrDuplicateEmail = errors.New("email already registered")

// PrincipalRepository persists user and admin accounts in a single table,
// parameterized by kind.
type PrincipalRepository interface {
	Create(ctx context.Context, p *model.Principal) error
	GetByEmail(ctx context.Context, kind model.PrincipalKind, email string) (*model.Principal, error)
}

type principalRepo struct {
	db *sql.DB
}

func NewPrincipalRepo(db *sql.DB) PrincipalRepository {
	return &principalRepo{db: db}
}

func (r *principalRepo) Create(ctx context.Context, p *model.Principal) error {
	query := `
		INSERT INTO principals (kind, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, p.Kind, p.Email, p.PasswordHash, p.FirstName, p.LastName).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail returns (nil, nil) when no principal of that kind has the email;
// callers decide whether absence is an error.
func (r *principalRepo) GetByEmail(ctx context.Context, kind model.PrincipalKind, email string) (*model.Principal, error) {
	query := `
		SELECT id, kind, email, password_hash, first_name, last_name, created_at
		FROM principals
		WHERE kind = $1 AND email = $2
	`
	var p model.Principal
	err := r.db.QueryRowContext(ctx, query, kind, email).Scan(
		&p.ID,
		&p.Kind,
		&p.Email,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

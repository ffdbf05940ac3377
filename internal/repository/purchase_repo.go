package repository

import (
	"context"
	"database/sql"
	"errors"

	"courseapp/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicatePurchase is returned when the (user_id, course_id) unique
// constraint fires. The constraint, not the pre-check, is the authoritative
// guard against concurrent duplicate purchases.
var ErrDuplicatePurchase = errors.New("purchase already exists")

type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, p *model.Purchase) error
	GetPurchase(ctx context.Context, userID, courseID string) (*model.Purchase, error)
	GetPurchasesByUserID(ctx context.Context, userID string) ([]model.PurchaseWithCourse, error)
}

type purchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	query := `
		INSERT INTO purchases (user_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.CourseID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePurchase
		}
		return err
	}
	return nil
}

// GetPurchase returns (nil, nil) when the pair has no purchase record.
func (r *purchaseRepo) GetPurchase(ctx context.Context, userID, courseID string) (*model.Purchase, error) {
	query := `
		SELECT id, user_id, course_id, created_at
		FROM purchases
		WHERE user_id = $1 AND course_id = $2
	`
	var p model.Purchase
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetPurchasesByUserID returns the user's purchases, each expanded with its
// referenced course in a single join.
func (r *purchaseRepo) GetPurchasesByUserID(ctx context.Context, userID string) ([]model.PurchaseWithCourse, error) {
	query := `
		SELECT p.id, p.user_id, p.course_id, p.created_at,
		       c.id, c.title, c.description, c.price, c.image_url, c.creator_id, c.created_at, c.updated_at
		FROM purchases p
		JOIN courses c ON c.id = p.course_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []model.PurchaseWithCourse
	for rows.Next() {
		var pc model.PurchaseWithCourse
		if err := rows.Scan(
			&pc.ID,
			&pc.UserID,
			&pc.CourseID,
			&pc.CreatedAt,
			&pc.Course.ID,
			&pc.Course.Title,
			&pc.Course.Description,
			&pc.Course.Price,
			&pc.Course.ImageURL,
			&pc.Course.CreatorID,
			&pc.Course.CreatedAt,
			&pc.Course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, pc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(purchases) == 0 {
		return []model.PurchaseWithCourse{}, nil
	}
	return purchases, nil
}

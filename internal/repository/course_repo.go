package repository

import (
	"context"
	"database/sql"
	"errors"

	"courseapp/internal/model"

	"github.com/rs/zerolog"
)

// CourseRepository defines the interface for interacting with course data.
// Mutations are ownership-scoped: update and delete filter on creator_id so
// the write itself is the enforcement point, not a preceding lookup.
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetOwnedCourse retrieves a course scoped to its creator
	GetOwnedCourse(ctx context.Context, courseID, creatorID string) (*model.Course, error)
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	// UpdateOwnedCourse applies a filtered update; reports whether a row matched
	UpdateOwnedCourse(ctx context.Context, c *model.Course) (bool, error)
	// DeleteOwnedCourse applies a filtered delete; reports whether a row matched
	DeleteOwnedCourse(ctx context.Context, courseID, creatorID string) (bool, error)
	GetCoursesByCreatorID(ctx context.Context, creatorID string) ([]model.Course, error)
	GetAllCourses(ctx context.Context) ([]model.Course, error)
}

type courseRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepo{db: db, logger: logger.With().Str("repository", "CourseRepository").Logger()}
}

// CreateCourse inserts a new course and fills in the generated fields
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (title, description, price, image_url, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, c.Title, c.Description, c.Price, c.ImageURL, c.CreatorID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetOwnedCourse retrieves a course only when creatorID matches. A non-owner
// sees the same nil result as a missing course.
func (r *courseRepo) GetOwnedCourse(ctx context.Context, courseID, creatorID string) (*model.Course, error) {
	query := `
		SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		FROM courses
		WHERE id = $1 AND creator_id = $2
	`
	return r.scanCourse(r.db.QueryRowContext(ctx, query, courseID, creatorID))
}

// GetCourseByID retrieves a course by its ID regardless of owner
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		FROM courses
		WHERE id = $1
	`
	return r.scanCourse(r.db.QueryRowContext(ctx, query, courseID))
}

func (r *courseRepo) scanCourse(row *sql.Row) (*model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.ImageURL,
		&c.CreatorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// UpdateOwnedCourse updates a course scoped to its creator. The creator_id
// filter makes the write safe even if a preceding existence check went stale.
func (r *courseRepo) UpdateOwnedCourse(ctx context.Context, c *model.Course) (bool, error) {
	query := `
		UPDATE courses
		SET title = $1, description = $2, price = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5 AND creator_id = $6
	`
	res, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.Price, c.ImageURL, c.ID, c.CreatorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteOwnedCourse deletes a course scoped to its creator
func (r *courseRepo) DeleteOwnedCourse(ctx context.Context, courseID, creatorID string) (bool, error) {
	query := `
		DELETE FROM courses
		WHERE id = $1 AND creator_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, courseID, creatorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetCoursesByCreatorID retrieves all courses created by the given admin
func (r *courseRepo) GetCoursesByCreatorID(ctx context.Context, creatorID string) ([]model.Course, error) {
	query := `
		SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		FROM courses
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	return r.queryCourses(ctx, query, creatorID)
}

// GetAllCourses retrieves every course for the public catalog preview
func (r *courseRepo) GetAllCourses(ctx context.Context) ([]model.Course, error) {
	query := `
		SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
	`
	return r.queryCourses(ctx, query)
}

func (r *courseRepo) queryCourses(ctx context.Context, query string, args ...any) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.Price,
			&c.ImageURL,
			&c.CreatorID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// If no courses found, return an empty slice, not nil
	if len(courses) == 0 {
		return []model.Course{}, nil
	}
	return courses, nil
}

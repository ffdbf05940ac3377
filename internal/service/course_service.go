package service

import (
	"context"
	"errors"

	"courseapp/internal/model"
	"courseapp/internal/repository"

	"github.com/rs/zerolog"
)

// ErrCourseNotFound covers both a missing course and a course owned by a
// different admin: ownership-scoped lookups make the two indistinguishable.
var ErrCourseNotFound = errors.New("course not found")

// CourseUpdate carries the optional fields of a course update. A nil field
// keeps the stored value.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
}

// CourseService implements the course catalog: ownership-scoped CRUD for
// admins plus the public preview listing.
type CourseService interface {
	CreateCourse(ctx context.Context, creatorID, title, description string, price float64, image *Attachment) (*model.Course, error)
	UpdateCourse(ctx context.Context, creatorID, courseID string, update CourseUpdate, image *Attachment) (*model.Course, error)
	DeleteCourse(ctx context.Context, creatorID, courseID string) error
	GetCoursesByCreator(ctx context.Context, creatorID string) ([]model.Course, error)
	GetAllCourses(ctx context.Context) ([]model.Course, error)
}

type courseService struct {
	repo   repository.CourseRepository
	assets AssetService
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, assets AssetService, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:   repo,
		assets: assets,
		logger: logger.With().Str("service", "CourseService").Logger(),
	}
}

// CreateCourse uploads the course image, then inserts the course owned by
// creatorID. The image is required; the handler rejects requests without one.
func (s *courseService) CreateCourse(ctx context.Context, creatorID, title, description string, price float64, image *Attachment) (*model.Course, error) {
	imageURL, err := s.assets.Store(ctx, image)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CreatorID:   creatorID,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("creator_id", creatorID).Msg("Failed to insert course")
		// Best effort cleanup of the just-uploaded image.
		if rmErr := s.assets.Remove(ctx, imageURL); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("image_url", imageURL).Msg("Failed to clean up image after insert failure")
		}
		return nil, err
	}
	return course, nil
}

// UpdateCourse merges the provided fields onto the stored course and applies a
// single filtered update scoped to {id, creator_id}. A non-owner gets
// ErrCourseNotFound, never a distinct forbidden error.
func (s *courseService) UpdateCourse(ctx context.Context, creatorID, courseID string, update CourseUpdate, image *Attachment) (*model.Course, error) {
	course, err := s.repo.GetOwnedCourse(ctx, courseID, creatorID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load course for update")
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.Price != nil {
		course.Price = *update.Price
	}

	oldImageURL, newImageURL := "", ""
	if image != nil {
		newURL, err := s.assets.Store(ctx, image)
		if err != nil {
			return nil, err
		}
		oldImageURL = course.ImageURL
		newImageURL = newURL
		course.ImageURL = newURL
	}

	matched, err := s.repo.UpdateOwnedCourse(ctx, course)
	if err != nil || !matched {
		// Best effort cleanup of the just-uploaded replacement, as on create.
		if newImageURL != "" {
			if rmErr := s.assets.Remove(ctx, newImageURL); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("image_url", newImageURL).Msg("Failed to clean up image after update failure")
			}
		}
		if err != nil {
			s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to update course")
			return nil, err
		}
		return nil, ErrCourseNotFound
	}

	// The record mutation already succeeded; a failed removal of the replaced
	// image only orphans a remote asset, so it is logged and ignored.
	if oldImageURL != "" {
		if err := s.assets.Remove(ctx, oldImageURL); err != nil {
			s.logger.Warn().Err(err).Str("image_url", oldImageURL).Msg("Failed to delete replaced course image")
		}
	}
	return course, nil
}

// DeleteCourse removes the remote image and deletes the course, both scoped to
// the creator. Asset removal failure never blocks the row delete.
func (s *courseService) DeleteCourse(ctx context.Context, creatorID, courseID string) error {
	course, err := s.repo.GetOwnedCourse(ctx, courseID, creatorID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to load course for deletion")
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}

	if err := s.assets.Remove(ctx, course.ImageURL); err != nil {
		s.logger.Warn().Err(err).Str("image_url", course.ImageURL).Msg("Failed to delete course image, proceeding with record delete")
	}

	matched, err := s.repo.DeleteOwnedCourse(ctx, courseID, creatorID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course")
		return err
	}
	if !matched {
		return ErrCourseNotFound
	}
	return nil
}

// GetCoursesByCreator returns all courses created by the given admin
func (s *courseService) GetCoursesByCreator(ctx context.Context, creatorID string) ([]model.Course, error) {
	return s.repo.GetCoursesByCreatorID(ctx, creatorID)
}

// GetAllCourses returns every course for the unauthenticated catalog preview
func (s *courseService) GetAllCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.GetAllCourses(ctx)
}

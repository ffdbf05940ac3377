package service

import (
	"context"
	"encoding/json"
	"errors"

	"courseapp/internal/model"
	"courseapp/internal/pubsub"
	"courseapp/internal/repository"

	"github.com/rs/zerolog"
)

// ErrAlreadyPurchased is returned when a user tries to buy a course twice.
var ErrAlreadyPurchased = errors.New("course already purchased")

// PurchaseService records (user, course) purchases and lists a user's library.
type PurchaseService interface {
	Purchase(ctx context.Context, userID, courseID string) (*model.Purchase, error)
	GetPurchasesForUser(ctx context.Context, userID string) ([]model.PurchaseWithCourse, error)
}

type purchaseService struct {
	repo       repository.PurchaseRepository
	courseRepo repository.CourseRepository
	publisher  pubsub.Publisher
	eventTopic string
	logger     zerolog.Logger
}

// NewPurchaseService creates a new PurchaseService. publisher may be nil, in
// which case no purchase events are emitted.
func NewPurchaseService(repo repository.PurchaseRepository, courseRepo repository.CourseRepository, publisher pubsub.Publisher, eventTopic string, logger zerolog.Logger) PurchaseService {
	return &purchaseService{
		repo:       repo,
		courseRepo: courseRepo,
		publisher:  publisher,
		eventTopic: eventTopic,
		logger:     logger.With().Str("service", "PurchaseService").Logger(),
	}
}

// Purchase verifies the course exists and inserts the purchase record. The
// pre-check gives a friendly error in the common case; the store's unique
// constraint on (user_id, course_id) is what actually guarantees at most one
// record under concurrent duplicate requests.
func (s *purchaseService) Purchase(ctx context.Context, userID, courseID string) (*model.Purchase, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to look up course for purchase")
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	existing, err := s.repo.GetPurchase(ctx, userID, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to check for existing purchase")
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyPurchased
	}

	purchase := &model.Purchase{UserID: userID, CourseID: courseID}
	if err := s.repo.CreatePurchase(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicatePurchase) {
			// A concurrent request won the race; same outcome as the pre-check.
			return nil, ErrAlreadyPurchased
		}
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to insert purchase")
		return nil, err
	}

	s.publishReceipt(ctx, purchase, course)
	return purchase, nil
}

// publishReceipt emits a purchase event for downstream consumers. Failures are
// logged, never surfaced: the purchase itself has already committed.
func (s *purchaseService) publishReceipt(ctx context.Context, p *model.Purchase, c *model.Course) {
	if s.publisher == nil {
		return
	}

	payload := struct {
		PurchaseID string  `json:"purchase_id"`
		UserID     string  `json:"user_id"`
		CourseID   string  `json:"course_id"`
		Title      string  `json:"title"`
		Price      float64 `json:"price"`
	}{
		PurchaseID: p.ID,
		UserID:     p.UserID,
		CourseID:   p.CourseID,
		Title:      c.Title,
		Price:      c.Price,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("purchase_id", p.ID).Msg("Failed to marshal purchase event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventTopic, data); err != nil {
		s.logger.Error().Err(err).Str("topic", s.eventTopic).Msg("Failed to publish purchase event")
	}
}

// GetPurchasesForUser lists the user's purchases joined with course detail.
func (s *purchaseService) GetPurchasesForUser(ctx context.Context, userID string) ([]model.PurchaseWithCourse, error) {
	purchases, err := s.repo.GetPurchasesByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list purchases")
		return nil, err
	}
	return purchases, nil
}

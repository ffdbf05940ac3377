package handler

import (
	"context"
	"net/http"
	"testing"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/model"
	"courseapp/internal/service"

	"github.com/go-playground/validator/v10"
)

// injectPrincipal stands in for the auth middleware, placing a principal ID
// directly into the request context.
func injectPrincipal(key any, id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, id)))
		})
	}
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := dto.RegisterCustomValidations(v); err != nil {
		t.Fatalf("failed to register custom validations: %v", err)
	}
	return v
}

// service stubs for handler tests

type stubAuthService struct {
	signupID  string
	signupErr error
	session   *service.Session
	signinErr error
	lastKind  model.PrincipalKind
}

func (s *stubAuthService) Signup(_ context.Context, kind model.PrincipalKind, _ service.SignupInput) (string, error) {
	s.lastKind = kind
	return s.signupID, s.signupErr
}

func (s *stubAuthService) Signin(_ context.Context, kind model.PrincipalKind, _, _ string) (*service.Session, error) {
	s.lastKind = kind
	if s.signinErr != nil {
		return nil, s.signinErr
	}
	return s.session, nil
}

type stubCourseService struct {
	course     *model.Course
	courses    []model.Course
	err        error
	lastUpdate service.CourseUpdate
	lastImage  *service.Attachment
}

func (s *stubCourseService) CreateCourse(_ context.Context, creatorID, title, description string, price float64, image *service.Attachment) (*model.Course, error) {
	s.lastImage = image
	if s.err != nil {
		return nil, s.err
	}
	return s.course, nil
}

func (s *stubCourseService) UpdateCourse(_ context.Context, creatorID, courseID string, update service.CourseUpdate, image *service.Attachment) (*model.Course, error) {
	s.lastUpdate = update
	s.lastImage = image
	if s.err != nil {
		return nil, s.err
	}
	return s.course, nil
}

func (s *stubCourseService) DeleteCourse(_ context.Context, creatorID, courseID string) error {
	return s.err
}

func (s *stubCourseService) GetCoursesByCreator(_ context.Context, creatorID string) ([]model.Course, error) {
	return s.courses, s.err
}

func (s *stubCourseService) GetAllCourses(_ context.Context) ([]model.Course, error) {
	return s.courses, s.err
}

type stubPurchaseService struct {
	purchase  *model.Purchase
	purchases []model.PurchaseWithCourse
	err       error
}

func (s *stubPurchaseService) Purchase(_ context.Context, userID, courseID string) (*model.Purchase, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.purchase, nil
}

func (s *stubPurchaseService) GetPurchasesForUser(_ context.Context, userID string) ([]model.PurchaseWithCourse, error) {
	return s.purchases, s.err
}

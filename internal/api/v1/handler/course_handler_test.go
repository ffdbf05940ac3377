package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/middleware"
	"courseapp/internal/model"
	"courseapp/internal/service"
)

func newCourseMux(courses *stubCourseService, purchases *stubPurchaseService, t *testing.T) *http.ServeMux {
	t.Helper()
	h := NewCourseHandler(courses, purchases, newTestValidator(t))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, injectPrincipal(middleware.UserContextKey, "user-1"))
	return mux
}

func TestPurchaseCourse(t *testing.T) {
	purchases := &stubPurchaseService{purchase: &model.Purchase{ID: "purchase-1", UserID: "user-1", CourseID: "course-1"}}
	mux := newCourseMux(&stubCourseService{}, purchases, t)

	req := httptest.NewRequest(http.MethodPost, "/courses/purchase", strings.NewReader(`{"courseId":"course-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.PurchaseResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Course purchased successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestPurchaseCourseErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown course", service.ErrCourseNotFound, http.StatusNotFound},
		{"already purchased", service.ErrAlreadyPurchased, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			purchases := &stubPurchaseService{err: tc.err}
			mux := newCourseMux(&stubCourseService{}, purchases, t)

			req := httptest.NewRequest(http.MethodPost, "/courses/purchase", strings.NewReader(`{"courseId":"course-1"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}

func TestPurchaseCourseRequiresCourseID(t *testing.T) {
	mux := newCourseMux(&stubCourseService{}, &stubPurchaseService{}, t)

	req := httptest.NewRequest(http.MethodPost, "/courses/purchase", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "courseId") {
		t.Fatalf("expected courseId hint in error, got %q", rec.Body.String())
	}
}

func TestPreviewIsOpenToAll(t *testing.T) {
	courses := &stubCourseService{courses: []model.Course{
		{ID: "course-1", Title: "Go Basics"},
		{ID: "course-2", Title: "Advanced Go"},
	}}
	h := NewCourseHandler(courses, &stubPurchaseService{}, newTestValidator(t))
	mux := http.NewServeMux()
	// deny-all middleware proves preview bypasses auth entirely
	h.RegisterRoutes(mux, func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/courses/preview", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.CourseListResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(resp.Courses))
	}
}

func TestPreviewReturnsEmptyListNotNull(t *testing.T) {
	mux := newCourseMux(&stubCourseService{courses: []model.Course{}}, &stubPurchaseService{}, t)

	req := httptest.NewRequest(http.MethodGet, "/courses/preview", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"courses":[]`) {
		t.Fatalf("expected empty courses array, got %q", rec.Body.String())
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/middleware"
	"courseapp/internal/service"

	"github.com/go-playground/validator/v10"
)

// CourseHandler handles the public catalog preview and course purchases.
type CourseHandler struct {
	courseService   service.CourseService
	purchaseService service.PurchaseService
	validate        *validator.Validate
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, purchaseService service.PurchaseService, v *validator.Validate) *CourseHandler {
	return &CourseHandler{courseService: courseService, purchaseService: purchaseService, validate: v}
}

// RegisterRoutes mounts course routes. Preview is deliberately unauthenticated.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, userMw func(http.Handler) http.Handler) {
	mux.Handle("/courses/purchase", userMw(http.HandlerFunc(h.purchase)))
	mux.HandleFunc("/courses/preview", h.preview)
}

func (h *CourseHandler) purchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Please provide a courseId", http.StatusBadRequest)
		return
	}

	if _, err := h.purchaseService.Purchase(r.Context(), userID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			http.Error(w, "Course not found", http.StatusNotFound)
		case errors.Is(err, service.ErrAlreadyPurchased):
			http.Error(w, "You have already purchased this course", http.StatusForbidden)
		default:
			http.Error(w, "Error purchasing course: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.PurchaseResponseDTO{Message: "Course purchased successfully"})
}

func (h *CourseHandler) preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	courses, err := h.courseService.GetAllCourses(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve courses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseListResponseDTO(courses))
}

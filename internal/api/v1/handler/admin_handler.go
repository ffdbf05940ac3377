package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/middleware"
	"courseapp/internal/model"
	"courseapp/internal/repository"
	"courseapp/internal/service"

	"github.com/go-playground/validator/v10"
)

// multipartMaxMemory bounds the in-memory portion of multipart parsing; the
// attachment size cap itself lives in the asset service.
const multipartMaxMemory = 8 << 20

// AdminHandler handles admin signup/signin and ownership-scoped course CRUD.
type AdminHandler struct {
	authService   service.AuthService
	courseService service.CourseService
	validate      *validator.Validate
}

func NewAdminHandler(authService service.AuthService, courseService service.CourseService, v *validator.Validate) *AdminHandler {
	return &AdminHandler{authService: authService, courseService: courseService, validate: v}
}

// RegisterRoutes mounts admin routes
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.HandleFunc("/admin/signup", h.signup)
	mux.HandleFunc("/admin/signin", h.signin)
	mux.Handle("/admin/course", adminMw(http.HandlerFunc(h.handleCourse)))
	mux.Handle("/admin/course/bulk", adminMw(http.HandlerFunc(h.listCourses)))
}

func (h *AdminHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.authService.Signup(r.Context(), model.KindAdmin, service.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			http.Error(w, "Admin already exists with this email", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create admin: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.SignupResponseDTO{Message: "You are signed up", ID: id})
}

func (h *AdminHandler) signin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SigninRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.authService.Signin(r.Context(), model.KindAdmin, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrincipalNotFound):
			http.Error(w, "Admin does not exist", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, "Incorrect password", http.StatusForbidden)
		default:
			http.Error(w, "Failed to sign in: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.SigninResponseDTO{Message: "You are logged in", Token: session.Token})
}

func (h *AdminHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createCourse(w, r)
	case http.MethodPut:
		h.updateCourse(w, r)
	case http.MethodDelete:
		h.deleteCourse(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := r.Context().Value(middleware.AdminContextKey).(string)
	if !ok || adminID == "" {
		http.Error(w, "Unauthorized: admin ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		http.Error(w, "Invalid multipart payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		http.Error(w, "Validation failed: price must be a number", http.StatusBadRequest)
		return
	}
	req := dto.CourseCreateDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	image, err := formAttachment(r)
	if err != nil {
		http.Error(w, "Invalid image attachment: "+err.Error(), http.StatusBadRequest)
		return
	}
	if image == nil {
		http.Error(w, "Course image is required", http.StatusBadRequest)
		return
	}
	defer image.close()

	course, err := h.courseService.CreateCourse(r.Context(), adminID, req.Title, req.Description, req.Price, &image.Attachment)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAttachment) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create course: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.CourseMutationResponseDTO{Message: "Course created", CourseID: course.ID})
}

func (h *AdminHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := r.Context().Value(middleware.AdminContextKey).(string)
	if !ok || adminID == "" {
		http.Error(w, "Unauthorized: admin ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		http.Error(w, "Invalid multipart payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	req := dto.CourseUpdateDTO{
		CourseID:    r.FormValue("courseId"),
		Title:       optionalFormValue(r, "title"),
		Description: optionalFormValue(r, "description"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Validation failed: price must be a number", http.StatusBadRequest)
			return
		}
		req.Price = &price
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	image, err := formAttachment(r)
	if err != nil {
		http.Error(w, "Invalid image attachment: "+err.Error(), http.StatusBadRequest)
		return
	}
	var attachment *service.Attachment
	if image != nil {
		defer image.close()
		attachment = &image.Attachment
	}

	update := service.CourseUpdate{Title: req.Title, Description: req.Description, Price: req.Price}
	course, err := h.courseService.UpdateCourse(r.Context(), adminID, req.CourseID, update, attachment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			http.Error(w, "Course not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidAttachment):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update course: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseMutationResponseDTO{Message: "Course updated", CourseID: course.ID})
}

func (h *AdminHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := r.Context().Value(middleware.AdminContextKey).(string)
	if !ok || adminID == "" {
		http.Error(w, "Unauthorized: admin ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.CourseDeleteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), adminID, req.CourseID); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete course: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseMutationResponseDTO{Message: "Course deleted"})
}

func (h *AdminHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	adminID, ok := r.Context().Value(middleware.AdminContextKey).(string)
	if !ok || adminID == "" {
		http.Error(w, "Unauthorized: admin ID not found in context", http.StatusUnauthorized)
		return
	}

	courses, err := h.courseService.GetCoursesByCreator(r.Context(), adminID)
	if err != nil {
		http.Error(w, "Failed to retrieve courses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseListResponseDTO(courses))
}

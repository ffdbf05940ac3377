package dto

import (
	"time"

	"courseapp/internal/model"
)

// CourseCreateDTO carries the multipart form fields of a course creation. The
// image itself travels separately as the file part.
type CourseCreateDTO struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=10"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// CourseUpdateDTO carries the multipart form fields of a course update. Every
// field except CourseID is optional; omitted fields keep their stored value.
type CourseUpdateDTO struct {
	CourseID    string   `json:"courseId" validate:"required,min=5"`
	Title       *string  `json:"title" validate:"omitempty,min=3"`
	Description *string  `json:"description" validate:"omitempty,min=10"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
}

// CourseDeleteDTO identifies the course to delete.
type CourseDeleteDTO struct {
	CourseID string `json:"courseId" validate:"required,min=5"`
}

// CourseMutationResponseDTO confirms a create/update/delete.
type CourseMutationResponseDTO struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId,omitempty"`
}

// CourseResponseDTO is a single course in listings.
type CourseResponseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseListResponseDTO wraps course listings (admin bulk and public preview).
type CourseListResponseDTO struct {
	Courses []CourseResponseDTO `json:"courses"`
}

// NewCourseResponseDTO maps a domain course onto its response shape.
func NewCourseResponseDTO(c model.Course) CourseResponseDTO {
	return CourseResponseDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		ImageURL:    c.ImageURL,
		CreatorID:   c.CreatorID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewCourseListResponseDTO maps a slice of domain courses, never returning a
// nil slice.
func NewCourseListResponseDTO(courses []model.Course) CourseListResponseDTO {
	out := CourseListResponseDTO{Courses: []CourseResponseDTO{}}
	for _, c := range courses {
		out.Courses = append(out.Courses, NewCourseResponseDTO(c))
	}
	return out
}

package dto

import (
	"time"

	"courseapp/internal/model"
)

// PurchaseRequestDTO identifies the course being purchased.
type PurchaseRequestDTO struct {
	CourseID string `json:"courseId" validate:"required"`
}

// PurchaseResponseDTO confirms a purchase.
type PurchaseResponseDTO struct {
	Message string `json:"message"`
}

// PurchaseItemDTO is one purchase expanded with its course.
type PurchaseItemDTO struct {
	ID        string            `json:"id"`
	CourseID  string            `json:"courseId"`
	CreatedAt time.Time         `json:"created_at"`
	Course    CourseResponseDTO `json:"course"`
}

// PurchaseListResponseDTO wraps a user's purchased library.
type PurchaseListResponseDTO struct {
	Purchases []PurchaseItemDTO `json:"purchases"`
}

// NewPurchaseListResponseDTO maps course-expanded purchases onto the response
// shape, never returning a nil slice.
func NewPurchaseListResponseDTO(purchases []model.PurchaseWithCourse) PurchaseListResponseDTO {
	out := PurchaseListResponseDTO{Purchases: []PurchaseItemDTO{}}
	for _, p := range purchases {
		out.Purchases = append(out.Purchases, PurchaseItemDTO{
			ID:        p.ID,
			CourseID:  p.CourseID,
			CreatedAt: p.CreatedAt,
			Course:    NewCourseResponseDTO(p.Course),
		})
	}
	return out
}

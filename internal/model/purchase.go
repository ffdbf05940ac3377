package model

import "time"

// Purchase is the join record between a user and a course. It is written once
// and never mutated; the (user_id, course_id) pair is unique at the store level.
type Purchase struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PurchaseWithCourse is a purchase expanded with its referenced course, as
// returned by the user's library listing.
type PurchaseWithCourse struct {
	Purchase
	Course Course `json:"course"`
}

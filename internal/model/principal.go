package model

import "time"

// PrincipalKind distinguishes the two independent account namespaces. The same
// email may exist once per kind.
type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// Principal represents an authenticated actor: either a learner (user) or a
// course creator (admin).
type Principal struct {
	ID           string        `db:"id" json:"id"`
	Kind         PrincipalKind `db:"kind" json:"kind"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	FirstName    string        `db:"first_name" json:"first_name"`
	LastName     string        `db:"last_name" json:"last_name"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

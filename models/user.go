package models

import "time"

type User struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Birthdate   string    `json:"birthdate"`
	CreatedAt   time.Time `json:"created_at"`

	PasswordHash string `json:"-"`
}

// RatingAggregate is always recomputed from the ratings table on read,
// never stored on the user row.
type RatingAggregate struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// UserDetail is the full profile returned by GET /users/{userId}:
// the user row plus preferred sports, preferred locations and the
// received-rating aggregate.
type UserDetail struct {
	ID          int      `json:"id"`
	FirstName   string   `json:"firstname"`
	LastName    string   `json:"lastname"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	SportIDs    []int64  `json:"sports"`
	Locations   []string `json:"locations"`
	RatingAggregate
}

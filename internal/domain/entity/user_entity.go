package entity

import (
	"time"
)

// User is the aggregate root that owns folders, tags and notes.
// Password holds the bcrypt digest and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Fullname  string    `json:"fullname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

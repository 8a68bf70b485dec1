package models

import "time"

// User represents a student or teacher account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Not serialized
	FullName     string    `json:"full_name" db:"full_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsTeacher    bool      `json:"is_teacher" db:"is_teacher"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

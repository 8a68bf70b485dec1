package models

import "time"

// Classroom groups students under a teacher
type Classroom struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	InviteCode  string    `json:"invite_code" db:"invite_code"`
	TeacherID   int64     `json:"teacher_id" db:"teacher_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ClassroomWithMembers is a classroom with its teacher and enrolled students
type ClassroomWithMembers struct {
	Classroom
	Teacher  User   `json:"teacher"`
	Students []User `json:"students"`
}

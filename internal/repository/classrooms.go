package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const classroomColumns = `c.id, c.name, c.description, c.invite_code, c.teacher_id, c.is_active, c.created_at`

// CreateClassroom creates a new classroom
func (q *Queries) CreateClassroom(ctx context.Context, c *models.Classroom) error {
	id, err := q.insert(ctx, `
		INSERT INTO classrooms (name, description, invite_code, teacher_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.InviteCode, c.TeacherID, c.IsActive, c.CreatedAt)
	if err != nil {
		return wrapErr("create classroom", err)
	}
	c.ID = id
	return nil
}

// GetClassroom retrieves a classroom by id
func (q *Queries) GetClassroom(ctx context.Context, id int64) (*models.Classroom, error) {
	c := &models.Classroom{}
	if err := q.get(ctx, c, `SELECT `+classroomColumns+` FROM classrooms c WHERE c.id = ?`, id); err != nil {
		return nil, wrapErr(fmt.Sprintf("get classroom %d", id), err)
	}
	return c, nil
}

// FindActiveClassroomByCode retrieves an active classroom by invite code
func (q *Queries) FindActiveClassroomByCode(ctx context.Context, code string) (*models.Classroom, error) {
	c := &models.Classroom{}
	err := q.get(ctx, c, `SELECT `+classroomColumns+` FROM classrooms c WHERE c.invite_code = ? AND c.is_active = ?`, code, true)
	if err != nil {
		return nil, wrapErr("find classroom with invite code "+code, err)
	}
	return c, nil
}

// InviteCodeExists reports whether any classroom already uses code
func (q *Queries) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	if err := q.get(ctx, &n, `SELECT COUNT(*) FROM classrooms WHERE invite_code = ?`, code); err != nil {
		return false, wrapErr("check invite code", err)
	}
	return n > 0, nil
}

// ListClassroomsByTeacher returns the classrooms a teacher owns
func (q *Queries) ListClassroomsByTeacher(ctx context.Context, teacherID int64) ([]models.Classroom, error) {
	out := []models.Classroom{}
	err := q.sel(ctx, &out, `SELECT `+classroomColumns+` FROM classrooms c WHERE c.teacher_id = ? ORDER BY c.id`, teacherID)
	if err != nil {
		return nil, wrapErr("list classrooms", err)
	}
	return out, nil
}

// ListClassroomsByStudent returns the classrooms a student is enrolled in
func (q *Queries) ListClassroomsByStudent(ctx context.Context, userID int64) ([]models.Classroom, error) {
	out := []models.Classroom{}
	err := q.sel(ctx, &out, `
		SELECT `+classroomColumns+`
		FROM classrooms c
		JOIN classroom_members m ON m.classroom_id = c.id
		WHERE m.user_id = ?
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, wrapErr("list classrooms", err)
	}
	return out, nil
}

// ListClassroomStudents returns the members of a classroom
func (q *Queries) ListClassroomStudents(ctx context.Context, classroomID int64) ([]models.User, error) {
	out := []models.User{}
	err := q.sel(ctx, &out, `
		SELECT u.id, u.email, u.username, u.password_hash, u.full_name, u.is_active, u.is_teacher, u.created_at
		FROM users u
		JOIN classroom_members m ON m.user_id = u.id
		WHERE m.classroom_id = ?
		ORDER BY u.id`, classroomID)
	if err != nil {
		return nil, wrapErr("list classroom students", err)
	}
	return out, nil
}

// IsClassroomMember reports whether the user is enrolled in the classroom
func (q *Queries) IsClassroomMember(ctx context.Context, classroomID, userID int64) (bool, error) {
	var n int
	err := q.get(ctx, &n, `SELECT COUNT(*) FROM classroom_members WHERE classroom_id = ? AND user_id = ?`, classroomID, userID)
	if err != nil {
		return false, wrapErr("check classroom membership", err)
	}
	return n > 0, nil
}

// AddClassroomMember enrolls a user; a repeated enrollment is a Conflict
func (q *Queries) AddClassroomMember(ctx context.Context, classroomID, userID int64) error {
	_, err := q.exec(ctx, `INSERT INTO classroom_members (classroom_id, user_id) VALUES (?, ?)`, classroomID, userID)
	if err != nil {
		return wrapErr("join classroom", err)
	}
	return nil
}

// UpdateClassroom stores the editable classroom fields
func (q *Queries) UpdateClassroom(ctx context.Context, c *models.Classroom) error {
	return q.execOne(ctx, fmt.Sprintf("classroom %d", c.ID), `
		UPDATE classrooms SET name = ?, description = ?, is_active = ? WHERE id = ?`,
		c.Name, c.Description, c.IsActive, c.ID)
}

// DeleteClassroom removes a classroom and its memberships
func (q *Queries) DeleteClassroom(ctx context.Context, id int64) error {
	if _, err := q.exec(ctx, `DELETE FROM classroom_members WHERE classroom_id = ?`, id); err != nil {
		return wrapErr("delete classroom members", err)
	}
	return q.execOne(ctx, fmt.Sprintf("classroom %d", id), `DELETE FROM classrooms WHERE id = ?`, id)
}

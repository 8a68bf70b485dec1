package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/Dan9191/openbanqr/internal/utils"
)

const inviteCodeAttempts = 10

// ClassroomUpdate holds the optional classroom fields a teacher may change
type ClassroomUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// CreateClassroom creates a classroom with a fresh invite code; teachers only
func (s *Service) CreateClassroom(ctx context.Context, teacherID int64, name, description string) (*models.Classroom, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("classroom name is required")
	}

	classroom := &models.Classroom{
		Name:        name,
		Description: description,
		TeacherID:   teacherID,
		IsActive:    true,
		CreatedAt:   s.clock(),
	}
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.teacher(ctx, q, teacherID); err != nil {
			return err
		}
		for i := 0; i < inviteCodeAttempts; i++ {
			code, err := utils.GenerateInviteCode()
			if err != nil {
				return err
			}
			taken, err := q.InviteCodeExists(ctx, code)
			if err != nil {
				return err
			}
			if !taken {
				classroom.InviteCode = code
				return q.CreateClassroom(ctx, classroom)
			}
		}
		return apperr.Conflict("could not allocate a unique invite code")
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Classroom %d created by teacher %d", classroom.ID, teacherID)
	return classroom, nil
}

// ListClassrooms returns the classrooms a teacher owns or a student is enrolled in
func (s *Service) ListClassrooms(ctx context.Context, userID int64) ([]models.Classroom, error) {
	q := s.repo.Queries()
	user, err := q.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsTeacher {
		return q.ListClassroomsByTeacher(ctx, userID)
	}
	return q.ListClassroomsByStudent(ctx, userID)
}

// GetClassroom returns a classroom with its teacher and students. Only the
// owning teacher and enrolled students may see it.
func (s *Service) GetClassroom(ctx context.Context, userID, classroomID int64) (*models.ClassroomWithMembers, error) {
	q := s.repo.Queries()
	user, err := q.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	classroom, err := q.GetClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	if user.IsTeacher {
		if classroom.TeacherID != userID {
			return nil, apperr.Forbidden("classroom %d belongs to another teacher", classroomID)
		}
	} else {
		member, err := q.IsClassroomMember(ctx, classroomID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperr.Forbidden("not enrolled in classroom %d", classroomID)
		}
	}

	teacher, err := q.GetUser(ctx, classroom.TeacherID)
	if err != nil {
		return nil, err
	}
	students, err := q.ListClassroomStudents(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	return &models.ClassroomWithMembers{Classroom: *classroom, Teacher: *teacher, Students: students}, nil
}

// JoinClassroom enrolls a student using an active classroom's invite code
func (s *Service) JoinClassroom(ctx context.Context, userID int64, inviteCode string) (*models.Classroom, error) {
	var classroom *models.Classroom
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		var err error
		classroom, err = q.FindActiveClassroomByCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
		if err != nil {
			return err
		}
		err = q.AddClassroomMember(ctx, classroom.ID, userID)
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("already enrolled in classroom %d", classroom.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User %d joined classroom %d", userID, classroom.ID)
	return classroom, nil
}

// ownedClassroom loads a classroom and checks the teacher owns it
func (s *Service) ownedClassroom(ctx context.Context, q *repository.Queries, teacherID, classroomID int64) (*models.Classroom, error) {
	if _, err := s.teacher(ctx, q, teacherID); err != nil {
		return nil, err
	}
	classroom, err := q.GetClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.TeacherID != teacherID {
		return nil, apperr.NotFound("classroom %d", classroomID)
	}
	return classroom, nil
}

// UpdateClassroom applies a partial update to a classroom the teacher owns
func (s *Service) UpdateClassroom(ctx context.Context, teacherID, classroomID int64, in ClassroomUpdate) (*models.Classroom, error) {
	var classroom *models.Classroom
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		var err error
		if classroom, err = s.ownedClassroom(ctx, q, teacherID, classroomID); err != nil {
			return err
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return apperr.InvalidArgument("classroom name is required")
			}
			classroom.Name = *in.Name
		}
		if in.Description != nil {
			classroom.Description = *in.Description
		}
		if in.IsActive != nil {
			classroom.IsActive = *in.IsActive
		}
		return q.UpdateClassroom(ctx, classroom)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Classroom %d updated", classroomID)
	return classroom, nil
}

// DeleteClassroom removes a classroom the teacher owns
func (s *Service) DeleteClassroom(ctx context.Context, teacherID, classroomID int64) error {
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.ownedClassroom(ctx, q, teacherID, classroomID); err != nil {
			return err
		}
		return q.DeleteClassroom(ctx, classroomID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}

	s.log.Infof("Classroom %d deleted", classroomID)
	return nil
}

package student

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrRegNoExists = errors.New("a student with this registration number already exists")
)

type (
	Repository interface {
		CheckRegNoUniqueness(ctx context.Context, regNo string) error
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id uuid.UUID) (Student, error)
		GetStudentByRegNo(ctx context.Context, regNo string) (Student, error)
		// SetHostelInfo replaces the student's hostel snapshot; nil clears it.
		SetHostelInfo(ctx context.Context, id uuid.UUID, info *HostelInfo) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...uuid.UUID) error
	}

	Service struct {
		repo       Repository
		courseRepo course.Repository
	}
)

func NewService(repo Repository, courseRepo course.Repository) *Service {
	return &Service{repo: repo, courseRepo: courseRepo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	if _, err := svc.courseRepo.GetCourseByID(ctx, ns.CourseID); err != nil {
		if err == course.ErrNotFound {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
		}
		return Student{}, err
	}

	regNo := ns.RegNo
	if regNo == "" {
		regNo = generateRegNo()
	}
	if err := svc.repo.CheckRegNoUniqueness(ctx, regNo); err != nil {
		if err == ErrRegNoExists {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "reg_no", Error: err.Error()})
		}
		return Student{}, err
	}

	now := time.Now().UTC()
	stu := Student{
		ID:           uuid.New(),
		Name:         ns.Name,
		RegNo:        regNo,
		Email:        ns.Email,
		CourseID:     ns.CourseID,
		IsRegistered: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id uuid.UUID) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByRegNo(ctx context.Context, regNo string) (Student, error) {
	return svc.repo.GetStudentByRegNo(ctx, strings.ToUpper(core.CleanString(regNo)))
}

func (svc *Service) Delete(ctx context.Context, ids ...uuid.UUID) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

func generateRegNo() string {
	uid := uuid.New().String()
	return fmt.Sprintf("ACA%s", strings.ToUpper(uid[:8]))
}

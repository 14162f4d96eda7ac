package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
)

var (
	// errors
	ErrNotFound   = errors.New("course not found")
	ErrCodeExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(ctx context.Context, code string) error
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id uuid.UUID) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...uuid.UUID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	if err := svc.repo.CheckCodeUniqueness(ctx, nc.Code); err != nil {
		if err == ErrCodeExists {
			return Course{}, core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return Course{}, err
	}
	crs := Course{
		ID:        uuid.New(),
		Name:      nc.Name,
		Code:      nc.Code,
		Semesters: nc.Semesters,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id uuid.UUID) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

// Delete removes courses unconditionally; fee structures referencing a
// deleted course resolve to an unknown label instead of cascading.
func (svc *Service) Delete(ctx context.Context, ids ...uuid.UUID) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}

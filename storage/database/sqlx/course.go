package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sql.DB) course.Repository {
	return &courseRepository{db: sqlx.NewDb(db, "postgres")}
}

type courseRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Semesters int       `db:"semesters"`
	CreatedAt time.Time `db:"created_at"`
}

func (r courseRow) toCourse() course.Course {
	return course.Course{
		ID:        r.ID,
		Name:      r.Name,
		Code:      r.Code,
		Semesters: r.Semesters,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string) error {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM course WHERE code = $1)`
	if err := repo.db.GetContext(ctx, &exists, q, code); err != nil {
		return errors.Wrap(err, "checking course code uniqueness")
	}
	if exists {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	q := `INSERT INTO course (id, name, code, semesters, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, q, crs.ID, crs.Name, crs.Code, crs.Semesters, crs.CreatedAt); err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	q := `SELECT * FROM course ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.toCourse())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	var row courseRow
	q := `SELECT * FROM course WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return row.toCourse(), nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids ...uuid.UUID) error {
	q := `DELETE FROM course WHERE id = ANY($1::uuid[])`
	if _, err := repo.db.ExecContext(ctx, q, uuidArray(ids)); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}

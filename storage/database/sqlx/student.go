package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sql.DB) student.Repository {
	return &studentRepository{db: sqlx.NewDb(db, "postgres")}
}

type studentRow struct {
	ID               uuid.UUID   `db:"id"`
	Name             string      `db:"name"`
	RegNo            string      `db:"reg_no"`
	Email            string      `db:"email"`
	CourseID         uuid.UUID   `db:"course_id"`
	IsRegistered     bool        `db:"is_registered"`
	HostelHostelID   null.String `db:"hostel_hostel_id"`
	HostelRoomID     null.String `db:"hostel_room_id"`
	HostelRoomNumber null.String `db:"hostel_room_number"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}

func (r studentRow) toStudent() (student.Student, error) {
	stu := student.Student{
		ID:           r.ID,
		Name:         r.Name,
		RegNo:        r.RegNo,
		Email:        r.Email,
		CourseID:     r.CourseID,
		IsRegistered: r.IsRegistered,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.HostelHostelID.Valid && r.HostelRoomID.Valid {
		hostelID, err := uuid.Parse(r.HostelHostelID.String)
		if err != nil {
			return student.Student{}, errors.Wrap(err, "parsing hostel snapshot hostel_id")
		}
		roomID, err := uuid.Parse(r.HostelRoomID.String)
		if err != nil {
			return student.Student{}, errors.Wrap(err, "parsing hostel snapshot room_id")
		}
		stu.HostelInfo = &student.HostelInfo{
			HostelID:   hostelID,
			RoomID:     roomID,
			RoomNumber: r.HostelRoomNumber.String,
		}
	}
	return stu, nil
}

func (repo *studentRepository) CheckRegNoUniqueness(ctx context.Context, regNo string) error {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM student WHERE reg_no = $1)`
	if err := repo.db.GetContext(ctx, &exists, q, regNo); err != nil {
		return errors.Wrap(err, "checking reg_no uniqueness")
	}
	if exists {
		return student.ErrRegNoExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	q := `INSERT INTO student (id, name, reg_no, email, course_id, is_registered, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q,
		stu.ID, stu.Name, stu.RegNo, stu.Email, stu.CourseID, stu.IsRegistered, stu.CreatedAt, stu.UpdatedAt)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	q := `SELECT * FROM student ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		stu, err := r.toStudent()
		if err != nil {
			return nil, err
		}
		students = append(students, stu)
	}
	return students, nil
}

func (repo *studentRepository) getStudent(ctx context.Context, query string, arg interface{}) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent()
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE id = $1`, id)
}

func (repo *studentRepository) GetStudentByRegNo(ctx context.Context, regNo string) (student.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE reg_no = $1`, regNo)
}

func (repo *studentRepository) SetHostelInfo(ctx context.Context, id uuid.UUID, info *student.HostelInfo) (student.Student, error) {
	var hostelID, roomID, roomNumber null.String
	if info != nil {
		hostelID = null.StringFrom(info.HostelID.String())
		roomID = null.StringFrom(info.RoomID.String())
		roomNumber = null.StringFrom(info.RoomNumber)
	}
	q := `UPDATE student
		  SET hostel_hostel_id = $2, hostel_room_id = $3, hostel_room_number = $4, updated_at = $5
		  WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q, id, hostelID, roomID, roomNumber, time.Now().UTC())
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student hostel snapshot")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(ctx, id)
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...uuid.UUID) error {
	q := `DELETE FROM student WHERE id = ANY($1::uuid[])`
	if _, err := repo.db.ExecContext(ctx, q, uuidArray(ids)); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

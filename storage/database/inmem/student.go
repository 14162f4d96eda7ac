package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CheckRegNoUniqueness(ctx context.Context, regNo string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, stu := range repo.db.table {
		if stu.RegNo == regNo {
			return student.ErrRegNoExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.table))
	for _, stu := range repo.db.table {
		students = append(students, *stu)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stu, ok := repo.db.table[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByRegNo(ctx context.Context, regNo string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, stu := range repo.db.table {
		if stu.RegNo == regNo {
			return *stu, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) SetHostelInfo(ctx context.Context, id uuid.UUID, info *student.HostelInfo) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stu, ok := repo.db.table[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	stu.HostelInfo = info
	stu.UpdatedAt = time.Now().UTC()
	return *stu, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...uuid.UUID) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

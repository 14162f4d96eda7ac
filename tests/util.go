package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
)

func CreateCourse(t *testing.T, repo course.Repository, name, code string, semesters int) course.Course {
	crs := course.Course{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		Semesters: semesters,
		CreatedAt: time.Now().UTC(),
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateStudent(t *testing.T, repo student.Repository, name, regNo, email string, courseID uuid.UUID) student.Student {
	tstamp := time.Now().UTC()
	stu := student.Student{
		ID:           uuid.New(),
		Name:         name,
		RegNo:        regNo,
		Email:        email,
		CourseID:     courseID,
		IsRegistered: true,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

// CreateStructure stores a fee structure with the given tuition fee as its
// only non-zero component, so TotalFee == tuition.
func CreateStructure(t *testing.T, repo fee.Repository, courseID uuid.UUID, semester int, tuition float64) fee.Structure {
	st := fee.Structure{
		ID:         uuid.New(),
		CourseID:   courseID,
		Semester:   semester,
		TuitionFee: tuition,
		TotalFee:   tuition,
		CreatedAt:  time.Now().UTC(),
	}
	st, err := repo.CreateStructure(context.Background(), st)
	if err != nil {
		t.Fatalf("CreateStructure() failed: %v", err)
	}
	return st
}

func CreateHostel(t *testing.T, repo hostel.Repository, name string) hostel.Hostel {
	hst := hostel.Hostel{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	hst, err := repo.CreateHostel(context.Background(), hst)
	if err != nil {
		t.Fatalf("CreateHostel() failed: %v", err)
	}
	return hst
}

func CreateRoom(t *testing.T, repo hostel.Repository, hostelID uuid.UUID, number string, capacity int) hostel.Room {
	rm := hostel.Room{
		ID:         uuid.New(),
		HostelID:   hostelID,
		RoomNumber: number,
		Capacity:   capacity,
		CreatedAt:  time.Now().UTC(),
	}
	rm, err := repo.CreateRoom(context.Background(), rm)
	if err != nil {
		t.Fatalf("CreateRoom() failed: %v", err)
	}
	return rm
}

func CreateBooking(t *testing.T, repo hostel.Repository, studentID, roomID uuid.UUID) hostel.Booking {
	bkg := hostel.Booking{
		ID:        uuid.New(),
		StudentID: studentID,
		RoomID:    roomID,
		CreatedAt: time.Now().UTC(),
	}
	bkg, err := repo.CreateBooking(context.Background(), bkg)
	if err != nil {
		t.Fatalf("CreateBooking() failed: %v", err)
	}
	return bkg
}

package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
)

type (
	DB struct {
		course  *courseTable
		student *studentTable
		fee     *feeTable
		hostel  *hostelTable
	}

	courseTable struct {
		sync.RWMutex
		table map[uuid.UUID]*course.Course
	}

	studentTable struct {
		sync.RWMutex
		table map[uuid.UUID]*student.Student
	}

	feeTable struct {
		sync.RWMutex
		structures map[uuid.UUID]*fee.Structure
		payments   map[uuid.UUID]*fee.Payment
	}

	hostelTable struct {
		sync.RWMutex
		hostels  map[uuid.UUID]*hostel.Hostel
		rooms    map[uuid.UUID]*hostel.Room
		bookings map[uuid.UUID]*hostel.Booking
	}
)

func Open() (*DB, error) {
	db := &DB{
		course:  &courseTable{table: make(map[uuid.UUID]*course.Course)},
		student: &studentTable{table: make(map[uuid.UUID]*student.Student)},
		fee: &feeTable{
			structures: make(map[uuid.UUID]*fee.Structure),
			payments:   make(map[uuid.UUID]*fee.Payment),
		},
		hostel: &hostelTable{
			hostels:  make(map[uuid.UUID]*hostel.Hostel),
			rooms:    make(map[uuid.UUID]*hostel.Room),
			bookings: make(map[uuid.UUID]*hostel.Booking),
		},
	}
	return db, nil
}

// Reset drops all rows; used between tests.
func (db *DB) Reset() {
	db.course.Lock()
	db.course.table = make(map[uuid.UUID]*course.Course)
	db.course.Unlock()

	db.student.Lock()
	db.student.table = make(map[uuid.UUID]*student.Student)
	db.student.Unlock()

	db.fee.Lock()
	db.fee.structures = make(map[uuid.UUID]*fee.Structure)
	db.fee.payments = make(map[uuid.UUID]*fee.Payment)
	db.fee.Unlock()

	db.hostel.Lock()
	db.hostel.hostels = make(map[uuid.UUID]*hostel.Hostel)
	db.hostel.rooms = make(map[uuid.UUID]*hostel.Room)
	db.hostel.bookings = make(map[uuid.UUID]*hostel.Booking)
	db.hostel.Unlock()
}

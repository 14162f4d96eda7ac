package hostel

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
)

type Hostel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Room struct {
	ID         uuid.UUID `json:"id"`
	HostelID   uuid.UUID `json:"hostel_id"`
	RoomNumber string    `json:"room_number"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// Booking links one student to one room. A student holds at most one active
// booking; cancelling removes the record entirely.
type Booking struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	RoomID    uuid.UUID `json:"room_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// RoomOccupancy is the read model for room listings. Occupants is always
// derived by counting bookings; there is no stored occupancy counter to drift.
type RoomOccupancy struct {
	Room
	HostelName string `json:"hostel_name"`
	Occupants  int    `json:"occupants"`
	Available  bool   `json:"available"`
}

// NewHostel contains information needed to create a new Hostel.
type NewHostel struct {
	Name string `json:"name" validate:"required"`
}

func (nh *NewHostel) Validate() error {
	nh.Name = core.CleanString(nh.Name)
	return core.Validate.Struct(nh)
}

// NewRoom contains information needed to attach a new Room to a Hostel.
type NewRoom struct {
	HostelID   uuid.UUID `json:"hostel_id" validate:"required"`
	RoomNumber string    `json:"room_number" validate:"required"`
	Capacity   int       `json:"capacity" validate:"required,min=1"`
}

func (nr *NewRoom) Validate() error {
	nr.RoomNumber = core.CleanString(nr.RoomNumber)
	return core.Validate.Struct(nr)
}

// NewBooking contains information needed to book a room for a student.
type NewBooking struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	RoomID    uuid.UUID `json:"room_id" validate:"required"`
}

func (nb *NewBooking) Validate() error { return core.Validate.Struct(nb) }

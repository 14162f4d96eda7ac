package student

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
)

type (
	Student struct {
		ID           uuid.UUID   `json:"id"`
		Name         string      `json:"name"`
		RegNo        string      `json:"reg_no"`
		Email        string      `json:"email"`
		CourseID     uuid.UUID   `json:"course_id"`
		IsRegistered bool        `json:"is_registered"`
		HostelInfo   *HostelInfo `json:"hostel_info"`
		CreatedAt    time.Time   `json:"created_at"` // UTC
		UpdatedAt    time.Time   `json:"updated_at"` // UTC
	}

	// HostelInfo is a read-optimized snapshot of the student's active hostel
	// booking. It mirrors the booking ledger and is refreshed on every
	// book/cancel call; the ledger remains the source of truth.
	HostelInfo struct {
		HostelID   uuid.UUID `json:"hostel_id"`
		RoomID     uuid.UUID `json:"room_id"`
		RoomNumber string    `json:"room_number"`
	}
)

func (s *Student) HasHostelRoom() bool {
	return s.HostelInfo != nil
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name     string    `json:"name" validate:"required"`
	RegNo    string    `json:"reg_no" validate:"omitempty,alphanum_"`
	Email    string    `json:"email" validate:"omitempty,email"`
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.RegNo = strings.ToUpper(core.CleanString(ns.RegNo))
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

package fee

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
)

// Status of a student's payment against one fee structure.
type Status string

const (
	StatusDue           Status = "Due"
	StatusPartiallyPaid Status = "Partially Paid"
	StatusPaid          Status = "Paid"
)

// DeriveStatus derives the payment Status from the cumulative amount paid.
// Stored payment records always hold a positive amount, so a stored record is
// never "Due"; StatusDue only shows up on synthesized Bill entries.
func DeriveStatus(amountPaid, totalFee float64) Status {
	switch {
	case amountPaid >= totalFee:
		return StatusPaid
	case amountPaid > 0:
		return StatusPartiallyPaid
	}
	return StatusDue
}

// Structure is the fee catalog entry for one (course, semester) pair.
// TotalFee is computed from the five components at creation time and is never
// independently mutated; entries are immutable except via delete.
type Structure struct {
	ID                 uuid.UUID `json:"id"`
	CourseID           uuid.UUID `json:"course_id"`
	Semester           int       `json:"semester"`
	TuitionFee         float64   `json:"tuition_fee"`
	ExaminationFee     float64   `json:"examination_fee"`
	RegistrationFee    float64   `json:"registration_fee"`
	LibraryFee         float64   `json:"library_fee"`
	ExtraActivitiesFee float64   `json:"extra_activities_fee"`
	TotalFee           float64   `json:"total_fee"`
	CreatedAt          time.Time `json:"created_at"` // UTC
}

func (s Structure) ComponentsTotal() float64 {
	return s.TuitionFee + s.ExaminationFee + s.RegistrationFee + s.LibraryFee + s.ExtraActivitiesFee
}

// NewStructure contains information needed to create a new fee Structure.
type NewStructure struct {
	CourseID           uuid.UUID `json:"course_id" validate:"required"`
	Semester           int       `json:"semester" validate:"required,min=1"`
	TuitionFee         float64   `json:"tuition_fee" validate:"min=0"`
	ExaminationFee     float64   `json:"examination_fee" validate:"min=0"`
	RegistrationFee    float64   `json:"registration_fee" validate:"min=0"`
	LibraryFee         float64   `json:"library_fee" validate:"min=0"`
	ExtraActivitiesFee float64   `json:"extra_activities_fee" validate:"min=0"`
}

func (ns *NewStructure) Validate() error { return core.Validate.Struct(ns) }

// Payment is the cumulative ledger record of one student's payments against
// one fee structure; at most one record exists per (student, structure) pair.
type Payment struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	StructureID uuid.UUID `json:"structure_id"`
	AmountPaid  float64   `json:"amount_paid"`
	Status      Status    `json:"status"`
	PaymentDate time.Time `json:"payment_date"` // UTC; most recent payment
	CreatedAt   time.Time `json:"created_at"`   // UTC
	UpdatedAt   time.Time `json:"updated_at"`   // UTC
}

// NewPayment contains information needed to record a payment event.
type NewPayment struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	StructureID uuid.UUID `json:"structure_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
}

func (np *NewPayment) Validate() error { return core.Validate.Struct(np) }

// Bill is the read model joining a fee structure with a student's payment
// record. CourseName falls back to UnknownLabel when the structure or its
// course no longer resolves.
type Bill struct {
	StructureID uuid.UUID  `json:"structure_id"`
	CourseName  string     `json:"course_name"`
	Semester    int        `json:"semester"`
	TotalFee    float64    `json:"total_fee"`
	AmountPaid  float64    `json:"amount_paid"`
	Due         float64    `json:"due"`
	Status      Status     `json:"status"`
	PaymentDate *time.Time `json:"payment_date"` // UTC; nil when nothing was paid yet
}

package course

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
)

type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Semesters int       `json:"semesters"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code" validate:"required,alphanum_"`
	Semesters int    `json:"semesters" validate:"required,min=1"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code, true /* lower */)
	return core.Validate.Struct(nc)
}

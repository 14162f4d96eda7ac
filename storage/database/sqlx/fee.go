package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/fee"
)

type feeRepository struct {
	db *sqlx.DB
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *sql.DB) fee.Repository {
	return &feeRepository{db: sqlx.NewDb(db, "postgres")}
}

type structureRow struct {
	ID                 uuid.UUID `db:"id"`
	CourseID           uuid.UUID `db:"course_id"`
	Semester           int       `db:"semester"`
	TuitionFee         float64   `db:"tuition_fee"`
	ExaminationFee     float64   `db:"examination_fee"`
	RegistrationFee    float64   `db:"registration_fee"`
	LibraryFee         float64   `db:"library_fee"`
	ExtraActivitiesFee float64   `db:"extra_activities_fee"`
	TotalFee           float64   `db:"total_fee"`
	CreatedAt          time.Time `db:"created_at"`
}

func (r structureRow) toStructure() fee.Structure {
	return fee.Structure{
		ID:                 r.ID,
		CourseID:           r.CourseID,
		Semester:           r.Semester,
		TuitionFee:         r.TuitionFee,
		ExaminationFee:     r.ExaminationFee,
		RegistrationFee:    r.RegistrationFee,
		LibraryFee:         r.LibraryFee,
		ExtraActivitiesFee: r.ExtraActivitiesFee,
		TotalFee:           r.TotalFee,
		CreatedAt:          r.CreatedAt.UTC(),
	}
}

type paymentRow struct {
	ID          uuid.UUID `db:"id"`
	StudentID   uuid.UUID `db:"student_id"`
	StructureID uuid.UUID `db:"structure_id"`
	AmountPaid  float64   `db:"amount_paid"`
	Status      string    `db:"status"`
	PaymentDate time.Time `db:"payment_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r paymentRow) toPayment() fee.Payment {
	return fee.Payment{
		ID:          r.ID,
		StudentID:   r.StudentID,
		StructureID: r.StructureID,
		AmountPaid:  r.AmountPaid,
		Status:      fee.Status(r.Status),
		PaymentDate: r.PaymentDate.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (repo *feeRepository) CreateStructure(ctx context.Context, st fee.Structure) (fee.Structure, error) {
	q := `INSERT INTO fee_structure
		  (id, course_id, semester, tuition_fee, examination_fee, registration_fee, library_fee, extra_activities_fee, total_fee, created_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.ExecContext(ctx, q,
		st.ID, st.CourseID, st.Semester, st.TuitionFee, st.ExaminationFee,
		st.RegistrationFee, st.LibraryFee, st.ExtraActivitiesFee, st.TotalFee, st.CreatedAt)
	if err != nil {
		return fee.Structure{}, errors.Wrap(err, "creating fee structure")
	}
	return st, nil
}

func (repo *feeRepository) queryStructures(ctx context.Context, query string, args ...interface{}) ([]fee.Structure, error) {
	var rows []structureRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying fee structures")
	}
	structures := make([]fee.Structure, 0, len(rows))
	for _, r := range rows {
		structures = append(structures, r.toStructure())
	}
	return structures, nil
}

func (repo *feeRepository) QueryAllStructures(ctx context.Context) ([]fee.Structure, error) {
	return repo.queryStructures(ctx, `SELECT * FROM fee_structure ORDER BY created_at`)
}

func (repo *feeRepository) QueryStructuresByCourse(ctx context.Context, courseID uuid.UUID) ([]fee.Structure, error) {
	return repo.queryStructures(ctx, `SELECT * FROM fee_structure WHERE course_id = $1 ORDER BY semester`, courseID)
}

func (repo *feeRepository) GetStructureByID(ctx context.Context, id uuid.UUID) (fee.Structure, error) {
	var row structureRow
	q := `SELECT * FROM fee_structure WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return fee.Structure{}, fee.ErrStructureNotFound
		}
		return fee.Structure{}, errors.Wrap(err, "getting fee structure")
	}
	return row.toStructure(), nil
}

func (repo *feeRepository) DeleteStructuresByID(ctx context.Context, ids ...uuid.UUID) error {
	q := `DELETE FROM fee_structure WHERE id = ANY($1::uuid[])`
	if _, err := repo.db.ExecContext(ctx, q, uuidArray(ids)); err != nil {
		return errors.Wrap(err, "deleting fee structures")
	}
	return nil
}

func (repo *feeRepository) CreatePayment(ctx context.Context, pmt fee.Payment) (fee.Payment, error) {
	q := `INSERT INTO fee_payment
		  (id, student_id, structure_id, amount_paid, status, payment_date, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q,
		pmt.ID, pmt.StudentID, pmt.StructureID, pmt.AmountPaid, string(pmt.Status),
		pmt.PaymentDate, pmt.CreatedAt, pmt.UpdatedAt)
	if err != nil {
		return fee.Payment{}, errors.Wrap(err, "creating fee payment")
	}
	return pmt, nil
}

func (repo *feeRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]fee.Payment, error) {
	var rows []paymentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying fee payments")
	}
	payments := make([]fee.Payment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, r.toPayment())
	}
	return payments, nil
}

func (repo *feeRepository) QueryAllPayments(ctx context.Context) ([]fee.Payment, error) {
	return repo.queryPayments(ctx, `SELECT * FROM fee_payment ORDER BY created_at`)
}

func (repo *feeRepository) QueryPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]fee.Payment, error) {
	return repo.queryPayments(ctx, `SELECT * FROM fee_payment WHERE student_id = $1 ORDER BY created_at`, studentID)
}

func (repo *feeRepository) GetPayment(ctx context.Context, studentID, structureID uuid.UUID) (fee.Payment, error) {
	var row paymentRow
	q := `SELECT * FROM fee_payment WHERE student_id = $1 AND structure_id = $2`
	if err := repo.db.GetContext(ctx, &row, q, studentID, structureID); err != nil {
		if err == sql.ErrNoRows {
			return fee.Payment{}, fee.ErrPaymentNotFound
		}
		return fee.Payment{}, errors.Wrap(err, "getting fee payment")
	}
	return row.toPayment(), nil
}

func (repo *feeRepository) UpdatePayment(ctx context.Context, pmt fee.Payment) (fee.Payment, error) {
	q := `UPDATE fee_payment
		  SET amount_paid = $2, status = $3, payment_date = $4, updated_at = $5
		  WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q, pmt.ID, pmt.AmountPaid, string(pmt.Status), pmt.PaymentDate, pmt.UpdatedAt)
	if err != nil {
		return fee.Payment{}, errors.Wrap(err, "updating fee payment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fee.Payment{}, fee.ErrPaymentNotFound
	}
	return pmt, nil
}

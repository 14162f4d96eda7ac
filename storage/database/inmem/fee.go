package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/fee"
)

type feeRepository struct {
	db *feeTable
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) fee.Repository {
	return &feeRepository{db: db.fee}
}

func (repo *feeRepository) CreateStructure(ctx context.Context, st fee.Structure) (fee.Structure, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.structures[st.ID] = &st
	return st, nil
}

func (repo *feeRepository) QueryAllStructures(ctx context.Context) ([]fee.Structure, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	structures := make([]fee.Structure, 0, len(repo.db.structures))
	for _, st := range repo.db.structures {
		structures = append(structures, *st)
	}
	return structures, nil
}

func (repo *feeRepository) QueryStructuresByCourse(ctx context.Context, courseID uuid.UUID) ([]fee.Structure, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var structures []fee.Structure
	for _, st := range repo.db.structures {
		if st.CourseID == courseID {
			structures = append(structures, *st)
		}
	}
	return structures, nil
}

func (repo *feeRepository) GetStructureByID(ctx context.Context, id uuid.UUID) (fee.Structure, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if st, ok := repo.db.structures[id]; ok {
		return *st, nil
	}
	return fee.Structure{}, fee.ErrStructureNotFound
}

func (repo *feeRepository) DeleteStructuresByID(ctx context.Context, ids ...uuid.UUID) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.structures, id)
	}
	return nil
}

func (repo *feeRepository) CreatePayment(ctx context.Context, pmt fee.Payment) (fee.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.payments[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *feeRepository) QueryAllPayments(ctx context.Context) ([]fee.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	payments := make([]fee.Payment, 0, len(repo.db.payments))
	for _, pmt := range repo.db.payments {
		payments = append(payments, *pmt)
	}
	return payments, nil
}

func (repo *feeRepository) QueryPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]fee.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var payments []fee.Payment
	for _, pmt := range repo.db.payments {
		if pmt.StudentID == studentID {
			payments = append(payments, *pmt)
		}
	}
	return payments, nil
}

func (repo *feeRepository) GetPayment(ctx context.Context, studentID, structureID uuid.UUID) (fee.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, pmt := range repo.db.payments {
		if pmt.StudentID == studentID && pmt.StructureID == structureID {
			return *pmt, nil
		}
	}
	return fee.Payment{}, fee.ErrPaymentNotFound
}

func (repo *feeRepository) UpdatePayment(ctx context.Context, pmt fee.Payment) (fee.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.payments[pmt.ID]
	if !ok {
		return fee.Payment{}, fee.ErrPaymentNotFound
	}
	orig.AmountPaid = pmt.AmountPaid
	orig.Status = pmt.Status
	orig.PaymentDate = pmt.PaymentDate
	orig.UpdatedAt = pmt.UpdatedAt
	return *orig, nil
}

package fee

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/student"
)

// UnknownLabel is displayed when a referenced course or structure no longer
// resolves (deleting a structure does not cascade to its payments).
const UnknownLabel = "N/A"

var (
	// errors
	ErrStructureNotFound = errors.New("fee structure not found")
	ErrPaymentNotFound   = errors.New("fee payment not found")

	errAmountExceedsDue = "amount exceeds the due amount"
)

type (
	Repository interface {
		CreateStructure(ctx context.Context, st Structure) (Structure, error)
		QueryAllStructures(ctx context.Context) ([]Structure, error)
		QueryStructuresByCourse(ctx context.Context, courseID uuid.UUID) ([]Structure, error)
		GetStructureByID(ctx context.Context, id uuid.UUID) (Structure, error)
		DeleteStructuresByID(ctx context.Context, ids ...uuid.UUID) error

		CreatePayment(ctx context.Context, pmt Payment) (Payment, error)
		QueryAllPayments(ctx context.Context) ([]Payment, error)
		QueryPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Payment, error)
		// GetPayment fetches the single ledger record for a (student, structure) pair.
		GetPayment(ctx context.Context, studentID, structureID uuid.UUID) (Payment, error)
		UpdatePayment(ctx context.Context, pmt Payment) (Payment, error)
	}

	Service struct {
		repo        Repository
		courseRepo  course.Repository
		studentRepo student.Repository
		mailSvc     core.EmailService

		// mu serializes the ledger's read-modify-write; a real multi-user
		// deployment needs a DB transaction here instead.
		mu sync.Mutex
	}
)

func NewService(repo Repository, courseRepo course.Repository, studentRepo student.Repository, mailSvc core.EmailService) *Service {
	return &Service{
		repo:        repo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		mailSvc:     mailSvc,
	}
}

// CreateStructure computes TotalFee as the exact sum of the five components
// and appends the structure to the catalog.
func (svc *Service) CreateStructure(ctx context.Context, ns NewStructure) (Structure, error) {
	if err := ns.Validate(); err != nil {
		return Structure{}, err
	}
	if _, err := svc.courseRepo.GetCourseByID(ctx, ns.CourseID); err != nil {
		if err == course.ErrNotFound {
			return Structure{}, core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
		}
		return Structure{}, err
	}

	st := Structure{
		ID:                 uuid.New(),
		CourseID:           ns.CourseID,
		Semester:           ns.Semester,
		TuitionFee:         ns.TuitionFee,
		ExaminationFee:     ns.ExaminationFee,
		RegistrationFee:    ns.RegistrationFee,
		LibraryFee:         ns.LibraryFee,
		ExtraActivitiesFee: ns.ExtraActivitiesFee,
		CreatedAt:          time.Now().UTC(),
	}
	st.TotalFee = st.ComponentsTotal()
	return svc.repo.CreateStructure(ctx, st)
}

func (svc *Service) QueryStructures(ctx context.Context) ([]Structure, error) {
	return svc.repo.QueryAllStructures(ctx)
}

func (svc *Service) GetStructure(ctx context.Context, id uuid.UUID) (Structure, error) {
	return svc.repo.GetStructureByID(ctx, id)
}

// DeleteStructures removes catalog entries unconditionally. Existing payment
// records keep their structure reference and remain queryable; bill
// resolution degrades to UnknownLabel.
func (svc *Service) DeleteStructures(ctx context.Context, ids ...uuid.UUID) error {
	return svc.repo.DeleteStructuresByID(ctx, ids...)
}

// RecordPayment accumulates a payment event into the single ledger record for
// the (student, structure) pair, creating it on first payment. The due-amount
// guard lives here, not in the caller: a payment above the outstanding due is
// a validation failure.
func (svc *Service) RecordPayment(ctx context.Context, np NewPayment) (Payment, error) {
	if err := np.Validate(); err != nil {
		return Payment{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	st, err := svc.repo.GetStructureByID(ctx, np.StructureID)
	if err != nil {
		return Payment{}, err
	}
	stu, err := svc.studentRepo.GetStudentByID(ctx, np.StudentID)
	if err != nil {
		return Payment{}, err
	}

	var created bool
	now := time.Now().UTC()
	pmt, err := svc.repo.GetPayment(ctx, np.StudentID, np.StructureID)
	switch err {
	case nil:
	case ErrPaymentNotFound:
		created = true
		pmt = Payment{
			ID:          uuid.New(),
			StudentID:   np.StudentID,
			StructureID: np.StructureID,
			CreatedAt:   now,
		}
	default:
		return Payment{}, err
	}

	if due := st.TotalFee - pmt.AmountPaid; np.Amount > due {
		return Payment{}, core.NewValidationError(nil, core.FieldError{Field: "amount", Error: errAmountExceedsDue})
	}

	pmt.AmountPaid += np.Amount
	pmt.Status = DeriveStatus(pmt.AmountPaid, st.TotalFee)
	pmt.PaymentDate = now
	pmt.UpdatedAt = now

	if created {
		pmt, err = svc.repo.CreatePayment(ctx, pmt)
	} else {
		pmt, err = svc.repo.UpdatePayment(ctx, pmt)
	}
	if err != nil {
		return Payment{}, err
	}

	svc.sendReceipt(stu, st, pmt, np.Amount)
	return pmt, nil
}

// Due recomputes the outstanding amount on every read; it is never stored.
func (svc *Service) Due(ctx context.Context, studentID, structureID uuid.UUID) (float64, error) {
	st, err := svc.repo.GetStructureByID(ctx, structureID)
	if err != nil {
		return 0, err
	}
	pmt, err := svc.repo.GetPayment(ctx, studentID, structureID)
	if err != nil {
		if err == ErrPaymentNotFound {
			return st.TotalFee, nil
		}
		return 0, err
	}
	return st.TotalFee - pmt.AmountPaid, nil
}

func (svc *Service) QueryPayments(ctx context.Context) ([]Payment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

func (svc *Service) QueryStudentPayments(ctx context.Context, studentID uuid.UUID) ([]Payment, error) {
	return svc.repo.QueryPaymentsByStudent(ctx, studentID)
}

// StudentBills builds one Bill per fee structure of the student's course,
// joined with the payment ledger. A structure without a payment record yields
// a synthesized StatusDue entry; an orphaned payment (its structure was
// deleted) stays queryable and resolves to UnknownLabel.
func (svc *Service) StudentBills(ctx context.Context, studentID uuid.UUID) ([]Bill, error) {
	stu, err := svc.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	structures, err := svc.repo.QueryStructuresByCourse(ctx, stu.CourseID)
	if err != nil {
		return nil, err
	}
	payments, err := svc.repo.QueryPaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	pmtsByStructure := make(map[uuid.UUID]Payment, len(payments))
	for _, pmt := range payments {
		pmtsByStructure[pmt.StructureID] = pmt
	}

	bills := make([]Bill, 0, len(structures))
	for _, st := range structures {
		bill := Bill{
			StructureID: st.ID,
			CourseName:  svc.resolveCourseName(ctx, st.CourseID),
			Semester:    st.Semester,
			TotalFee:    st.TotalFee,
			Due:         st.TotalFee,
			Status:      StatusDue,
		}
		if pmt, ok := pmtsByStructure[st.ID]; ok {
			pd := pmt.PaymentDate
			bill.AmountPaid = pmt.AmountPaid
			bill.Due = st.TotalFee - pmt.AmountPaid
			bill.Status = pmt.Status
			bill.PaymentDate = &pd
			delete(pmtsByStructure, st.ID)
		}
		bills = append(bills, bill)
	}

	// left-over payments reference structures outside the student's course
	// catalog: either deleted or re-assigned. Keep them visible.
	for _, pmt := range pmtsByStructure {
		pd := pmt.PaymentDate
		bill := Bill{
			StructureID: pmt.StructureID,
			CourseName:  UnknownLabel,
			AmountPaid:  pmt.AmountPaid,
			Status:      pmt.Status,
			PaymentDate: &pd,
		}
		if st, err := svc.repo.GetStructureByID(ctx, pmt.StructureID); err == nil {
			bill.CourseName = svc.resolveCourseName(ctx, st.CourseID)
			bill.Semester = st.Semester
			bill.TotalFee = st.TotalFee
			bill.Due = st.TotalFee - pmt.AmountPaid
		} else if err != ErrStructureNotFound {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func (svc *Service) resolveCourseName(ctx context.Context, courseID uuid.UUID) string {
	crs, err := svc.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return UnknownLabel
	}
	return crs.Name
}

func (svc *Service) sendReceipt(stu student.Student, st Structure, pmt Payment, amount float64) {
	if svc.mailSvc == nil || stu.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nWe received your payment of %.2f for semester %d.\n"+
			"Total paid to date: %.2f of %.2f (%s).\n\nRegards,\nAccounts Office",
		stu.Name, amount, st.Semester, pmt.AmountPaid, st.TotalFee, pmt.Status,
	)
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: stu.Name, Address: stu.Email}},
		Subject: "Fee payment received",
		BodyStr: body,
	}
	svc.mailSvc.SendMessages(msg)
}

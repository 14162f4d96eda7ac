package hostel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/student"
)

var (
	// errors
	ErrHostelNotFound       = errors.New("hostel not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrRoomFull             = errors.New("room is already at full capacity")
	ErrStudentAlreadyBooked = errors.New("student already has a room booked")
)

type (
	Repository interface {
		CreateHostel(ctx context.Context, hst Hostel) (Hostel, error)
		QueryAllHostels(ctx context.Context) ([]Hostel, error)
		GetHostelByID(ctx context.Context, id uuid.UUID) (Hostel, error)

		CreateRoom(ctx context.Context, rm Room) (Room, error)
		QueryAllRooms(ctx context.Context) ([]Room, error)
		GetRoomByID(ctx context.Context, id uuid.UUID) (Room, error)

		CreateBooking(ctx context.Context, bkg Booking) (Booking, error)
		QueryAllBookings(ctx context.Context) ([]Booking, error)
		GetBookingByStudent(ctx context.Context, studentID uuid.UUID) (Booking, error)
		CountBookingsByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
		DeleteBookingsByID(ctx context.Context, ids ...uuid.UUID) error
	}

	Service struct {
		repo        Repository
		studentRepo student.Repository

		// mu serializes the occupancy check-then-book; a real multi-user
		// deployment needs a DB transaction here instead.
		mu sync.Mutex
	}
)

func NewService(repo Repository, studentRepo student.Repository) *Service {
	return &Service{repo: repo, studentRepo: studentRepo}
}

func (svc *Service) CreateHostel(ctx context.Context, nh NewHostel) (Hostel, error) {
	if err := nh.Validate(); err != nil {
		return Hostel{}, err
	}
	hst := Hostel{
		ID:        uuid.New(),
		Name:      nh.Name,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateHostel(ctx, hst)
}

func (svc *Service) QueryHostels(ctx context.Context) ([]Hostel, error) {
	return svc.repo.QueryAllHostels(ctx)
}

func (svc *Service) GetHostel(ctx context.Context, id uuid.UUID) (Hostel, error) {
	return svc.repo.GetHostelByID(ctx, id)
}

// AddRoom attaches a room to an existing hostel; a room referencing a missing
// hostel is not representable.
func (svc *Service) AddRoom(ctx context.Context, nr NewRoom) (Room, error) {
	if err := nr.Validate(); err != nil {
		return Room{}, err
	}
	if _, err := svc.repo.GetHostelByID(ctx, nr.HostelID); err != nil {
		if err == ErrHostelNotFound {
			return Room{}, core.NewValidationError(err, core.FieldError{Field: "hostel_id", Error: err.Error()})
		}
		return Room{}, err
	}
	rm := Room{
		ID:         uuid.New(),
		HostelID:   nr.HostelID,
		RoomNumber: nr.RoomNumber,
		Capacity:   nr.Capacity,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateRoom(ctx, rm)
}

// QueryRooms lists all rooms with their derived occupancy.
func (svc *Service) QueryRooms(ctx context.Context) ([]RoomOccupancy, error) {
	rooms, err := svc.repo.QueryAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	hostels, err := svc.repo.QueryAllHostels(ctx)
	if err != nil {
		return nil, err
	}
	hostelNames := make(map[uuid.UUID]string, len(hostels))
	for _, hst := range hostels {
		hostelNames[hst.ID] = hst.Name
	}

	occupancies := make([]RoomOccupancy, 0, len(rooms))
	for _, rm := range rooms {
		count, err := svc.repo.CountBookingsByRoom(ctx, rm.ID)
		if err != nil {
			return nil, err
		}
		occupancies = append(occupancies, RoomOccupancy{
			Room:       rm,
			HostelName: hostelNames[rm.HostelID],
			Occupants:  count,
			Available:  count < rm.Capacity,
		})
	}
	return occupancies, nil
}

// AvailableRooms lists rooms with occupants < capacity.
func (svc *Service) AvailableRooms(ctx context.Context) ([]RoomOccupancy, error) {
	occupancies, err := svc.QueryRooms(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]RoomOccupancy, 0, len(occupancies))
	for _, occ := range occupancies {
		if occ.Available {
			available = append(available, occ)
		}
	}
	return available, nil
}

// BookRoom assigns a student to a room after re-validating capacity and the
// one-room-per-student invariant, then refreshes the student's denormalized
// hostel snapshot in the same call. A rejected booking mutates nothing.
func (svc *Service) BookRoom(ctx context.Context, nb NewBooking) (Booking, error) {
	if err := nb.Validate(); err != nil {
		return Booking{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	rm, err := svc.repo.GetRoomByID(ctx, nb.RoomID)
	if err != nil {
		return Booking{}, err
	}
	stu, err := svc.studentRepo.GetStudentByID(ctx, nb.StudentID)
	if err != nil {
		return Booking{}, err
	}

	if _, err = svc.repo.GetBookingByStudent(ctx, stu.ID); err == nil {
		return Booking{}, ErrStudentAlreadyBooked
	} else if err != ErrBookingNotFound {
		return Booking{}, err
	}

	occupants, err := svc.repo.CountBookingsByRoom(ctx, rm.ID)
	if err != nil {
		return Booking{}, err
	}
	if occupants >= rm.Capacity {
		return Booking{}, ErrRoomFull
	}

	bkg := Booking{
		ID:        uuid.New(),
		StudentID: stu.ID,
		RoomID:    rm.ID,
		CreatedAt: time.Now().UTC(),
	}
	if bkg, err = svc.repo.CreateBooking(ctx, bkg); err != nil {
		return Booking{}, err
	}

	info := &student.HostelInfo{
		HostelID:   rm.HostelID,
		RoomID:     rm.ID,
		RoomNumber: rm.RoomNumber,
	}
	if _, err = svc.studentRepo.SetHostelInfo(ctx, stu.ID, info); err != nil {
		return Booking{}, pkgerrors.Wrap(err, "updating student hostel snapshot")
	}
	return bkg, nil
}

// CancelBooking removes the student's booking and clears the hostel snapshot.
// No room-side bookkeeping is needed since occupancy is derived.
func (svc *Service) CancelBooking(ctx context.Context, studentID uuid.UUID) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	bkg, err := svc.repo.GetBookingByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteBookingsByID(ctx, bkg.ID); err != nil {
		return err
	}
	if _, err = svc.studentRepo.SetHostelInfo(ctx, studentID, nil); err != nil {
		return pkgerrors.Wrap(err, "clearing student hostel snapshot")
	}
	return nil
}

func (svc *Service) QueryBookings(ctx context.Context) ([]Booking, error) {
	return svc.repo.QueryAllBookings(ctx)
}

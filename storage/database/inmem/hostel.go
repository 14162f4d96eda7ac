package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/hostel"
)

type hostelRepository struct {
	db *hostelTable
}

var _ hostel.Repository = (*hostelRepository)(nil) // interface compliance check

func NewHostelRepository(db *DB) hostel.Repository {
	return &hostelRepository{db: db.hostel}
}

func (repo *hostelRepository) CreateHostel(ctx context.Context, hst hostel.Hostel) (hostel.Hostel, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.hostels[hst.ID] = &hst
	return hst, nil
}

func (repo *hostelRepository) QueryAllHostels(ctx context.Context) ([]hostel.Hostel, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	hostels := make([]hostel.Hostel, 0, len(repo.db.hostels))
	for _, hst := range repo.db.hostels {
		hostels = append(hostels, *hst)
	}
	return hostels, nil
}

func (repo *hostelRepository) GetHostelByID(ctx context.Context, id uuid.UUID) (hostel.Hostel, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if hst, ok := repo.db.hostels[id]; ok {
		return *hst, nil
	}
	return hostel.Hostel{}, hostel.ErrHostelNotFound
}

func (repo *hostelRepository) CreateRoom(ctx context.Context, rm hostel.Room) (hostel.Room, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.rooms[rm.ID] = &rm
	return rm, nil
}

func (repo *hostelRepository) QueryAllRooms(ctx context.Context) ([]hostel.Room, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rooms := make([]hostel.Room, 0, len(repo.db.rooms))
	for _, rm := range repo.db.rooms {
		rooms = append(rooms, *rm)
	}
	return rooms, nil
}

func (repo *hostelRepository) GetRoomByID(ctx context.Context, id uuid.UUID) (hostel.Room, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rm, ok := repo.db.rooms[id]; ok {
		return *rm, nil
	}
	return hostel.Room{}, hostel.ErrRoomNotFound
}

func (repo *hostelRepository) CreateBooking(ctx context.Context, bkg hostel.Booking) (hostel.Booking, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.bookings[bkg.ID] = &bkg
	return bkg, nil
}

func (repo *hostelRepository) QueryAllBookings(ctx context.Context) ([]hostel.Booking, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	bookings := make([]hostel.Booking, 0, len(repo.db.bookings))
	for _, bkg := range repo.db.bookings {
		bookings = append(bookings, *bkg)
	}
	return bookings, nil
}

func (repo *hostelRepository) GetBookingByStudent(ctx context.Context, studentID uuid.UUID) (hostel.Booking, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, bkg := range repo.db.bookings {
		if bkg.StudentID == studentID {
			return *bkg, nil
		}
	}
	return hostel.Booking{}, hostel.ErrBookingNotFound
}

func (repo *hostelRepository) CountBookingsByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, bkg := range repo.db.bookings {
		if bkg.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (repo *hostelRepository) DeleteBookingsByID(ctx context.Context, ids ...uuid.UUID) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.bookings, id)
	}
	return nil
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/hostel"
)

type hostelRepository struct {
	db *sqlx.DB
}

var _ hostel.Repository = (*hostelRepository)(nil) // interface compliance check

func NewHostelRepository(db *sql.DB) hostel.Repository {
	return &hostelRepository{db: sqlx.NewDb(db, "postgres")}
}

type hostelRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type roomRow struct {
	ID         uuid.UUID `db:"id"`
	HostelID   uuid.UUID `db:"hostel_id"`
	RoomNumber string    `db:"room_number"`
	Capacity   int       `db:"capacity"`
	CreatedAt  time.Time `db:"created_at"`
}

type bookingRow struct {
	ID        uuid.UUID `db:"id"`
	StudentID uuid.UUID `db:"student_id"`
	RoomID    uuid.UUID `db:"room_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (repo *hostelRepository) CreateHostel(ctx context.Context, hst hostel.Hostel) (hostel.Hostel, error) {
	q := `INSERT INTO hostel (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := repo.db.ExecContext(ctx, q, hst.ID, hst.Name, hst.CreatedAt); err != nil {
		return hostel.Hostel{}, errors.Wrap(err, "creating hostel")
	}
	return hst, nil
}

func (repo *hostelRepository) QueryAllHostels(ctx context.Context) ([]hostel.Hostel, error) {
	var rows []hostelRow
	q := `SELECT * FROM hostel ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying hostels")
	}
	hostels := make([]hostel.Hostel, 0, len(rows))
	for _, r := range rows {
		hostels = append(hostels, hostel.Hostel{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt.UTC()})
	}
	return hostels, nil
}

func (repo *hostelRepository) GetHostelByID(ctx context.Context, id uuid.UUID) (hostel.Hostel, error) {
	var row hostelRow
	q := `SELECT * FROM hostel WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return hostel.Hostel{}, hostel.ErrHostelNotFound
		}
		return hostel.Hostel{}, errors.Wrap(err, "getting hostel")
	}
	return hostel.Hostel{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.UTC()}, nil
}

func (repo *hostelRepository) CreateRoom(ctx context.Context, rm hostel.Room) (hostel.Room, error) {
	q := `INSERT INTO room (id, hostel_id, room_number, capacity, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, q, rm.ID, rm.HostelID, rm.RoomNumber, rm.Capacity, rm.CreatedAt); err != nil {
		return hostel.Room{}, errors.Wrap(err, "creating room")
	}
	return rm, nil
}

func (repo *hostelRepository) QueryAllRooms(ctx context.Context) ([]hostel.Room, error) {
	var rows []roomRow
	q := `SELECT * FROM room ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying rooms")
	}
	rooms := make([]hostel.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, hostel.Room{
			ID:         r.ID,
			HostelID:   r.HostelID,
			RoomNumber: r.RoomNumber,
			Capacity:   r.Capacity,
			CreatedAt:  r.CreatedAt.UTC(),
		})
	}
	return rooms, nil
}

func (repo *hostelRepository) GetRoomByID(ctx context.Context, id uuid.UUID) (hostel.Room, error) {
	var row roomRow
	q := `SELECT * FROM room WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return hostel.Room{}, hostel.ErrRoomNotFound
		}
		return hostel.Room{}, errors.Wrap(err, "getting room")
	}
	return hostel.Room{
		ID:         row.ID,
		HostelID:   row.HostelID,
		RoomNumber: row.RoomNumber,
		Capacity:   row.Capacity,
		CreatedAt:  row.CreatedAt.UTC(),
	}, nil
}

func (repo *hostelRepository) CreateBooking(ctx context.Context, bkg hostel.Booking) (hostel.Booking, error) {
	q := `INSERT INTO hostel_booking (id, student_id, room_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := repo.db.ExecContext(ctx, q, bkg.ID, bkg.StudentID, bkg.RoomID, bkg.CreatedAt); err != nil {
		return hostel.Booking{}, errors.Wrap(err, "creating booking")
	}
	return bkg, nil
}

func (repo *hostelRepository) QueryAllBookings(ctx context.Context) ([]hostel.Booking, error) {
	var rows []bookingRow
	q := `SELECT * FROM hostel_booking ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying bookings")
	}
	bookings := make([]hostel.Booking, 0, len(rows))
	for _, r := range rows {
		bookings = append(bookings, hostel.Booking{ID: r.ID, StudentID: r.StudentID, RoomID: r.RoomID, CreatedAt: r.CreatedAt.UTC()})
	}
	return bookings, nil
}

func (repo *hostelRepository) GetBookingByStudent(ctx context.Context, studentID uuid.UUID) (hostel.Booking, error) {
	var row bookingRow
	q := `SELECT * FROM hostel_booking WHERE student_id = $1`
	if err := repo.db.GetContext(ctx, &row, q, studentID); err != nil {
		if err == sql.ErrNoRows {
			return hostel.Booking{}, hostel.ErrBookingNotFound
		}
		return hostel.Booking{}, errors.Wrap(err, "getting booking")
	}
	return hostel.Booking{ID: row.ID, StudentID: row.StudentID, RoomID: row.RoomID, CreatedAt: row.CreatedAt.UTC()}, nil
}

func (repo *hostelRepository) CountBookingsByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	q := `SELECT COUNT(*) FROM hostel_booking WHERE room_id = $1`
	if err := repo.db.GetContext(ctx, &count, q, roomID); err != nil {
		return 0, errors.Wrap(err, "counting room bookings")
	}
	return count, nil
}

func (repo *hostelRepository) DeleteBookingsByID(ctx context.Context, ids ...uuid.UUID) error {
	q := `DELETE FROM hostel_booking WHERE id = ANY($1::uuid[])`
	if _, err := repo.db.ExecContext(ctx, q, uuidArray(ids)); err != nil {
		return errors.Wrap(err, "deleting bookings")
	}
	return nil
}

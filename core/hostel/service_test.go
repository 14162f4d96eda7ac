package hostel_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	testutil "github.com/trezcool/academia/tests"
)

type deps struct {
	courseRepo  course.Repository
	studentRepo student.Repository
	hostelRepo  hostel.Repository
}

func setup(t *testing.T) (*hostel.Service, *deps) {
	db, err := inmemdb.Open()
	require.NoError(t, err)

	d := &deps{
		courseRepo:  inmemdb.NewCourseRepository(db),
		studentRepo: inmemdb.NewStudentRepository(db),
		hostelRepo:  inmemdb.NewHostelRepository(db),
	}
	svc := hostel.NewService(d.hostelRepo, d.studentRepo)
	return svc, d
}

func TestService_AddRoom(t *testing.T) {
	svc, d := setup(t)
	ctx := context.Background()
	hst := testutil.CreateHostel(t, d.hostelRepo, "North Wing")

	t.Run("unknown hostel", func(t *testing.T) {
		_, err := svc.AddRoom(ctx, hostel.NewRoom{HostelID: uuid.New(), RoomNumber: "A1", Capacity: 2})
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want *core.ValidationError, got %v", err)
		assert.Equal(t, "hostel_id", vErr.Fields[0].Field)
	})

	t.Run("ok", func(t *testing.T) {
		rm, err := svc.AddRoom(ctx, hostel.NewRoom{HostelID: hst.ID, RoomNumber: "A1", Capacity: 2})
		require.NoError(t, err)
		assert.Equal(t, hst.ID, rm.HostelID)

		occupancies, err := svc.QueryRooms(ctx)
		require.NoError(t, err)
		require.Len(t, occupancies, 1)
		assert.Equal(t, hst.Name, occupancies[0].HostelName)
		assert.Equal(t, 0, occupancies[0].Occupants)
		assert.True(t, occupancies[0].Available)
	})
}

func TestService_BookRoom(t *testing.T) {
	svc, d := setup(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, d.courseRepo, "BSc Computer Science", "bcs", 6)
	stu1 := testutil.CreateStudent(t, d.studentRepo, "Hero", "ACA0001", "hero@test.cd", crs.ID)
	stu2 := testutil.CreateStudent(t, d.studentRepo, "King", "ACA0002", "king@test.cd", crs.ID)
	stu3 := testutil.CreateStudent(t, d.studentRepo, "Awe", "ACA0003", "awe@test.cd", crs.ID)
	hst := testutil.CreateHostel(t, d.hostelRepo, "North Wing")
	rm := testutil.CreateRoom(t, d.hostelRepo, hst.ID, "A1", 2)

	t.Run("booking refreshes the student snapshot", func(t *testing.T) {
		bkg, err := svc.BookRoom(ctx, hostel.NewBooking{StudentID: stu1.ID, RoomID: rm.ID})
		require.NoError(t, err)
		assert.Equal(t, rm.ID, bkg.RoomID)

		refreshed, err := d.studentRepo.GetStudentByID(ctx, stu1.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed.HostelInfo)
		assert.Equal(t, hst.ID, refreshed.HostelInfo.HostelID)
		assert.Equal(t, rm.RoomNumber, refreshed.HostelInfo.RoomNumber)
	})

	t.Run("one room per student", func(t *testing.T) {
		_, err := svc.BookRoom(ctx, hostel.NewBooking{StudentID: stu1.ID, RoomID: rm.ID})
		assert.Equal(t, hostel.ErrStudentAlreadyBooked, err)
	})

	t.Run("full room rejects and mutates nothing", func(t *testing.T) {
		_, err := svc.BookRoom(ctx, hostel.NewBooking{StudentID: stu2.ID, RoomID: rm.ID})
		require.NoError(t, err)

		_, err = svc.BookRoom(ctx, hostel.NewBooking{StudentID: stu3.ID, RoomID: rm.ID})
		assert.Equal(t, hostel.ErrRoomFull, err)

		bookings, err := svc.QueryBookings(ctx)
		require.NoError(t, err)
		assert.Len(t, bookings, 2)

		refreshed, err := d.studentRepo.GetStudentByID(ctx, stu3.ID)
		require.NoError(t, err)
		assert.Nil(t, refreshed.HostelInfo)

		available, err := svc.AvailableRooms(ctx)
		require.NoError(t, err)
		assert.Len(t, available, 0)
	})

	t.Run("cancel frees the slot and clears the snapshot", func(t *testing.T) {
		require.NoError(t, svc.CancelBooking(ctx, stu1.ID))

		refreshed, err := d.studentRepo.GetStudentByID(ctx, stu1.ID)
		require.NoError(t, err)
		assert.Nil(t, refreshed.HostelInfo)

		available, err := svc.AvailableRooms(ctx)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, 1, available[0].Occupants)

		_, err = svc.BookRoom(ctx, hostel.NewBooking{StudentID: stu3.ID, RoomID: rm.ID})
		assert.NoError(t, err)
	})

	t.Run("cancel without booking", func(t *testing.T) {
		err := svc.CancelBooking(ctx, uuid.New())
		assert.Equal(t, hostel.ErrBookingNotFound, err)
	})
}

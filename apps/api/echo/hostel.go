package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/hostel"
)

type hostelApi struct {
	svc *hostel.Service
}

// bookingResponse is the booking contract: a success flag and a
// human-readable message for direct display.
type bookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking *hostel.Booking `json:"booking,omitempty"`
}

func registerHostelAPI(g *echo.Group, svc *hostel.Service) {
	api := hostelApi{svc: svc}

	hg := g.Group("/hostels")
	hg.POST("", api.createHostel)
	hg.GET("", api.queryHostels)
	hg.GET("/:id", api.retrieveHostel)
	hg.POST("/:id/rooms", api.addRoom)

	g.GET("/rooms", api.queryRooms)

	// bookings are keyed by student: a student holds at most one
	bg := g.Group("/bookings")
	bg.POST("", api.bookRoom)
	bg.GET("", api.queryBookings)
	bg.DELETE("/:student_id", api.cancelBooking)
}

func (api *hostelApi) createHostel(ctx echo.Context) error {
	var data hostel.NewHostel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHostel")
	}
	hst, err := api.svc.CreateHostel(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, hst)
}

func (api *hostelApi) queryHostels(ctx echo.Context) error {
	hostels, err := api.svc.QueryHostels(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hostels)
}

func (api *hostelApi) retrieveHostel(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	hst, err := api.svc.GetHostel(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hst)
}

func (api *hostelApi) addRoom(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var data hostel.NewRoom
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoom")
	}
	data.HostelID = id

	rm, err := api.svc.AddRoom(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rm)
}

func (api *hostelApi) queryRooms(ctx echo.Context) error {
	var (
		rooms []hostel.RoomOccupancy
		err   error
	)
	if ctx.QueryParam("available") == "true" {
		rooms, err = api.svc.AvailableRooms(ctx.Request().Context())
	} else {
		rooms, err = api.svc.QueryRooms(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rooms)
}

func (api *hostelApi) bookRoom(ctx echo.Context) error {
	var data hostel.NewBooking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBooking")
	}

	bkg, err := api.svc.BookRoom(ctx.Request().Context(), data)
	switch errors.Cause(err) {
	case nil:
		return ctx.JSON(http.StatusCreated, bookingResponse{
			Success: true,
			Message: "room booked successfully",
			Booking: &bkg,
		})
	case hostel.ErrRoomFull, hostel.ErrStudentAlreadyBooked:
		return ctx.JSON(http.StatusConflict, bookingResponse{Success: false, Message: err.Error()})
	}
	return err
}

func (api *hostelApi) queryBookings(ctx echo.Context) error {
	bookings, err := api.svc.QueryBookings(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, bookings)
}

func (api *hostelApi) cancelBooking(ctx echo.Context) error {
	studentID, err := uuidParam(ctx, "student_id")
	if err != nil {
		return err
	}
	if err := api.svc.CancelBooking(ctx.Request().Context(), studentID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/fee"
)

type feeApi struct {
	svc *fee.Service
}

func registerFeeAPI(g *echo.Group, svc *fee.Service) {
	api := feeApi{svc: svc}

	fg := g.Group("/fees")
	fg.POST("/structures", api.createStructure)
	fg.GET("/structures", api.queryStructures)
	fg.GET("/structures/:id", api.retrieveStructure)
	fg.DELETE("/structures/:id", api.destroyStructure)

	fg.POST("/payments", api.recordPayment)
	fg.GET("/payments", api.queryPayments)
	fg.GET("/due", api.retrieveDue)
}

func (api *feeApi) createStructure(ctx echo.Context) error {
	var data fee.NewStructure
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStructure")
	}
	st, err := api.svc.CreateStructure(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *feeApi) queryStructures(ctx echo.Context) error {
	structures, err := api.svc.QueryStructures(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, structures)
}

func (api *feeApi) retrieveStructure(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	st, err := api.svc.GetStructure(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *feeApi) destroyStructure(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.DeleteStructures(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *feeApi) recordPayment(ctx echo.Context) error {
	var data fee.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	pmt, err := api.svc.RecordPayment(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *feeApi) queryPayments(ctx echo.Context) error {
	studentID, err := uuidQueryParam(ctx, "student_id")
	if err != nil {
		return err
	}

	var payments []fee.Payment
	if studentID != uuid.Nil {
		payments, err = api.svc.QueryStudentPayments(ctx.Request().Context(), studentID)
	} else {
		payments, err = api.svc.QueryPayments(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, payments)
}

type dueResponse struct {
	StudentID   uuid.UUID `json:"student_id"`
	StructureID uuid.UUID `json:"structure_id"`
	Due         float64   `json:"due"`
}

func (api *feeApi) retrieveDue(ctx echo.Context) error {
	studentID, err := uuidQueryParam(ctx, "student_id")
	if err != nil {
		return err
	}
	structureID, err := uuidQueryParam(ctx, "structure_id")
	if err != nil {
		return err
	}
	if studentID == uuid.Nil || structureID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id and structure_id are required")
	}

	due, err := api.svc.Due(ctx.Request().Context(), studentID, structureID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dueResponse{StudentID: studentID, StructureID: structureID, Due: due})
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/student"
)

type studentApi struct {
	svc    *student.Service
	feeSvc *fee.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service, feeSvc *fee.Service) {
	api := studentApi{svc: svc, feeSvc: feeSvc}

	sg := g.Group("/students")
	sg.POST("/register", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/bills", api.queryBills)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	stu, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) queryBills(ctx echo.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	bills, err := api.feeSvc.StudentBills(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, bills)
}

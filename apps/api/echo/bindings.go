package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// uuidParam parses a UUID path parameter.
func uuidParam(ctx echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// uuidQueryParam parses an optional UUID query parameter; uuid.Nil when absent.
func uuidQueryParam(ctx echo.Context, name string) (uuid.UUID, error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

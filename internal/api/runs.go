package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/voltlab/regen2go/internal/persistence"
)

func registerRunEndpoints(rest *echo.Echo, pers persistence.Persistence) {
	group := rest.Group("/run")

	group.GET("/", func(c echo.Context) error {
		return getRuns(c, pers)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getRun(c, pers)
	})
	group.DELETE("/:"+urlParamId+"/", func(c echo.Context) error {
		return deleteRun(c, pers)
	})
}

func getRuns(c echo.Context, pers persistence.Persistence) error {
	records, err := pers.ListRuns()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, records, indentationChar)
}

func getRun(c echo.Context, pers persistence.Persistence) error {
	id := c.Param(urlParamId)
	record, err := pers.LoadRun(id)
	if err != nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, record, indentationChar)
}

func deleteRun(c echo.Context, pers persistence.Persistence) error {
	id := c.Param(urlParamId)
	if err := pers.DeleteRun(id); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

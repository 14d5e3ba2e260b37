package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/voltlab/regen2go/internal/sources"
)

func registerSourceEndpoints(rest *echo.Echo) {
	group := rest.Group("/source")

	group.GET("/", getSources)
	group.GET("/:"+urlParamId+"/", getSource)
}

func getSources(c echo.Context) error {
	data := reprint.This(sources.SourceMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSource(c echo.Context) error {
	id := c.Param(urlParamId)

	data, exists := sources.SourceMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
	}
}

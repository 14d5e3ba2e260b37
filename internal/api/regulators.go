package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/voltlab/regen2go/internal/regulator"
)

func registerRegulatorEndpoints(rest *echo.Echo) {
	group := rest.Group("/regulator")

	group.GET("/", getRegulators)
	group.GET("/:"+urlParamId+"/", getRegulator)
}

func getRegulators(c echo.Context) error {
	data := map[string]regulator.Status{}
	for entry := range regulator.RegulatorMap.IterBuffered() {
		data[entry.Key] = entry.Val.GetStatus()
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getRegulator(c echo.Context) error {
	id := c.Param(urlParamId)
	reg, exists := regulator.RegulatorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, reg.GetStatus(), indentationChar)
	}
}

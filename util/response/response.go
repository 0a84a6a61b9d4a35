// Package response writes the API envelope: {success, data|message},
// with a count field on list endpoints.
package response

import "github.com/labstack/echo/v4"

func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func List(c echo.Context, status int, count int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "count": count, "data": data})
}

func Err(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

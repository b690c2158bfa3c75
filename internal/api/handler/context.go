package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject returns the account id the Auth middleware stored under "sub".
// An empty subject means the token was structurally valid but unusable.
func ctxSubject(c echo.Context) (string, error) {
	sub, _ := c.Get("sub").(string)
	if sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}
	return sub, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// ctxActor rebuilds the acting user from the claims injected by the Auth
// middleware. An empty user_id or an off-enumeration role means the token
// predates the claim layout or was minted elsewhere; reject with 401 before
// any service call.
func ctxActor(c echo.Context) (domain.User, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	rawRole, _ := c.Get("role").(string)
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	codeName, _ := c.Get("code_name").(string)
	email, _ := c.Get("email").(string)

	return domain.User{
		ID:       id,
		CodeName: codeName,
		Email:    email,
		Role:     role,
	}, nil
}

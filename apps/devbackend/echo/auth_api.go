package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core/student"
)

type authApi struct {
	auth  *authenticator
	store Store
}

func registerAuthAPI(g *echo.Group, auth *authenticator, store Store) {
	api := authApi{auth: auth, store: store}

	g.POST("/signup", api.signup)
	g.POST("/login", api.login)
	g.POST("/logout", api.logout)
}

// signupRequest is what the portal client sends: the confirmation is checked client-side.
type signupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  int    `json:"department"`
	PhoneNumber string `json:"phonenumber"`
	Age         int    `json:"age"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (api *authApi) signup(ctx echo.Context) error {
	var data signupRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to signupRequest")
	}
	ns := student.NewStudent{
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Password:        data.Password,
		PasswordConfirm: data.Password,
		Department:      data.Department,
		PhoneNumber:     data.PhoneNumber,
		Age:             data.Age,
	}
	if err := ns.Validate(); err != nil {
		return err
	}

	usr, err := api.store.CreateStudent(ns)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *authApi) login(ctx echo.Context) error {
	var creds student.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	usr, err := api.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	if err := api.auth.login(ctx, usr); err != nil {
		return errors.Wrap(err, "starting session")
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Logged in successfully"})
}

func (api *authApi) logout(ctx echo.Context) error {
	api.auth.logout(ctx)
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

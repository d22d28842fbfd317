package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
	inmemdb "github.com/trezcool/studentportal/storage/database/inmem"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errSessionEnded = echo.NewHTTPError(http.StatusUnauthorized, "Session expired, please log in again")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Every error body carries an "error" message; validation errors add the "fields" map.
func newAppHTTPErrorHandler(logger core.Logger, auth *authenticator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		var vErr *core.ValidationError
		var cErr *inmemdb.UnknownCourseError
		var gErr *transcript.InvalidGradeError

		switch origErr := errors.Cause(err); {
		case errors.As(err, &vErr):
			code = http.StatusBadRequest
			body["error"] = validationMessage(vErr)
			if len(vErr.Fields) > 0 {
				body["fields"] = vErr.Map()
			}
		case errors.As(err, &cErr):
			code = http.StatusBadRequest
			body["error"] = cErr.Error()
		case origErr == inmemdb.ErrInvalidCredentials:
			code = http.StatusUnauthorized
			body["error"] = origErr.Error()
		case origErr == inmemdb.ErrEmailExists:
			code = http.StatusConflict
			body["error"] = origErr.Error()
		case origErr == inmemdb.ErrNotFound:
			// the session outlived its student
			code = http.StatusUnauthorized
			body["error"] = errSessionEnded.Message
		default:
			if hErr, ok := origErr.(*echo.HTTPError); ok {
				if inner, ok := hErr.Internal.(*echo.HTTPError); ok {
					hErr = inner
				}
				code = hErr.Code
				body["error"] = hErr.Message
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(code)
			body["error"] = msg

			args := []interface{}{errors.Wrap(err, msg)}
			if errors.As(err, &gErr) {
				args = append(args, map[string]interface{}{"grade": gErr.Grade, "course": gErr.Course})
			}
			if usr, ok := ctx.Get(contextStudentKey).(student.Profile); ok {
				args = append(args, usr)
			}
			logger.Error(msg, args...)
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// validationMessage joins the field messages in field order.
func validationMessage(vErr *core.ValidationError) string {
	if len(vErr.Fields) == 0 {
		return vErr.Error()
	}
	msgs := make([]string, 0, len(vErr.Fields))
	for _, fErr := range vErr.Fields {
		msgs = append(msgs, fErr.Error)
	}
	return strings.Join(msgs, "; ")
}

package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

const (
	contextClaimsKey  = "claims"
	contextStudentKey = "student"
	audience          = "student-portal"
)

// Claims represents the session claims carried by the session cookie.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

func (c Claims) studentID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid subject %q", c.Subject)
	}
	return id, nil
}

type authenticator struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	issuer     string
	secure     bool
	store      Store
	now        func() time.Time
}

func newAuthenticator(conf *core.Config, store Store) *authenticator {
	return &authenticator{
		secret:     []byte(conf.DevBackend.SecretKey),
		ttl:        conf.DevBackend.TokenTTL,
		cookieName: conf.DevBackend.CookieName,
		issuer:     conf.AppName,
		secure:     conf.Env == "PROD",
		store:      store,
		now:        time.Now,
	}
}

func (a *authenticator) claimsFor(usr student.Profile) *Claims {
	now := a.now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    a.issuer,
			Subject:   strconv.Itoa(usr.ID),
			Audience:  audience,
			ExpiresAt: now.Add(a.ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
	}
}

// GenerateToken signs the claims with HS256.
func (a *authenticator) GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *authenticator) parse(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	if !claims.VerifyAudience(audience, true) || a.store.IsRevoked(claims.Id) {
		return nil, errUnauthorized
	}
	return claims, nil
}

// login sets the HttpOnly session cookie.
func (a *authenticator) login(ctx echo.Context, usr student.Profile) error {
	claims := a.claimsFor(usr)
	token, err := a.GenerateToken(claims)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(claims.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// logout revokes the current session token, if any, and clears the cookie.
func (a *authenticator) logout(ctx echo.Context) {
	if cookie, err := ctx.Cookie(a.cookieName); err == nil {
		if claims, err := a.parse(cookie.Value); err == nil {
			a.store.RevokeToken(claims.Id, time.Unix(claims.ExpiresAt, 0))
		}
	}
	ctx.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   a.secure,
	})
}

// middleware authenticates the session cookie and loads the student into the context.
func (a *authenticator) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(a.cookieName)
		if err != nil || cookie.Value == "" {
			return errUnauthorized
		}
		claims, err := a.parse(cookie.Value)
		if err != nil {
			return err
		}
		id, err := claims.studentID()
		if err != nil {
			return errUnauthorized
		}
		usr, err := a.store.GetStudent(id)
		if err != nil {
			return errors.Wrap(err, "finding student by ID")
		}
		ctx.Set(contextClaimsKey, *claims)
		ctx.Set(contextStudentKey, usr)
		return next(ctx)
	}
}

func getContextStudent(ctx echo.Context) (student.Profile, error) {
	if usr, ok := ctx.Get(contextStudentKey).(student.Profile); ok {
		return usr, nil
	}
	return student.Profile{}, errUnauthorized
}

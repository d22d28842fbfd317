package backendsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

const (
	signupPath             = "/auth/signup"
	loginPath              = "/auth/login"
	logoutPath             = "/auth/logout"
	profilePath            = "/student/profile"
	offerableCoursesPath   = "/student/offerable-courses"
	registerCoursesPath    = "/student/register-courses"
	cgpaPath               = "/student/cgpa"
	registeredCoursesPath  = "/student/registered-courses"
	transcriptDownloadPath = "/student/transcript"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; its Jar is replaced when nil.
	HTTPClient *http.Client
}

// Client talks to the portal REST backend. The session lives in a cookie
// set by the backend at login.
type Client struct {
	base *url.URL
	http *http.Client
}

var (
	_ student.AuthBackend = (*Client)(nil)
	_ student.Backend     = (*Client)(nil)
)

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing backend URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("invalid backend URL %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, errors.Wrap(err, "creating cookie jar")
		}
		hc.Jar = jar
	}
	return &Client{base: base, http: hc}, nil
}

// Cookies returns the session cookies held for the backend.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.base)
}

// SetCookies restores session cookies, e.g. from a previous run.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.http.Jar.SetCookies(c.base, cookies)
}

// signupPayload is NewStudent without the confirmation, which never leaves the client.
type signupPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  int    `json:"department"`
	PhoneNumber string `json:"phonenumber"`
	Age         int    `json:"age"`
}

func (c *Client) Signup(ctx context.Context, ns student.NewStudent) (student.Profile, error) {
	in := signupPayload{
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		Email:       ns.Email,
		Password:    ns.Password,
		Department:  ns.Department,
		PhoneNumber: ns.PhoneNumber,
		Age:         ns.Age,
	}
	var usr student.Profile
	if err := c.do(ctx, http.MethodPost, signupPath, in, &usr); err != nil {
		return student.Profile{}, err
	}
	return usr, nil
}

func (c *Client) Login(ctx context.Context, creds student.Credentials) error {
	return c.do(ctx, http.MethodPost, loginPath, creds, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, logoutPath, nil, nil)
}

func (c *Client) GetProfile(ctx context.Context) (student.Profile, error) {
	var usr student.Profile
	err := c.do(ctx, http.MethodGet, profilePath, nil, &usr)
	return usr, err
}

func (c *Client) GetOfferableCourses(ctx context.Context) (student.CourseSet, error) {
	var set student.CourseSet
	err := c.do(ctx, http.MethodGet, offerableCoursesPath, nil, &set)
	return set, err
}

type registerCoursesPayload struct {
	ElectiveCourseIDs []int `json:"electiveCourseIds"`
}

func (c *Client) RegisterCourses(ctx context.Context, electiveIDs []int) error {
	if electiveIDs == nil {
		electiveIDs = []int{}
	}
	return c.do(ctx, http.MethodPost, registerCoursesPath, registerCoursesPayload{ElectiveCourseIDs: electiveIDs}, nil)
}

func (c *Client) GetCGPA(ctx context.Context) (student.CGPAReport, error) {
	var report student.CGPAReport
	err := c.do(ctx, http.MethodGet, cgpaPath, nil, &report)
	return report, err
}

func (c *Client) GetRegisteredCourses(ctx context.Context) (student.CourseSet, error) {
	var set student.CourseSet
	err := c.do(ctx, http.MethodGet, registeredCoursesPath, nil, &set)
	return set, err
}

func (c *Client) DownloadTranscript(ctx context.Context, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, http.MethodGet, transcriptDownloadPath, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &core.BackendError{Status: resp.StatusCode, Err: errors.Wrap(err, "reading transcript")}
	}
	return n, nil
}

// do sends in as JSON and decodes the response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &core.BackendError{Status: resp.StatusCode, Message: "invalid response", Err: errors.Wrapf(err, "decoding %s", path)}
	}
	return nil
}

// send returns the response of a 2xx call; anything else becomes a *core.BackendError.
func (c *Client) send(ctx context.Context, method, path string, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s request", path)
		}
		body = bytes.NewReader(data)
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s request", path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &core.BackendError{Err: errors.Wrapf(err, "%s %s", method, path)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &core.BackendError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	return resp, nil
}

// errorMessage extracts the "error" (or "message") field of a JSON error body.
func errorMessage(r io.Reader) string {
	data, err := ioutil.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	for _, v := range []interface{}{body.Error, body.Message} {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

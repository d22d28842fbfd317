package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/trezcool/studentportal/apps/devbackend/echo"
	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/session"
	"github.com/trezcool/studentportal/core/student"
	backendsvc "github.com/trezcool/studentportal/services/backend"
	inmemdb "github.com/trezcool/studentportal/storage/database/inmem"
	"github.com/trezcool/studentportal/storage/flagstore"
	"github.com/trezcool/studentportal/tests"
)

// env is what survives between two runs of the portal: the backend and the session files.
type env struct {
	url        string
	dir        string
	flagFile   string
	cookieFile string
	db         *inmemdb.DB
}

func setup(t *testing.T) *env {
	db := inmemdb.Open(inmemdb.DefaultCatalogue...).WithHashCost(bcrypt.MinCost)
	_, err := db.SeedDemo()
	require.NoError(t, err)

	conf := &core.Config{AppName: "Student Portal", Env: "TEST", TestMode: true}
	conf.DevBackend.SecretKey = "test-secret"
	conf.DevBackend.TokenTTL = time.Hour
	conf.DevBackend.CookieName = "token"
	srv := httptest.NewServer(echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         new(testutil.Logger),
		Store:          db,
		DisableReqLogs: true,
	}))
	t.Cleanup(srv.Close)

	dir, err := ioutil.TempDir("", "portal")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return &env{
		url:        srv.URL,
		dir:        dir,
		flagFile:   filepath.Join(dir, "session.json"),
		cookieFile: filepath.Join(dir, "cookies.json"),
		db:         db,
	}
}

// newCLI builds the portal the way main does.
func (e *env) newCLI(t *testing.T) (*commandLine, *bytes.Buffer) {
	client, err := backendsvc.NewClient(backendsvc.Options{BaseURL: e.url, Timeout: 10 * time.Second})
	require.NoError(t, err)
	cookies := flagstore.NewCookieFile(e.cookieFile)
	saved, err := cookies.Load()
	require.NoError(t, err)
	client.SetCookies(saved)

	logger := new(testutil.Logger)
	out := new(bytes.Buffer)
	return &commandLine{
		out:     out,
		session: session.New(client, client, flagstore.NewFileStore(e.flagFile), logger),
		svc:     student.NewService(client, logger),
		guard:   session.Guard{Interval: time.Millisecond},
		jar:     client,
		cookies: cookies,
	}, out
}

// run runs the portal once with args (without program name).
func (e *env) run(t *testing.T, args ...string) (string, error) {
	cli, out := e.newCLI(t)
	err := cli.run(context.Background(), append([]string{"portal"}, args...))
	return out.String(), err
}

func mockPasswords(t *testing.T, pwds ...string) {
	orig := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = orig })
	readPasswordFunc = func(int) ([]byte, error) {
		if len(pwds) == 0 {
			return nil, nil
		}
		pwd := pwds[0]
		pwds = pwds[1:]
		return []byte(pwd), nil
	}
}

type cliTest struct {
	name     string
	args     []string // without program name
	wantErr  error
	wantOut  string
	password string
}

func Test_commandLine_usage(t *testing.T) {
	e := setup(t)
	tests := []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: "Usage:"},
		{name: "login without email", args: []string{"login"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"register", "-elective", "x"}, wantErr: errHelp},
		{name: "departments", args: []string{"departments"}, wantOut: "Computer Engineering"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.run(t, tt.args...)
			assert.Equal(t, tt.wantErr, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func Test_commandLine_protected(t *testing.T) {
	e := setup(t)
	for _, cmd := range []string{"dashboard", "profile", "transcript", "courses", "register", "download-transcript"} {
		t.Run(cmd, func(t *testing.T) {
			out, err := e.run(t, cmd)
			assert.Equal(t, errNotAuthenticated, err)
			assert.Contains(t, out, "not logged in; run `portal login`")
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	e := setup(t)

	mockPasswords(t, "wrong")
	out, err := e.run(t, "login", "-email", inmemdb.DemoEmail)
	assert.Error(t, err)
	assert.Contains(t, out, "Invalid email or password")

	mockPasswords(t, "")
	out, err = e.run(t, "login", "-email", inmemdb.DemoEmail)
	assert.Error(t, err)
	assert.Contains(t, out, student.CredentialsRequiredText)

	mockPasswords(t, inmemdb.DemoPassword)
	out, err = e.run(t, "login", "-email", inmemdb.DemoEmail)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Demo Student")

	loggedIn, err := flagstore.NewFileStore(e.flagFile).LoggedIn()
	require.NoError(t, err)
	assert.True(t, loggedIn)

	// the next run resumes the session from the saved cookies
	out, err = e.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Demo Student <"+inmemdb.DemoEmail+">")

	out, err = e.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	_, err = os.Stat(e.cookieFile)
	assert.True(t, os.IsNotExist(err))

	out, err = e.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func Test_commandLine_profile(t *testing.T) {
	e := setup(t)
	args := []string{"signup", "-first", "Ada", "-last", "Obi", "-email", "ada@example.com",
		"-department", "2", "-phone", "08012345678", "-age", "19"}
	mockPasswords(t, "secret1", "secret1", "secret1")
	_, err := e.run(t, args...)
	require.NoError(t, err)
	_, err = e.run(t, "login", "-email", "ada@example.com")
	require.NoError(t, err)

	out, err := e.run(t, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Your Profile")
	for _, want := range []string{"Ada", "Obi", "ada@example.com", "08012345678", "19"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, student.NotProvidedText)
}

func Test_commandLine_staleFlag(t *testing.T) {
	e := setup(t)
	require.NoError(t, flagstore.NewFileStore(e.flagFile).SetLoggedIn(true))

	out, err := e.run(t, "dashboard")
	assert.Equal(t, errNotAuthenticated, err)
	assert.Contains(t, out, "not logged in")

	loggedIn, err := flagstore.NewFileStore(e.flagFile).LoggedIn()
	require.NoError(t, err)
	assert.False(t, loggedIn, "a rejected session must clear the flag")
}

func Test_commandLine_signup(t *testing.T) {
	e := setup(t)
	args := []string{"signup", "-first", "Ada", "-last", "Obi", "-email", "ada@example.com",
		"-department", "2", "-phone", "08012345678", "-age", "19"}

	mockPasswords(t, "secret1", "secret2")
	out, err := e.run(t, args...)
	assert.Error(t, err)
	assert.Contains(t, out, "password_confirm: Passwords do not match")

	mockPasswords(t, "secret1", "secret1")
	out, err = e.run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Account created for Ada Obi")

	mockPasswords(t, "secret1", "secret1")
	out, err = e.run(t, args...)
	assert.Error(t, err)
	assert.Contains(t, out, "Email already registered")

	// signing up does not log in
	out, err = e.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func Test_commandLine_views(t *testing.T) {
	e := setup(t)
	mockPasswords(t, inmemdb.DemoPassword)
	_, err := e.run(t, "login", "-email", inmemdb.DemoEmail)
	require.NoError(t, err)

	tests := []cliTest{
		{name: "dashboard", args: []string{"dashboard"}, wantOut: "4.15"},
		{name: "profile", args: []string{"profile"}, wantOut: "08000000000"},
		{name: "transcript", args: []string{"transcript"}, wantOut: "No grade yet"},
		{name: "courses", args: []string{"courses"}, wantOut: "PHL101"},
		{name: "register unknown", args: []string{"register", "-elective", "31"}, wantOut: "Not offered as electives: [31]"},
		{name: "register", args: []string{"register", "-elective", "10,12"}, wantOut: "Registered 4 compulsory and 2 elective courses (15 units)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.run(t, tt.args...)
			if strings.HasPrefix(tt.name, "register unknown") {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.wantOut)
		})
	}

	out, err := e.run(t, "transcript")
	require.NoError(t, err)
	assert.Contains(t, out, "1st semester")
	assert.Contains(t, out, "2nd semester")
	assert.Contains(t, out, "PHL101")

	path := filepath.Join(e.dir, "official.txt")
	out, err = e.run(t, "download-transcript", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved transcript to "+path)
	doc, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "OFFICIAL TRANSCRIPT")
}

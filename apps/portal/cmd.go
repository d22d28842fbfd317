package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/studentportal/core/session"
	"github.com/trezcool/studentportal/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp             = errors.New("help provided")
	errNotAuthenticated = errors.New("not authenticated")
)

// cookieJar is the backend client's view of the session cookies.
type cookieJar interface {
	Cookies() []*http.Cookie
}

type cookieStore interface {
	Save(cookies []*http.Cookie) error
}

type commandLine struct {
	out     io.Writer
	session *session.Manager
	svc     *student.Service
	guard   session.Guard
	jar     cookieJar
	cookies cookieStore
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                      - log in; the password is prompted")
	fmt.Fprintln(cli.out, "  signup -first NAME -last NAME -email EMAIL -department ID -phone PHONE -age AGE")
	fmt.Fprintln(cli.out, "                                          - create an account; the password is prompted")
	fmt.Fprintln(cli.out, "  logout                                  - end the session")
	fmt.Fprintln(cli.out, "  status                                  - show who is logged in")
	fmt.Fprintln(cli.out, "  departments                             - list the departments")
	fmt.Fprintln(cli.out, "  dashboard                               - show the dashboard")
	fmt.Fprintln(cli.out, "  profile                                 - show your personal information")
	fmt.Fprintln(cli.out, "  transcript                              - show the transcript")
	fmt.Fprintln(cli.out, "  courses                                 - list the courses offered for registration")
	fmt.Fprintln(cli.out, "  register [-elective ID]...              - register compulsory courses and the electives")
	fmt.Fprintln(cli.out, "  download-transcript [-o FILE]           - save the official transcript")
}

// intList collects repeated integer flags.
type intList []int

func (l *intList) String() string {
	parts := make([]string, 0, len(*l))
	for _, v := range *l {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid course ID %q", part)
		}
		*l = append(*l, v)
	}
	return nil
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := cli.newFlagSet("login")
	loginEmail := loginCmd.String("email", "", "Your email. The password will be prompted next.")

	signupCmd := cli.newFlagSet("signup")
	signupFirst := signupCmd.String("first", "", "First name")
	signupLast := signupCmd.String("last", "", "Last name")
	signupEmail := signupCmd.String("email", "", "Email")
	signupDept := signupCmd.Int("department", 0, "Department ID (see `departments`)")
	signupPhone := signupCmd.String("phone", "", "Phone number")
	signupAge := signupCmd.Int("age", 0, "Age")

	registerCmd := cli.newFlagSet("register")
	var electives intList
	registerCmd.Var(&electives, "elective", "Elective course ID; repeat or comma-separate for several")

	downloadCmd := cli.newFlagSet("download-transcript")
	downloadOut := downloadCmd.String("o", "transcript.txt", "Output file")

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "login":
		if err := loginCmd.Parse(rest); err != nil {
			return errHelp
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		cli.session.Start(ctx)
		return cli.login(ctx, *loginEmail, pwd)

	case "signup":
		if err := signupCmd.Parse(rest); err != nil {
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		confirm, err := cli.promptPassword("Confirm password:")
		if err != nil {
			return err
		}
		return cli.signup(ctx, student.NewStudent{
			FirstName:       *signupFirst,
			LastName:        *signupLast,
			Email:           *signupEmail,
			Password:        pwd,
			PasswordConfirm: confirm,
			Department:      *signupDept,
			PhoneNumber:     *signupPhone,
			Age:             *signupAge,
		})

	case "logout":
		cli.session.Start(ctx)
		return cli.logout(ctx)

	case "status":
		cli.session.Start(ctx)
		return cli.status()

	case "departments":
		return cli.departments()

	case "dashboard", "profile", "transcript", "courses", "register", "download-transcript":
		switch cmd {
		case "register":
			if err := registerCmd.Parse(rest); err != nil {
				return errHelp
			}
		case "download-transcript":
			if err := downloadCmd.Parse(rest); err != nil {
				return errHelp
			}
		}

		go cli.session.Start(ctx)
		usr, err := cli.protect(ctx)
		if err != nil {
			return err
		}

		switch cmd {
		case "dashboard":
			return cli.dashboard(ctx, usr)
		case "profile":
			return cli.profile(usr)
		case "transcript":
			return cli.transcript(ctx, usr)
		case "courses":
			return cli.courses(ctx)
		case "register":
			return cli.register(ctx, electives)
		default:
			return cli.downloadTranscript(ctx, *downloadOut)
		}

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// protect waits for the session to resolve and returns the logged in student.
func (cli *commandLine) protect(ctx context.Context) (student.Profile, error) {
	decision, err := cli.guard.Wait(ctx, cli.session)
	if err != nil {
		return student.Profile{}, err
	}
	snap := cli.session.Snapshot()
	if decision != session.DecisionRender || snap.User == nil {
		fmt.Fprintln(cli.out, "not logged in; run `portal login`")
		return student.Profile{}, errNotAuthenticated
	}
	return *snap.User, nil
}

// saveCookies persists the backend session so the next run can resume it.
func (cli *commandLine) saveCookies() error {
	if cli.cookies == nil || cli.jar == nil {
		return nil
	}
	return cli.cookies.Save(cli.jar.Cookies())
}

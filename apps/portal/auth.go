package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

func (cli *commandLine) login(ctx context.Context, email, pwd string) error {
	if err := cli.session.Login(ctx, email, pwd); err != nil {
		fmt.Fprintln(cli.out, core.MessageOf(err, "Failed to login"))
		return err
	}
	if err := cli.saveCookies(); err != nil {
		return errors.Wrap(err, "saving session cookies")
	}

	snap := cli.session.Snapshot()
	fmt.Fprintf(cli.out, "Logged in as %s\n", snap.User.FullName())
	return nil
}

func (cli *commandLine) signup(ctx context.Context, ns student.NewStudent) error {
	usr, err := cli.session.Signup(ctx, ns)
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			printFieldErrors(cli, vErr)
			return err
		}
		fmt.Fprintln(cli.out, core.MessageOf(err, "Failed to register"))
		return err
	}
	fmt.Fprintf(cli.out, "Account created for %s. Run `portal login -email %s` to log in.\n", usr.FullName(), ns.Email)
	return nil
}

func printFieldErrors(cli *commandLine, vErr *core.ValidationError) {
	msgs := vErr.Map()
	fields := make([]string, 0, len(msgs))
	for fld := range msgs {
		fields = append(fields, fld)
	}
	sort.Strings(fields)
	for _, fld := range fields {
		fmt.Fprintf(cli.out, "  %s: %s\n", fld, msgs[fld])
	}
}

func (cli *commandLine) logout(ctx context.Context) error {
	cli.session.Logout(ctx)
	if err := cli.saveCookies(); err != nil {
		return errors.Wrap(err, "clearing session cookies")
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) status() error {
	snap := cli.session.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Fprintln(cli.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(cli.out, "Logged in as %s <%s>\n", snap.User.FullName(), snap.User.Email)
	return nil
}

func (cli *commandLine) departments() error {
	for _, dept := range student.Departments {
		fmt.Fprintf(cli.out, "%3d  %s\n", dept.ID, dept.Name)
	}
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/session"
	"github.com/trezcool/studentportal/core/student"
	backendsvc "github.com/trezcool/studentportal/services/backend"
	logsvc "github.com/trezcool/studentportal/services/logger"
	"github.com/trezcool/studentportal/storage/flagstore"
)

func main() {
	std := log.New(os.Stderr, "PORTAL : ", log.LstdFlags)

	conf, err := core.LoadConfig()
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}
	logger := logsvc.New(conf, std)

	client, err := backendsvc.NewClient(backendsvc.Options{
		BaseURL: conf.Backend.BaseURL,
		Timeout: conf.Backend.Timeout,
	})
	if err != nil {
		logger.Fatal("setting up backend client", err)
	}

	cookies := flagstore.NewCookieFile(conf.Session.CookieFile)
	if saved, err := cookies.Load(); err != nil {
		logger.Warn("loading session cookies", err)
	} else {
		client.SetCookies(saved)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// start CLI
	cli := commandLine{
		out:     os.Stdout,
		session: session.New(client, client, flagstore.NewFileStore(conf.Session.FlagFile), logger),
		svc:     student.NewService(client, logger),
		jar:     client,
		cookies: cookies,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			std.Printf("error: %s\n", err)
		}
		stop()
		os.Exit(1)
	}
}

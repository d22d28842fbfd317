package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/trezcool/studentportal/apps/devbackend/echo"
	"github.com/trezcool/studentportal/core"
	logsvc "github.com/trezcool/studentportal/services/logger"
	inmemdb "github.com/trezcool/studentportal/storage/database/inmem"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(conf, log.New(os.Stdout, "DEVBACKEND : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile))

	db := inmemdb.Open(inmemdb.DefaultCatalogue...)
	if _, err := db.SeedDemo(); err != nil {
		logger.Fatal(fmt.Sprintf("seeding demo account: %v", err), err)
	}
	logger.Info(fmt.Sprintf("demo account: %s / %s", inmemdb.DemoEmail, inmemdb.DemoPassword))

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:   conf,
		Logger: logger,
		Store:  db,
	})
	server.Start()
	logger.Info(fmt.Sprintf("listening on %s", conf.DevBackend.Address))
	defer logger.Info("dev backend stopped")

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

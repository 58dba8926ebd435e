package start

import (
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/almanac-cloud/almanac/api"
	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/almanac-cloud/almanac/internal/event"
	"github.com/almanac-cloud/almanac/internal/metrics"
	"github.com/almanac-cloud/almanac/pkg/db"
	"github.com/almanac-cloud/almanac/pkg/env"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/spf13/cobra"
)

const (
	usage   = "start"
	short   = "Start an almanac scheduling instance"
	long    = "This command starts an almanac scheduling instance"
	example = "almanac start"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"launch", "boot", "up", "run", "begin"},
		Example:    example,
		RunE:       start,
	}
)

func start(cmd *cobra.Command, args []string) error {
	signalChan := make(chan os.Signal, 1)

	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGUSR1:
				log.Info("dumping stack traces due to SIGUSR1 signal")
				if profile := pprof.Lookup("goroutine"); profile != nil {
					if err := profile.WriteTo(os.Stdout, 1); err != nil {
						log.Error("write goroutine profile", "error", err)
					}
				}
			case syscall.SIGINT:
				log.Info("gracefully shutting down due to SIGINT signal")
				os.Exit(0)
			}
		}
	}()

	signal.Notify(signalChan, syscall.SIGUSR1, syscall.SIGINT)

	log.Info("migrating database")
	if err := db.Migrate(db.Connection()); err != nil {
		log.Fatal("database migration failure", "error", err)
	}

	metrics.Register()

	bus := event.New(env.Variables().EventBufferSize)
	automation.SetBus(bus)

	log.Info("spinning up api", "port", env.Variables().Port)
	return api.Start(bus)
}

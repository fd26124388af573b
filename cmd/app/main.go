package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/bootstrap"
	"github.com/Domenick1991/airdesk/internal/console"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/state"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "airbooking",
		Usage: "manage airlines, flights and ticket reservations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Action: runConsole,
		Commands: []*cli.Command{
			{
				Name:   "console",
				Usage:  "interactive menu (default)",
				Action: runConsole,
			},
			{
				Name:   "serve",
				Usage:  "serve the HTTP API",
				Action: runServer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("airbooking failed")
	}
}

type services struct {
	flights  *flights.FlightService
	bookings *booking.BookingService
	state    *state.StateService
}

func setup(ctx context.Context, c *cli.Context) (*bootstrap.App, *config.Config, services, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, services{}, err
	}
	if err := bootstrap.SetupLogger(cfg.Log, nil); err != nil {
		return nil, nil, services{}, err
	}

	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		return nil, nil, services{}, err
	}

	svc := services{
		flights:  flights.NewFlightService(app.Catalog, app.Events),
		bookings: booking.NewBookingService(app.Catalog, app.Events),
		state:    state.NewStateService(app.Catalog),
	}
	return app, cfg, svc, nil
}

func runConsole(c *cli.Context) error {
	ctx := c.Context
	app, _, svc, err := setup(ctx, c)
	if err != nil {
		return err
	}
	defer app.Close()

	return console.New(os.Stdin, os.Stdout, svc.flights, svc.bookings, svc.state).Run(ctx)
}

func runServer(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cfg, svc, err := setup(ctx, c)
	if err != nil {
		return err
	}
	defer app.Close()

	return bootstrap.Run(ctx, cfg, svc.flights, svc.bookings, svc.state)
}

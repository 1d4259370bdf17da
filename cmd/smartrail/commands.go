package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartrail-planner/internal/api"
	"github.com/smartrail-planner/internal/common/config"
	"github.com/smartrail-planner/internal/common/logger"
	"github.com/smartrail-planner/internal/fare"
	"github.com/smartrail-planner/internal/planner"
	"github.com/smartrail-planner/internal/railgraph"
	"github.com/smartrail-planner/pkg/railnet/models"
	"github.com/urfave/cli/v2"
)

func stationsCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "list every station in the network",
		Action: func(c *cli.Context) error {
			p := mustLoadPlanner(c.Context, cfg, log)
			for _, s := range p.Stations() {
				fmt.Fprintln(c.App.Writer, s)
			}
			return nil
		},
	}
}

func routeCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "find the shortest route, or every route with --all",
		ArgsUsage: "<source> <destination>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "list every simple route instead of the shortest one",
			},
			&cli.IntFlag{
				Name:  "cutoff",
				Usage: "maximum number of hops when listing routes (defaults to ROUTE_CUTOFF)",
			},
		},
		Action: func(c *cli.Context) error {
			source, destination, err := stationArgs(c)
			if err != nil {
				return err
			}
			p := mustLoadPlanner(c.Context, cfg, log)

			if !c.Bool("all") {
				route, ok := p.ShortestRoute(source, destination)
				if !ok {
					return fmt.Errorf("%w between %s and %s", planner.ErrNoRoute, source, destination)
				}
				printRoutes(c.App.Writer, []railgraph.Route{route})
				return nil
			}

			routes := p.AllRoutes(source, destination, c.Int("cutoff"))
			if len(routes) == 0 {
				return fmt.Errorf("%w between %s and %s", planner.ErrNoRoute, source, destination)
			}
			printRoutes(c.App.Writer, routes)
			return nil
		},
	}
}

func fareCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "fare",
		Usage: "estimate a single fare",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "distance",
				Usage:    "journey distance in km",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "train-type",
				Value: "1",
				Usage: "train type code or name (1 Express, 2 Superfast, 3 Rajdhani)",
			},
			&cli.StringFlag{
				Name:  "class-type",
				Value: "1",
				Usage: "class type code or name (1 Sleeper, 2 AC)",
			},
		},
		Action: func(c *cli.Context) error {
			trainType, err := models.ParseTrainType(c.String("train-type"))
			if err != nil {
				return err
			}
			classType, err := models.ParseClassType(c.String("class-type"))
			if err != nil {
				return err
			}

			model, err := fare.LoadModel(cfg.Data.FareModelFile)
			if err != nil {
				log.Fatal("Failed to load fare model", "error", err)
			}
			estimate, err := fare.NewEstimator(model, log).Estimate(c.Float64("distance"), trainType, classType)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%s %s, %.2f km: %s\n", trainType, classType, c.Float64("distance"), formatFare(estimate))
			return nil
		},
	}
}

func planCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "plan a journey and price it for every scheduled train",
		ArgsUsage: "<source> <destination>",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:   "date",
				Layout: api.QueryDateLayout,
				Usage:  "journey date, YYYY-MM-DD (defaults to today)",
			},
			&cli.TimestampFlag{
				Name:   "arrival-date",
				Layout: api.QueryDateLayout,
				Usage:  "arrival date, YYYY-MM-DD (defaults to the journey date)",
			},
		},
		Action: func(c *cli.Context) error {
			source, destination, err := stationArgs(c)
			if err != nil {
				return err
			}
			p := mustLoadPlanner(c.Context, cfg, log)

			plan, err := p.Plan(planner.Request{
				Source:      source,
				Destination: destination,
				JourneyDate: timestampOrZero(c.Timestamp("date")),
				ArrivalDate: timestampOrZero(c.Timestamp("arrival-date")),
			})
			if err != nil {
				return err
			}

			printPlan(c.App.Writer, plan)
			return nil
		},
	}
}

func serveCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the JSON API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Value: cfg.HTTP.Listen,
				Usage: "listen target for the web server",
			},
		},
		Action: func(c *cli.Context) error {
			p := mustLoadPlanner(c.Context, cfg, log)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := api.SetupServer(ctx, c.String("listen"), p, log.With("component", "api")); err != nil {
				return fmt.Errorf("serving HTTP API: %w", err)
			}
			log.Info("SmartRail API stopped")
			return nil
		},
	}
}

func stationArgs(c *cli.Context) (string, string, error) {
	if c.NArg() != 2 {
		return "", "", fmt.Errorf("expected <source> <destination>, got %d arguments", c.NArg())
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}

func timestampOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/clgres/resultapi/internal/bootstrap"
	"github.com/clgres/resultapi/internal/config"
	"github.com/clgres/resultapi/internal/pkg/logger"
	"github.com/clgres/resultapi/internal/pkg/render"
	"github.com/clgres/resultapi/internal/pkg/validation"
)

func main() {
	app := &cli.App{
		Name:  "resultctl",
		Usage: "look up student results from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   bootstrap.DefaultConfigPath,
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "use the in-memory store with demo data",
				Value: config.GetEnvAsBool("RESULTS_DEMO", false),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "results",
				Usage:     "show every semester with SGPA, CGPA and backlogs",
				ArgsUsage: "<rollNo>",
				Action:    showResults,
			},
			{
				Name:      "semester",
				Usage:     "show one semester with its SGPA",
				ArgsUsage: "<rollNo> <sem>",
				Action:    showSemester,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("resultctl failed")
		os.Exit(1)
	}
}

func buildDependencies(c *cli.Context) (*bootstrap.Dependencies, *config.Config, error) {
	// Env overrides win over the file, so the demo store skips driver validation
	if c.Bool("demo") {
		os.Setenv("STORE_DRIVER", config.DriverMemory)
		os.Setenv("STORE_SEED_DEMO", "true")
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	st, err := bootstrap.SetupStore(ctxOf(c), cfg, lgr)
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.BuildDependencies(cfg, st, lgr), cfg, nil
}

func showResults(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: resultctl results <rollNo>", 2)
	}
	if !validation.IsValidRollNo(c.Args().Get(0)) {
		return cli.Exit("invalid roll number "+c.Args().Get(0), 2)
	}

	deps, cfg, err := buildDependencies(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	res, err := deps.ResultService.GetStudentResults(ctxOf(c), c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	render.StudentResults(c.App.Writer, res, cfg.Grading.SemesterKeyPrefix)
	return nil
}

func showSemester(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: resultctl semester <rollNo> <sem>", 2)
	}
	if !validation.IsValidRollNo(c.Args().Get(0)) || !validation.IsValidSemesterID(c.Args().Get(1)) {
		return cli.Exit("invalid roll number or semester", 2)
	}

	deps, _, err := buildDependencies(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	res, err := deps.ResultService.GetSingleSemester(ctxOf(c), c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	render.Semester(c.App.Writer, res)
	return nil
}

func ctxOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

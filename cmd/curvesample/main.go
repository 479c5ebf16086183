// Command curvesample samples keyframe curves and trajectories described by a
// YAML file and prints the samples as CSV.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sgostarter/i/l"
	"github.com/urfave/cli/v3"

	"honnef.co/go/motion/internal/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	logger := l.NewConsoleLoggerWrapper().WithFields(l.StringField(l.ClsKey, "curvesample"))

	var cfg config.Config
	if err := config.Load(cmd.String("config"), &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.IsSet("from") {
		cfg.Sample.From = cmd.Float("from")
	}
	if cmd.IsSet("to") {
		cfg.Sample.To = cmd.Float("to")
	}
	if cmd.IsSet("step") {
		cfg.Sample.Step = cmd.Float("step")
	}
	if err := cfg.Sample.Validate(); err != nil {
		return fmt.Errorf("invalid sample range: %w", err)
	}

	table, err := sample(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	logger.WithFields(l.IntField("rows", len(table.rows)), l.IntField("columns", len(table.header))).Debug("sampled")
	return table.writeCSV(cmd.Root().Writer)
}

func main() {
	cmd := &cli.Command{
		Name:   "curvesample",
		Usage:  "Sample keyframe curves and trajectories as CSV",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "curves.yaml",
				Value:       "curves.yaml",
				Sources:     cli.EnvVars("CURVESAMPLE_CONFIG"),
			},
			&cli.FloatFlag{
				Name:  "from",
				Usage: "First sample time, overriding sample.from",
			},
			&cli.FloatFlag{
				Name:  "to",
				Usage: "Last sample time, overriding sample.to",
			},
			&cli.FloatFlag{
				Name:  "step",
				Usage: "Time between samples, overriding sample.step",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		l.NewConsoleLoggerWrapper().WithFields(l.ErrorField(err)).Error("curvesample failed")
		os.Exit(1)
	}
}

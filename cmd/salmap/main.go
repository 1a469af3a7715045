package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"salmap/internal/config"
	"salmap/internal/logger"
	"salmap/internal/pipeline"
	"salmap/internal/preview"
	"salmap/internal/shutdown"

	"github.com/spf13/cobra"
)

const (
	AppName    = "salmap"
	AppVersion = "1.0.0"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	var configPath string

	cmd := &cobra.Command{
		Use:     AppName + " <fixation-list.csv>",
		Short:   "Generate a (blended) saliency map image from a list of 2d points.",
		Long: "Generate a (blended) saliency map image from a list of 2d points.\n\n" +
			"The fixation list is a csv file with a header and one X,Y value pair per line.\n\n" +
			"Example:\n  salmap explor_12.csv --img_path explor_12.jpg --sigma 1.5 --blend .7",
		Version:       AppVersion,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.LoadFile(configPath, cmd.Flags()); err != nil {
					return reportError(cmd.ErrOrStderr(), err)
				}
			}
			if len(args) == 1 {
				cfg.FixationsPath = args[0]
			}
			return reportError(cmd.ErrOrStderr(), run(cmd.Context(), cfg, cmd.OutOrStdout()))
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with default values for the options above")

	return cmd
}

func reportError(w io.Writer, err error) error {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", AppName, err)
	}
	return err
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	log := logger.NewConsoleLogger(level, logger.Identity{App: AppName, Version: AppVersion})
	for _, warning := range cfg.Warnings() {
		log.Warning("Config", warning, nil)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	shutdownMgr := shutdown.NewManager(ctx, log)
	shutdownMgr.Listen()
	defer shutdownMgr.Shutdown()

	log.Debug("Main", "starting run", map[string]interface{}{
		"version":   AppVersion,
		"fixations": cfg.FixationsPath,
		"size":      fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"sigma":     cfg.Sigma,
		"px2deg":    cfg.PixelsPerDegree,
		"backend":   cfg.Backend,
	})

	result, err := pipeline.NewCoordinator(cfg, log).Run(shutdownMgr.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, result.Report.Summary())

	if cfg.Preview {
		win := preview.New(AppName+" - "+cfg.FixationsPath, result.Image.ToImage(), result.Report.Summary())
		shutdownMgr.Register(win)
		win.Run()
	}

	return nil
}

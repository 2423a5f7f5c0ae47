package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vova-ivanov/cmakegen/internal/config"
	"github.com/vova-ivanov/cmakegen/internal/errors"
	"github.com/vova-ivanov/cmakegen/internal/watcher"
)

var watchOutput string

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:     "watch <config>",
	Aliases: []string{"w"},
	Short:   "Regenerate the CMake file whenever sources change",
	Long: `Run one full generation, then watch every configured scan root for
filesystem changes and rerun the complete scan-and-generate pipeline when
a relevant file (.h, .hpp, .c, .cpp) changes.

Each regeneration is a full pass over the configured trees; no
incremental state is kept between runs.

Examples:
  cmakegen watch scan.yaml
  cmakegen watch scan.yaml -o Build.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addOutputFlag(watchCmd, &watchOutput)
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	logScanPlan(ctx, logger, cfg)

	output := resolveOutput(cmd.Flags().Changed("output"), watchOutput)

	// Initial full generation before watching.
	reg, err := runPipeline(ctx, logger, cfg, output)
	if err != nil {
		return err
	}
	color.Green("✓ wrote %s (%d include dirs, %d sources)",
		output, reg.IncludeDirCount(), reg.SourceFileCount())

	fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Stop()

	fw.AddFilter(watcher.RelevantFileFilter)
	fw.AddFilter(watcher.NotOutputFilter(output))
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Info(ctx, "change detected, regenerating", "changed", len(events))

		reg, err := runPipeline(ctx, logger, cfg, output)
		if err != nil {
			color.Red("regeneration failed: %v", err)
			return err
		}

		color.Green("✓ rewrote %s (%d include dirs, %d sources)",
			output, reg.IncludeDirCount(), reg.SourceFileCount())

		return nil
	})

	for _, root := range cfg.Roots {
		if err := fw.AddRecursive(root); err != nil {
			return errors.NewScanError(root, err)
		}
	}

	fw.Start(ctx)

	color.Cyan("watching %d path(s), press Ctrl-C to stop", len(cfg.Roots))
	<-ctx.Done()

	return nil
}

package check

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"code-intelligence.com/bincheck/internal/cmdutils"
	"code-intelligence.com/bincheck/internal/config"
	"code-intelligence.com/bincheck/pkg/binfind"
	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/pkg/report"
)

type options struct {
	// The source of the linking metadata, the configured tools if nil
	source bininfo.Source
}

type checkCmd struct {
	*cobra.Command
	opts *options
	cfg  *config.Config
}

func New() *cobra.Command {
	return newWithOptions(&options{})
}

func newWithOptions(opts *options) *cobra.Command {
	var bindFlags func()
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "check [flags] <library path> <binary or directory>...",
		Short: "Check that the dynamic symbols of binaries can be resolved",
		Long: `Check that all libraries needed by the binaries can be found and that
all their undefined dynamic symbols are provided by some library, without
running the dynamic loader.

The library path is a colon separated list. Directories are searched for
the needed libraries in order, files are preloaded: their symbols are
available to all libraries, like with LD_PRELOAD.

Directories given as binaries are searched recursively for executable
binaries. For every binary "OK" or "KO" is printed, followed by the trace
of all visited libraries if the check failed.`,
		Args: cobra.MinimumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind viper keys to flags. We can't do this in the New
			// function, because that would re-bind viper keys which
			// were bound to the flags of other commands before.
			bindFlags()
			var err error
			cfg, err = config.Load()
			if err != nil {
				return cmdutils.WrapIncorrectUsageError(err)
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			cmd := checkCmd{Command: c, opts: opts, cfg: cfg}
			return cmd.run(args)
		},
	}

	bindFlags = cmdutils.AddFlags(cmd,
		cmdutils.AddDarwinFlag,
		cmdutils.AddGlibcVersionMaxFlag,
		cmdutils.AddTBDDirFlag,
		cmdutils.AddToolFlags,
		cmdutils.AddJobsFlag,
		cmdutils.AddPrintJSONFlag,
		cmdutils.AddPreloadFlag,
	)

	return cmd
}

func (c *checkCmd) run(args []string) error {
	platform := c.cfg.Platform(args)
	searchPath, preload := config.SplitLibraryPath(args[0])
	preload = append(preload, c.cfg.Preload...)
	log.Debugf("Platform: %s, search path: %v, preload: %v", platform, searchPath, preload)

	binaries, err := binfind.Find(args[1:], platform)
	if err != nil {
		return err
	}
	if len(binaries) == 0 {
		log.Warnf("No %s binaries found", platform)
		return nil
	}

	source := c.opts.source
	if source == nil {
		source = c.cfg.Source()
	}
	checker, err := c.cfg.NewChecker(platform, searchPath, source)
	if err != nil {
		return cmdutils.WrapIncorrectUsageError(err)
	}

	showSpinner := cmdutils.ShouldShowSpinner() && !c.cfg.Verbose
	if showSpinner {
		log.CreateCurrentProgressSpinner(nil, log.CheckInProgressMsg)
	}
	results, err := checker.CheckAll(context.Background(), binaries, preload, c.cfg.Jobs)
	if err != nil {
		if showSpinner {
			log.StopCurrentProgressSpinner(log.GetPtermErrorStyle(), log.CheckInProgressErrorMsg)
		}
		return err
	}
	if showSpinner {
		log.StopCurrentProgressSpinner(log.GetPtermSuccessStyle(), log.CheckInProgressSuccessMsg)
	}

	reporter := report.NewReporter(c.OutOrStdout(), &report.Palette{Enabled: cmdutils.ColorEnabled()}, c.cfg.Verbose)
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	if c.cfg.PrintJSON {
		err = reporter.JSON(results)
		if err != nil {
			return err
		}
	} else {
		for _, res := range results {
			err = reporter.Result(res)
			if err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		log.Debugf("%d of %d binaries failed the check", failed, len(results))
		return cmdutils.WrapSilentError(errors.WithStack(cmdutils.ErrChecksFailed))
	}
	return nil
}

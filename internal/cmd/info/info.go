package info

import (
	"context"

	"github.com/spf13/cobra"

	"code-intelligence.com/bincheck/internal/cmdutils"
	"code-intelligence.com/bincheck/internal/config"
	"code-intelligence.com/bincheck/pkg/binfind"
	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/report"
)

type options struct {
	// The source of the linking metadata, the configured tools if nil
	source bininfo.Source
}

type infoCmd struct {
	*cobra.Command
	opts *options
	cfg  *config.Config
}

// binaryInfo is the JSON representation of a described binary
type binaryInfo struct {
	Binary  string           `json:"binary"`
	Library *bininfo.Library `json:"library"`
}

func New() *cobra.Command {
	return newWithOptions(&options{})
}

func newWithOptions(opts *options) *cobra.Command {
	var bindFlags func()
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "info [flags] <binary or directory>...",
		Short: "Print the dynamic linking information of binaries",
		Long: `Print the soname, the rpath and runpath and the needed, upward and
re-exported libraries of the binaries. Directories are searched
recursively for executable binaries.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags()
			var err error
			cfg, err = config.Load()
			if err != nil {
				return cmdutils.WrapIncorrectUsageError(err)
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			cmd := infoCmd{Command: c, opts: opts, cfg: cfg}
			return cmd.run(args)
		},
	}

	bindFlags = cmdutils.AddFlags(cmd,
		cmdutils.AddDarwinFlag,
		cmdutils.AddToolFlags,
		cmdutils.AddPrintJSONFlag,
	)

	return cmd
}

func (c *infoCmd) run(args []string) error {
	platform := c.cfg.Platform(args)
	binaries, err := binfind.Find(args, platform)
	if err != nil {
		return err
	}

	source := c.opts.source
	if source == nil {
		source = c.cfg.Source()
	}
	extractor, err := bininfo.NewExtractor(platform, source)
	if err != nil {
		return err
	}

	infos := make([]*binaryInfo, 0, len(binaries))
	for _, binary := range binaries {
		lib, err := extractor.Extract(context.Background(), binary)
		if err != nil {
			return err
		}
		infos = append(infos, &binaryInfo{Binary: binary, Library: lib})
	}

	reporter := report.NewReporter(c.OutOrStdout(), &report.Palette{Enabled: cmdutils.ColorEnabled()}, c.cfg.Verbose)
	if c.cfg.PrintJSON {
		return reporter.JSON(infos)
	}
	for _, info := range infos {
		err = reporter.Info(info.Binary, info.Library)
		if err != nil {
			return err
		}
	}
	return nil
}

package find

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"code-intelligence.com/bincheck/internal/cmdutils"
	"code-intelligence.com/bincheck/internal/config"
	"code-intelligence.com/bincheck/pkg/binfind"
	"code-intelligence.com/bincheck/util/stringutil"
)

type findCmd struct {
	*cobra.Command
	cfg *config.Config
}

func New() *cobra.Command {
	var bindFlags func()
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "find [flags] <path>...",
		Short: "List the binaries which would be checked",
		Long: `List the binaries among the paths, sorted. Directories are searched
recursively for executable binaries, files are listed if they are
binaries. Paths which don't exist are expanded as glob patterns.`,
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
			cmd := findCmd{Command: c, cfg: cfg}
			return cmd.run(args)
		},
	}

	bindFlags = cmdutils.AddFlags(cmd,
		cmdutils.AddDarwinFlag,
		cmdutils.AddPrintJSONFlag,
	)

	return cmd
}

func (c *findCmd) run(args []string) error {
	binaries, err := binfind.Find(args, c.cfg.Platform(args))
	if err != nil {
		return err
	}

	if c.cfg.PrintJSON {
		if binaries == nil {
			binaries = []string{}
		}
		s, err := stringutil.ToJSONString(binaries, cmdutils.ColorEnabled())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.OutOrStdout(), s)
		return errors.WithStack(err)
	}

	for _, binary := range binaries {
		_, err = fmt.Fprintln(c.OutOrStdout(), binary)
		if err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

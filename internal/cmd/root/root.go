package root

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	checkCmd "code-intelligence.com/bincheck/internal/cmd/check"
	findCmd "code-intelligence.com/bincheck/internal/cmd/find"
	infoCmd "code-intelligence.com/bincheck/internal/cmd/info"
	"code-intelligence.com/bincheck/internal/cmdutils"
	"code-intelligence.com/bincheck/internal/config"
	"code-intelligence.com/bincheck/pkg/log"
)

func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bincheck",
		Short: "Check that the dynamic symbols of binaries can be resolved",
		Long: `bincheck statically predicts whether the dynamic loader could resolve
all libraries and symbols of ELF and Mach-O binaries, to catch missing
libraries, unresolved symbols and dependencies on too recent GLIBC
versions before shipping.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutils.ColorEnabled() {
				pterm.DisableColor()
			}

			err := config.Init()
			if err != nil {
				log.Errorf(err, "Failed to read the config file: %v", err.Error())
				return cmdutils.WrapSilentError(err)
			}
			log.Debugf("Config keys: %v", viper.AllKeys())
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more verbose output, including the trace of passing binaries")
	cmdutils.ViperMustBindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(checkCmd.New())
	rootCmd.AddCommand(infoCmd.New())
	rootCmd.AddCommand(findCmd.New())

	return rootCmd
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	cmd, err := New().ExecuteC()
	if err == nil {
		return 0
	}

	if cmdutils.IsIncorrectUsageError(err) {
		log.Error(err)
		_ = cmd.Usage()
		return 1
	}
	// Errors which were already logged are not printed again
	if !cmdutils.IsSilentError(err) {
		log.Error(err)
	}
	return 1
}

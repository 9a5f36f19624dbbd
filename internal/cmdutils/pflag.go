package cmdutils

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func ViperMustBindPFlag(key string, flag *pflag.Flag) {
	err := viper.BindPFlag(key, flag)
	if err != nil {
		panic(err)
	}
}

// AddFlags executes the specified Add*Flag functions and returns a
// function which binds all those flags to viper
func AddFlags(cmd *cobra.Command, funcs ...func(cmd *cobra.Command) func()) (bindFlags func()) { // nolint:nonamedreturns
	var bindFlagFuncs []func()
	for _, f := range funcs {
		bindFlagFunc := f(cmd)
		bindFlagFuncs = append(bindFlagFuncs, bindFlagFunc)
	}
	return func() {
		for _, f := range bindFlagFuncs {
			f()
		}
	}
}

func AddDarwinFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("darwin", "auto",
		"Check Mach-O binaries (`auto|true|false`). In auto mode Mach-O binaries\n"+
			"are checked on macOS or if any argument looks like a Darwin binary.")
	return func() {
		ViperMustBindPFlag("darwin", cmd.Flags().Lookup("darwin"))
	}
}

func AddGlibcVersionMaxFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("glibc-version-max", "",
		"The newest GLIBC symbol `version` (e.g. 2.17) the binaries may depend on.")
	return func() {
		ViperMustBindPFlag("glibc-version-max", cmd.Flags().Lookup("glibc-version-max"))
	}
}

func AddTBDDirFlag(cmd *cobra.Command) func() {
	cmd.Flags().String("tbd-dir", "",
		"The `directory` containing the text-based stubs of the macOS system libraries.\n"+
			"By default, the SDK of the Xcode installation is used on macOS.")
	return func() {
		ViperMustBindPFlag("tbd-dir", cmd.Flags().Lookup("tbd-dir"))
	}
}

func AddToolFlags(cmd *cobra.Command) func() {
	cmd.Flags().String("readelf", "", "The readelf `executable` to dump ELF binaries.")
	cmd.Flags().String("otool", "", "The otool `executable` to dump the load commands of Mach-O binaries.")
	cmd.Flags().String("nm", "", "The nm `executable` to dump the symbol table of Mach-O binaries.")
	return func() {
		ViperMustBindPFlag("readelf", cmd.Flags().Lookup("readelf"))
		ViperMustBindPFlag("otool", cmd.Flags().Lookup("otool"))
		ViperMustBindPFlag("nm", cmd.Flags().Lookup("nm"))
	}
}

func AddJobsFlag(cmd *cobra.Command) func() {
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(),
		"Maximum number of binaries to check in parallel.")
	return func() {
		ViperMustBindPFlag("jobs", cmd.Flags().Lookup("jobs"))
	}
}

func AddPrintJSONFlag(cmd *cobra.Command) func() {
	cmd.Flags().Bool("json", false, "Print output as JSON")
	return func() {
		ViperMustBindPFlag("json", cmd.Flags().Lookup("json"))
	}
}

func AddPreloadFlag(cmd *cobra.Command) func() {
	cmd.Flags().StringSlice("preload", nil,
		"Additional `library` whose symbols are available to all binaries, like LD_PRELOAD.\n"+
			"Can be specified multiple times.")
	return func() {
		ViperMustBindPFlag("preload", cmd.Flags().Lookup("preload"))
	}
}

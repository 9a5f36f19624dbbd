// Package config holds the configuration of the commands, read from
// flags, the bincheck.yaml config file and BINCHECK_* environment
// variables via viper.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"code-intelligence.com/bincheck/pkg/bincheck"
	"code-intelligence.com/bincheck/pkg/binfind"
	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/util/fileutil"
	"code-intelligence.com/bincheck/util/sliceutil"
)

const (
	ConfigName = "bincheck"
	EnvPrefix  = "BINCHECK"

	xcodeSDKDir = "/Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform/Developer/SDKs/MacOSX.sdk"
)

// Keys is the list of all config keys. They are bound to environment
// variables, so that viper.Unmarshal also sees keys which are only set
// in the environment.
var Keys = []string{
	"verbose",
	"darwin",
	"glibc-version-max",
	"tbd-dir",
	"readelf",
	"otool",
	"nm",
	"jobs",
	"json",
	"preload",
}

// The operating system of the host, a variable so that tests can
// pretend to run on a different one
var hostOS = runtime.GOOS

type Config struct {
	Verbose         bool       `mapstructure:"verbose"`
	Darwin          DarwinMode `mapstructure:"darwin"`
	GlibcVersionMax string     `mapstructure:"glibc-version-max"`
	TBDDir          string     `mapstructure:"tbd-dir"`
	Readelf         string     `mapstructure:"readelf"`
	Otool           string     `mapstructure:"otool"`
	NM              string     `mapstructure:"nm"`
	Jobs            int        `mapstructure:"jobs"`
	PrintJSON       bool       `mapstructure:"json"`
	Preload         []string   `mapstructure:"preload"`
}

// Init sets up viper to read the config file from the working directory
// or ~/.config/bincheck and BINCHECK_* environment variables. A missing
// config file is not an error.
func Init() error {
	viper.SetConfigName(ConfigName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", ConfigName))
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, key := range Keys {
		err = viper.BindEnv(key)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	viper.SetDefault("darwin", string(DarwinAuto))

	err = viper.ReadInConfig()
	if err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			return nil
		}
		return errors.WithStack(err)
	}
	log.Debugf("Using config file %s", viper.ConfigFileUsed())
	return nil
}

// Load decodes the viper settings into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	err := viper.Unmarshal(cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Darwin == "" {
		c.Darwin = DarwinAuto
	}
	if !sliceutil.Contains(darwinModes, c.Darwin) {
		return errors.Errorf("invalid value %q for darwin, must be one of auto, true or false", c.Darwin)
	}
	if c.Jobs < 0 {
		return errors.Errorf("invalid number of jobs %d", c.Jobs)
	}
	if c.GlibcVersionMax != "" {
		if c.Darwin == DarwinTrue {
			return errors.New("--glibc-version-max can't be used for Darwin binaries")
		}
		_, err := bincheck.ParseGlibcVersion(c.GlibcVersionMax)
		if err != nil {
			return err
		}
	}
	return nil
}

// Platform returns the platform whose binaries are checked. In auto
// mode it's Mach-O on a Darwin host or if any of the paths looks like a
// Darwin binary.
func (c *Config) Platform(paths []string) bininfo.Platform {
	switch c.Darwin {
	case DarwinTrue:
		return bininfo.MachO
	case DarwinFalse:
		return bininfo.ELF
	}
	if hostOS == "darwin" || binfind.AnyDarwin(paths) {
		return bininfo.MachO
	}
	return bininfo.ELF
}

// StubDir returns the configured stub directory or the default one.
func (c *Config) StubDir() string {
	if c.TBDDir != "" {
		return c.TBDDir
	}
	return DefaultStubDir()
}

// DefaultStubDir returns the SDK of the Xcode installation on a Darwin
// host, otherwise the stubs shipped next to the executable in
// bincheck/darwin.
func DefaultStubDir() string {
	if hostOS == "darwin" {
		return xcodeSDKDir
	}
	exe, err := os.Executable()
	if err != nil {
		log.Debugf("Failed to get the path of the executable: %v", err)
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "bincheck", "darwin")
}

// SplitLibraryPath splits a colon separated library path. Files are
// returned as libraries to preload, everything else as directories of
// the search path.
func SplitLibraryPath(libraryPath string) (searchPath []string, preload []string) { // nolint:nonamedreturns
	for _, entry := range strings.Split(libraryPath, ":") {
		if entry == "" {
			continue
		}
		if fileutil.IsFile(entry) {
			preload = append(preload, entry)
		} else {
			searchPath = append(searchPath, entry)
		}
	}
	return
}

// CheckerOptions returns the options of a checker for the platform.
func (c *Config) CheckerOptions(platform bininfo.Platform, searchPath []string) (*bincheck.Options, error) {
	opts := &bincheck.Options{
		Platform:   platform,
		SearchPath: searchPath,
	}
	if platform == bininfo.MachO {
		opts.StubDir = c.StubDir()
	}
	if c.GlibcVersionMax != "" {
		if platform == bininfo.MachO {
			return nil, errors.New("--glibc-version-max can't be used for Darwin binaries")
		}
		version, err := bincheck.ParseGlibcVersion(c.GlibcVersionMax)
		if err != nil {
			return nil, err
		}
		opts.GlibcVersionMax = version
	}
	return opts, opts.Validate()
}

// Source returns the source of the raw linking metadata using the
// configured tools.
func (c *Config) Source() *bininfo.ToolSource {
	return &bininfo.ToolSource{
		Readelf: c.Readelf,
		Otool:   c.Otool,
		NM:      c.NM,
	}
}

// NewChecker returns a checker for the platform which reads the
// linking metadata from the source.
func (c *Config) NewChecker(platform bininfo.Platform, searchPath []string, source bininfo.Source) (*bincheck.Checker, error) {
	opts, err := c.CheckerOptions(platform, searchPath)
	if err != nil {
		return nil, err
	}
	extractor, err := bininfo.NewExtractor(platform, source)
	if err != nil {
		return nil, err
	}
	return bincheck.NewChecker(opts, extractor)
}

package config

// DarwinMode selects how the platform of a check is decided.
type DarwinMode string

const (
	// DarwinAuto checks Mach-O binaries on a Darwin host or if any of
	// the arguments looks like a Darwin binary, ELF binaries otherwise
	DarwinAuto  DarwinMode = "auto"
	DarwinTrue  DarwinMode = "true"
	DarwinFalse DarwinMode = "false"
)

var darwinModes = []DarwinMode{DarwinAuto, DarwinTrue, DarwinFalse}

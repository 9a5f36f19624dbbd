package bincheck

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/util/regexutil"
)

var (
	glibcVersionRegex  = regexp.MustCompile(`@GLIBC_(?P<version>\d+(?:\.\d+)+)$`)
	dottedVersionRegex = regexp.MustCompile(`^\d+(\.\d+)+$`)
)

func isGlibc(lib *bininfo.Library) bool {
	return strings.HasPrefix(lib.SONAME, "libc.so")
}

// filterGlibcVersions returns the provided symbols without the ones
// versioned newer than limit, as they wouldn't exist in the C library of
// an older deployment target.
func filterGlibcVersions(provides bininfo.Symbols, limit *semver.Version) bininfo.Symbols {
	res := make(bininfo.Symbols, len(provides))
	for sym := range provides {
		match, found := regexutil.FindNamedGroupsMatch(glibcVersionRegex, sym)
		if !found {
			res.Add(sym)
			continue
		}
		version, err := semver.NewVersion(match["version"])
		if err != nil {
			log.Debugf("Keeping %s with unparsable version: %v", sym, err)
			res.Add(sym)
			continue
		}
		if !version.GreaterThan(limit) {
			res.Add(sym)
		}
	}
	return res
}

// ParseGlibcVersion parses a dotted version like "2.17".
func ParseGlibcVersion(s string) (*semver.Version, error) {
	if !dottedVersionRegex.MatchString(s) {
		return nil, errors.Errorf("invalid GLIBC version %q, expected a dotted numeric version like 2.17", s)
	}
	version, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return version, nil
}

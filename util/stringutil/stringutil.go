package stringutil

import (
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"github.com/pkg/errors"
)

// ToJSONString marshals the value into indented JSON, colorized only
// if colored is true.
func ToJSONString(v interface{}, colored bool) (string, error) {
	formatter := prettyjson.NewFormatter()
	formatter.DisabledColor = !colored
	formatter.Indent = 2
	bytes, err := formatter.Marshal(v)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(bytes), nil
}

// JoinNonEmpty works like strings.Join but skips empty elements.
func JoinNonEmpty(elems []string, sep string) string {
	var nonEmpty []string
	for _, e := range elems {
		if e != "" {
			nonEmpty = append(nonEmpty, e)
		}
	}
	return strings.Join(nonEmpty, sep)
}

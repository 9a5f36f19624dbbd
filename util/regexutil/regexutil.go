package regexutil

import "regexp"

// FindNamedGroupsMatch returns the named sub-matches of the first match
// of the regex in text, keyed by group name.
func FindNamedGroupsMatch(re *regexp.Regexp, text string) (map[string]string, bool) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return nil, false
	}
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i != 0 && name != "" {
			groups[name] = match[i]
		}
	}
	return groups, true
}

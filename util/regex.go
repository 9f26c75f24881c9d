package util

import "regexp"

// GetRegexCaptureGroups returns a map of capture group names to values found in path.
func GetRegexCaptureGroups(path string, regex *regexp.Regexp) map[string]string {
	captured := make(map[string]string)
	values := regex.FindStringSubmatch(path)
	keys := regex.SubexpNames()
	if len(values) > 0 {
		for i, key := range keys {
			if len(key) > 0 {
				captured[key] = values[i]
			}
		}
	}
	return captured
}

package notes

import "strings"

// Merge splices generated into previous, replacing whatever lies between the
// start and end markers of previous. Text outside the markers is kept. previous
// is returned unchanged when it carries SkipMarker.
func Merge(previous, generated string) string {
	if strings.Contains(previous, SkipMarker) {
		return previous
	}
	if previous == "" {
		return generated
	}

	before, rest, _ := strings.Cut(previous, StartMarker)
	_, after, _ := strings.Cut(rest, EndMarker)

	merged := strings.Join([]string{
		strings.Trim(before, "\n"),
		generated,
		strings.Trim(after, "\n"),
	}, "\n")
	return strings.Trim(merged, "\"\n")
}

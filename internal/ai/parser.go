package ai

import "strings"

// PlaceholderTitle is used when the summary response yields nothing usable.
const PlaceholderTitle = "Untitled"

var labelPrefixes = []string{"title:", "summary:"}

// stripLabel removes a leading "Title:"/"Summary:" marker, case-insensitively,
// along with surrounding markdown asterisks and quotes models like to add.
func stripLabel(line string) string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "*#")
	line = strings.TrimSpace(line)
	lowered := strings.ToLower(line)
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			line = strings.TrimSpace(line[len(prefix):])
			break
		}
	}
	return strings.Trim(line, `"“” `)
}

// ParseTitleSummary extracts (title, summary) from a free-form model
// response. The first two non-empty lines are the candidates; an unusable
// response falls back to (PlaceholderTitle, "").
func ParseTitleSummary(response string) (string, string) {
	var fields []string
	for _, line := range strings.Split(response, "\n") {
		cleaned := stripLabel(line)
		if cleaned == "" {
			continue
		}
		fields = append(fields, cleaned)
		if len(fields) == 2 {
			break
		}
	}

	switch len(fields) {
	case 0:
		return PlaceholderTitle, ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}

package vision

import "strings"

// aiNotePrefix marks a caption appended to notes the operator already wrote.
const aiNotePrefix = "[AI]: "

// CleanCaption trims model output down to the description itself, dropping
// blank lines and conversational preambles.
func CleanCaption(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Skip common preambles
		if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "Sure") || strings.HasPrefix(line, "Based on") {
			if strings.HasSuffix(line, ":") {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Trim(strings.Join(kept, " "), `"`)
}

// MergeNotes adds caption to the operator's notes. Empty notes are replaced
// by the caption; otherwise it is appended on its own tagged line.
func MergeNotes(notes, caption string) string {
	if caption == "" {
		return notes
	}
	if notes == "" {
		return caption
	}
	return notes + "\n" + aiNotePrefix + caption
}

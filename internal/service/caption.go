package service

import "strings"

// ComposeCaption joins the body text, hashtags and mentions into the outbound
// caption: body first, then hashtags, then mentions, separated by blank lines.
// Hashtags get a leading '#' and mentions a leading '@' unless already present,
// so re-normalizing an already-marked set never double-marks.
func ComposeCaption(body string, hashtags, mentions []string) string {
	var parts []string

	if strings.TrimSpace(body) != "" {
		parts = append(parts, body)
	}
	if tagged := joinMarked(hashtags, "#"); tagged != "" {
		parts = append(parts, tagged)
	}
	if tagged := joinMarked(mentions, "@"); tagged != "" {
		parts = append(parts, tagged)
	}

	return strings.Join(parts, "\n\n")
}

func joinMarked(items []string, marker string) string {
	marked := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.HasPrefix(item, marker) {
			item = marker + item
		}
		marked = append(marked, item)
	}
	return strings.Join(marked, " ")
}

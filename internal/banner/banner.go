// Package banner defines the displayable payload carried by marquee
// entries. The scheduler treats payloads as opaque; presenters and the
// D-Bus surface agree on this type.
package banner

import "strings"

// Content is the renderable body of a banner entry.
type Content struct {
	// Title is the headline text. Required for display.
	Title string

	// Body is optional supporting text.
	Body string

	// Icon is an optional freedesktop icon name.
	Icon string
}

// TitleOrPlaceholder returns the title, or a placeholder when empty so
// presenters never render a blank headline.
func (c Content) TitleOrPlaceholder() string {
	if strings.TrimSpace(c.Title) == "" {
		return "(untitled)"
	}
	return c.Title
}

// BodyTruncated returns the body collapsed to single-space whitespace and
// truncated to maxLen characters with an ellipsis.
func (c Content) BodyTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	body := strings.Join(strings.Fields(c.Body), " ")
	if len(body) <= maxLen {
		return body
	}
	if maxLen <= 3 {
		return body[:maxLen]
	}
	return body[:maxLen-3] + "..."
}

// From extracts banner content from an opaque payload. Returns false when
// the payload is some other type.
func From(payload any) (Content, bool) {
	switch v := payload.(type) {
	case Content:
		return v, true
	case *Content:
		if v == nil {
			return Content{}, false
		}
		return *v, true
	default:
		return Content{}, false
	}
}

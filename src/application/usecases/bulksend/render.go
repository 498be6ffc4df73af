package bulksend

import (
	"regexp"

	"go-bulk-messaging-dashboard/src/domain/campaign"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// RenderTemplate substitutes {{field}} tokens with the contact's field
// values. Unknown or empty fields leave the token verbatim so template
// mistakes stay visible instead of silently producing garbled text.
func RenderTemplate(template string, contact campaign.Contact) string {
	fields := contact.Fields()
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := fields[key]; ok && value != "" {
			return value
		}
		return match
	})
}

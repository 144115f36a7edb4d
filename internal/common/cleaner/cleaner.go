package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner reduces scraped HTML fragments to safe plain text using
// Bluemonday. Profile pages are third-party markup; nothing scraped
// is kept without passing through here.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewTextCleaner creates a cleaner that strips ALL HTML
func NewTextCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanToText removes all HTML and collapses whitespace
func (c *Cleaner) CleanToText(html string) string {
	text := c.policy.Sanitize(html)
	return strings.Join(strings.Fields(text), " ")
}

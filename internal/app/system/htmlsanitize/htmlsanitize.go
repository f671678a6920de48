// Package htmlsanitize strips markup from caller-supplied free text.
//
// Every free-text field (item name, description, image URL, category
// reference) passes through Strip before validation and storage. The policy
// removes all tags and their script content outright rather than escaping
// them, so a value that is nothing but markup sanitizes to the empty string
// and fails the downstream name validation.
//
// Strip is idempotent: already-clean text comes back unchanged. It never
// fails; the worst case is an empty result.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows no elements at all. bluemonday's strict policy drops every
// tag and the contents of script/style elements.
var policy = bluemonday.StrictPolicy()

// Strip removes all HTML/script markup from s and trims surrounding space.
func Strip(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

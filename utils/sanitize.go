package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user submitted text (free-form task responses, gratitude
// entries) to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

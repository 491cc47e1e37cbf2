package xid

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// New returns a random identifier with the given prefix.
func New(prefix string) string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, id.String())
}

// Slug lowercases input and collapses every run of non-alphanumerics into a
// single dash, trimming dashes at both ends.
func Slug(input string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(input), "-")
	return strings.Trim(slug, "-")
}

// Pricing builds a profile identifier of the form pricing-<slug>-<unix seconds>.
func Pricing(name string, at time.Time) string {
	return fmt.Sprintf("pricing-%s-%d", Slug(name), at.Unix())
}

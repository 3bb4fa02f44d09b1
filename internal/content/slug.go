package content

import (
	"regexp"
	"strings"
)

// slugSpace is Unicode whitespace: RE2's \s is ASCII only.
const slugSpace = `\s\v\x{85}\x{1c}-\x{1f}\p{Z}`

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_` + slugSpace + `-]`)
	slugCollapse = regexp.MustCompile(`[` + slugSpace + `-]+`)
)

// Slugify turns a title into the lowercase, dash-separated form used in filenames.
// Any run of whitespace or dashes becomes one dash. The result may be empty when the
// title has no letters, digits or underscores.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

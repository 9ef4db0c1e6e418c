// Package anchor derives stable, collision-free slugs for Session headers,
// the same way the teacher's CLI derives heading IDs for rendered Markdown
// (via blackfriday.HeadingIDs, backed by this same library).
package anchor

import (
	"fmt"

	sanitizedanchorname "github.com/shurcooL/sanitized_anchor_name"
)

// Table assigns a unique slug to each header text it sees, appending a
// "-2", "-3", ... suffix on repeats, mirroring the collision handling
// blackfriday applies around sanitized_anchor_name.Create.
type Table struct {
	seen map[string]int
}

// Slug returns the anchor slug for header text, registering it against any
// prior identical header seen by this Table.
func (t *Table) Slug(header string) string {
	if t.seen == nil {
		t.seen = make(map[string]int)
	}
	base := sanitizedanchorname.Create(header)
	if base == "" {
		base = "section"
	}
	slug := base
	for n := 2; t.seen[slug] > 0; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	t.seen[slug]++
	return slug
}

// Package nav turns request paths into breadcrumb trails.
//
// A Resolver owns an immutable copy of the label mapping table and derives
// ordered (label, path) trails from the current pathname. Pages that know
// better (entity detail pages with numeric IDs in the URL) pass an explicit
// Items override instead of relying on auto-generation.
package nav

import (
	"fmt"
	"strings"
	"unicode"
)

// Ellipsis is appended to labels cut by Truncate.
const Ellipsis = "…"

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	// ID is a stable identifier for list rendering. Generate fills it with
	// label + index when empty.
	ID    string
	Label string
	// Path is the navigation target. Empty means the entry is not clickable.
	Path string
	// Tooltip is shown on hover. Generate sets it to the untruncated label
	// when truncation shortened Label.
	Tooltip  string
	Disabled bool
	// OnClick overrides navigation for this entry, see Dispatch.
	OnClick func() error
}

// Mapping is a lookup from a full path or a single path segment to a
// display label.
type Mapping map[string]string

// Options configures trail generation for one page render.
type Options struct {
	HomeLabel       string
	HomePath        string
	ShowCurrentPage bool
	TruncateLabels  bool
	MaxLabelLength  int

	// Items bypasses auto-generation entirely when non-nil.
	Items []Crumb

	// OnItemClick is the page-wide click handler, consulted by Dispatch
	// after the per-entry OnClick.
	OnItemClick func(Crumb, int) error
}

// Resolver resolves paths to labels against a fixed mapping table.
type Resolver struct {
	mapping Mapping
}

// NewResolver copies the mapping so later mutation by the caller cannot
// change resolution results.
func NewResolver(mapping Mapping) *Resolver {
	m := make(Mapping, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Resolver{mapping: m}
}

// ResolveLabel returns a display label for a path or path segment. It never
// fails: unmapped input falls back to humanizing the final segment. Opaque
// segments (numeric IDs, UUIDs) are returned as-is; naming those is the
// caller's job via Options.Items.
func (r *Resolver) ResolveLabel(path string) string {
	if label, ok := r.mapping[path]; ok {
		return label
	}

	segment := finalSegment(path)
	if label, ok := r.mapping[segment]; ok {
		return label
	}

	return Humanize(segment)
}

// Generate builds the breadcrumb trail for pathname. The home entry always
// comes first; every non-empty path segment contributes one entry carrying
// the cumulative path prefix. The final entry is the current page and is
// returned non-interactive. With ShowCurrentPage false the final segment is
// omitted instead.
func (r *Resolver) Generate(pathname string, opts Options) []Crumb {
	if opts.Items != nil {
		return finishTrail(append([]Crumb(nil), opts.Items...), opts)
	}

	homeLabel := opts.HomeLabel
	if homeLabel == "" {
		homeLabel = "Home"
	}
	homePath := opts.HomePath
	if homePath == "" {
		homePath = "/"
	}

	trail := []Crumb{{Label: homeLabel, Path: homePath}}

	segments := splitSegments(pathname)

	prefix := ""
	for i, segment := range segments {
		prefix += "/" + segment
		if !opts.ShowCurrentPage && i == len(segments)-1 {
			break
		}
		trail = append(trail, Crumb{
			Label: r.ResolveLabel(prefix),
			Path:  prefix,
		})
	}

	return finishTrail(trail, opts)
}

// finishTrail applies truncation, fills fallback IDs and marks the final
// entry as the non-interactive current page.
func finishTrail(trail []Crumb, opts Options) []Crumb {
	for i := range trail {
		if opts.TruncateLabels {
			short := Truncate(trail[i].Label, opts.MaxLabelLength)
			if short != trail[i].Label && trail[i].Tooltip == "" {
				trail[i].Tooltip = trail[i].Label
			}
			trail[i].Label = short
		}
		if trail[i].ID == "" {
			trail[i].ID = fmt.Sprintf("%s-%d", trail[i].Label, i)
		}
	}
	if len(trail) > 0 {
		trail[len(trail)-1].Disabled = true
	}
	return trail
}

// Truncate cuts label to max runes plus an ellipsis marker. A max of zero
// or less disables truncation. Lossy and one-way; callers keep the original
// for tooltips.
func Truncate(label string, max int) string {
	if max <= 0 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max]) + Ellipsis
}

// Humanize derives a display label from a raw path segment: separators
// become spaces, words are title-cased and a leading numeric prefix on a
// mixed segment is dropped. Opaque identifiers come back unchanged.
func Humanize(segment string) string {
	if segment == "" {
		return "/"
	}
	if isOpaqueID(segment) {
		return segment
	}

	s := strings.NewReplacer("_", " ", "-", " ").Replace(segment)
	words := strings.Fields(s)

	// "123 annual report" -> "annual report"; the bare number was an ID.
	if len(words) > 1 && isDigits(words[0]) {
		words = words[1:]
	}

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	out := strings.Join(words, " ")
	if out == "" {
		return segment
	}
	return out
}

// isOpaqueID reports whether a segment looks like an entity identifier
// rather than a slug: all digits, or shaped like a UUID.
func isOpaqueID(segment string) bool {
	if isDigits(segment) {
		return true
	}
	return isUUID(segment)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, r := range s {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return false
			}
		default:
			ok := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
			if !ok {
				return false
			}
		}
	}
	return true
}

func splitSegments(pathname string) []string {
	var segments []string
	for _, s := range strings.Split(pathname, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func finalSegment(path string) string {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

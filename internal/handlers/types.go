package handlers

import "conforma_app_echo/internal/nav"

// PageData represents the common data structure passed to templates
// Using this ensures type safety and consistency
type PageData struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []nav.Crumb
	CurrentPath string
	UserEmail   string
	UserUID     string
	Data        interface{} // Page-specific data
}

// Trail builds breadcrumb trails for handlers. It wraps the resolver with
// the options loaded from config/navigation.yaml and applies display-layer
// collapsing so templates get a render-ready list.
type Trail struct {
	Resolver *nav.Resolver
	Defaults nav.Options
	MaxItems int
}

// maxTrailItems is the default display budget before middle entries are
// elided.
const maxTrailItems = 6

// NewTrail wires the resolver used by every page handler.
func NewTrail(cfg nav.Config) *Trail {
	return &Trail{
		Resolver: nav.NewResolver(cfg.Labels),
		Defaults: cfg.DefaultOptions(),
		MaxItems: maxTrailItems,
	}
}

// FromPath auto-generates the trail for the request path.
func (t *Trail) FromPath(pathname string) []nav.Crumb {
	return CollapseTrail(t.Resolver.Generate(pathname, t.Defaults), t.MaxItems)
}

// FromItems bypasses auto-generation; detail pages use it to name entity
// segments the resolver cannot know about.
func (t *Trail) FromItems(items ...nav.Crumb) []nav.Crumb {
	opts := t.Defaults
	opts.Items = items
	return CollapseTrail(t.Resolver.Generate("", opts), t.MaxItems)
}

// CollapseTrail elides middle entries of an overlong trail: the home entry
// and the last maxItems-2 entries stay, one non-interactive ellipsis marker
// stands in for the rest. The resolver output is never mutated.
func CollapseTrail(trail []nav.Crumb, maxItems int) []nav.Crumb {
	if maxItems < 3 || len(trail) <= maxItems {
		return trail
	}

	collapsed := make([]nav.Crumb, 0, maxItems)
	collapsed = append(collapsed, trail[0])
	collapsed = append(collapsed, nav.Crumb{ID: "ellipsis", Label: "…", Disabled: true})
	collapsed = append(collapsed, trail[len(trail)-(maxItems-2):]...)
	return collapsed
}

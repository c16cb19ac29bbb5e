package nav

import "log"

// Navigator receives navigation requests from Dispatch. In the web handlers
// this is backed by an HTMX redirect; tests supply fakes.
type Navigator interface {
	Navigate(path string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string) error

func (f NavigatorFunc) Navigate(path string) error { return f(path) }

// Dispatch handles activation of the trail entry at index. Disabled entries
// and the final entry (the current page) are no-ops. Otherwise exactly one
// of the per-entry OnClick, the page-wide onItemClick, or plain navigation
// to the entry path fires, in that priority order.
//
// Errors and panics raised by handlers or navigation are logged and
// swallowed here so a broken handler cannot take the page down.
func Dispatch(trail []Crumb, index int, onItemClick func(Crumb, int) error, navigator Navigator) {
	if index < 0 || index >= len(trail) {
		return
	}

	entry := trail[index]
	if entry.Disabled || index == len(trail)-1 {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("nav: breadcrumb handler panicked for %q: %v", entry.Label, r)
		}
	}()

	var err error
	switch {
	case entry.OnClick != nil:
		err = entry.OnClick()
	case onItemClick != nil:
		err = onItemClick(entry, index)
	case entry.Path != "":
		err = navigator.Navigate(entry.Path)
	}
	if err != nil {
		log.Printf("nav: breadcrumb activation failed for %q: %v", entry.Label, err)
	}
}

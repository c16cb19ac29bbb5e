package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNavigator struct {
	calls []string
}

func (n *recordingNavigator) Navigate(path string) error {
	n.calls = append(n.calls, path)
	return nil
}

func TestDispatchNavigatesByPath(t *testing.T) {
	navi := &recordingNavigator{}
	trail := []Crumb{
		{Label: "Home", Path: "/"},
		{Label: "Frameworks", Path: "/frameworks"},
		{Label: "ISO 27001", Path: "/frameworks/iso-27001", Disabled: true},
	}

	Dispatch(trail, 1, nil, navi)
	assert.Equal(t, []string{"/frameworks"}, navi.calls)
}

func TestDispatchDisabledEntryIsNoop(t *testing.T) {
	navi := &recordingNavigator{}
	handlerCalled := false
	trail := []Crumb{
		{Label: "Home", Path: "/"},
		{Label: "Frozen", Path: "/frozen", Disabled: true, OnClick: func() error {
			handlerCalled = true
			return nil
		}},
		{Label: "Current"},
	}

	Dispatch(trail, 1, func(Crumb, int) error {
		handlerCalled = true
		return nil
	}, navi)

	assert.False(t, handlerCalled)
	assert.Empty(t, navi.calls)
}

// The current page never navigates, even when it carries a path.
func TestDispatchLastEntryIsNoop(t *testing.T) {
	navi := &recordingNavigator{}
	trail := []Crumb{
		{Label: "Home", Path: "/"},
		{Label: "Evals", Path: "/evals"},
	}

	Dispatch(trail, 1, nil, navi)
	assert.Empty(t, navi.calls)
}

func TestDispatchPriorityOrder(t *testing.T) {
	t.Run("per-entry handler wins", func(t *testing.T) {
		navi := &recordingNavigator{}
		entryFired, globalFired := false, false
		trail := []Crumb{
			{Label: "A", Path: "/a", OnClick: func() error {
				entryFired = true
				return nil
			}},
			{Label: "Current"},
		}

		Dispatch(trail, 0, func(Crumb, int) error {
			globalFired = true
			return nil
		}, navi)

		assert.True(t, entryFired)
		assert.False(t, globalFired)
		assert.Empty(t, navi.calls)
	})

	t.Run("global handler beats navigation", func(t *testing.T) {
		navi := &recordingNavigator{}
		var gotIndex int
		var gotLabel string
		trail := []Crumb{
			{Label: "A", Path: "/a"},
			{Label: "Current"},
		}

		Dispatch(trail, 0, func(c Crumb, i int) error {
			gotLabel, gotIndex = c.Label, i
			return nil
		}, navi)

		assert.Equal(t, "A", gotLabel)
		assert.Equal(t, 0, gotIndex)
		assert.Empty(t, navi.calls)
	})
}

func TestDispatchSwallowsErrorsAndPanics(t *testing.T) {
	trail := []Crumb{
		{Label: "Broken", Path: "/broken"},
		{Label: "Panicky", Path: "/panicky", OnClick: func() error {
			panic("handler exploded")
		}},
		{Label: "Current"},
	}

	failing := NavigatorFunc(func(string) error {
		return errors.New("router unavailable")
	})

	assert.NotPanics(t, func() {
		Dispatch(trail, 0, nil, failing)
		Dispatch(trail, 1, nil, failing)
	})
}

func TestDispatchOutOfRangeIndex(t *testing.T) {
	navi := &recordingNavigator{}
	trail := []Crumb{{Label: "Home", Path: "/"}}

	assert.NotPanics(t, func() {
		Dispatch(trail, -1, nil, navi)
		Dispatch(trail, 5, nil, navi)
		Dispatch(nil, 0, nil, navi)
	})
	assert.Empty(t, navi.calls)
}

package handlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conforma_app_echo/internal/nav"
)

func makeTrail(n int) []nav.Crumb {
	trail := make([]nav.Crumb, n)
	for i := range trail {
		trail[i] = nav.Crumb{Label: fmt.Sprintf("Level %d", i), Path: fmt.Sprintf("/l%d", i)}
	}
	return trail
}

func TestCollapseTrail(t *testing.T) {
	t.Run("short trail untouched", func(t *testing.T) {
		trail := makeTrail(4)
		assert.Equal(t, trail, CollapseTrail(trail, 6))
	})

	t.Run("long trail elided in the middle", func(t *testing.T) {
		trail := makeTrail(9)
		collapsed := CollapseTrail(trail, 5)

		require.Len(t, collapsed, 5)
		assert.Equal(t, "Level 0", collapsed[0].Label)
		assert.Equal(t, "…", collapsed[1].Label)
		assert.True(t, collapsed[1].Disabled)
		assert.Equal(t, "Level 6", collapsed[2].Label)
		assert.Equal(t, "Level 8", collapsed[4].Label)
	})

	t.Run("input trail not mutated", func(t *testing.T) {
		trail := makeTrail(9)
		CollapseTrail(trail, 5)
		assert.Equal(t, "Level 1", trail[1].Label)
	})

	t.Run("tiny budget leaves trail alone", func(t *testing.T) {
		trail := makeTrail(9)
		assert.Equal(t, trail, CollapseTrail(trail, 2))
	})
}

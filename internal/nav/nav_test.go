package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping() Mapping {
	return Mapping{
		"evals":      "LLM Evals",
		"frameworks": "Frameworks",
		"settings":   "Settings",
		"api-keys":   "API Keys",
		"/reports":   "All Reports",
	}
}

func TestResolveLabel(t *testing.T) {
	r := NewResolver(testMapping())

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"mapped segment", "evals", "LLM Evals"},
		{"mapped segment via cumulative path", "/evals/42/datasets/api-keys", "API Keys"},
		{"mapped full path", "/reports", "All Reports"},
		{"humanized underscores", "risk_overview", "Risk Overview"},
		{"humanized dashes", "annual-audit-log", "Annual Audit Log"},
		{"leading numeric prefix stripped", "2024-annual-report", "Annual Report"},
		{"pure numeric id kept as-is", "42", "42"},
		{"uuid kept as-is", "7b06f2a4-3a1f-4e44-9af8-0d3a5f1c2b77", "7b06f2a4-3a1f-4e44-9af8-0d3a5f1c2b77"},
		{"single word", "integrations", "Integrations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.ResolveLabel(tt.path))
		})
	}
}

// ResolveLabel must be total: any non-empty input yields a non-empty label.
func TestResolveLabelTotal(t *testing.T) {
	r := NewResolver(testMapping())

	inputs := []string{
		"a", "-", "_", "--__--", "42", "/x/y/z", "///", "unmapped_segment",
		"ёжик", "0-", "a-1-b",
	}
	for _, in := range inputs {
		assert.NotEmpty(t, r.ResolveLabel(in), "input %q", in)
	}
}

func TestGenerateLength(t *testing.T) {
	r := NewResolver(testMapping())

	tests := []struct {
		pathname string
		segments int
	}{
		{"/evals", 1},
		{"/evals/42", 2},
		{"/evals/42/datasets", 3},
		{"/frameworks/iso-27001/controls/a-5-1", 4},
	}

	for _, tt := range tests {
		withCurrent := r.Generate(tt.pathname, Options{ShowCurrentPage: true})
		assert.Len(t, withCurrent, tt.segments+1, "with current page: %s", tt.pathname)

		withoutCurrent := r.Generate(tt.pathname, Options{ShowCurrentPage: false})
		assert.Len(t, withoutCurrent, tt.segments, "without current page: %s", tt.pathname)
	}
}

func TestGenerateScenario(t *testing.T) {
	r := NewResolver(testMapping())

	trail := r.Generate("/evals/42/datasets", Options{
		HomeLabel:       "Home",
		HomePath:        "/",
		ShowCurrentPage: true,
	})
	require.Len(t, trail, 4)

	assert.Equal(t, "Home", trail[0].Label)
	assert.Equal(t, "/", trail[0].Path)

	assert.Equal(t, "LLM Evals", trail[1].Label)
	assert.Equal(t, "/evals", trail[1].Path)

	// Opaque ID: no mapping, no guessing, callers override via Items.
	assert.Equal(t, "42", trail[2].Label)
	assert.Equal(t, "/evals/42", trail[2].Path)

	assert.Equal(t, "Datasets", trail[3].Label)
	assert.Equal(t, "/evals/42/datasets", trail[3].Path)

	// Final entry is the current page and must be non-interactive.
	assert.True(t, trail[3].Disabled)
	assert.False(t, trail[0].Disabled)
}

func TestGenerateRootPathname(t *testing.T) {
	r := NewResolver(testMapping())

	trail := r.Generate("/", Options{
		HomeLabel:       "Dashboard",
		HomePath:        "/",
		ShowCurrentPage: true,
	})
	require.Len(t, trail, 1)
	assert.Equal(t, "Dashboard", trail[0].Label)
	assert.Equal(t, "/", trail[0].Path)
}

func TestGenerateEmptyPathname(t *testing.T) {
	r := NewResolver(testMapping())

	trail := r.Generate("", Options{ShowCurrentPage: true})
	require.Len(t, trail, 1)
	assert.Equal(t, "Home", trail[0].Label)
}

func TestGenerateIdempotent(t *testing.T) {
	r := NewResolver(testMapping())
	opts := Options{HomeLabel: "Home", HomePath: "/", ShowCurrentPage: true}

	first := r.Generate("/frameworks/iso-27001/controls", opts)
	second := r.Generate("/frameworks/iso-27001/controls", opts)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Path, second[i].Path)
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Disabled, second[i].Disabled)
	}
}

func TestGenerateItemsOverride(t *testing.T) {
	r := NewResolver(testMapping())

	items := []Crumb{
		{Label: "Home", Path: "/"},
		{Label: "LLM Evals", Path: "/evals"},
		{Label: "Toxicity Benchmark", Path: "/evals/42"},
	}
	trail := r.Generate("/completely/unrelated/path", Options{Items: items})

	require.Len(t, trail, 3)
	assert.Equal(t, "Toxicity Benchmark", trail[2].Label)
	assert.True(t, trail[2].Disabled)

	// The override input must stay untouched.
	assert.False(t, items[2].Disabled)
}

func TestGenerateTruncation(t *testing.T) {
	r := NewResolver(Mapping{"long": "A Rather Long Framework Section Name"})

	trail := r.Generate("/long", Options{
		ShowCurrentPage: true,
		TruncateLabels:  true,
		MaxLabelLength:  10,
	})
	require.Len(t, trail, 2)
	assert.Equal(t, "A Rather L"+Ellipsis, trail[1].Label)
	assert.Equal(t, "A Rather Long Framework Section Name", trail[1].Tooltip)
}

func TestGenerateFallbackIDs(t *testing.T) {
	r := NewResolver(testMapping())

	trail := r.Generate("/evals/42", Options{ShowCurrentPage: true})
	assert.Equal(t, "Home-0", trail[0].ID)
	assert.Equal(t, "LLM Evals-1", trail[1].ID)
	assert.Equal(t, "42-2", trail[2].ID)
}

func TestTruncateLaw(t *testing.T) {
	ellipsisLen := len([]rune(Ellipsis))

	tests := []struct {
		label string
		max   int
	}{
		{"short", 10},
		{"exactly-ten", 11},
		{"a considerably longer label than allowed", 12},
		{"unicode läbel with ümlauts", 7},
		{"anything", 0},
		{"negative means disabled", -3},
	}

	for _, tt := range tests {
		got := Truncate(tt.label, tt.max)
		if tt.max <= 0 || len([]rune(tt.label)) <= tt.max {
			assert.Equal(t, tt.label, got)
		} else {
			assert.LessOrEqual(t, len([]rune(got)), tt.max+ellipsisLen)
			assert.Equal(t, string([]rune(tt.label)[:tt.max])+Ellipsis, got)
		}
	}
}

// Mutating the source mapping after construction must not change results.
func TestResolverCopiesMapping(t *testing.T) {
	m := Mapping{"evals": "LLM Evals"}
	r := NewResolver(m)
	m["evals"] = "changed"

	assert.Equal(t, "LLM Evals", r.ResolveLabel("evals"))
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"risk_overview", "Risk Overview"},
		{"api-keys", "Api Keys"},
		{"datasets", "Datasets"},
		{"123", "123"},
		{"123-quarterly-audit", "Quarterly Audit"},
		{"", "/"},
		{"---", "---"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Humanize(tt.in), "input %q", tt.in)
	}
}

package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "navigation.yaml")
	content := `home:
  label: Dashboard
  path: /dashboard
show_current_page: true
truncate_labels: false
max_label_length: 48
labels:
  evals: LLM Evals
  frameworks: Frameworks
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Dashboard", cfg.HomeLabel)
	assert.Equal(t, "/dashboard", cfg.HomePath)
	assert.False(t, cfg.TruncateLabels)
	assert.Equal(t, 48, cfg.MaxLabelLength)
	assert.Equal(t, "LLM Evals", cfg.Labels["evals"])
	assert.Equal(t, "Frameworks", cfg.Labels["frameworks"])

	opts := cfg.DefaultOptions()
	assert.Equal(t, "Dashboard", opts.HomeLabel)
	assert.True(t, opts.ShowCurrentPage)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Home", cfg.HomeLabel)
	assert.Equal(t, "/dashboard", cfg.HomePath)
	assert.True(t, cfg.ShowCurrentPage)
	assert.Empty(t, cfg.Labels)
}

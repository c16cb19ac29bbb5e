package nav

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Config is the static navigation configuration loaded once at startup.
type Config struct {
	HomeLabel       string
	HomePath        string
	ShowCurrentPage bool
	TruncateLabels  bool
	MaxLabelLength  int
	Labels          Mapping
}

// DefaultOptions converts the loaded configuration into per-render Options.
func (c Config) DefaultOptions() Options {
	return Options{
		HomeLabel:       c.HomeLabel,
		HomePath:        c.HomePath,
		ShowCurrentPage: c.ShowCurrentPage,
		TruncateLabels:  c.TruncateLabels,
		MaxLabelLength:  c.MaxLabelLength,
	}
}

// LoadConfig reads the navigation label table and display options from a
// YAML file. A missing file is not an error: defaults plus an empty mapping
// keep every page rendering through the humanization fallback.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("home.label", "Home")
	v.SetDefault("home.path", "/dashboard")
	v.SetDefault("show_current_page", true)
	v.SetDefault("truncate_labels", true)
	v.SetDefault("max_label_length", 32)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read navigation config %s: %w", path, err)
		}
	}

	labels := make(Mapping)
	for segment, label := range v.GetStringMapString("labels") {
		labels[segment] = label
	}

	return Config{
		HomeLabel:       v.GetString("home.label"),
		HomePath:        v.GetString("home.path"),
		ShowCurrentPage: v.GetBool("show_current_page"),
		TruncateLabels:  v.GetBool("truncate_labels"),
		MaxLabelLength:  v.GetInt("max_label_length"),
		Labels:          labels,
	}, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"TreeScope/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Output struct {
		ViewDir  string  `yaml:"view_dir"`
		Image    string  `yaml:"image"`
		WidthIn  float64 `yaml:"width_in"`
		HeightIn float64 `yaml:"height_in"`
	} `yaml:"output"`
	Draw struct {
		Tree   string `yaml:"tree"`
		Bins   int    `yaml:"bins"`
		Bins2D int    `yaml:"bins_2d"`
	} `yaml:"draw"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Jobs []Job `yaml:"jobs"`
}

// Job is a plot re-rendered on a cron schedule.
type Job struct {
	Name    string    `yaml:"name"`
	Cron    string    `yaml:"cron"`
	File    string    `yaml:"file"`
	Tree    string    `yaml:"tree"`
	Branch  string    `yaml:"branch"`
	YBranch string    `yaml:"y_branch"`
	Bins    int       `yaml:"bins"`
	Range   []float64 `yaml:"range"`
	YRange  []float64 `yaml:"y_range"`
	Fit     string    `yaml:"fit"`
	Cut     string    `yaml:"cut"`
	Output  string    `yaml:"output"`
}

// XRange converts the configured [min, max] pair; unset means data-derived.
func (j Job) XRange() model.Range { return toRange(j.Range) }

// YAxisRange converts the configured y [min, max] pair.
func (j Job) YAxisRange() model.Range { return toRange(j.YRange) }

func toRange(r []float64) model.Range {
	if len(r) != 2 {
		return model.Range{}
	}
	return model.Range{Min: r[0], Max: r[1]}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TREESCOPE_VIEW_DIR"); v != "" {
		cfg.Output.ViewDir = v
	}
	if v := os.Getenv("TREESCOPE_TREE"); v != "" {
		cfg.Draw.Tree = v
	}
	if v := os.Getenv("TREESCOPE_BINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Draw.Bins = n
		}
	}
	if v := os.Getenv("TREESCOPE_STATE_FILE"); v != "" {
		cfg.State.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Output.Image == "" {
		cfg.Output.Image = "histogram.png"
	}
	if cfg.Output.WidthIn == 0 {
		cfg.Output.WidthIn = 6.4
	}
	if cfg.Output.HeightIn == 0 {
		cfg.Output.HeightIn = 4.8
	}
	if cfg.Draw.Bins == 0 {
		cfg.Draw.Bins = 100
	}
	if cfg.Draw.Bins2D == 0 {
		cfg.Draw.Bins2D = 50
	}
	if cfg.State.File == "" {
		cfg.State.File = ".treescope/state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = ".treescope/history.db"
	}

	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Output.WidthIn <= 0 || c.Output.HeightIn <= 0 {
		return fmt.Errorf("output.width_in and output.height_in must be positive")
	}
	if c.Draw.Bins <= 0 || c.Draw.Bins2D <= 0 {
		return fmt.Errorf("draw.bins and draw.bins_2d must be positive")
	}
	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		if j.Name == "" {
			return fmt.Errorf("jobs[%d].name is required", i)
		}
		if seen[j.Name] {
			return fmt.Errorf("jobs[%d]: duplicate name %q", i, j.Name)
		}
		seen[j.Name] = true
		if err := j.validate(); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
	}
	return nil
}

func (j Job) validate() error {
	switch {
	case j.Cron == "":
		return fmt.Errorf("cron is required")
	case j.File == "":
		return fmt.Errorf("file is required")
	case j.Tree == "":
		return fmt.Errorf("tree is required")
	case j.Branch == "":
		return fmt.Errorf("branch is required")
	case j.Output == "":
		return fmt.Errorf("output is required")
	case j.Bins < 0:
		return fmt.Errorf("bins must not be negative")
	}
	if j.Fit != "" && model.FitKind(j.Fit) != model.FitGaussian {
		return fmt.Errorf("unsupported fit %q", j.Fit)
	}
	if j.Fit != "" && j.YBranch != "" {
		return fmt.Errorf("fit is only supported for 1D jobs")
	}
	for name, r := range map[string][]float64{"range": j.Range, "y_range": j.YRange} {
		if len(r) == 0 {
			continue
		}
		if len(r) != 2 || r[1] <= r[0] {
			return fmt.Errorf("%s must be [min, max] with max > min", name)
		}
	}
	return nil
}

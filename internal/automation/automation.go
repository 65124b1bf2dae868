package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/cycloid/internal/config"
	"github.com/san-kum/cycloid/internal/metrics"
	"github.com/san-kum/cycloid/internal/sim"
	"github.com/san-kum/cycloid/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of headless runs saved to the run store.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Run  `yaml:"runs"`
}

// Run is one entry of a scenario. Unset fields come from the preset, if
// any, and then from the defaults passed to RunScenario.
type Run struct {
	Name       string   `yaml:"name"`
	Preset     string   `yaml:"preset"`
	Radius     *float64 `yaml:"radius"`
	Velocity   *float64 `yaml:"velocity"`
	IntervalMs *int     `yaml:"interval_ms"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the run against base.
func (r Run) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if r.Preset != "" {
		p := config.GetPreset(r.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", r.Preset)
		}
		cfg.Radius = p.Radius
		cfg.Velocity = p.Velocity
		cfg.FrameIntervalMs = p.FrameIntervalMs
	}
	if r.Radius != nil {
		cfg.Radius = *r.Radius
	}
	if r.Velocity != nil {
		cfg.Velocity = *r.Velocity
	}
	if r.IntervalMs != nil {
		cfg.FrameIntervalMs = *r.IntervalMs
	}
	return &cfg, nil
}

// RunScenario simulates every run in order and saves each result. It stops
// at the first failure and returns the ids saved so far.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, defaults *config.Config, w io.Writer) ([]string, error) {
	if defaults == nil {
		defaults = config.DefaultConfig()
	}
	ids := make([]string, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		name := run.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", scenario.Name, i+1)
		}
		fmt.Fprintf(w, "Running step %d/%d: %s\n", i+1, len(scenario.Runs), name)

		cfg, err := run.Config(defaults)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		plan, err := cfg.Plan()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := sim.Simulate(ctx, plan, cfg.MaxFrames, metrics.Defaults(cfg.Radius)...)
		if err != nil {
			return ids, fmt.Errorf("step %d run: %w", i+1, err)
		}

		id, err := st.Save(name, result)
		if err != nil {
			return ids, fmt.Errorf("step %d save: %w", i+1, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

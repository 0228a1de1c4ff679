package typegraph

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/typegraph/metrics"
)

// Config tunes a [Solver]. The zero value is not usable, start from
// [DefaultConfig] or [ParseConfig].
type Config struct {
	// MaxGoalBatch caps the size of a single sub-query: goals larger
	// than this are split into consecutive batches solved left to
	// right, with the rest skipped once one proves false. This bounds
	// the combinatorial blowup of wide goals, e.g. function calls with
	// many arguments.
	MaxGoalBatch int `yaml:"max_goal_batch"`

	// StepBudget caps the number of search states one query may expand,
	// zero means no cap. A query over budget answers false and is
	// flagged in its metrics record.
	StepBudget int `yaml:"step_budget"`

	// TimeBudget caps the wall time of one query the same fail-closed
	// way, zero means no cap.
	TimeBudget Duration `yaml:"time_budget"`

	// TraceSteps records a per-state step trace in every query record.
	// Costs memory on heavy workloads, helps the visualizer a lot.
	TraceSteps bool `yaml:"trace_steps"`

	// Logger gets solver progress at debug level. Nil disables logging.
	Logger *slog.Logger `yaml:"-"`

	// Observer receives query and cache events. Nil disables.
	Observer metrics.Observer `yaml:"-"`
}

// DefaultConfig returns the solver settings used when no configuration
// was provided.
func DefaultConfig() Config {
	return Config{
		MaxGoalBatch: 3,
		TraceSteps:   true,
	}
}

// ParseConfig reads yaml on top of [DefaultConfig]:
//
//	max_goal_batch: 4
//	step_budget: 20000
//	time_budget: 250ms
//	trace_steps: false
func ParseConfig(data []byte) (Config, error) {
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("parse solver config: %w", err)
	}

	if err := conf.validate(); err != nil {
		return Config{}, fmt.Errorf("validate solver config: %w", err)
	}

	return conf, nil
}

func (c Config) validate() error {
	if c.MaxGoalBatch < 1 {
		return fmt.Errorf("max_goal_batch must be positive, got %d", c.MaxGoalBatch)
	}
	if c.StepBudget < 0 {
		return fmt.Errorf("step_budget must not be negative, got %d", c.StepBudget)
	}
	if c.TimeBudget < 0 {
		return fmt.Errorf("time_budget must not be negative, got %s", time.Duration(c.TimeBudget))
	}
	return nil
}

// Duration is a [time.Duration] readable from yaml in the usual
// "250ms" / "1m30s" form.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decode duration scalar: %w", err)
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

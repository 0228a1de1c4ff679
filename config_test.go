package typegraph

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty input keeps defaults",
			input: "",
			want:  DefaultConfig(),
		},
		{
			name: "full override",
			input: `
max_goal_batch: 5
step_budget: 20000
time_budget: 250ms
trace_steps: false
`,
			want: Config{
				MaxGoalBatch: 5,
				StepBudget:   20000,
				TimeBudget:   Duration(250 * time.Millisecond),
				TraceSteps:   false,
			},
		},
		{
			name:  "partial override keeps the rest",
			input: "step_budget: 100",
			want: Config{
				MaxGoalBatch: DefaultConfig().MaxGoalBatch,
				StepBudget:   100,
				TraceSteps:   DefaultConfig().TraceSteps,
			},
		},
		{
			name:    "batch must be positive",
			input:   "max_goal_batch: 0",
			wantErr: true,
		},
		{
			name:    "negative step budget",
			input:   "step_budget: -1",
			wantErr: true,
		},
		{
			name:    "broken duration",
			input:   "time_budget: quarter of an hour",
			wantErr: true,
		},
		{
			name:    "not yaml at all",
			input:   "{{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDurationYAMLRoundtrip(t *testing.T) {
	d := Duration(90 * time.Second)
	v, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v != "1m30s" {
		t.Errorf("expected %q, got %v", "1m30s", v)
	}
}

func TestNewSolverRejectsBrokenConfig(t *testing.T) {
	p := NewProgram()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on a zero config")
		}
	}()

	NewSolver(p, Config{})
}

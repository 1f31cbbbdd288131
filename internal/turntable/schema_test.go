package turntable

import (
	"strings"
	"testing"

	"github.com/railkit/exinstall/internal/directive"
	"github.com/railkit/exinstall/internal/semver"
)

func fullValues() directive.Values {
	return directive.Values{
		"i2cAddress":     "60",
		"mode":           "TURNTABLE",
		"sensorTesting":  "off",
		"homeSensor":     "LOW",
		"limitSensor":    "LOW",
		"relay":          "LOW",
		"phaseSwitching": "AUTO",
		"phaseAngle":     "45",
		"stepperDriver":  "AF_A4988",
		"disableIdle":    "on",
		"maxSpeed":       "200",
		"acceleration":   "25",
		"gearingFactor":  "1",
		"debug":          "off",
	}
}

func lineSet(directives []directive.Directive) []string {
	lines := make([]string, len(directives))
	for i, d := range directives {
		lines[i] = d.Line
	}
	return lines
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func TestGenerateFullConfig(t *testing.T) {
	s := NewSchema(DefaultSteppers)
	directives, problems := s.Generate(fullValues(), semver.Parse("v0.6.1-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}

	lines := lineSet(directives)
	for _, want := range []string{
		"#define I2C_ADDRESS 0x60",
		"#define TURNTABLE_EX_MODE TURNTABLE",
		"#define HOME_SENSOR_ACTIVE_STATE LOW",
		"#define LIMIT_SENSOR_ACTIVE_STATE LOW",
		"#define RELAY_ACTIVE_STATE LOW",
		"#define PHASE_SWITCHING AUTO",
		"#define PHASE_SWITCH_ANGLE 45",
		"#define STEPPER_DRIVER AF_A4988",
		"#define DISABLE_OUTPUTS_IDLE",
		"#define STEPPER_MAX_SPEED 200",
		"#define STEPPER_ACCELERATION 25",
		"#define STEPPER_GEARING_FACTOR 1",
		"#define LED_FAST 100",
		"#define LED_SLOW 500",
		"// #define DEBUG",
		"// #define SANITY_STEPS 10000",
		"// #define HOME_SENSITIVITY 300",
		"// #define FULL_STEP_COUNT 4096",
		"// #define DEBOUNCE_DELAY 10",
	} {
		if !contains(lines, want) {
			t.Errorf("missing line %q", want)
		}
	}

	// v0.6.1 predates the invert and rotate options, so no active directive
	// for them may appear.
	for _, l := range lines {
		if strings.HasPrefix(l, "#define INVERT_") || strings.HasPrefix(l, "#define ROTATE_") {
			t.Errorf("gated directive emitted active: %q", l)
		}
	}
}

func TestGenerateEmissionOrder(t *testing.T) {
	s := NewSchema(DefaultSteppers)
	directives, problems := s.Generate(fullValues(), semver.Parse("v0.7.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}

	lines := lineSet(directives)
	// Spot-check the fixed order at a few anchor points.
	anchors := []string{
		"#define I2C_ADDRESS 0x60",
		"#define TURNTABLE_EX_MODE TURNTABLE",
		"#define STEPPER_DRIVER AF_A4988",
		"#define STEPPER_GEARING_FACTOR 1",
		"// #define INVERT_DIRECTION",
		"// #define ROTATE_REVERSE_ONLY",
		"// #define DEBOUNCE_DELAY 10",
	}
	last := -1
	for _, anchor := range anchors {
		idx := -1
		for i, l := range lines {
			if l == anchor {
				idx = i
				break
			}
		}
		if idx < 0 {
			t.Fatalf("missing anchor line %q in %v", anchor, lines)
		}
		if idx <= last {
			t.Errorf("anchor %q out of order (index %d after %d)", anchor, idx, last)
		}
		last = idx
	}
}

func TestGenerateGearingGatedBelowSixZero(t *testing.T) {
	s := NewSchema(DefaultSteppers)
	vals := fullValues()
	vals["gearingFactor"] = "7"
	directives, problems := s.Generate(vals, semver.Parse("v0.5.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}
	lines := lineSet(directives)
	if !contains(lines, "#define STEPPER_GEARING_FACTOR 1") {
		t.Errorf("expected fixed gearing default below v0.6.0, got %v", lines)
	}
	if contains(lines, "#define STEPPER_GEARING_FACTOR 7") {
		t.Error("user gearing value honoured below the gate")
	}
}

func TestGenerateInvertAndRotateEditable(t *testing.T) {
	s := NewSchema(DefaultSteppers)
	vals := fullValues()
	vals["invertDirection"] = "on"
	vals["forwardOnly"] = "on"
	directives, problems := s.Generate(vals, semver.Parse("v0.7.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}
	lines := lineSet(directives)
	for _, want := range []string{
		"#define INVERT_DIRECTION",
		"// #define INVERT_STEP",
		"// #define INVERT_ENABLE",
		"#define ROTATE_FORWARD_ONLY",
		"// #define ROTATE_REVERSE_ONLY",
	} {
		if !contains(lines, want) {
			t.Errorf("missing line %q", want)
		}
	}
}

func TestGeneratePhaseAngleManual(t *testing.T) {
	s := NewSchema(DefaultSteppers)
	vals := fullValues()
	vals["phaseSwitching"] = "MANUAL"
	vals["phaseAngle"] = "garbage"
	directives, problems := s.Generate(vals, semver.Parse("v0.6.1-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems when angle excluded, got %v", problems)
	}
	for _, l := range lineSet(directives) {
		if strings.Contains(l, "PHASE_SWITCH_ANGLE") {
			t.Errorf("angle emitted under manual switching: %q", l)
		}
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
		want []string
	}{
		{
			name: "i2c address below range",
			set:  map[string]string{"i2cAddress": "5"},
			want: []string{"I2C address must be between 0x8 and 0x77"},
		},
		{
			name: "i2c address above range",
			set:  map[string]string{"i2cAddress": "78"},
			want: []string{"I2C address must be between 0x8 and 0x77"},
		},
		{
			name: "phase angle out of range",
			set:  map[string]string{"phaseAngle": "181"},
			want: []string{"Phase switch angle must be between 0 and 180"},
		},
		{
			name: "no stepper selected",
			set:  map[string]string{"stepperDriver": ""},
			want: []string{"You must select a stepper driver"},
		},
		{
			name: "speed out of range",
			set:  map[string]string{"maxSpeed": "9"},
			want: []string{"Speed must be between 10 and 20000"},
		},
		{
			name: "speed not numeric",
			set:  map[string]string{"maxSpeed": "fast"},
			want: []string{"You must provide a numeric speed value"},
		},
		{
			name: "acceleration out of range",
			set:  map[string]string{"acceleration": "1001"},
			want: []string{"Acceleration must be between 1 and 1000"},
		},
		{
			name: "gearing out of range",
			set:  map[string]string{"gearingFactor": "11"},
			want: []string{"Gearing factor must be between 1 and 10"},
		},
		{
			name: "multiple problems collected in schema order",
			set:  map[string]string{"i2cAddress": "5", "maxSpeed": "9", "stepperDriver": ""},
			want: []string{
				"I2C address must be between 0x8 and 0x77",
				"You must select a stepper driver",
				"Speed must be between 10 and 20000",
			},
		},
	}

	s := NewSchema(DefaultSteppers)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := fullValues()
			for k, val := range tt.set {
				vals[k] = val
			}
			directives, problems := s.Generate(vals, semver.Parse("v0.6.1-Prod"))
			if directives != nil {
				t.Fatalf("expected nil directives alongside problems, got %v", directives)
			}
			if len(problems) != len(tt.want) {
				t.Fatalf("expected %d problems, got %d: %v", len(tt.want), len(problems), problems)
			}
			for i, p := range problems {
				if p != tt.want[i] {
					t.Errorf("problem %d: got %q, want %q", i, p, tt.want[i])
				}
			}
		})
	}
}

func TestGenerateTraverserRules(t *testing.T) {
	s := NewSchema(DefaultSteppers)

	t.Run("forward only", func(t *testing.T) {
		vals := fullValues()
		vals["mode"] = "TRAVERSER"
		vals["forwardOnly"] = "on"
		directives, problems := s.Generate(vals, semver.Parse("v0.7.0-Prod"))
		if directives != nil {
			t.Fatalf("expected nil directives, got %v", directives)
		}
		if len(problems) != 1 || problems[0] != "Traverser mode is incompatible with forward only rotation" {
			t.Fatalf("unexpected problems: %v", problems)
		}
	})

	t.Run("reverse only", func(t *testing.T) {
		vals := fullValues()
		vals["mode"] = "TRAVERSER"
		vals["reverseOnly"] = "on"
		_, problems := s.Generate(vals, semver.Parse("v0.7.0-Prod"))
		if len(problems) != 1 || problems[0] != "Traverser mode is incompatible with reverse only rotation" {
			t.Fatalf("unexpected problems: %v", problems)
		}
	})

	t.Run("both rotation limits", func(t *testing.T) {
		vals := fullValues()
		vals["forwardOnly"] = "on"
		vals["reverseOnly"] = "on"
		_, problems := s.Generate(vals, semver.Parse("v0.7.0-Prod"))
		if len(problems) != 1 || problems[0] != "Forward only and reverse only rotation cannot both be enabled" {
			t.Fatalf("unexpected problems: %v", problems)
		}
	})

	t.Run("rules dormant below gate", func(t *testing.T) {
		vals := fullValues()
		vals["mode"] = "TRAVERSER"
		vals["forwardOnly"] = "on"
		_, problems := s.Generate(vals, semver.Parse("v0.6.1-Prod"))
		if problems != nil {
			t.Fatalf("expected no problems while rotation fields gated, got %v", problems)
		}
	})
}

func TestListSteppersFallback(t *testing.T) {
	got := ListSteppers(t.TempDir())
	if len(got) != len(DefaultSteppers) {
		t.Fatalf("expected fallback list, got %v", got)
	}
	for i, name := range got {
		if name != DefaultSteppers[i] {
			t.Errorf("stepper %d: got %q, want %q", i, name, DefaultSteppers[i])
		}
	}
}

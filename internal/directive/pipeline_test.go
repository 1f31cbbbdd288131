package directive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railkit/exinstall/internal/semver"
)

// testSchema builds a small schema exercising every field kind, a version
// gate, a conditional field, and a cross-field rule.
func testSchema() *Schema {
	return &Schema{
		Name: "widget",
		Fields: []*Field{
			{
				Name:        "mode",
				Kind:        KindChoice,
				Default:     "BASIC",
				Choices:     []string{"BASIC", "EXTENDED"},
				ChoiceError: "Mode must be BASIC or EXTENDED",
				Format:      "#define WIDGET_MODE %s",
			},
			{
				Name:         "speed",
				Kind:         KindInt,
				Default:      "100",
				Min:          10,
				Max:          500,
				Bounded:      true,
				NumericError: "Speed must be numeric",
				RangeError:   "Speed must be between 10 and 500",
				Format:       "#define WIDGET_SPEED %s",
			},
			{
				Name:        "verbose",
				Kind:        KindBool,
				Default:     "off",
				ToggleError: "Verbose output must be on or off",
				OnLines:     []string{"#define WIDGET_VERBOSE"},
				OffLines:    []string{"// #define WIDGET_VERBOSE"},
			},
			{
				Name:         "extSpeed",
				Kind:         KindInt,
				Default:      "50",
				Min:          1,
				Max:          100,
				Bounded:      true,
				NumericError: "Extended speed must be numeric",
				RangeError:   "Extended speed must be between 1 and 100",
				Format:       "#define WIDGET_EXT_SPEED %s",
				EmitWhen:     func(v Values) bool { return v["mode"] == "EXTENDED" },
			},
			{
				Name:        "turbo",
				Kind:        KindBool,
				Default:     "off",
				ToggleError: "Turbo must be on or off",
				OnLines:     []string{"#define WIDGET_TURBO"},
				OffLines:    []string{"// #define WIDGET_TURBO"},
				MinVersion:  &MinVersion{Major: 1, Minor: 2, Patch: 0},
				GatedLines:  []string{"// #define WIDGET_TURBO"},
			},
			{
				Name:         "retries",
				Kind:         KindOptionalInt,
				Default:      "",
				NumericError: "Retries must be numeric",
				Format:       "#define WIDGET_RETRIES %s",
				UnsetLines:   []string{"// #define WIDGET_RETRIES 3"},
			},
		},
		Rules: []Rule{
			{
				Fields: []string{"turbo"},
				Violated: func(v Values) bool {
					return v["mode"] == "BASIC" && IsOn(v["turbo"])
				},
				Message: "Turbo requires extended mode",
			},
		},
	}
}

func v(tag string) semver.Version {
	parsed := semver.Parse(tag)
	return parsed
}

func TestGenerateDefaults(t *testing.T) {
	s := testSchema()
	directives, problems := s.Generate(nil, v("v1.2.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}

	want := []string{
		"#define WIDGET_MODE BASIC",
		"#define WIDGET_SPEED 100",
		"// #define WIDGET_VERBOSE",
		"// #define WIDGET_TURBO",
		"// #define WIDGET_RETRIES 3",
	}
	if len(directives) != len(want) {
		t.Fatalf("expected %d directives, got %d: %v", len(want), len(directives), directives)
	}
	for i, d := range directives {
		if d.Line != want[i] {
			t.Errorf("directive %d: got %q, want %q", i, d.Line, want[i])
		}
	}
}

func TestGenerateEmissionOrder(t *testing.T) {
	s := testSchema()
	directives, problems := s.Generate(Values{
		"mode":     "EXTENDED",
		"extSpeed": "75",
		"verbose":  "on",
		"turbo":    "on",
		"retries":  "5",
	}, v("v1.2.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems, got %v", problems)
	}

	// Input order must not matter: lines follow schema declaration order.
	want := []string{
		"#define WIDGET_MODE EXTENDED",
		"#define WIDGET_SPEED 100",
		"#define WIDGET_VERBOSE",
		"#define WIDGET_EXT_SPEED 75",
		"#define WIDGET_TURBO",
		"#define WIDGET_RETRIES 5",
	}
	for i, d := range directives {
		if d.Line != want[i] {
			t.Errorf("directive %d: got %q, want %q", i, d.Line, want[i])
		}
	}
	for i := 1; i < len(directives); i++ {
		if directives[i].Order < directives[i-1].Order {
			t.Errorf("directive order not monotonic at %d: %v", i, directives)
		}
	}
}

func TestGenerateCollectsAllProblems(t *testing.T) {
	s := testSchema()
	directives, problems := s.Generate(Values{
		"mode":  "WRONG",
		"speed": "9999",
	}, v("v1.2.0-Prod"))

	if directives != nil {
		t.Fatalf("expected nil directives alongside problems, got %v", directives)
	}
	want := []string{
		"Mode must be BASIC or EXTENDED",
		"Speed must be between 10 and 500",
	}
	if len(problems) != len(want) {
		t.Fatalf("expected %d problems, got %d: %v", len(want), len(problems), problems)
	}
	for i, p := range problems {
		if p != want[i] {
			t.Errorf("problem %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestGenerateBadToggleUsesDeclaredMessage(t *testing.T) {
	s := testSchema()
	directives, problems := s.Generate(Values{"verbose": "maybe"}, v("v1.2.0-Prod"))

	if directives != nil {
		t.Fatalf("expected nil directives alongside problems, got %v", directives)
	}
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if problems[0] != "Verbose output must be on or off" {
		t.Errorf("got %q, want the declared toggle message", problems[0])
	}
}

func TestGenerateVersionGating(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{name: "below threshold emits gated default", tag: "v1.1.9-Prod", want: "// #define WIDGET_TURBO"},
		{name: "unknown version emits gated default", tag: "not-a-tag", want: "// #define WIDGET_TURBO"},
		{name: "at threshold honours the value", tag: "v1.2.0-Prod", want: "#define WIDGET_TURBO"},
		{name: "above threshold honours the value", tag: "v2.0.0-Devel", want: "#define WIDGET_TURBO"},
	}

	s := testSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directives, problems := s.Generate(Values{"mode": "EXTENDED", "turbo": "on"}, v(tt.tag))
			if problems != nil {
				t.Fatalf("expected no problems, got %v", problems)
			}
			found := false
			for _, d := range directives {
				if d.Line == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected line %q in output, got %v", tt.want, directives)
			}
		})
	}
}

func TestGenerateGatedFieldSkipsValidation(t *testing.T) {
	s := testSchema()
	// Garbage in a gated-off field must not surface as a problem.
	directives, problems := s.Generate(Values{"turbo": "garbage"}, v("v1.0.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems for gated field, got %v", problems)
	}
	found := false
	for _, d := range directives {
		if d.Line == "// #define WIDGET_TURBO" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected gated default line, got %v", directives)
	}
}

func TestGenerateConditionalField(t *testing.T) {
	s := testSchema()
	// extSpeed is invalid, but mode BASIC excludes it from the pass.
	directives, problems := s.Generate(Values{"extSpeed": "garbage"}, v("v1.2.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems when field excluded, got %v", problems)
	}
	for _, d := range directives {
		if strings.Contains(d.Line, "WIDGET_EXT_SPEED") {
			t.Errorf("excluded field emitted a line: %q", d.Line)
		}
	}
}

func TestGenerateRuleSuppressesFields(t *testing.T) {
	s := testSchema()
	directives, problems := s.Generate(Values{"turbo": "on"}, v("v1.2.0-Prod"))
	if directives != nil {
		t.Fatalf("expected nil directives, got %v", directives)
	}
	if len(problems) != 1 || problems[0] != "Turbo requires extended mode" {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestGenerateRuleIgnoredWhenFieldGated(t *testing.T) {
	s := testSchema()
	// turbo is gated off below v1.2.0, so the rule naming it does not fire.
	_, problems := s.Generate(Values{"turbo": "on"}, v("v1.0.0-Prod"))
	if problems != nil {
		t.Fatalf("expected no problems when rule field gated, got %v", problems)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	s := testSchema()
	vals := Values{"mode": "EXTENDED", "verbose": "on", "retries": "2"}
	first, _ := s.Generate(vals, v("v1.2.0-Prod"))
	for i := 0; i < 5; i++ {
		again, _ := s.Generate(vals, v("v1.2.0-Prod"))
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d: directive %d differs: %v != %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestRenderHeader(t *testing.T) {
	g := &Generator{Schema: testSchema(), AppVersion: "1.0.0"}
	lines, err := g.Render(nil, v("v1.2.0-Prod"), "Widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected header plus directives, got %v", lines)
	}
	wantHeader := "// config.h - Generated by EX-Installer v1.0.0 for Widget v1.2.0-Prod"
	if lines[0] != wantHeader {
		t.Errorf("header: got %q, want %q", lines[0], wantHeader)
	}
	if lines[1] != "" {
		t.Errorf("expected blank line after header, got %q", lines[1])
	}
}

func TestWriteConfigValidationError(t *testing.T) {
	g := &Generator{Schema: testSchema(), AppVersion: "1.0.0"}
	path := filepath.Join(t.TempDir(), "config.h")

	_, err := g.WriteConfig(path, Values{"speed": "garbage"}, v("v1.2.0-Prod"), "Widget")
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var pe *PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PipelineError, got %T", err)
	}
	if len(pe.Problems) != 1 || pe.Problems[0] != "Speed must be numeric" {
		t.Errorf("unexpected problems: %v", pe.Problems)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("expected no file written on validation failure")
	}
}

func TestWriteConfigArtifactWriteError(t *testing.T) {
	g := &Generator{Schema: testSchema(), AppVersion: "1.0.0"}
	path := filepath.Join(t.TempDir(), "missing", "deeper", "config.h")

	_, err := g.WriteConfig(path, nil, v("v1.2.0-Prod"), "Widget")
	if !IsArtifactWriteError(err) {
		t.Fatalf("expected artifact write error, got %v", err)
	}
	if IsValidationError(err) {
		t.Error("error classified as both kinds")
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected wrapped cause")
	}
}

func TestWriteConfigSuccess(t *testing.T) {
	g := &Generator{Schema: testSchema(), AppVersion: "1.0.0"}
	path := filepath.Join(t.TempDir(), "config.h")

	written, err := g.WriteConfig(path, nil, v("v1.2.0-Prod"), "Widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("written path: got %q, want %q", written, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "#define WIDGET_MODE BASIC") {
		t.Errorf("artifact missing expected directive:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("artifact not newline terminated")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors([]string{"first problem", "second problem"})
	if !strings.Contains(got, "2 error(s)") {
		t.Errorf("missing count: %q", got)
	}
	if !strings.Contains(got, "1. first problem") || !strings.Contains(got, "2. second problem") {
		t.Errorf("missing numbered entries: %q", got)
	}
}

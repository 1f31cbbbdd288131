package directive

import (
	"fmt"

	"github.com/railkit/exinstall/internal/logging"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/workspace"
)

// Directive is one line of the generated configuration artifact, either an
// active #define or a commented-out placeholder. Order is the line's
// position in the schema's fixed emission order.
type Directive struct {
	Line  string
	Order int
}

// Generate runs the validation and emission pass over the schema.
//
// Fields are visited in schema order. A field gated off by the firmware
// version contributes its fixed default lines and skips validation. An
// editable field is coerced and range-checked; a failure records a problem
// and suppresses that field's lines without aborting the pass, so every
// problem surfaces in one run. Cross-field rules are evaluated afterwards
// over the merged values and suppress the directives of the fields they
// name.
//
// The outcomes are mutually exclusive: when any problem was found, the
// returned directive list is nil and the problems are returned in
// discovery order; otherwise the full directive list is returned in schema
// order.
func (s *Schema) Generate(vals Values, v semver.Version) ([]Directive, []string) {
	merged := s.DefaultValues()
	for name, raw := range vals {
		merged[name] = raw
	}

	slots := make([][]string, len(s.Fields))
	var problems []string

	for i, f := range s.Fields {
		if f.EmitWhen != nil && !f.EmitWhen(merged) {
			continue
		}
		if !f.Editable(v) {
			slots[i] = f.GatedLines
			continue
		}
		lines, problem := f.render(merged[f.Name])
		if problem != "" {
			problems = append(problems, problem)
			continue
		}
		slots[i] = lines
	}

	for _, r := range s.Rules {
		if !s.ruleApplies(r, v) {
			continue
		}
		if r.Violated(merged) {
			problems = append(problems, r.Message)
			for _, name := range r.Fields {
				if idx := s.fieldIndex(name); idx >= 0 {
					slots[idx] = nil
				}
			}
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}

	var directives []Directive
	for i, lines := range slots {
		for _, line := range lines {
			directives = append(directives, Directive{Line: line, Order: i})
		}
	}
	return directives, nil
}

// ruleApplies reports whether a cross-field rule is in force: every field
// it names must exist and be editable under the given version.
func (s *Schema) ruleApplies(r Rule, v semver.Version) bool {
	for _, name := range r.Fields {
		f := s.Field(name)
		if f == nil || !f.Editable(v) {
			return false
		}
	}
	return true
}

// WriteFunc writes lines to a text file and returns the path written.
// It matches workspace.WriteTextFile.
type WriteFunc func(path string, lines []string) (string, error)

// Generator binds a schema to the artifact writer and the installer
// version stamped into generated headers.
type Generator struct {
	Schema     *Schema
	AppVersion string
	Write      WriteFunc // defaults to workspace.WriteTextFile
}

// Render generates the complete artifact text: the header comment followed
// by every directive in schema order. On validation failure it returns a
// KindValidation error carrying all problems and renders nothing.
func (g *Generator) Render(vals Values, v semver.Version, productName string) ([]string, error) {
	directives, problems := g.Schema.Generate(vals, v)
	logging.LogGenerate(g.Schema.Name, v.Tag, len(directives), len(problems))
	if len(problems) > 0 {
		return nil, NewValidationError(problems)
	}

	lines := make([]string, 0, len(directives)+2)
	lines = append(lines, fmt.Sprintf("// config.h - Generated by EX-Installer v%s for %s %s",
		g.AppVersion, productName, v.String()))
	lines = append(lines, "")
	for _, d := range directives {
		lines = append(lines, d.Line)
	}
	return lines, nil
}

// WriteConfig renders the artifact and writes it to path. Validation
// problems are returned as a KindValidation error and nothing is written;
// a failed write is returned as a KindArtifactWrite error. The caller's
// value set is never modified, so a failed write loses no user input.
func (g *Generator) WriteConfig(path string, vals Values, v semver.Version, productName string) (string, error) {
	lines, err := g.Render(vals, v, productName)
	if err != nil {
		return "", err
	}

	write := g.Write
	if write == nil {
		write = workspace.WriteTextFile
	}
	written, err := write(path, lines)
	if err != nil {
		return "", NewArtifactWriteError(path, err)
	}
	return written, nil
}

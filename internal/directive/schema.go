package directive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/railkit/exinstall/internal/semver"
)

// Kind is the declared type of a configuration parameter.
type Kind int

const (
	// KindBool is an on/off toggle emitting alternate line sets.
	KindBool Kind = iota
	// KindChoice is one value from a fixed set.
	KindChoice
	// KindInt is a required bounded integer.
	KindInt
	// KindOptionalInt is an integer the user may leave unset; an unset value
	// emits the field's fixed fallback lines instead.
	KindOptionalInt
)

// Values holds the raw user-supplied value per parameter name. Values are
// kept as entered (strings) and coerced during validation, so a screen can
// hold invalid intermediate input without losing it.
type Values map[string]string

// MinVersion gates a field on a minimum firmware version. A field carrying
// one is only editable from that version on; below it (or when the version
// is unknown) the field's GatedLines are emitted and validation is skipped.
type MinVersion struct {
	Major, Minor, Patch int
}

// Field declares one configuration parameter: its type, bounds, error
// messages, version gate, and how it renders into config directives.
// Fields are emitted in schema order regardless of input order.
type Field struct {
	Name    string
	Kind    Kind
	Default string

	// KindInt / KindOptionalInt
	Min, Max     int
	Bounded      bool   // enforce Min/Max
	NumericError string // coercion failure message
	RangeError   string // out-of-bounds message

	// KindBool
	ToggleError string // coercion failure message

	// KindChoice
	Choices     []string
	ChoiceError string

	// Rendering. Format carries one %s for the validated value. Bool fields
	// use OnLines/OffLines instead; optional ints use UnsetLines when empty.
	Format     string
	OnLines    []string
	OffLines   []string
	UnsetLines []string

	// Version gating
	MinVersion *MinVersion
	GatedLines []string

	// EmitWhen, when set, restricts the field to configurations where the
	// predicate holds; otherwise the field is skipped entirely (no
	// validation, no lines).
	EmitWhen func(Values) bool
}

// Editable reports whether the field can be edited under the given firmware
// version. Ungated fields are always editable; gated fields require a known
// version at or above their threshold.
func (f *Field) Editable(v semver.Version) bool {
	if f.MinVersion == nil {
		return true
	}
	return v.AtLeast(f.MinVersion.Major, f.MinVersion.Minor, f.MinVersion.Patch)
}

// render validates the raw value and returns the directive lines for the
// field, or a problem message. Exactly one of the results is set.
func (f *Field) render(raw string) ([]string, string) {
	raw = strings.TrimSpace(raw)

	switch f.Kind {
	case KindBool:
		on, err := parseToggle(raw)
		if err != nil {
			return nil, f.ToggleError
		}
		if on {
			return f.OnLines, ""
		}
		return f.OffLines, ""

	case KindChoice:
		for _, c := range f.Choices {
			if raw == c {
				return []string{fmt.Sprintf(f.Format, raw)}, ""
			}
		}
		return nil, f.ChoiceError

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, f.NumericError
		}
		if f.Bounded && (n < f.Min || n > f.Max) {
			return nil, f.RangeError
		}
		return []string{fmt.Sprintf(f.Format, raw)}, ""

	case KindOptionalInt:
		if raw == "" {
			return f.UnsetLines, ""
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, f.NumericError
		}
		if f.Bounded && (n < f.Min || n > f.Max) {
			return nil, f.RangeError
		}
		return []string{fmt.Sprintf(f.Format, raw)}, ""

	default:
		return nil, fmt.Sprintf("%s has unsupported kind %d", f.Name, f.Kind)
	}
}

// parseToggle coerces a raw toggle value. The screens use "on"/"off"; the
// headless path also accepts standard boolean spellings.
func parseToggle(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on":
		return true, nil
	case "off", "":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// IsOn reports whether a raw toggle value reads as enabled. Unparseable
// values read as off; rule predicates never produce their own problems.
func IsOn(raw string) bool {
	on, err := parseToggle(strings.TrimSpace(raw))
	return err == nil && on
}

// Rule is a cross-field constraint evaluated after all single-field checks.
// A violated rule contributes one problem message and suppresses the
// directives of the named fields. Rules referencing a gated-off field do not
// fire, since gated fields always emit their fixed defaults.
type Rule struct {
	Fields   []string
	Violated func(Values) bool
	Message  string
}

// Schema is the ordered declaration of a configuration screen's parameters
// and cross-field rules. The field order defines the emission order of the
// generated artifact and is a compatibility surface for the firmware build.
type Schema struct {
	Name   string
	Fields []*Field
	Rules  []Rule
}

// DefaultValues returns a fresh value set populated with every field's
// default.
func (s *Schema) DefaultValues() Values {
	vals := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		vals[f.Name] = f.Default
	}
	return vals
}

// Field returns the declared field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// fieldIndex returns the position of a field in emission order, or -1.
func (s *Schema) fieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

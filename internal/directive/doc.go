// Package directive validates configuration parameters and emits firmware
// config directives.
//
// A configuration screen is declared as a Schema: an ordered list of typed
// Fields plus a small set of cross-field Rules. Each field knows how to
// coerce and bound-check its raw value and how to render into one or more
// #define (or commented-out #define) lines. Fields may carry a minimum
// firmware version; below it the field is not editable and its fixed
// default lines are emitted instead, with validation skipped entirely.
//
// Generate visits every field in schema order and collects every problem
// before returning, so the user sees all validation errors in a single
// pass. Its two outcomes are mutually exclusive: an ordered directive list,
// or an ordered problem list, never both.
//
// # Usage Example
//
//	gen := &directive.Generator{
//	    Schema:     turntable.NewSchema(steppers),
//	    AppVersion: version.Version,
//	}
//
//	path, err := gen.WriteConfig(configPath, values, semver.Parse(tag), "EX-Turntable")
//	if directive.IsValidationError(err) {
//	    pe := err.(*directive.PipelineError)
//	    fmt.Print(directive.FormatValidationErrors(pe.Problems))
//	}
//
// # Determinism
//
// Directive order is fixed by the schema declaration, never by input order,
// and the emitted text is byte-identical across runs for the same values
// and version. The consumer is an external compiler toolchain, so spelling
// and ordering are a compatibility surface.
//
// # Error Handling
//
// Validation errors (user input) and artifact write errors (environment)
// are distinct kinds of PipelineError and are never conflated; both are
// recovered at the pipeline boundary and shown to the user.
package directive

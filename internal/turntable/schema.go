// Package turntable declares the EX-Turntable configuration schema: every
// parameter of the firmware's config.h, its bounds, its version gate, and
// the exact directive text the firmware build expects.
package turntable

import (
	"path/filepath"
	"regexp"

	"github.com/railkit/exinstall/internal/directive"
	"github.com/railkit/exinstall/internal/workspace"
)

// ProductID is the catalog identifier for EX-Turntable.
const ProductID = "ex_turntable"

// stepperPattern matches stepper definitions in the firmware's
// standard_steppers.h.
var stepperPattern = regexp.MustCompile(`^#define\s+(\S+)\s+AccelStepper`)

// DefaultSteppers is the stepper list used when the firmware checkout is
// not available to scan.
var DefaultSteppers = []string{
	"ULN2003_HALF_CW",
	"ULN2003_HALF_CCW",
	"ULN2003_FULL_CW",
	"ULN2003_FULL_CCW",
	"A4988",
	"AF_A4988",
	"DRV8825",
	"TMC2208",
}

// ListSteppers reads the available stepper drivers from the checked-out
// firmware directory, falling back to DefaultSteppers when the source file
// cannot be read.
func ListSteppers(firmwareDir string) []string {
	names, err := workspace.ListDefines(filepath.Join(firmwareDir, "standard_steppers.h"), stepperPattern)
	if err != nil || len(names) == 0 {
		return DefaultSteppers
	}
	return names
}

// NewSchema builds the EX-Turntable schema with the given stepper driver
// choices. Field order is the emission order of config.h and must not be
// rearranged: the firmware build consumes the file positionally commented
// and documented in this order.
func NewSchema(steppers []string) *directive.Schema {
	return &directive.Schema{
		Name: ProductID,
		Fields: []*directive.Field{
			{
				Name:         "i2cAddress",
				Kind:         directive.KindInt,
				Default:      "60",
				Min:          8,
				Max:          77,
				Bounded:      true,
				NumericError: "I2C address must be between 0x8 and 0x77",
				RangeError:   "I2C address must be between 0x8 and 0x77",
				// The address is entered as hex digits without the 0x prefix.
				Format: "#define I2C_ADDRESS 0x%s",
			},
			{
				Name:        "mode",
				Kind:        directive.KindChoice,
				Default:     "TURNTABLE",
				Choices:     []string{"TURNTABLE", "TRAVERSER"},
				ChoiceError: "Operating mode must be TURNTABLE or TRAVERSER",
				Format:      "#define TURNTABLE_EX_MODE %s",
			},
			{
				Name:        "sensorTesting",
				Kind:        directive.KindBool,
				ToggleError: "Sensor testing must be on or off",
				Default:     "off",
				OnLines:     []string{"#define SENSOR_TESTING"},
				OffLines:    []string{"// #define SENSOR_TESTING"},
			},
			{
				Name:        "homeSensor",
				Kind:        directive.KindChoice,
				Default:     "LOW",
				Choices:     []string{"LOW", "HIGH"},
				ChoiceError: "Home sensor type must be LOW or HIGH",
				Format:      "#define HOME_SENSOR_ACTIVE_STATE %s",
			},
			{
				Name:        "limitSensor",
				Kind:        directive.KindChoice,
				Default:     "LOW",
				Choices:     []string{"LOW", "HIGH"},
				ChoiceError: "Limit sensor type must be LOW or HIGH",
				Format:      "#define LIMIT_SENSOR_ACTIVE_STATE %s",
			},
			{
				Name:        "relay",
				Kind:        directive.KindChoice,
				Default:     "HIGH",
				Choices:     []string{"LOW", "HIGH"},
				ChoiceError: "Relay type must be LOW or HIGH",
				Format:      "#define RELAY_ACTIVE_STATE %s",
			},
			{
				Name:        "phaseSwitching",
				Kind:        directive.KindChoice,
				Default:     "AUTO",
				Choices:     []string{"AUTO", "MANUAL"},
				ChoiceError: "Phase switching must be AUTO or MANUAL",
				Format:      "#define PHASE_SWITCHING %s",
			},
			{
				Name:         "phaseAngle",
				Kind:         directive.KindInt,
				Default:      "45",
				Min:          0,
				Max:          180,
				Bounded:      true,
				NumericError: "Phase switch angle must be between 0 and 180",
				RangeError:   "Phase switch angle must be between 0 and 180",
				Format:       "#define PHASE_SWITCH_ANGLE %s",
				// The angle only applies to automatic phase switching.
				EmitWhen: func(v directive.Values) bool { return v["phaseSwitching"] == "AUTO" },
			},
			{
				Name:        "stepperDriver",
				Kind:        directive.KindChoice,
				Default:     "",
				Choices:     steppers,
				ChoiceError: "You must select a stepper driver",
				Format:      "#define STEPPER_DRIVER %s",
			},
			{
				Name:        "disableIdle",
				Kind:        directive.KindBool,
				ToggleError: "Disable outputs when idle must be on or off",
				Default:     "on",
				OnLines:     []string{"#define DISABLE_OUTPUTS_IDLE"},
				// Off omits the directive entirely; the firmware default applies.
			},
			{
				Name:         "maxSpeed",
				Kind:         directive.KindInt,
				Default:      "200",
				Min:          10,
				Max:          20000,
				Bounded:      true,
				NumericError: "You must provide a numeric speed value",
				RangeError:   "Speed must be between 10 and 20000",
				Format:       "#define STEPPER_MAX_SPEED %s",
			},
			{
				Name:         "acceleration",
				Kind:         directive.KindInt,
				Default:      "25",
				Min:          1,
				Max:          1000,
				Bounded:      true,
				NumericError: "You must provide a numeric acceleration value",
				RangeError:   "Acceleration must be between 1 and 1000",
				Format:       "#define STEPPER_ACCELERATION %s",
			},
			{
				Name:         "gearingFactor",
				Kind:         directive.KindInt,
				Default:      "1",
				Min:          1,
				Max:          10,
				Bounded:      true,
				NumericError: "You must provide a numeric gearing factor",
				RangeError:   "Gearing factor must be between 1 and 10",
				Format:       "#define STEPPER_GEARING_FACTOR %s",
				MinVersion:   &directive.MinVersion{Major: 0, Minor: 6, Patch: 0},
				GatedLines:   []string{"#define STEPPER_GEARING_FACTOR 1"},
			},
			{
				Name:        "invertDirection",
				Kind:        directive.KindBool,
				ToggleError: "Invert direction must be on or off",
				Default:     "off",
				OnLines:     []string{"#define INVERT_DIRECTION"},
				OffLines:    []string{"// #define INVERT_DIRECTION"},
				MinVersion:  &directive.MinVersion{Major: 0, Minor: 7, Patch: 0},
				GatedLines:  []string{"// #define INVERT_DIRECTION"},
			},
			{
				Name:        "invertStep",
				Kind:        directive.KindBool,
				ToggleError: "Invert step must be on or off",
				Default:     "off",
				OnLines:     []string{"#define INVERT_STEP"},
				OffLines:    []string{"// #define INVERT_STEP"},
				MinVersion:  &directive.MinVersion{Major: 0, Minor: 7, Patch: 0},
				GatedLines:  []string{"// #define INVERT_STEP"},
			},
			{
				Name:        "invertEnable",
				Kind:        directive.KindBool,
				ToggleError: "Invert enable must be on or off",
				Default:     "off",
				OnLines:     []string{"#define INVERT_ENABLE"},
				OffLines:    []string{"// #define INVERT_ENABLE"},
				MinVersion:  &directive.MinVersion{Major: 0, Minor: 7, Patch: 0},
				GatedLines:  []string{"// #define INVERT_ENABLE"},
			},
			{
				Name:        "forwardOnly",
				Kind:        directive.KindBool,
				ToggleError: "Rotate forward only must be on or off",
				Default:     "off",
				OnLines:     []string{"#define ROTATE_FORWARD_ONLY"},
				OffLines:    []string{"// #define ROTATE_FORWARD_ONLY"},
				MinVersion:  &directive.MinVersion{Major: 0, Minor: 7, Patch: 0},
				GatedLines:  []string{"// #define ROTATE_FORWARD_ONLY"},
			},
			{
				Name:        "reverseOnly",
				Kind:        directive.KindBool,
				ToggleError: "Rotate reverse only must be on or off",
				Default:     "off",
				OnLines:     []string{"#define ROTATE_REVERSE_ONLY"},
				OffLines:    []string{"// #define ROTATE_REVERSE_ONLY"},
				MinVersion:  &directive.MinVersion{Major: 0, Minor: 7, Patch: 0},
				GatedLines:  []string{"// #define ROTATE_REVERSE_ONLY"},
			},
			{
				Name:         "ledFast",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Fast LED delay must be numeric",
				Format:       "#define LED_FAST %s",
				UnsetLines:   []string{"#define LED_FAST 100"},
			},
			{
				Name:         "ledSlow",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Slow LED delay must be numeric",
				Format:       "#define LED_SLOW %s",
				UnsetLines:   []string{"#define LED_SLOW 500"},
			},
			{
				Name:        "debug",
				Kind:        directive.KindBool,
				ToggleError: "Debug output must be on or off",
				Default:     "off",
				OnLines:     []string{"#define DEBUG"},
				OffLines:    []string{"// #define DEBUG"},
			},
			{
				Name:         "sanitySteps",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Sanity step count must be numeric",
				Format:       "#define SANITY_STEPS %s",
				UnsetLines:   []string{"// #define SANITY_STEPS 10000"},
			},
			{
				Name:         "homeSensitivity",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Home sensitivity step count must be numeric",
				Format:       "#define HOME_SENSITIVITY %s",
				UnsetLines:   []string{"// #define HOME_SENSITIVITY 300"},
			},
			{
				Name:         "fullStepCount",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Full step count must be numeric",
				Format:       "#define FULL_STEP_COUNT %s",
				UnsetLines:   []string{"// #define FULL_STEP_COUNT 4096"},
			},
			{
				Name:         "debounceDelay",
				Kind:         directive.KindOptionalInt,
				Default:      "",
				NumericError: "Debounce delay must be numeric",
				Format:       "#define DEBOUNCE_DELAY %s",
				UnsetLines:   []string{"// #define DEBOUNCE_DELAY 10"},
			},
		},
		Rules: []directive.Rule{
			{
				Fields: []string{"forwardOnly"},
				Violated: func(v directive.Values) bool {
					return v["mode"] == "TRAVERSER" && directive.IsOn(v["forwardOnly"])
				},
				Message: "Traverser mode is incompatible with forward only rotation",
			},
			{
				Fields: []string{"reverseOnly"},
				Violated: func(v directive.Values) bool {
					return v["mode"] == "TRAVERSER" && directive.IsOn(v["reverseOnly"])
				},
				Message: "Traverser mode is incompatible with reverse only rotation",
			},
			{
				Fields: []string{"forwardOnly", "reverseOnly"},
				Violated: func(v directive.Values) bool {
					return directive.IsOn(v["forwardOnly"]) && directive.IsOn(v["reverseOnly"])
				},
				Message: "Forward only and reverse only rotation cannot both be enabled",
			},
		},
	}
}

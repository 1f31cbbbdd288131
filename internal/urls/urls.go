package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://dcc-ex.com/

// GettingStarted is the quick start guide for new users installing
// DCC-EX firmware for the first time.
const GettingStarted = "https://dcc-ex.com/support/get-started.html"

// CommandStationDocs is the EX-CommandStation product documentation,
// covering hardware choices, assembly and configuration.
const CommandStationDocs = "https://dcc-ex.com/ex-commandstation/index.html"

// TurntableDocs is the EX-Turntable product documentation, covering
// hardware assembly, sensor wiring, and configuration reference.
const TurntableDocs = "https://dcc-ex.com/ex-turntable/index.html"

// ArduinoCLIInstall explains how to install arduino-cli, which the
// installer requires to compile and upload firmware.
const ArduinoCLIInstall = "https://arduino.github.io/arduino-cli/latest/installation/"

// TroubleshootingGuide provides solutions to common issues with drivers,
// serial ports and unsupported devices.
const TroubleshootingGuide = "https://dcc-ex.com/support/index.html"

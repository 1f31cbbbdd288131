package arduino

import (
	"testing"
)

func TestParseBoardList(t *testing.T) {
	data := []byte(`{
		"detected_ports": [
			{
				"port": {"address": "/dev/ttyACM0", "label": "/dev/ttyACM0"},
				"matching_boards": [
					{"name": "Arduino Mega or Mega 2560", "fqbn": "arduino:avr:mega"}
				]
			},
			{
				"port": {"address": "/dev/ttyS0", "label": "/dev/ttyS0"}
			},
			{
				"port": {"address": "/dev/ttyUSB0", "label": "/dev/ttyUSB0"},
				"matching_boards": [
					{"name": "Arduino Uno", "fqbn": "arduino:avr:uno"},
					{"name": "Arduino Uno Mini", "fqbn": "arduino:avr:unomini"}
				]
			}
		]
	}`)

	boards, err := parseBoardList(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boards) != 3 {
		t.Fatalf("expected 3 boards, got %d: %v", len(boards), boards)
	}
	if boards[0].FQBN != "arduino:avr:mega" || boards[0].Port != "/dev/ttyACM0" {
		t.Errorf("unexpected first board: %+v", boards[0])
	}
	if boards[2].Name != "Arduino Uno Mini" {
		t.Errorf("unexpected last board: %+v", boards[2])
	}
}

func TestParseBoardListEmpty(t *testing.T) {
	boards, err := parseBoardList([]byte(`{"detected_ports": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boards) != 0 {
		t.Errorf("expected no boards, got %v", boards)
	}
}

func TestParseBoardListMalformed(t *testing.T) {
	if _, err := parseBoardList([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed input")
	}
}

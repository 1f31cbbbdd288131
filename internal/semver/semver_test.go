package semver

import (
	"testing"
)

// TestParse tests release tag parsing
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		known   bool
		major   int
		minor   int
		patch   int
		channel Channel
	}{
		{"Valid: production tag", "v4.2.1-Prod", true, 4, 2, 1, ChannelProd},
		{"Valid: development tag", "v0.6.1-Devel", true, 0, 6, 1, ChannelDevel},
		{"Valid: lowercase channel", "v1.0.0-prod", true, 1, 0, 0, ChannelProd},
		{"Valid: mixed case channel", "v1.0.0-DEVEL", true, 1, 0, 0, ChannelDevel},
		{"Valid: unrecognised channel keeps numbers", "v2.3.4-Beta", true, 2, 3, 4, ChannelUnknown},
		{"Valid: multi-digit components", "v10.20.30-Prod", true, 10, 20, 30, ChannelProd},
		{"Invalid: missing leading v", "4.2.1-Prod", false, 0, 0, 0, ChannelUnknown},
		{"Invalid: missing channel", "v4.2.1", false, 0, 0, 0, ChannelUnknown},
		{"Invalid: two-part triplet", "v4.2-Prod", false, 0, 0, 0, ChannelUnknown},
		{"Invalid: non-numeric component", "vX.2.1-Prod", false, 0, 0, 0, ChannelUnknown},
		{"Invalid: empty string", "", false, 0, 0, 0, ChannelUnknown},
		{"Invalid: arbitrary text", "latest", false, 0, 0, 0, ChannelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.tag)
			if v.Tag != tt.tag {
				t.Errorf("Parse(%q).Tag = %q, want original tag preserved", tt.tag, v.Tag)
			}
			if v.Known() != tt.known {
				t.Fatalf("Parse(%q).Known() = %v, want %v", tt.tag, v.Known(), tt.known)
			}
			if !tt.known {
				if v.Channel != ChannelUnknown {
					t.Errorf("Parse(%q).Channel = %v, want ChannelUnknown", tt.tag, v.Channel)
				}
				return
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
					tt.tag, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
			if v.Channel != tt.channel {
				t.Errorf("Parse(%q).Channel = %v, want %v", tt.tag, v.Channel, tt.channel)
			}
		})
	}
}

// TestParseIsTotal verifies that parsing never panics and always yields the
// unknown sentinel for garbage input
func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"", "v", "v.", "v..-", "v1.2.3-", "v-1.2.3-Prod", "vv1.2.3-Prod",
		"v1.2.3.4-Prod", "\x00\xff", "v999999999999999999999.0.0-Prod",
	}
	for _, s := range inputs {
		v := Parse(s)
		if v.Known() {
			// The overlong major is the one case the pattern admits but
			// strconv rejects; nothing here should parse as known.
			t.Errorf("Parse(%q) unexpectedly known: %+v", s, v)
		}
		if v.Tag != s {
			t.Errorf("Parse(%q) did not preserve raw tag", s)
		}
	}
}

// TestCompare tests numeric triplet ordering
func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"Equal versions", "v1.2.3-Prod", "v1.2.3-Devel", 0},
		{"Major ordering", "v2.0.0-Prod", "v1.9.9-Prod", 1},
		{"Minor ordering is numeric", "v0.10.0-Prod", "v0.9.9-Prod", 1},
		{"Patch ordering", "v0.6.0-Prod", "v0.6.1-Prod", -1},
		{"Unknown below known", "garbage", "v0.0.1-Prod", -1},
		{"Known above unknown", "v0.0.1-Prod", "garbage", 1},
		{"Unknown equals unknown", "garbage", "other", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.a).Compare(Parse(tt.b))
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestAtLeast tests the feature gating predicate
func TestAtLeast(t *testing.T) {
	tests := []struct {
		name                string
		tag                 string
		major, minor, patch int
		want                bool
	}{
		{"Exactly at threshold", "v0.6.0-Prod", 0, 6, 0, true},
		{"Above threshold", "v0.6.1-Prod", 0, 6, 0, true},
		{"Below threshold", "v0.5.9-Prod", 0, 6, 0, false},
		{"Minor compares numerically", "v0.10.0-Prod", 0, 7, 0, true},
		{"Unknown version never qualifies", "not-a-tag", 0, 0, 0, false},
		{"Empty tag never qualifies", "", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.tag).AtLeast(tt.major, tt.minor, tt.patch)
			if got != tt.want {
				t.Errorf("Parse(%q).AtLeast(%d,%d,%d) = %v, want %v",
					tt.tag, tt.major, tt.minor, tt.patch, got, tt.want)
			}
		})
	}
}

// TestString tests display rendering
func TestString(t *testing.T) {
	if got := Parse("v1.2.3-Prod").String(); got != "v1.2.3-Prod" {
		t.Errorf("String() = %q, want %q", got, "v1.2.3-Prod")
	}
	if got := Parse("some-branch").String(); got != "some-branch" {
		t.Errorf("String() = %q, want raw tag for unknown version", got)
	}
	if got := Unknown("").String(); got != "unknown" {
		t.Errorf("String() = %q, want %q for empty sentinel", got, "unknown")
	}
}

// Package semver parses firmware release tags into version descriptors.
//
// Product firmware is tagged in the form v<major>.<minor>.<patch>-<channel>,
// for example "v0.6.1-Prod". Configuration screens use the parsed numbers to
// decide which options a given firmware release supports, so parsing must be
// total: any string yields a descriptor, and a tag that cannot be understood
// yields the unknown sentinel rather than an error. Callers branch on the
// Known method, never on a returned error.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Channel identifies the release track a tag was cut from. It plays no part
// in version ordering.
type Channel int

const (
	ChannelUnknown Channel = iota
	ChannelProd
	ChannelDevel
)

// String returns the channel name as it appears in release tags.
func (c Channel) String() string {
	switch c {
	case ChannelProd:
		return "Prod"
	case ChannelDevel:
		return "Devel"
	default:
		return "Unknown"
	}
}

// Version is a parsed release tag. When Known is false the numeric fields
// carry no meaning and the descriptor is the unknown sentinel: only Tag is
// populated and Channel is ChannelUnknown. The numeric fields are never
// partially populated.
type Version struct {
	Tag     string
	Major   int
	Minor   int
	Patch   int
	Channel Channel

	known bool
}

// Known reports whether the numeric triplet was parsed from the tag.
func (v Version) Known() bool {
	return v.known
}

// tagPattern matches the GitHub release tag format vX.Y.Z-Channel.
// The channel token is matched loosely; unrecognised channels still parse
// numerically and map to ChannelUnknown.
var tagPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)-(\S+)$`)

// Parse parses a release tag. It never fails: a malformed tag returns the
// unknown sentinel with the original tag text preserved.
func Parse(tag string) Version {
	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		return Version{Tag: tag, Channel: ChannelUnknown}
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{Tag: tag, Channel: ChannelUnknown}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{Tag: tag, Channel: ChannelUnknown}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{Tag: tag, Channel: ChannelUnknown}
	}

	var channel Channel
	switch strings.ToLower(m[4]) {
	case "prod":
		channel = ChannelProd
	case "devel":
		channel = ChannelDevel
	default:
		channel = ChannelUnknown
	}

	return Version{
		Tag:     tag,
		Major:   major,
		Minor:   minor,
		Patch:   patch,
		Channel: channel,
		known:   true,
	}
}

// Unknown returns the sentinel descriptor for a tag that carries no usable
// version information (including the empty tag, when no version has been
// selected yet).
func Unknown(tag string) Version {
	return Version{Tag: tag, Channel: ChannelUnknown}
}

// Compare orders two versions by their numeric triplet: -1 if v < o, 0 if
// equal, 1 if v > o. Comparison is integer-wise, so v0.10.0 sorts above
// v0.9.9. An unknown version sorts below every known version; two unknown
// versions compare equal.
func (v Version) Compare(o Version) int {
	if !v.known || !o.known {
		switch {
		case v.known == o.known:
			return 0
		case o.known:
			return -1
		default:
			return 1
		}
	}
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpInt(v.Patch, o.Patch)
}

// AtLeast reports whether the version is known and not below the given
// numeric triplet. Unknown versions always report false, so features gated
// on a minimum version stay disabled when no version information is
// available.
func (v Version) AtLeast(major, minor, patch int) bool {
	if !v.known {
		return false
	}
	return v.Compare(Version{Major: major, Minor: minor, Patch: patch, known: true}) >= 0
}

// String renders the descriptor for display. Known versions render the
// numeric form; unknown versions render the raw tag, or "unknown" when the
// tag is empty.
func (v Version) String() string {
	if !v.known {
		if v.Tag == "" {
			return "unknown"
		}
		return v.Tag
	}
	return fmt.Sprintf("v%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Channel)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

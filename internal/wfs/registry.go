// Package wfs implements a client for OGC Web Feature Service servers. It
// negotiates the protocol version with the server and normalizes the
// per-version capabilities documents into one plain representation.
package wfs

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/delta10/wfs-client/internal/mapper"
)

// capabilitiesRoot is the local name of the capabilities root element in
// every WFS version this client speaks.
const capabilitiesRoot = "WFS_Capabilities"

// bundles holds one schema bundle per supported protocol version. Adding a
// version means adding one bundle here; the negotiator and mapper stay
// untouched.
var bundles = map[string]*mapper.Bundle{
	"1.0.0": wfs100,
	"1.1.0": wfs110,
	"2.0.0": wfs200,
}

// Bundle returns the schema bundle for a protocol version.
func Bundle(version string) (*mapper.Bundle, bool) {
	bundle, ok := bundles[version]
	return bundle, ok
}

// SupportedVersions lists the protocol versions this client speaks, sorted
// ascending by semantic-version order.
func SupportedVersions() []string {
	parsed := make([]*semver.Version, 0, len(bundles))
	for raw := range bundles {
		parsed = append(parsed, semver.MustParse(raw))
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].LessThan(parsed[j]) })

	versions := make([]string, 0, len(parsed))
	for _, version := range parsed {
		versions = append(versions, version.String())
	}

	return versions
}

// Formats returns the known result-format codes and their labels for a
// protocol version. Informational only; nothing in the mapping consumes it.
func Formats(version string) map[string]string {
	bundle, ok := bundles[version]
	if !ok {
		return nil
	}

	return bundle.Formats
}

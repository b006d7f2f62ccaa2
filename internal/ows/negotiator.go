// Package ows implements the OWS version negotiation used by OGC web
// services: probe the server with a candidate version and follow its
// response until client and server agree, or disagreement is proven.
package ows

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/antchfx/xmlquery"
)

// Issuer performs one capabilities round trip for a candidate version and
// returns the parsed response document. Transport and parse errors must be
// returned as errors; protocol-level disagreement is visible in the
// document itself and is the negotiator's business.
type Issuer interface {
	IssueCapabilitiesRequest(ctx context.Context, version string) (*xmlquery.Node, error)
}

// FailureKind classifies why a negotiation could not converge.
type FailureKind int

const (
	// FailureUnreadableVersion means the capabilities root carried a
	// missing or malformed version attribute.
	FailureUnreadableVersion FailureKind = iota
	// FailureNoOverlap means the server reported a version above the
	// candidate, so no mutually acceptable version exists.
	FailureNoOverlap
	// FailureNoSmallerCandidate means no supported version exists below
	// the version the server reported.
	FailureNoSmallerCandidate
	// FailureRecoveryExhausted means every candidate was answered with
	// something that is not a capabilities document.
	FailureRecoveryExhausted
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnreadableVersion:
		return "unreadable version"
	case FailureNoOverlap:
		return "no version overlap"
	case FailureNoSmallerCandidate:
		return "no smaller candidate"
	case FailureRecoveryExhausted:
		return "recovery exhausted"
	default:
		return "unknown failure"
	}
}

// NegotiationError is returned when the server and client cannot agree on
// a protocol version. Candidate is the version asserted in the last probe;
// Detected carries the server-reported version where one was read.
type NegotiationError struct {
	Kind      FailureKind
	Candidate string
	Detected  string
}

func (e *NegotiationError) Error() string {
	if e.Detected != "" {
		return fmt.Sprintf("version negotiation failed (%s): candidate %s, server reported %s", e.Kind, e.Candidate, e.Detected)
	}

	return fmt.Sprintf("version negotiation failed (%s): candidate %s", e.Kind, e.Candidate)
}

// Negotiator drives the capability-request cycle across candidate versions.
// The supported set is validated and ordered at construction and immutable
// afterwards.
type Negotiator struct {
	issuer    Issuer
	rootName  string
	supported []*semver.Version
}

// NewNegotiator validates the supported versions, sorts them ascending and
// returns a negotiator expecting capabilities documents rooted at the
// element rootName.
func NewNegotiator(issuer Issuer, rootName string, supported []string) (*Negotiator, error) {
	if len(supported) == 0 {
		return nil, errors.New("no supported versions configured")
	}

	parsed := make([]*semver.Version, 0, len(supported))
	for _, raw := range supported {
		version, err := semver.StrictNewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid supported version %q: %w", raw, err)
		}

		parsed = append(parsed, version)
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].LessThan(parsed[j]) })

	return &Negotiator{
		issuer:    issuer,
		rootName:  rootName,
		supported: parsed,
	}, nil
}

// Latest returns the largest supported version, the default starting
// candidate.
func (n *Negotiator) Latest() string {
	return n.supported[len(n.supported)-1].String()
}

// Negotiate probes the server starting at the given candidate and walks
// down the supported set until both sides agree. On success it returns the
// agreed version together with the document from the final probe, so the
// caller can map it without another round trip. The candidate strictly
// decreases on every iteration, bounding the number of round trips by the
// size of the supported set. Errors from the issuer are returned verbatim.
func (n *Negotiator) Negotiate(ctx context.Context, startingCandidate string) (string, *xmlquery.Node, error) {
	candidate, err := semver.StrictNewVersion(startingCandidate)
	if err != nil {
		return "", nil, fmt.Errorf("invalid starting candidate %q: %w", startingCandidate, err)
	}

	for {
		document, err := n.issuer.IssueCapabilitiesRequest(ctx, candidate.String())
		if err != nil {
			return "", nil, err
		}

		root := RootElement(document)
		if root == nil || root.Data != n.rootName {
			// Not a capabilities document at all: retry with the next
			// supported version below the current candidate.
			fallback, ok := n.largestBelow(candidate)
			if !ok {
				return "", nil, &NegotiationError{Kind: FailureRecoveryExhausted, Candidate: candidate.String()}
			}

			candidate = fallback
			continue
		}

		detected, err := semver.StrictNewVersion(root.SelectAttr("version"))
		if err != nil {
			return "", nil, &NegotiationError{Kind: FailureUnreadableVersion, Candidate: candidate.String()}
		}

		switch {
		case detected.Equal(candidate):
			return detected.String(), document, nil

		case detected.GreaterThan(candidate):
			// The server's lowest version exceeds what we asked for.
			return "", nil, &NegotiationError{
				Kind:      FailureNoOverlap,
				Candidate: candidate.String(),
				Detected:  detected.String(),
			}

		default:
			if n.isSupported(detected) {
				// The server already proved it accepts this version;
				// no confirmation probe needed.
				return detected.String(), document, nil
			}

			next, ok := n.largestBelow(detected)
			if !ok {
				return "", nil, &NegotiationError{
					Kind:      FailureNoSmallerCandidate,
					Candidate: candidate.String(),
					Detected:  detected.String(),
				}
			}

			candidate = next
		}
	}
}

func (n *Negotiator) isSupported(version *semver.Version) bool {
	for _, supported := range n.supported {
		if supported.Equal(version) {
			return true
		}
	}

	return false
}

// largestBelow returns the largest supported version strictly smaller than
// the given one.
func (n *Negotiator) largestBelow(version *semver.Version) (*semver.Version, bool) {
	var found *semver.Version
	for _, supported := range n.supported {
		if supported.LessThan(version) {
			found = supported
		}
	}

	return found, found != nil
}

// RootElement returns the root element of a parsed document, or nil if the
// document has none.
func RootElement(document *xmlquery.Node) *xmlquery.Node {
	if document == nil {
		return nil
	}

	if document.Type == xmlquery.ElementNode {
		return document
	}

	for child := document.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}

	return nil
}

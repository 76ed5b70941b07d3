// Package lpa parses LPA activation codes, the strings carried by eSIM
// QR codes: LPA:1$<SMDP_ADDRESS>$<MATCHING_ID>[$<OID>...].
package lpa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/idna"
)

const scheme = "LPA:"

var (
	ErrBadScheme   = errors.New("lpa: activation code must start with LPA:")
	ErrBadVersion  = errors.New("lpa: unsupported activation code version")
	ErrMissingPart = errors.New("lpa: activation code needs an SM-DP+ address and a matching ID")
)

// ActivationCode is a parsed LPA string. SMDPAddress is the punycode
// (ASCII) form of the SM-DP+ server host.
type ActivationCode struct {
	SMDPAddress string
	MatchingID  string
	OID         string
}

// Parse splits and validates an activation code. The scheme is matched
// case-insensitively and surrounding whitespace is ignored, which covers the
// usual copy-paste and QR-scan artifacts. Only version 1 codes exist today.
func Parse(raw string) (ActivationCode, error) {
	s := strings.TrimSpace(raw)
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return ActivationCode{}, ErrBadScheme
	}

	parts := strings.Split(s[len(scheme):], "$")
	if parts[0] != "1" {
		return ActivationCode{}, fmt.Errorf("%w: %q", ErrBadVersion, parts[0])
	}
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return ActivationCode{}, ErrMissingPart
	}

	host, err := idna.Lookup.ToASCII(strings.ToLower(parts[1]))
	if err != nil {
		return ActivationCode{}, fmt.Errorf("lpa: bad SM-DP+ address %q: %w", parts[1], err)
	}

	code := ActivationCode{
		SMDPAddress: host,
		MatchingID:  parts[2],
	}
	if len(parts) > 3 {
		code.OID = parts[3]
	}
	return code, nil
}

// Validate runs the extra sanity checks that are too strict for Parse: the
// SM-DP+ address must sit under a known public suffix, which weeds out
// single-label and garbage hosts before anything is handed to the OS.
func (c ActivationCode) Validate() error {
	if _, err := publicsuffix.Domain(c.SMDPAddress); err != nil {
		return fmt.Errorf("lpa: SM-DP+ address %q is not a registrable host: %w", c.SMDPAddress, err)
	}
	return nil
}

// String reassembles the canonical code.
func (c ActivationCode) String() string {
	s := scheme + "1$" + c.SMDPAddress + "$" + c.MatchingID
	if c.OID != "" {
		s += "$" + c.OID
	}
	return s
}

// Redact returns a loggable form of raw with the matching ID (and anything
// after it) replaced, keeping only the SM-DP+ host. Matching IDs are
// one-time secrets and must never reach logs or the audit store.
func Redact(raw string) string {
	code, err := Parse(raw)
	if err != nil {
		return "<invalid activation code>"
	}
	return scheme + "1$" + code.SMDPAddress + "$..."
}

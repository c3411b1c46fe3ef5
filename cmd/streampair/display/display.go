// Package display formats hosts and pairing events for the streampair CLI.
package display

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/streampair/streampair-go/pkg/cert"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/pairing"
)

const hostRowFmt = "%-20s %-20s %-24s %-12s %-10s %s\n"

// HostTable writes one row per host.
func HostTable(w io.Writer, hosts []*host.Host) {
	if len(hosts) == 0 {
		fmt.Fprintln(w, "No hosts known.")
		return
	}
	fmt.Fprintf(w, hostRowFmt, "ID", "NAME", "ADDRESS", "SERVER", "PAIRED", "LAST SEEN")
	for _, h := range hosts {
		fmt.Fprintf(w, hostRowFmt,
			h.ID, orDash(h.Name), orDash(h.Address), h.ServerType, pairedLabel(h), timeLabel(h.LastSeen))
	}
}

// HostDetails writes everything known about a single host.
func HostDetails(w io.Writer, h *host.Host) {
	fmt.Fprintf(w, "ID:          %s\n", h.ID)
	fmt.Fprintf(w, "Name:        %s\n", orDash(h.Name))
	fmt.Fprintf(w, "Address:     %s\n", orDash(h.Address))
	fmt.Fprintf(w, "Server:      %s\n", h.ServerType)
	fmt.Fprintf(w, "OTP:         %t\n", h.SupportsOTP())
	fmt.Fprintf(w, "Pair state:  %s\n", h.PairState)
	if h.IsPaired() {
		fmt.Fprintf(w, "Paired at:   %s\n", timeLabel(h.PairedAt))
	}
	if len(h.ServerCert) > 0 {
		fmt.Fprintf(w, "Certificate: %s\n", CertificateSummary(h.ServerCert))
	}
	fmt.Fprintf(w, "Last seen:   %s\n", timeLabel(h.LastSeen))
}

// PairingEvent writes one line for a pairing event.
func PairingEvent(w io.Writer, ev pairing.Event) {
	line := fmt.Sprintf("[attempt:%s] %-9s", shortID(ev.AttemptID), ev.Type)
	if ev.Message != "" {
		line += " " + ev.Message
	}
	fmt.Fprintln(w, line)

	if ev.Identity != nil {
		fmt.Fprintf(w, "  Host:        %s\n", ev.Identity.HostID)
		fmt.Fprintf(w, "  Certificate: %s\n", CertificateSummary(ev.Identity.ServerCertificate))
	}
}

// CertificateSummary describes certificate bytes by subject and SHA-256
// fingerprint, or by size when they do not parse.
func CertificateSummary(data []byte) string {
	c, err := cert.ParseCertificate(data)
	if err != nil {
		return fmt.Sprintf("%d bytes (unparsed)", len(data))
	}
	return fmt.Sprintf("%s (SHA-256 %s)", c.Subject.CommonName, Fingerprint(c.Raw))
}

// Fingerprint returns the colon-separated SHA-256 of der.
func Fingerprint(der []byte) string {
	sum := sha256.Sum256(der)
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(parts, ":")
}

func pairedLabel(h *host.Host) string {
	if h.IsPaired() {
		return "yes"
	}
	return "no"
}

func timeLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shortID returns the first 8 characters of an attempt ID.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

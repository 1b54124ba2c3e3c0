package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// Device describes the browser the session belongs to, derived from the
// User-Agent header. It is attached to session log lines and the stable
// fingerprint lets operators correlate refresh activity per device without
// storing the raw header.
type Device struct {
	Browser  string
	OS       string
	Platform string
}

// ParseDevice extracts coarse device metadata from a User-Agent string.
func ParseDevice(userAgentString string) Device {
	if userAgentString == "" {
		return Device{Browser: "unknown", OS: "unknown", Platform: "desktop"}
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}

	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	return Device{Browser: browser, OS: os, Platform: platform}
}

// Fingerprint hashes the coarse metadata into a stable identifier.
// The raw User-Agent never leaves the process.
func (d Device) Fingerprint() string {
	data := fmt.Sprintf("%s|%s|%s", d.Browser, d.OS, d.Platform)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (d Device) String() string {
	return fmt.Sprintf("%s on %s (%s)", d.Browser, d.OS, d.Platform)
}

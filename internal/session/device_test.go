package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestParseDevice(t *testing.T) {
	d := ParseDevice(chromeUA)
	assert.Equal(t, "chrome", d.Browser)
	assert.Equal(t, "desktop", d.Platform)
	assert.NotEqual(t, "unknown", d.OS)
}

func TestParseDeviceEmpty(t *testing.T) {
	d := ParseDevice("")
	assert.Equal(t, "unknown", d.Browser)
	assert.Equal(t, "unknown", d.OS)
}

func TestFingerprintStable(t *testing.T) {
	a := ParseDevice(chromeUA).Fingerprint()
	b := ParseDevice(chromeUA).Fingerprint()
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, ParseDevice("").Fingerprint())
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressResolver_Priority(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		strict     string
		lax        string
	}{
		{
			name: "client ip header wins over everything",
			headers: map[string]string{
				"Client-IP":       "198.51.100.1",
				"X-Forwarded-For": "203.0.113.7",
				"Forwarded-For":   "192.0.2.3",
				"Forwarded":       "for=192.0.2.4",
			},
			remoteAddr: "10.0.0.1:5000",
			strict:     "198.51.100.1",
			lax:        "198.51.100.1",
		},
		{
			name:       "x-forwarded-for when no client ip",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7", "Forwarded": "for=192.0.2.4"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "203.0.113.7",
			lax:        "203.0.113.7",
		},
		{
			name:       "surrounding space is trimmed",
			headers:    map[string]string{"X-Forwarded-For": "  203.0.113.7 "},
			remoteAddr: "10.0.0.1:5000",
			strict:     "203.0.113.7",
			lax:        "203.0.113.7",
		},
		{
			name:       "x-forwarded-for list is taken whole",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "10.0.0.1",
			lax:        "203.0.113.7, 10.0.0.2",
		},
		{
			name:       "forwarded-for list falls through to forwarded",
			headers:    map[string]string{"Forwarded-For": "192.0.2.3, 192.0.2.5", "Forwarded": "192.0.2.4"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "192.0.2.4",
			lax:        "192.0.2.3, 192.0.2.5",
		},
		{
			name:       "forwarded-for before forwarded",
			headers:    map[string]string{"Forwarded-For": "192.0.2.3", "Forwarded": "192.0.2.4"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "192.0.2.3",
			lax:        "192.0.2.3",
		},
		{
			name:       "forwarded parameters are taken whole",
			headers:    map[string]string{"Forwarded": "for=198.51.100.9;proto=https"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "10.0.0.1",
			lax:        "for=198.51.100.9;proto=https",
		},
		{
			name:       "forwarded bare address",
			headers:    map[string]string{"Forwarded": "2001:db8:cafe::17"},
			remoteAddr: "10.0.0.1:5000",
			strict:     "2001:db8:cafe::17",
			lax:        "2001:db8:cafe::17",
		},
		{
			name:       "remote address when no headers",
			remoteAddr: "10.0.0.1:5000",
			strict:     "10.0.0.1",
			lax:        "10.0.0.1",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[2001:db8::1]:443",
			strict:     "2001:db8::1",
			lax:        "2001:db8::1",
		},
		{
			name:   "nothing available",
			strict: "UNKNOWN",
			lax:    "UNKNOWN",
		},
	}

	strict := NewAddressResolver(true)
	lax := NewAddressResolver(false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			assert.Equal(t, tt.strict, strict.ResolveFrom(header, tt.remoteAddr), "strict")
			assert.Equal(t, tt.lax, lax.ResolveFrom(header, tt.remoteAddr), "lax")
		})
	}
}

func TestAddressResolver_StrictSkipsInvalid(t *testing.T) {
	resolver := NewAddressResolver(true)

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "garbage client ip falls through to x-forwarded-for",
			headers:    map[string]string{"Client-IP": "not-an-ip", "X-Forwarded-For": "203.0.113.7"},
			remoteAddr: "10.0.0.1:5000",
			expected:   "203.0.113.7",
		},
		{
			name:       "all headers invalid falls back to remote address",
			headers:    map[string]string{"Client-IP": "x", "X-Forwarded-For": "unknown", "Forwarded": "for=_hidden"},
			remoteAddr: "10.0.0.1:5000",
			expected:   "10.0.0.1",
		},
		{
			name:       "injection attempt is skipped",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4'; DROP TABLE criminal_ips; --"},
			remoteAddr: "10.0.0.1:5000",
			expected:   "10.0.0.1",
		},
		{
			name:       "zoned address is rejected",
			headers:    map[string]string{"Client-IP": "fe80::1%eth0"},
			remoteAddr: "10.0.0.1:5000",
			expected:   "10.0.0.1",
		},
		{
			name:     "everything invalid yields sentinel",
			headers:  map[string]string{"X-Forwarded-For": "bogus"},
			expected: "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			assert.Equal(t, tt.expected, resolver.ResolveFrom(header, tt.remoteAddr))
		})
	}
}

func TestAddressResolver_LaxAcceptsAnything(t *testing.T) {
	resolver := NewAddressResolver(false)

	header := http.Header{}
	header.Set("Client-IP", "not-an-ip")
	header.Set("X-Forwarded-For", "203.0.113.7")

	assert.Equal(t, "not-an-ip", resolver.ResolveFrom(header, "10.0.0.1:5000"))

	header = http.Header{}
	header.Set("Forwarded", " proto=https ")
	assert.Equal(t, "proto=https", resolver.ResolveFrom(header, ""))

	header = http.Header{}
	header.Set("Client-IP", "   ")
	header.Set("X-Forwarded-For", "unknown")
	assert.Equal(t, "unknown", resolver.ResolveFrom(header, "10.0.0.1:5000"), "blank values are absent")
}

func TestAddressResolver_Resolve(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	assert.Equal(t, "203.0.113.7", NewAddressResolver(true).Resolve(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	// httptest assigns 192.0.2.1:1234
	assert.Equal(t, "192.0.2.1", NewAddressResolver(true).Resolve(req))
}

func TestIsIPLiteral(t *testing.T) {
	assert.True(t, IsIPLiteral("203.0.113.7"))
	assert.True(t, IsIPLiteral("2001:db8::1"))
	assert.True(t, IsIPLiteral("::ffff:192.0.2.1"))
	assert.False(t, IsIPLiteral(""))
	assert.False(t, IsIPLiteral("UNKNOWN"))
	assert.False(t, IsIPLiteral("203.0.113.7:80"))
	assert.False(t, IsIPLiteral("fe80::1%eth0"))
}

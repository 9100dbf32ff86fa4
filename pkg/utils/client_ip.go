package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"seized-page/internal/domain"
)

// addressHeaders lists the request headers consulted for the client address,
// highest priority first. The transport remote address is tried after them.
var addressHeaders = []string{
	"Client-IP",
	"X-Forwarded-For",
	"Forwarded-For",
	"Forwarded",
}

// AddressResolver picks the client address out of a request.
// Each header value is taken whole, trimmed of surrounding space: a comma list
// or an RFC 7239 parameter string is never split. With Validate set, a value
// that is not a single IP literal is skipped and the next source is consulted;
// without it the first present value wins as-is.
// Neither mode is a security boundary: every header source is client controlled.
type AddressResolver struct {
	Validate bool
}

// NewAddressResolver creates a resolver in strict (validate) or lax mode
func NewAddressResolver(validate bool) *AddressResolver {
	return &AddressResolver{Validate: validate}
}

// Resolve returns the client address of r, or domain.UnknownAddress
func (a *AddressResolver) Resolve(r *http.Request) string {
	return a.ResolveFrom(r.Header, r.RemoteAddr)
}

// ResolveFrom returns the first acceptable address from header and remoteAddr
func (a *AddressResolver) ResolveFrom(header http.Header, remoteAddr string) string {
	for _, name := range addressHeaders {
		if candidate := strings.TrimSpace(header.Get(name)); a.accept(candidate) {
			return candidate
		}
	}

	if candidate := remoteHost(remoteAddr); a.accept(candidate) {
		return candidate
	}

	return domain.UnknownAddress
}

func (a *AddressResolver) accept(candidate string) bool {
	if candidate == "" {
		return false
	}
	if !a.Validate {
		return true
	}
	return IsIPLiteral(candidate)
}

// IsIPLiteral reports whether s is a plain IPv4 or IPv6 address (no zone, no port)
func IsIPLiteral(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Zone() == ""
}

// remoteHost strips the port from a transport address such as "10.0.0.1:52100"
func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return host
}

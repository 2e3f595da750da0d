package utils

import (
	"net"
	"strings"
)

const (
	ipv4MaskToken = "XXX"
	ipv6MaskToken = "XXXX"

	// UnknownIP is stored when the client address could not be parsed.
	// The raw input is never stored.
	UnknownIP = "UNKNOWN"
)

// PseudonymizeIP masks the least-significant portion of an IP address before
// it is persisted: the last IPv4 octet or the last IPv6 hextet is replaced
// with a fixed token. Anything that is not a parseable address collapses to
// the UNKNOWN sentinel.
func PseudonymizeIP(raw string) string {
	ip := strings.TrimSpace(raw)

	// Reverse proxies often hand over IPv4 clients as IPv6-mapped addresses.
	ip = strings.TrimPrefix(ip, "::ffff:")

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return UnknownIP
	}

	if parsed.To4() != nil {
		parts := strings.Split(ip, ".")
		if len(parts) != 4 {
			return UnknownIP
		}
		return strings.Join(parts[:3], ".") + "." + ipv4MaskToken
	}

	idx := strings.LastIndex(ip, ":")
	if idx < 0 {
		return UnknownIP
	}
	return ip[:idx+1] + ipv6MaskToken
}

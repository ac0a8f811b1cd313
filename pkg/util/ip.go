package util

import (
	"net"
	"regexp"
	"strings"
)

// IsValidIP checks if a string is a syntactically valid IPv4 or IPv6 literal
func IsValidIP(ipStr string) bool {
	return net.ParseIP(strings.TrimSpace(ipStr)) != nil
}

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

// IPInCIDR checks if an IP literal lies inside a CIDR range.
// Returns false when either side fails to parse.
func IPInCIDR(ipStr, cidr string) bool {
	ip := net.ParseIP(strings.TrimSpace(ipStr))
	if ip == nil {
		return false
	}
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}
	return ipNet.Contains(ip)
}

// IsValidCIDR checks if a string is a valid CIDR notation
func IsValidCIDR(cidr string) bool {
	_, _, err := net.ParseCIDR(cidr)
	return err == nil
}

// macPattern matches six colon-separated hex octets, e.g. "52:54:00:12:34:56".
var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)

// IsValidMAC checks if a string is a six-octet colon-hex MAC address
func IsValidMAC(mac string) bool {
	return macPattern.MatchString(mac)
}

// SplitIPMask splits a CIDR notation into IP and mask length.
// Returns the input unchanged with mask 0 if there is no mask.
func SplitIPMask(cidr string) (string, int) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return cidr, 0
	}
	ones, _ := ipNet.Mask.Size()
	return ip.String(), ones
}

package validation

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// TagNamePattern defines the valid tag name format: lowercase alphanumeric
// words separated by single spaces or hyphens.
var TagNamePattern = regexp.MustCompile(`^[a-z0-9]+(?:[ -][a-z0-9]+)*$`)

// ValidateTagName checks a normalized tag name against the allowed pattern.
func ValidateTagName(name string) bool {
	if name == "" || len(name) > 50 {
		return false
	}
	return TagNamePattern.MatchString(name)
}

// ValidateToolName checks tool/request name length bounds.
func ValidateToolName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return false, "Name must be at least 3 characters long"
	}
	if len(name) > 100 {
		return false, "Name must be at most 100 characters long"
	}
	return true, ""
}

// ValidateDescription checks description length bounds.
func ValidateDescription(desc string) (bool, string) {
	if len(desc) > 1000 {
		return false, "Description must be at most 1000 characters long"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}
	if len(urlStr) > 2048 {
		return false, "URL too long"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
// Used to prevent SSRF attacks against internal networks.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	if ip.IsPrivate() {
		return true
	}

	if ip.IsUnspecified() {
		return true
	}

	// Cloud metadata endpoints (AWS/GCP/Azure use 169.254.169.254,
	// Azure also 168.63.129.16)
	if ip.Equal(net.ParseIP("169.254.169.254")) || ip.Equal(net.ParseIP("168.63.129.16")) {
		return true
	}

	return false
}

// IsPrivateHost checks if a hostname resolves to a private IP address.
// Returns true if the host is private/blocked, false if it's safe to access.
func IsPrivateHost(host string) (bool, error) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		// If we can't resolve, be conservative and block
		return true, err
	}

	for _, ip := range ips {
		if IsPrivateIP(ip) {
			return true, nil
		}
	}

	return false, nil
}

// ValidateURLForHealthCheck validates a URL is safe for health checking.
// Blocks private IPs, localhost, and cloud metadata endpoints.
func ValidateURLForHealthCheck(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)

	isPrivate, err := IsPrivateHost(u.Host)
	if err != nil {
		return false, "Cannot resolve hostname"
	}
	if isPrivate {
		return false, "URL points to a private or reserved IP address"
	}

	return true, ""
}

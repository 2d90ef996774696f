package validation

import (
	"net"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxTopicLength is the longest topic accepted, in characters.
const MaxTopicLength = 500

// Error messages returned to clients.
const (
	MsgTopicRequired = "No topic provided"
	MsgTopicTooLong  = "Topic must be 500 characters or less"
)

// NormalizeTopic trims surrounding whitespace from a topic.
func NormalizeTopic(topic string) string {
	return strings.TrimSpace(topic)
}

// ValidateTopic checks a normalized topic is present and not too long.
func ValidateTopic(topic string) (bool, string) {
	if topic == "" {
		return false, MsgTopicRequired
	}
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return false, MsgTopicTooLong
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// Used for the retriever base URL so a misconfiguration fails at startup.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsValidIP reports whether s is a literal IPv4 or IPv6 address.
func IsValidIP(s string) bool {
	return net.ParseIP(strings.TrimSpace(s)) != nil
}

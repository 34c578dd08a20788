package client

import "strings"

// target is a parsed request target. Every field is a sub-slice of the
// original URL string, so parsing performs no allocation.
type target struct {
	host   string
	port   string
	pathq  string // path plus optional ?query, always starts with '/'
	secure bool
}

// hostPort returns the dial address. Only allocates when the URL omitted
// the port.
func (t target) hostPort() string {
	if t.port != "" {
		return t.host + ":" + t.port
	}
	if t.secure {
		return t.host + ":443"
	}
	return t.host + ":80"
}

// parseTarget splits an absolute http/https URL into its components by
// slicing the input string. Userinfo and fragments are not supported;
// anything but the two HTTP schemes is rejected.
func parseTarget(raw string) (target, error) {
	var t target

	switch {
	case strings.HasPrefix(raw, "http://"):
		raw = raw[len("http://"):]
	case strings.HasPrefix(raw, "https://"):
		t.secure = true
		raw = raw[len("https://"):]
	default:
		return t, ErrInvalidURL
	}

	// Split authority from path+query
	slash := strings.IndexByte(raw, '/')
	if slash == -1 {
		t.pathq = "/"
	} else {
		t.pathq = raw[slash:]
		raw = raw[:slash]
	}

	if raw == "" {
		return t, ErrInvalidURL
	}

	// IPv6 literal: [::1]:8080
	if raw[0] == '[' {
		end := strings.IndexByte(raw, ']')
		if end == -1 {
			return t, ErrInvalidURL
		}
		t.host = raw[1:end]
		rest := raw[end+1:]
		if rest != "" {
			if rest[0] != ':' || len(rest) == 1 {
				return t, ErrInvalidURL
			}
			t.port = rest[1:]
		}
	} else if colon := strings.IndexByte(raw, ':'); colon != -1 {
		if colon == 0 || colon == len(raw)-1 {
			return t, ErrInvalidURL
		}
		t.host = raw[:colon]
		t.port = raw[colon+1:]
	} else {
		t.host = raw
	}

	if t.port != "" && !allDigits(t.port) {
		return t, ErrInvalidURL
	}
	return t, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

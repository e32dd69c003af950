package httpy

import "strings"

const (
	httpsPrefix = "https://"
	httpPrefix  = "http://"
)

// StripScheme removes a leading "https://" or "http://" from url. Any other
// input is returned unchanged.
func StripScheme(url string) string {
	if IsHTTPS(url) {
		return url[len(httpsPrefix):]
	}
	if strings.HasPrefix(url, httpPrefix) {
		return url[len(httpPrefix):]
	}
	return url
}

// IsHTTPS reports whether url starts with exactly "https://". The check is
// case-sensitive.
func IsHTTPS(url string) bool {
	return strings.HasPrefix(url, httpsPrefix)
}

// ParsePath returns everything from the first "/" in url. ok is false when url
// contains no "/".
func ParsePath(url string) (path string, ok bool) {
	i := strings.IndexByte(url, '/')
	if i == -1 {
		return "", false
	}
	return url[i:], true
}

// SplitHost separates a scheme-less url into host and path. The host is
// obtained by cutting len(path) bytes off the end of stripped, so path must be
// a true suffix, which ParsePath guarantees.
func SplitHost(stripped string) (host, path string, hasPath bool) {
	path, hasPath = ParsePath(stripped)
	if !hasPath {
		return stripped, "", false
	}
	return stripped[:len(stripped)-len(path)], path, true
}

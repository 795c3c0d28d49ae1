package convert

import "strings"

// makeID builds an XCCDF 1.2 identifier: xccdf_<namespace>_<kind>_<name>.
func makeID(namespace, kind, name string) string {
	return "xccdf_" + namespace + "_" + kind + "_" + sanitizeName(name)
}

// sanitizeName keeps characters valid in an NCName and replaces the rest
// with '-'.
func sanitizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
	if s == "" {
		return "unnamed"
	}
	return s
}

// sanitizeNamespace is sanitizeName without underscores, which delimit the
// namespace inside an id.
func sanitizeNamespace(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultNamespace
	}
	return strings.ReplaceAll(sanitizeName(s), "_", "-")
}

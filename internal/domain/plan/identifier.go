// Where: internal/domain/plan/identifier.go
// What: Identifier normalization for engine resources.
// Why: Membership tests across listings must compare the same identifier form.
package plan

import "strings"

const (
	digestPrefix = "sha256:"
	shortIDLen   = 12
)

// NormalizeImageID returns raw with the sha256: prefix, adding it when missing.
// Empty input stays empty.
func NormalizeImageID(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, digestPrefix) {
		return raw
	}
	return digestPrefix + raw
}

// ShortID strips a leading sha256: prefix and truncates to 12 characters.
func ShortID(raw string) string {
	id := strings.TrimPrefix(raw, digestPrefix)
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// IsImageDigest reports whether raw is a content identifier rather than a
// repository reference: either sha256:-prefixed or a bare 64-hex string.
func IsImageDigest(raw string) bool {
	if strings.HasPrefix(raw, digestPrefix) {
		return true
	}
	return len(raw) == 64 && isLowerHex(raw)
}

// IsAnonymousVolume reports whether name looks like an engine-generated
// volume name (32 to 64 lowercase hex characters).
func IsAnonymousVolume(name string) bool {
	if len(name) < 32 || len(name) > 64 {
		return false
	}
	return isLowerHex(name)
}

func isLowerHex(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Normalize lowercases text, collapses whitespace runs to a single space
// and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Fingerprint returns the hex MD5 of Normalize(text). It identifies
// duplicates and is not meant for security.
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Seen is a fingerprint set.
type Seen map[string]struct{}

// Add records text and reports whether it was new.
func (s Seen) Add(text string) bool {
	fp := Fingerprint(text)
	if _, ok := s[fp]; ok {
		return false
	}
	s[fp] = struct{}{}
	return true
}

package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Document ids are opaque: anything a path segment can carry except "/" and control characters
	DocumentIDPattern = `^[^/\x00-\x1f\x7f]{1,256}$`

	// Ids of the form __name__ are reserved by the document store
	ReservedIDPattern = `^__.*__$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DocumentID *regexp.Regexp
	ReservedID *regexp.Regexp
}{
	DocumentID: regexp.MustCompile(DocumentIDPattern),
	ReservedID: regexp.MustCompile(ReservedIDPattern),
}

// CanonicalRollNo trims and uppercases a roll number; lookups are case-insensitive
func CanonicalRollNo(rollNo string) string {
	return strings.ToUpper(strings.TrimSpace(rollNo))
}

// IsAddressableID reports whether id can name a document: non-blank, no "/",
// no control characters, not "." or "..", not a reserved __name__ id
func IsAddressableID(id string) bool {
	if strings.TrimSpace(id) == "" || id == "." || id == ".." {
		return false
	}
	return CompiledPatterns.DocumentID.MatchString(id) && !CompiledPatterns.ReservedID.MatchString(id)
}

// IsValidRollNo reports whether the canonical form of rollNo is an addressable id
func IsValidRollNo(rollNo string) bool {
	return IsAddressableID(CanonicalRollNo(rollNo))
}

// IsValidSemesterID reports whether semID is an addressable id
func IsValidSemesterID(semID string) bool {
	return IsAddressableID(semID)
}

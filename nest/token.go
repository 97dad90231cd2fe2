package nest

import (
	"regexp"

	"github.com/google/uuid"
)

// ArchiveExt is the extension of every artifact and container.
const ArchiveExt = ".zip"

var (
	tokenPattern    = regexp.MustCompile(`^[0-9a-f]{8}$`)
	tempNamePattern = regexp.MustCompile(`^(.+)_([0-9a-f]{8})\.zip$`)
)

// RunToken namespaces the temporary artifacts of a single invocation.
// Two runs over the same tree never produce the same temporary name, even
// when an earlier run's artifacts were retained.
type RunToken string

// NewRunToken returns a fresh token built from a random UUID.
func NewRunToken() RunToken {
	return RunToken(uuid.NewString()[:8])
}

// ParseRunToken validates s as a run token.
func ParseRunToken(s string) (RunToken, error) {
	if !tokenPattern.MatchString(s) {
		return "", ErrInvalidToken
	}
	return RunToken(s), nil
}

// TempName is the on-disk name of the temporary artifact for base.
func (t RunToken) TempName(base string) string {
	return base + "_" + string(t) + ArchiveExt
}

// FinalName is the name an artifact for base carries once embedded in its
// parent, and the name of the root archive.
func FinalName(base string) string {
	return base + ArchiveExt
}

// ParseTempName splits a temporary artifact name into the source name and
// the run token that produced it.
func ParseTempName(name string) (base string, token RunToken, ok bool) {
	m := tempNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], RunToken(m[2]), true
}

// IsTempName reports whether name looks like a temporary artifact of any run.
func IsTempName(name string) bool {
	return tempNamePattern.MatchString(name)
}

package git

import (
	"strings"

	"github.com/kioku/wt/internal/apperr"
)

// conflictPhrases are git stderr fragments that indicate the repository
// state prevents the operation, as opposed to the invocation failing.
var conflictPhrases = []string{
	"unmerged",
	"modified",
	"dirty",
	"already exists",
	"already checked out",
	"is not fully merged",
}

// classify maps raw git stderr onto the error taxonomy. Matching is
// substring-based over known phrases so it survives minor wording
// changes between git versions; anything unrecognized stays a plain
// git failure.
func classify(msg string) *apperr.Error {
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "not a git repository") {
		return apperr.NotARepo("%s", msg)
	}
	for _, phrase := range conflictPhrases {
		if strings.Contains(lower, phrase) {
			return apperr.Conflict("%s", msg)
		}
	}
	return apperr.Git("%s", msg)
}

package booking

import (
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"
)

var ErrMissingSubmissionToken = errors.New("submission token is required")

// SubmitGuard collapses concurrent confirm attempts that share a submission
// token into one. The token is released when the attempt returns, whether
// it succeeded or failed, so the guest can retry after fixing the form.
type SubmitGuard struct {
	group singleflight.Group
}

// Do runs fn once per in-flight token. Duplicate callers receive the
// first caller's result; shared reports whether that happened.
func (g *SubmitGuard) Do(token string, fn func() (string, error)) (result string, shared bool, err error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false, ErrMissingSubmissionToken
	}

	value, err, shared := g.group.Do(token, func() (any, error) {
		return fn()
	})
	if err != nil {
		return "", shared, err
	}
	result, _ = value.(string)
	return result, shared, nil
}

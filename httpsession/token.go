package httpsession

import (
	"fmt"
	"strings"
)

// ExtractToken returns the text between the first occurrence of prefix in
// body and the next occurrence of suffix. It is meant for anti-forgery
// tokens embedded in HTML or script, such as CSRF="...".
func ExtractToken(body, prefix, suffix string) (string, error) {
	_, rest, found := strings.Cut(body, prefix)
	if !found {
		return "", fmt.Errorf("%w: missing %q", ErrTokenNotFound, prefix)
	}
	token, _, found := strings.Cut(rest, suffix)
	if !found {
		return "", fmt.Errorf("%w: unterminated %q", ErrTokenNotFound, prefix)
	}
	return token, nil
}

package ephemeralmail

import (
	"fmt"
	"strings"
)

// EmailAddress is a local name combined with a Domain.
type EmailAddress struct {
	Name   string
	Domain Domain
}

// NewEmailAddress returns the address name@domain.
func NewEmailAddress(name string, domain Domain) EmailAddress {
	return EmailAddress{Name: name, Domain: domain}
}

// ParseEmailAddress parses "name@domain". The first @ is the split point, so
// the local part can never contain one. The domain part goes through
// ParseDomain and becomes a custom domain when it is not in the catalog.
func ParseEmailAddress(s string) (EmailAddress, error) {
	s = strings.TrimSpace(s)
	name, domain, found := strings.Cut(s, "@")
	if !found || name == "" || domain == "" {
		return EmailAddress{}, &AddressError{Input: s}
	}
	return EmailAddress{Name: name, Domain: ParseDomain(domain)}, nil
}

// String returns the address in name@domain form.
func (a EmailAddress) String() string {
	return fmt.Sprintf("%s@%s", a.Name, a.Domain)
}

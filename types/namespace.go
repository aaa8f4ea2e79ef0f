package types

import (
	"regexp"

	"github.com/rotisserie/eris"
)

var (
	regexAlphanumeric = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Namespace separates the persisted state of one park from another sharing the same Redis instance.
type Namespace string

func (n Namespace) String() string {
	return string(n)
}

// Validate validates that the namespace is alphanumeric or - (hyphen).
func (n Namespace) Validate() error {
	if !regexAlphanumeric.MatchString(n.String()) {
		return eris.New("Invalid namespace. A namespace must be alphanumeric.")
	}
	return nil
}

package closure

import (
	"fmt"
	"strings"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// IntegrityError is returned by Check when the closure has references
// pointing outside of it.
func IntegrityError(violations []string) error {
	msg := `Fixture closure is not referentially complete

<em>Broken references:</em> %d
%s

<em>Possible causes:</em>
  - The source dataset has rows with dangling references

Nothing was written.`

	shown := violations
	if len(shown) > 10 {
		shown = shown[:10]
	}
	list := "  - " + strings.Join(shown, "\n  - ")

	return &gn.Error{
		Code: errcode.ClosureIntegrityError,
		Msg:  msg,
		Vars: []any{len(violations), list},
		Err: fmt.Errorf(
			"closure integrity: %s", strings.Join(violations, "; ")),
	}
}

package graph

import (
	"fmt"
	"strings"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// SeedNotFoundError is returned when seed names do not match any solar
// system of the source dataset.
func SeedNotFoundError(names []string) error {
	msg := `Seed systems not found in the source dataset

<em>Missing:</em> %s

<em>How to fix:</em>
  1. Check spelling, system names are case-sensitive
  2. Run 'fixgen inspect <source>' to see sample system names`

	list := strings.Join(names, ", ")
	return &gn.Error{
		Code: errcode.SeedNotFoundError,
		Msg:  msg,
		Vars: []any{list},
		Err:  fmt.Errorf("seed systems not found: %s", list),
	}
}

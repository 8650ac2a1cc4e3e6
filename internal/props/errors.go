package props

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// DuplicateVariableError reports a variable name declared more than once.
// The root property scope is single-source-of-truth: the second
// declaration is rejected rather than merged or overridden.
type DuplicateVariableError struct {
	Name   string
	First  hcl.Range
	Second hcl.Range
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("duplicate variable %q: declared at %s and again at %s",
		e.Name, e.First, e.Second)
}

// UndeclaredVariableError reports a reference to a variable name that was
// never declared in the property store.
type UndeclaredVariableError struct {
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable %q", e.Name)
}

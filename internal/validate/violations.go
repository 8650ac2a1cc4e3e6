package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// ViolationKind classifies a single consistency violation.
type ViolationKind string

const (
	// DuplicateVariable is a variable name declared more than once.
	DuplicateVariable ViolationKind = "duplicate variable"
	// UndeclaredVariable is a reference to a variable never declared.
	UndeclaredVariable ViolationKind = "undeclared variable"
	// UnresolvedDependency is a depends_on target missing from the module set.
	UnresolvedDependency ViolationKind = "unresolved dependency"
	// DuplicateModule is a module ID declared more than once.
	DuplicateModule ViolationKind = "duplicate module"
	// InvalidModuleID is a module ID that is not a plain name. IDs become
	// artifact file names, so path separators and dot-names are rejected.
	InvalidModuleID ViolationKind = "invalid module id"
	// UnknownKind is a module whose kind label is not registered.
	UnknownKind ViolationKind = "unknown module kind"
	// UnknownField is a field not present in the kind's schema.
	UnknownField ViolationKind = "unknown field"
	// MissingField is a required field absent from the module block.
	MissingField ViolationKind = "missing required field"
	// LiteralOnlyViolation is a property reference in a field that must
	// stay literal because it is read outside the property scope.
	LiteralOnlyViolation ViolationKind = "reference in literal-only field"
	// UnknownScope is a traversal whose root is not the property scope.
	UnknownScope ViolationKind = "unknown reference scope"
	// TypeMismatch is a literal field value that cannot convert to the
	// type the kind's schema requires.
	TypeMismatch ViolationKind = "field type mismatch"
)

// Violation is one consistency problem, located as precisely as the
// source allows.
type Violation struct {
	Kind     ViolationKind
	ModuleID string
	Subject  string
	Detail   string
	Range    hcl.Range
}

// String renders a violation as a single diagnostic line.
func (v Violation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %q", v.Kind, v.Subject)
	if v.ModuleID != "" {
		fmt.Fprintf(&b, " in module %q", v.ModuleID)
	}
	if v.Detail != "" {
		fmt.Fprintf(&b, " (%s)", v.Detail)
	}
	if v.Range.Filename != "" {
		fmt.Fprintf(&b, " at %s", v.Range)
	}
	return b.String()
}

// Error aggregates every violation found in one validation pass.
type Error struct {
	Violations []Violation
}

// Error renders the full report, one violation per line.
func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return fmt.Sprintf("validation failed with %d violation(s):\n- %s",
		len(e.Violations), strings.Join(lines, "\n- "))
}

// ByKind returns the subset of violations matching kind, for tests and
// targeted reporting.
func (e *Error) ByKind(kind ViolationKind) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// sortViolations orders violations deterministically: by module, then
// subject, then kind, then source position.
func sortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.ModuleID != b.ModuleID {
			return a.ModuleID < b.ModuleID
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Range.Start.Byte < b.Range.Start.Byte
	})
}

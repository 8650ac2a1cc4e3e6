// Package props implements the root property store: the single mapping
// from build variable name to literal string value that every module
// descriptor resolves against.
//
// The store has a two-phase lifecycle. During loading, declarations are
// added with Declare; a name may be declared exactly once, and a second
// declaration is a DuplicateVariableError carrying both source ranges.
// Seal ends the declare phase. After Seal the store is immutable, which
// is what lets independent modules render concurrently without locking.
package props

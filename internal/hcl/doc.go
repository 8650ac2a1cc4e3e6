// Package hcl provides the concrete HCL implementation of the
// config.Loader interface. It is responsible for file discovery,
// parsing, and translation of properties and module blocks into the
// format-agnostic config model, plus the traversal helpers used to
// extract property references from expressions.
package hcl

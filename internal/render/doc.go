// Package render resolves module descriptors against the sealed property
// store. Rendering substitutes every `prop.<name>` reference with its
// declared value and evaluates each field down to a native Go value,
// producing the fully resolved descriptor the plan hands to emitters.
package render

// Package config defines the format-agnostic configuration model for the
// build: the declared root properties and the module descriptors parsed
// from the user's configuration files, along with the Loader interface
// for producing them.
//
// The config.Model is the single source of truth for the validate, dag
// and plan packages. The concrete HCL implementation of the Loader lives
// in the hcl package.
package config

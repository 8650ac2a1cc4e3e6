// Package validate performs whole-set consistency validation of the
// configuration model before anything is rendered or built.
//
// The validator walks every module descriptor in one pass and collects
// every violation it finds: duplicate variable declarations, references
// to variables never declared, depends_on targets missing from the
// module set, unknown kinds and fields, and property references in
// fields that must stay literal. The aggregate is returned as a single
// error listing all violations, so an implementer fixes the whole set in
// one iteration instead of replaying the build once per mistake.
//
// On success the validator returns the sealed property store; sealing
// here is the barrier that makes concurrent rendering safe.
package validate

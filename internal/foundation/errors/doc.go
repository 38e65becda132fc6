// Package errors provides the classified error primitives used across cnamepublish.
//
// A ClassifiedError carries a category, a severity, a retry hint and free-form
// context. The CLI adapter turns categories into process exit codes so that a
// failed publisher step surfaces as a stable, scriptable status.
//
// Example usage:
//
//	err := errors.ValidationError("domain list rejected").
//		WithContext("plugin", "generate-cname").
//		WithCause(cause).
//		Build()
package errors

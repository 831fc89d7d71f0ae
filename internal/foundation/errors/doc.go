// Package errors provides the classified error primitives used by the essay
// site builder.
//
// A ClassifiedError carries a broad category (config, docs, converter,
// render, ...), a severity and structured context. Commands return them so
// the CLI can pick an exit code and decide whether to log the cause.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryDocs, "source corpus not found").
//		Fatal().
//		WithContext("path", sourceDir).
//		WithCause(statErr).
//		Build()
package errors

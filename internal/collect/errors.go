package collect

import "errors"

// Conversion errors are per-declaration: the collector logs the affected
// function and moves on, so one exotic declaration never aborts a run.
var (
	// ErrUnsupportedType marks a declarator construct the wrapper cannot
	// express, such as unions, alignment specifiers, anonymous type tags,
	// function pointers, or node kinds outside the modeled set.
	ErrUnsupportedType = errors.New("unsupported type construct")

	// ErrVariadic marks a function with an ellipsis parameter. A wrapper
	// cannot forward variadic arguments, so the whole function is dropped.
	ErrVariadic = errors.New("variadic function")
)

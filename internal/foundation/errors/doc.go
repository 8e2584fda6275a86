// Package errors provides the classified error foundation used across
// plugforge.
//
// Errors carry a category (what subsystem failed), a severity, and a small
// structured context map. The CLI adapter maps categories to stable exit
// codes so scripts can distinguish an invalid plug name from a failed push.
//
// There is deliberately no retry metadata: every plugforge operation either
// succeeds or fails once, fail fast with no local recovery.
package errors

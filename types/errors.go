package types

import "errors"

var (
	// ErrBucketNotFound means an instruction referenced a bucket id that is
	// not alive in a tracked bucket set. Manifests are bucket-scope checked
	// before analysis, so this is a caller contract violation and aborts the
	// whole run.
	ErrBucketNotFound = errors.New("bucket id not found in tracked bucket set")
	// ErrSpecifierMismatch means two specifiers with different resource
	// addresses or different content kinds were combined.
	ErrSpecifierMismatch = errors.New("resource specifiers have mismatched address or kind")
	// ErrRecordMismatch means the analyzer did not emit exactly one record
	// per instruction, which is an internal invariant violation.
	ErrRecordMismatch = errors.New("record count does not match instruction count")

	ErrRuleBadEntity = errors.New("rule entity is not a known entity kind")
	ErrRuleBadEffect = errors.New("rule effect is not one of neutral, put, take")
)

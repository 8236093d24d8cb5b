package pysrc

import "errors"

var (
	// ErrSyntax reports that tree-sitter found syntax errors in the source.
	// Files that fail to parse are skipped; the scan continues.
	ErrSyntax = errors.New("source contains syntax errors")

	// ErrInvalidContent reports that the file is not valid UTF-8.
	ErrInvalidContent = errors.New("content is not valid UTF-8")
)

// Package token provides the source-position plumbing shared by every
// stage of the core: a parsed AST node carries a token.Pos, and a
// token.FileSet turns that Pos back into a full SourceLocation (filename,
// byte offset, line and column) on demand.
//
// Rather than invent a parallel position encoding, this package builds
// directly on go/token and go/scanner, the same way the rest of this
// codebase treats the standard library as its own diagnostics backbone:
// a compiled unit's positions are go/token.Pos values resolved against a
// go/token.FileSet, and the errors accumulated while resolving or compiling
// a unit are go/scanner.Error values collected in a go/scanner.ErrorList.
package token

import (
	goscanner "go/scanner"
	gotoken "go/token"
)

// Pos is an opaque, comparable source position within a FileSet. The zero
// value means "no position".
type Pos = gotoken.Pos

// NoPos is the zero Pos, meaning "unknown" or "not applicable".
const NoPos = gotoken.NoPos

// FileSet tracks the set of source files a compilation unit spans and
// converts Pos values back into SourceLocation values.
type FileSet = gotoken.FileSet

// File describes a single source file registered in a FileSet.
type File = gotoken.File

// NewFileSet returns a new, empty FileSet.
func NewFileSet() *FileSet { return gotoken.NewFileSet() }

// SourceLocation is the position carried by every AST node: a
// file name, byte offset, and (once resolved against a FileSet) line and
// column. go/token.Position already has exactly this shape, so it is used
// directly instead of a bespoke struct.
type SourceLocation = gotoken.Position

// CompileError pairs a message with the SourceLocation it was reported at
//. go/scanner.Error already has exactly this shape (Pos,
// Msg), so it is used directly.
type CompileError = goscanner.Error

// ErrorList accumulates CompileErrors across a resolution or compilation
// pass. Errors are accumulated as they are found; call Sort before Err in
// strict-mode reporting so the first error reported is the first by source
// position.
type ErrorList = goscanner.ErrorList

// PrintError writes each error in err (a single error, an ErrorList, or any
// error implementing Unwrap() []error) to w, one per line.
var PrintError = goscanner.PrintError

// Package git is the boundary between wt and the git command line.
//
// It shells out via internal/cmd, parses porcelain output, and maps git
// stderr onto the apperr taxonomy exactly once; callers above this
// package never re-classify errors.
package git

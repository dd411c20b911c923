// Package rewrite applies catalog state to matched files.
//
// Every change runs as a transaction on a hidden scratch copy in the same
// directory: tags are written and re-read on the copy, the target name is
// claimed exclusively, and only then does an atomic rename replace the
// original. A failure at any step discards the scratch copy and leaves the
// original untouched.
package rewrite

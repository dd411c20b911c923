// Package match binds scanned files to catalog records.
//
// Each file resolves to at most one record with a confidence level: exact
// identifier hits dominate fuzzy search unconditionally, fuzzy ties break by
// score, then catalog version, then identifier. A final pass demotes every
// file that shares a bound identifier with another file to Conflict so no
// silent winner is ever picked.
package match

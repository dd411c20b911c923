// Package engine orchestrates one sync session: lock the library root, scan
// it, bind every file against the catalog index, demote duplicate bindings,
// and apply rewrites through a bounded worker pool. Fatal faults abort before
// any file is touched; per-file faults only shape that file's outcome.
package engine

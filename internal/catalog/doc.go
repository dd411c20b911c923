// Package catalog loads metadata snapshots and provides the in-memory index
// the matcher queries: O(1) exact identifier lookup plus normalized fuzzy
// search over title and artist.
//
// The index is built once per session and is safe for concurrent readers.
// Snapshot integrity faults (duplicate identifiers) fail construction and are
// fatal to the session.
package catalog

// Package tags reads and writes embedded media tags across the recognized
// containers: ID3v2 for mp3, vorbis comments for flac, and iTunes-style atoms
// for m4a/mp4.
//
// Beyond the standard display tags, each backend carries the archive marker
// set (identifier, catalog version, archive date, content fingerprint) that
// binds a local file to its catalog record.
package tags

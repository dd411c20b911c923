// Package library walks the local karaoke directory and produces one
// descriptor per candidate media file.
//
// The walk is lazy and restartable: every call re-reads the directory tree.
// Hidden entries and unrecognized containers are skipped, embedded archive
// markers are extracted from tags with a legacy bracket-filename fallback,
// and files dated before the configured cutoff never reach the matcher.
package library

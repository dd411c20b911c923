// Package preset parses and validates formatting presets into immutable rule
// sets.
//
// A preset is a TOML document with a filename template over the enumerated
// token vocabulary ({artist}, {title}, {id}, {version}), a tag-mapping table
// binding metadata fields to tag slots, a charset option, and optional
// conditional rules per slot. Everything outside that vocabulary is rejected
// at load time with the offending token or line, never at rewrite time.
package preset

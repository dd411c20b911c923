package library

import (
	"path/filepath"
	"regexp"
	"strings"
)

// legacyIDPattern matches the bracket identifier suffix the downloader used
// before markers moved into tags, e.g. "01 - Title [abc123].mp4".
var legacyIDPattern = regexp.MustCompile(`\[([A-Za-z0-9]+)\]\s*$`)

// trackPrefixPattern strips a leading track number like "01 - " or "7. ".
var trackPrefixPattern = regexp.MustCompile(`^\d+\s*[-.]\s*`)

// parseFilename derives an identifier and a title/artist guess from a media
// filename. The identifier comes only from the legacy bracket suffix; the
// guesses feed fuzzy matching when tags are absent.
func parseFilename(path string) (id, title, artist string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if m := legacyIDPattern.FindStringSubmatch(stem); m != nil {
		id = m[1]
		stem = strings.TrimSpace(legacyIDPattern.ReplaceAllString(stem, ""))
	}

	stem = strings.TrimSpace(trackPrefixPattern.ReplaceAllString(stem, ""))

	if before, after, found := strings.Cut(stem, " - "); found {
		artist = strings.TrimSpace(before)
		title = strings.TrimSpace(after)
		return id, title, artist
	}
	return id, stem, ""
}

package tags

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies a recognized media container.
type Kind int

const (
	KindUnknown Kind = iota
	KindMP3
	KindFLAC
	KindMP4
)

func (k Kind) String() string {
	switch k {
	case KindMP3:
		return "mp3"
	case KindFLAC:
		return "flac"
	case KindMP4:
		return "mp4"
	}
	return "unknown"
}

// Marker frame names for the embedded archive payload. MP3 uses TXXX
// user-defined frames, FLAC uses vorbis comment fields, MP4 uses custom atoms.
const (
	markerID          = "ARCHIVE_ID"
	markerVersion     = "ARCHIVE_VERSION"
	markerDate        = "ARCHIVE_DATE"
	markerFingerprint = "ARCHIVE_FINGERPRINT"
)

// Payload is the tag state karasync reads from and writes to a media file:
// the standard display tags plus the embedded archive markers.
type Payload struct {
	Title   string
	Artist  string
	Album   string
	Comment string

	ID          string
	Version     string
	Date        string
	Fingerprint string
}

// DetectKind maps a path's extension to its container kind.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return KindMP3
	case ".flac":
		return KindFLAC
	case ".m4a", ".mp4":
		return KindMP4
	}
	return KindUnknown
}

// Extensions lists the recognized media-container extensions.
func Extensions() []string {
	return []string{".mp3", ".flac", ".m4a", ".mp4"}
}

// Read extracts the payload from a media file, dispatching on container kind.
func Read(path string) (Payload, error) {
	switch DetectKind(path) {
	case KindMP3:
		return readMP3(path)
	case KindFLAC:
		return readFLAC(path)
	case KindMP4:
		return readMP4(path)
	}
	return Payload{}, fmt.Errorf("unsupported media container: %s", filepath.Ext(path))
}

// Write persists the payload to a media file, dispatching on container kind.
func Write(path string, p Payload) error {
	switch DetectKind(path) {
	case KindMP3:
		return writeMP3(path, p)
	case KindFLAC:
		return writeFLAC(path, p)
	case KindMP4:
		return writeMP4(path, p)
	}
	return fmt.Errorf("unsupported media container: %s", filepath.Ext(path))
}

package tags

import (
	"fmt"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

func readFLAC(path string) (Payload, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("parse flac: %w", err)
	}

	var p Payload
	cmts := findVorbisComment(f)
	if cmts == nil {
		return p, nil
	}

	p.Title = firstComment(cmts, flacvorbis.FIELD_TITLE)
	p.Artist = firstComment(cmts, flacvorbis.FIELD_ARTIST)
	p.Album = firstComment(cmts, flacvorbis.FIELD_ALBUM)
	p.Comment = firstComment(cmts, "DESCRIPTION")
	p.ID = firstComment(cmts, markerID)
	p.Version = firstComment(cmts, markerVersion)
	p.Date = firstComment(cmts, markerDate)
	p.Fingerprint = firstComment(cmts, markerFingerprint)
	return p, nil
}

func writeFLAC(path string, p Payload) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	// Rebuild the whole comment block so stale values never linger.
	cmts := flacvorbis.New()
	add := func(field, value string) {
		if value != "" {
			_ = cmts.Add(field, value)
		}
	}
	add(flacvorbis.FIELD_TITLE, p.Title)
	add(flacvorbis.FIELD_ARTIST, p.Artist)
	add(flacvorbis.FIELD_ALBUM, p.Album)
	add("DESCRIPTION", p.Comment)
	add(markerID, p.ID)
	add(markerVersion, p.Version)
	add(markerDate, p.Date)
	add(markerFingerprint, p.Fingerprint)

	block := cmts.Marshal()
	replaced := false
	for idx, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			f.Meta[idx] = &block
			replaced = true
			break
		}
	}
	if !replaced {
		f.Meta = append(f.Meta, &block)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save flac: %w", err)
	}
	return nil
}

func findVorbisComment(f *flac.File) *flacvorbis.MetaDataBlockVorbisComment {
	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		return cmts
	}
	return nil
}

func firstComment(cmts *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmts.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

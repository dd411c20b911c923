package tags

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

func readMP3(path string) (Payload, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Payload{}, fmt.Errorf("open mp3 tags: %w", err)
	}
	defer tag.Close()

	p := Payload{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	for _, frame := range tag.GetFrames(tag.CommonID("Comments")) {
		if comment, ok := frame.(id3v2.CommentFrame); ok {
			p.Comment = comment.Text
			break
		}
	}
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		udt, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		switch udt.Description {
		case markerID:
			p.ID = udt.Value
		case markerVersion:
			p.Version = udt.Value
		case markerDate:
			p.Date = udt.Value
		case markerFingerprint:
			p.Fingerprint = udt.Value
		}
	}
	return p, nil
}

func writeMP3(path string, p Payload) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3 tags: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(p.Title)
	tag.SetArtist(p.Artist)
	tag.SetAlbum(p.Album)

	tag.DeleteFrames(tag.CommonID("Comments"))
	if p.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     p.Comment,
		})
	}

	tag.DeleteFrames(tag.CommonID("User defined text information frame"))
	for _, marker := range []struct {
		description string
		value       string
	}{
		{markerID, p.ID},
		{markerVersion, p.Version},
		{markerDate, p.Date},
		{markerFingerprint, p.Fingerprint},
	} {
		if marker.value == "" {
			continue
		}
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: marker.description,
			Value:       marker.value,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save mp3 tags: %w", err)
	}
	return nil
}

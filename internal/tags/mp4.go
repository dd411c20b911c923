package tags

import (
	"fmt"

	mp4tag "github.com/Sorrow446/go-mp4tag"
)

func readMP4(path string) (Payload, error) {
	f, err := mp4tag.Open(path)
	if err != nil {
		return Payload{}, fmt.Errorf("open mp4 tags: %w", err)
	}
	defer f.Close()

	read, err := f.Read()
	if err != nil {
		return Payload{}, fmt.Errorf("read mp4 tags: %w", err)
	}

	p := Payload{
		Title:   read.Title,
		Artist:  read.Artist,
		Album:   read.Album,
		Comment: read.Comment,
	}
	if read.Custom != nil {
		p.ID = read.Custom[markerID]
		p.Version = read.Custom[markerVersion]
		p.Date = read.Custom[markerDate]
		p.Fingerprint = read.Custom[markerFingerprint]
	}
	return p, nil
}

func writeMP4(path string, p Payload) error {
	f, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open mp4 tags: %w", err)
	}
	defer f.Close()

	custom := map[string]string{}
	for field, value := range map[string]string{
		markerID:          p.ID,
		markerVersion:     p.Version,
		markerDate:        p.Date,
		markerFingerprint: p.Fingerprint,
	} {
		if value != "" {
			custom[field] = value
		}
	}

	out := &mp4tag.MP4Tags{
		Title:   p.Title,
		Artist:  p.Artist,
		Album:   p.Album,
		Comment: p.Comment,
		Custom:  custom,
	}
	if err := f.Write(out, []string{}); err != nil {
		return fmt.Errorf("write mp4 tags: %w", err)
	}
	return nil
}

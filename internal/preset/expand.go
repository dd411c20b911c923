package preset

import (
	"strconv"

	"karasync/internal/catalog"
	"karasync/internal/tags"
	"karasync/internal/textutil"
)

// Charset returns the preset's character repertoire option.
func (rs *RuleSet) Charset() Charset {
	return rs.charset
}

// ExpandName renders the target filename stem for a record: template
// expansion, charset reduction, then filesystem sanitization. The container
// extension is not included.
func (rs *RuleSet) ExpandName(rec catalog.Record) string {
	name := expandTokens(rs.nameTokens, rec)
	if rs.charset == CharsetASCII {
		name = textutil.ToASCII(name)
	}
	return textutil.SanitizeFileName(name)
}

// SlotValue computes the value a slot should carry for a record: the first
// matching conditional rule wins, then the base tag mapping, else empty.
func (rs *RuleSet) SlotValue(slot Slot, rec catalog.Record) string {
	if value, ok := applyRules(rs.rules[slot], rec); ok {
		return rs.applyCharset(value)
	}
	field, ok := rs.tagMap[slot]
	if !ok {
		return ""
	}
	value, _ := rec.Field(field)
	return rs.applyCharset(value)
}

// TargetPayload computes the full tag state a file bound to rec should carry.
// The archive date marker is not set here; the rewriter preserves the file's
// existing date.
func (rs *RuleSet) TargetPayload(rec catalog.Record) tags.Payload {
	return tags.Payload{
		Title:       rs.SlotValue(SlotTitle, rec),
		Artist:      rs.SlotValue(SlotArtist, rec),
		Album:       rs.SlotValue(SlotAlbum, rec),
		Comment:     rs.SlotValue(SlotComment, rec),
		ID:          rec.ID,
		Version:     strconv.Itoa(rec.Version),
		Fingerprint: rec.Fingerprint,
	}
}

func (rs *RuleSet) applyCharset(value string) string {
	if rs.charset == CharsetASCII {
		return textutil.ToASCII(value)
	}
	return value
}

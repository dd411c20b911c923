package preset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"karasync/internal/apperr"
	"karasync/internal/catalog"
)

// Charset selects the character repertoire for expanded filenames and tags.
type Charset string

const (
	CharsetUnicode Charset = "unicode"
	CharsetASCII   Charset = "ascii"
)

// Slot names a destination tag slot a preset may write.
type Slot string

const (
	SlotTitle   Slot = "title"
	SlotArtist  Slot = "artist"
	SlotAlbum   Slot = "album"
	SlotComment Slot = "comment"
)

// SlotNames lists the recognized destination tag slots.
func SlotNames() []Slot {
	return []Slot{SlotTitle, SlotArtist, SlotAlbum, SlotComment}
}

// ValidationError reports the first offending token or line in a preset.
type ValidationError struct {
	Token  string
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid preset: ")
	b.WriteString(e.Reason)
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

// Rule is one conditional formatting rule for a slot.
type Rule struct {
	IfField      string `toml:"if_field"`
	IfOperator   string `toml:"if_operator"`
	IfValue      string `toml:"if_value"`
	ThenTemplate string `toml:"then_template"`
}

// document is the raw TOML layout of a preset file.
type document struct {
	Charset  string `toml:"charset"`
	Template struct {
		Filename string `toml:"filename"`
	} `toml:"template"`
	Tags  map[string]string `toml:"tags"`
	Rules struct {
		Title   []Rule `toml:"title"`
		Artist  []Rule `toml:"artist"`
		Album   []Rule `toml:"album"`
		Comment []Rule `toml:"comment"`
	} `toml:"rules"`
}

// RuleSet is a compiled, immutable preset. Built once per session and shared
// read-only by every rewrite.
type RuleSet struct {
	charset    Charset
	nameTokens []token
	tagMap     map[Slot]string
	rules      map[Slot][]compiledRule
}

type compiledRule struct {
	field    string
	operator operator
	value    string
	template []token
}

// Load reads and compiles a preset file. Failures carry the configuration
// error marker and a ValidationError detailing the offending token/line.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrConfig, "preset", "read", path, err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrConfig, "preset", "compile", path, err)
	}
	return rs, nil
}

// Parse compiles preset TOML into a RuleSet.
func Parse(data []byte) (*RuleSet, error) {
	var doc document
	decoder := toml.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ValidationError{Line: tomlErrorLine(err), Reason: err.Error()}
	}
	return compile(doc)
}

// Default returns the built-in rule set used when no preset file is
// configured: "{artist} - {title} [{id}]" with direct title/artist mapping.
func Default() *RuleSet {
	rs, err := compile(document{
		Charset: string(CharsetUnicode),
		Template: struct {
			Filename string `toml:"filename"`
		}{Filename: "{artist} - {title} [{id}]"},
		Tags: map[string]string{
			string(SlotTitle):  "title",
			string(SlotArtist): "artist",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("built-in preset must compile: %v", err))
	}
	return rs
}

func compile(doc document) (*RuleSet, error) {
	rs := &RuleSet{
		charset: CharsetUnicode,
		tagMap:  make(map[Slot]string, len(doc.Tags)),
		rules:   make(map[Slot][]compiledRule),
	}

	switch Charset(strings.ToLower(strings.TrimSpace(doc.Charset))) {
	case CharsetUnicode, "":
	case CharsetASCII:
		rs.charset = CharsetASCII
	default:
		return nil, &ValidationError{Token: doc.Charset, Reason: "charset must be unicode or ascii"}
	}

	if strings.TrimSpace(doc.Template.Filename) == "" {
		return nil, &ValidationError{Reason: "template.filename must not be empty"}
	}
	nameTokens, err := compileTemplate(doc.Template.Filename)
	if err != nil {
		return nil, err
	}
	rs.nameTokens = nameTokens

	for slot, field := range doc.Tags {
		if !validSlot(Slot(slot)) {
			return nil, &ValidationError{Token: slot, Reason: "unknown tag slot"}
		}
		if !validField(field) {
			return nil, &ValidationError{Token: field, Reason: fmt.Sprintf("tag slot %q references unknown metadata field", slot)}
		}
		rs.tagMap[Slot(slot)] = field
	}

	for slot, rules := range map[Slot][]Rule{
		SlotTitle:   doc.Rules.Title,
		SlotArtist:  doc.Rules.Artist,
		SlotAlbum:   doc.Rules.Album,
		SlotComment: doc.Rules.Comment,
	} {
		compiled, err := compileRules(slot, rules)
		if err != nil {
			return nil, err
		}
		if len(compiled) > 0 {
			rs.rules[slot] = compiled
		}
	}

	return rs, nil
}

func validSlot(s Slot) bool {
	for _, known := range SlotNames() {
		if s == known {
			return true
		}
	}
	return false
}

func validField(name string) bool {
	for _, known := range catalog.FieldNames() {
		if name == known {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err stems from preset validation and
// returns the detail when it does.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func tomlErrorLine(err error) int {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, _ := decodeErr.Position()
		return row
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		row, _ := strictErr.Errors[0].Position()
		return row
	}
	return 0
}

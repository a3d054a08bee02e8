package ingest

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var errDecode = errors.New("decode error")

// Encoding is one character encoding the detector may try on delimited text.
type Encoding struct {
	Name  string
	codec encoding.Encoding
	// UTF-8 variants must reject invalid byte sequences instead of
	// substituting U+FFFD, otherwise they would accept any legacy file.
	strict bool
}

// Decode converts raw bytes to text. Only the UTF-8 encodings can fail; the
// 8-bit code pages map every byte.
func (e Encoding) Decode(b []byte) (string, error) {
	if e.strict && !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w: invalid byte sequence", e.Name, errDecode)
	}
	out, err := e.codec.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", e.Name, errDecode, err)
	}
	return string(out), nil
}

var knownEncodings = map[string]Encoding{
	"utf-8-sig":   {Name: "utf-8-sig", codec: unicode.UTF8BOM, strict: true},
	"utf-8":       {Name: "utf-8", codec: unicode.UTF8, strict: true},
	"latin1":      {Name: "latin1", codec: charmap.ISO8859_1},
	"cp1252":      {Name: "cp1252", codec: charmap.Windows1252},
	"iso-8859-15": {Name: "iso-8859-15", codec: charmap.ISO8859_15},
	"cp850":       {Name: "cp850", codec: charmap.CodePage850},
}

var encodingAliases = map[string]string{
	"utf8":         "utf-8",
	"utf-8-bom":    "utf-8-sig",
	"utf8-sig":     "utf-8-sig",
	"iso-8859-1":   "latin1",
	"latin-1":      "latin1",
	"windows-1252": "cp1252",
	"latin9":       "iso-8859-15",
}

// ParseEncoding resolves a configured encoding name.
func ParseEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := encodingAliases[key]; ok {
		key = canonical
	}
	enc, ok := knownEncodings[key]
	if !ok {
		return Encoding{}, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// ParseDelimiter resolves a configured delimiter. Symbolic names are accepted
// because a literal tab is awkward in env vars and YAML.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ";", "semicolon":
		return ';', nil
	case ",", "comma":
		return ',', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unknown delimiter %q", s)
}

// DelimiterName is the inverse of ParseDelimiter, used in reports.
func DelimiterName(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case 0:
		return ""
	}
	return string(r)
}

// DefaultEncodings is the trial order for delimited text: UTF-8 with and
// without BOM handling, then two Western 8-bit code pages. With this order
// utf-8 never wins over utf-8-sig and cp1252 is never reached, since latin1
// decodes any byte. Both stay so a configured order can put them first.
func DefaultEncodings() []Encoding {
	return []Encoding{
		knownEncodings["utf-8-sig"],
		knownEncodings["utf-8"],
		knownEncodings["latin1"],
		knownEncodings["cp1252"],
	}
}

func DefaultDelimiters() []rune {
	return []rune{';', ',', '\t'}
}

// Candidate is one (encoding, delimiter) hypothesis.
type Candidate struct {
	Encoding  Encoding
	Delimiter rune
}

func (c Candidate) String() string {
	return c.Encoding.Name + "/" + DelimiterName(c.Delimiter)
}

// Candidates expands encodings and delimiters in encoding-major order.
func Candidates(encodings []Encoding, delimiters []rune) []Candidate {
	out := make([]Candidate, 0, len(encodings)*len(delimiters))
	for _, enc := range encodings {
		for _, d := range delimiters {
			out = append(out, Candidate{Encoding: enc, Delimiter: d})
		}
	}
	return out
}

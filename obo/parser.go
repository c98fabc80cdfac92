package obo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of the header date tag, dd:MM:yyyy HH:mm.
const DateLayout = "02:01:2006 15:04"

const maxLineSize = 4 * 1024 * 1024

// tokenTags take several whitespace separated, possibly quoted values.
var tokenTags = map[Tag]bool{
	TagDef:                          true,
	TagSynonym:                      true,
	TagRelationship:                 true,
	TagIntersectionOf:               true,
	TagUnionOf:                      true,
	TagHoldsOverChain:               true,
	TagEquivalentToChain:            true,
	TagPropertyValue:                true,
	TagSubsetdef:                    true,
	TagSynonymTypedef:               true,
	TagIDSpace:                      true,
	TagIDMapping:                    true,
	TagTreatXrefsAsGenusDifferentia: true,
	TagTreatXrefsAsRelationship:     true,
	TagExpandAssertionTo:            true,
	TagExpandExpressionTo:           true,
}

// ParseFile parses the OBO document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obo file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// ParseString parses an OBO document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an OBO document. Errors that stem from the input are
// *ParseError values carrying the offending line number.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{doc: NewDocument()}
	p.frame = p.doc.Header

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, &ParseError{Line: p.line, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obo: %w", err)
	}
	if err := p.flush(); err != nil {
		return nil, &ParseError{Line: p.frameLine, Err: err}
	}
	return p.doc, nil
}

type parser struct {
	doc       *Document
	frame     *Frame
	frameLine int
	line      int
}

func (p *parser) parseLine(raw string) error {
	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil
	}

	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		if err := p.flush(); err != nil {
			return err
		}
		typ, err := stanzaType(line[1 : len(line)-1])
		if err != nil {
			return err
		}
		p.frame = NewFrame("", typ)
		p.frameLine = p.line
		return nil
	}

	idx := strings.Index(line, ":")
	if idx <= 0 {
		return fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	tag := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+1:])

	if tag == TagID.String() && p.frame.Type != HeaderFrame {
		value, _, err := splitQualifiers(rest)
		if err != nil {
			return err
		}
		p.frame.ID = unescape(value)
		return nil
	}

	c, err := parseClause(tag, rest, p.frame.Type == HeaderFrame)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	p.frame.AddClause(c)
	return nil
}

// flush adds the frame under construction to the document.
func (p *parser) flush() error {
	f := p.frame
	if f == nil || f.Type == HeaderFrame {
		return nil
	}
	p.frame = nil
	if f.ID == "" {
		return fmt.Errorf("%s stanza: %w", f.Type, ErrMissingID)
	}
	switch f.Type {
	case TermFrame:
		return p.doc.AddTermFrame(f)
	case TypedefFrame:
		return p.doc.AddTypedefFrame(f)
	default:
		return p.doc.AddInstanceFrame(f)
	}
}

func stanzaType(name string) (FrameType, error) {
	switch strings.TrimSpace(name) {
	case "Term":
		return TermFrame, nil
	case "Typedef":
		return TypedefFrame, nil
	case "Instance":
		return InstanceFrame, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStanza, name)
	}
}

func parseClause(tag, rest string, header bool) (*Clause, error) {
	value, quals, err := splitQualifiers(rest)
	if err != nil {
		return nil, err
	}
	c := &Clause{Tag: tag, Qualifiers: quals}
	kind := LookupTag(tag)

	switch {
	case kind == TagXref:
		tokens, _, err := tokenize(value)
		if err != nil {
			return nil, err
		}
		x := Xref{}
		if len(tokens) > 0 {
			x.ID = tokens[0]
		}
		if len(tokens) > 1 {
			x.Annotation = tokens[1]
		}
		c.Values = []any{x}
	case kind == TagDate && header:
		if t, err := time.Parse(DateLayout, value); err == nil {
			c.Values = []any{t}
		} else {
			c.Values = []any{value}
		}
	case kind.IsBoolean():
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", value)
		}
		c.Values = []any{b}
	case tokenTags[kind]:
		tokens, xrefs, err := tokenize(value)
		if err != nil {
			return nil, err
		}
		for _, t := range tokens {
			c.Values = append(c.Values, t)
		}
		c.Xrefs = xrefs
	default:
		if v, ok := singleQuoted(value); ok {
			value = v
		} else {
			value = unescape(value)
		}
		c.Values = []any{value}
	}
	return c, nil
}

// stripComment removes a trailing "!" comment outside quotes.
func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case '!':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

// splitQualifiers separates a trailing {key="value", ...} block.
func splitQualifiers(s string) (string, []Qualifier, error) {
	open := -1
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case '{':
			if !inQuote {
				open = i
			}
		}
	}
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, "}") {
		return "", nil, fmt.Errorf("%w: qualifier block", ErrUnterminated)
	}

	var quals []Qualifier
	for _, part := range splitOutsideQuotes(s[open+1:len(s)-1], ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.Index(part, "=")
		if eq <= 0 {
			return "", nil, fmt.Errorf("%w: qualifier %q", ErrMalformedLine, part)
		}
		val := strings.TrimSpace(part[eq+1:])
		if v, ok := singleQuoted(val); ok {
			val = v
		}
		quals = append(quals, Qualifier{Key: strings.TrimSpace(part[:eq]), Value: val})
	}
	return strings.TrimSpace(s[:open]), quals, nil
}

// tokenize splits s into bare and quoted tokens followed by an optional
// [xref, xref "text"] list.
func tokenize(s string) ([]string, []Xref, error) {
	var tokens []string
	var xrefs []Xref
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '"':
			tok, n, err := readQuoted(s[i:])
			if err != nil {
				return nil, nil, err
			}
			tokens = append(tokens, tok)
			i += n
		case c == '[':
			end := closingBracket(s, i)
			if end < 0 {
				return nil, nil, fmt.Errorf("%w: xref list", ErrUnterminated)
			}
			list, err := parseXrefList(s[i+1 : end])
			if err != nil {
				return nil, nil, err
			}
			xrefs = append(xrefs, list...)
			i = end + 1
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j > len(s) {
				j = len(s)
			}
			tokens = append(tokens, unescape(s[i:j]))
			i = j
		}
	}
	return tokens, xrefs, nil
}

// readQuoted reads a quoted string at the start of s and returns its
// unescaped content and the number of bytes consumed.
func readQuoted(s string) (string, int, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return unescape(s[1:i]), i + 1, nil
		}
	}
	return "", 0, fmt.Errorf("%w: quoted string", ErrUnterminated)
}

// singleQuoted reports whether s is exactly one quoted string.
func singleQuoted(s string) (string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", false
	}
	v, n, err := readQuoted(s)
	if err != nil || n != len(s) {
		return "", false
	}
	return v, true
}

func closingBracket(s string, open int) int {
	inQuote := false
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case ']':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

func parseXrefList(s string) ([]Xref, error) {
	var out []Xref
	for _, part := range splitOutsideQuotes(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens, _, err := tokenize(part)
		if err != nil {
			return nil, err
		}
		x := Xref{ID: tokens[0]}
		if len(tokens) > 1 {
			x.Annotation = strings.Join(tokens[1:], " ")
		}
		out = append(out, x)
	}
	return out, nil
}

// splitOutsideQuotes splits s on sep where sep is neither quoted nor
// escaped.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case sep:
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

package obo

import (
	"fmt"
	"strings"
)

// FrameType distinguishes the kinds of frame in a document.
type FrameType int

// Frame types.
const (
	HeaderFrame FrameType = iota
	TermFrame
	TypedefFrame
	InstanceFrame
)

func (t FrameType) String() string {
	switch t {
	case HeaderFrame:
		return "Header"
	case TermFrame:
		return "Term"
	case TypedefFrame:
		return "Typedef"
	case InstanceFrame:
		return "Instance"
	default:
		return fmt.Sprintf("FrameType(%d)", int(t))
	}
}

// Xref is a cross-reference with optional descriptive text.
type Xref struct {
	ID         string
	Annotation string
}

func (x Xref) String() string {
	return x.ID
}

// Qualifier is a key/value modifier attached to a clause.
type Qualifier struct {
	Key   string
	Value string
}

// Clause is one tagged statement.
type Clause struct {
	Tag        string
	Values     []any
	Qualifiers []Qualifier
	Xrefs      []Xref
}

// NewClause returns a clause with the given tag and values.
func NewClause(tag string, values ...any) *Clause {
	return &Clause{Tag: tag, Values: values}
}

// Kind returns the vocabulary tag of the clause.
func (c *Clause) Kind() Tag {
	return LookupTag(c.Tag)
}

// Value returns the first value, or nil.
func (c *Clause) Value() any {
	if len(c.Values) == 0 {
		return nil
	}
	return c.Values[0]
}

// Value2 returns the second value, or nil.
func (c *Clause) Value2() any {
	if len(c.Values) < 2 {
		return nil
	}
	return c.Values[1]
}

// StringValue returns the first value formatted as a string.
func (c *Clause) StringValue() string {
	return ValueString(c.Value())
}

// Qualifier returns the value of the first qualifier with key.
func (c *Clause) Qualifier(key string) (string, bool) {
	for _, q := range c.Qualifiers {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

// AddQualifier appends a qualifier and returns the clause.
func (c *Clause) AddQualifier(key, value string) *Clause {
	c.Qualifiers = append(c.Qualifiers, Qualifier{Key: key, Value: value})
	return c
}

// AddXref appends a cross-reference and returns the clause.
func (c *Clause) AddXref(x Xref) *Clause {
	c.Xrefs = append(c.Xrefs, x)
	return c
}

func (c *Clause) String() string {
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = ValueString(v)
	}
	return c.Tag + ": " + strings.Join(parts, " ")
}

// ValueString formats a clause value. Xref values yield their id.
func ValueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Xref:
		return x.ID
	default:
		return fmt.Sprint(x)
	}
}

// Frame is a named collection of clauses grouped by tag.
type Frame struct {
	ID      string
	Type    FrameType
	tags    []string
	clauses map[string][]*Clause
}

// NewFrame returns an empty frame.
func NewFrame(id string, typ FrameType) *Frame {
	return &Frame{ID: id, Type: typ, clauses: make(map[string][]*Clause)}
}

// AddClause appends c under its tag.
func (f *Frame) AddClause(c *Clause) {
	if _, ok := f.clauses[c.Tag]; !ok {
		f.tags = append(f.tags, c.Tag)
	}
	f.clauses[c.Tag] = append(f.clauses[c.Tag], c)
}

// Add is shorthand for AddClause(NewClause(tag, values...)). It returns the
// new clause.
func (f *Frame) Add(tag string, values ...any) *Clause {
	c := NewClause(tag, values...)
	f.AddClause(c)
	return c
}

// Tags returns the frame's tags in first-seen order.
func (f *Frame) Tags() []string {
	out := make([]string, len(f.tags))
	copy(out, f.tags)
	return out
}

// Clauses returns the clauses for tag in insertion order.
func (f *Frame) Clauses(tag string) []*Clause {
	return f.clauses[tag]
}

// Clause returns the first clause for tag, or nil.
func (f *Frame) Clause(tag string) *Clause {
	if cs := f.clauses[tag]; len(cs) > 0 {
		return cs[0]
	}
	return nil
}

// TagValue returns the first value of the first clause for tag, or nil.
func (f *Frame) TagValue(tag string) any {
	if c := f.Clause(tag); c != nil {
		return c.Value()
	}
	return nil
}

// TagValues returns the first value of every clause for tag.
func (f *Frame) TagValues(tag string) []any {
	cs := f.clauses[tag]
	out := make([]any, 0, len(cs))
	for _, c := range cs {
		if v := c.Value(); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// BoolValue reports whether the first clause for tag holds true, either as
// a bool or as the string "true".
func (f *Frame) BoolValue(tag string) bool {
	switch v := f.TagValue(tag).(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Xrefs returns the values of the frame's xref clauses.
func (f *Frame) Xrefs() []Xref {
	var out []Xref
	for _, v := range f.TagValues(TagXref.String()) {
		switch x := v.(type) {
		case Xref:
			out = append(out, x)
		case string:
			out = append(out, Xref{ID: x})
		}
	}
	return out
}

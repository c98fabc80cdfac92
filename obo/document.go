package obo

import "fmt"

// Document is a parsed OBO document.
type Document struct {
	Header *Frame

	terms     frameIndex
	typedefs  frameIndex
	instances frameIndex
}

type frameIndex struct {
	order []*Frame
	byID  map[string]*Frame
}

func (ix *frameIndex) add(f *Frame) error {
	if ix.byID == nil {
		ix.byID = make(map[string]*Frame)
	}
	if _, ok := ix.byID[f.ID]; ok {
		return fmt.Errorf("%s frame %q: %w", f.Type, f.ID, ErrDuplicateFrame)
	}
	ix.byID[f.ID] = f
	ix.order = append(ix.order, f)
	return nil
}

func (ix *frameIndex) list() []*Frame {
	out := make([]*Frame, len(ix.order))
	copy(out, ix.order)
	return out
}

// NewDocument returns a document with an empty header.
func NewDocument() *Document {
	return &Document{Header: NewFrame("", HeaderFrame)}
}

// AddTermFrame adds a term frame. Ids must be unique among terms.
func (d *Document) AddTermFrame(f *Frame) error {
	f.Type = TermFrame
	return d.terms.add(f)
}

// AddTypedefFrame adds a typedef frame. Ids must be unique among typedefs.
func (d *Document) AddTypedefFrame(f *Frame) error {
	f.Type = TypedefFrame
	return d.typedefs.add(f)
}

// AddInstanceFrame adds an instance frame.
func (d *Document) AddInstanceFrame(f *Frame) error {
	f.Type = InstanceFrame
	return d.instances.add(f)
}

// TermFrame returns the term frame with id, or nil.
func (d *Document) TermFrame(id string) *Frame { return d.terms.byID[id] }

// TypedefFrame returns the typedef frame with id, or nil.
func (d *Document) TypedefFrame(id string) *Frame { return d.typedefs.byID[id] }

// TermFrames returns term frames in document order.
func (d *Document) TermFrames() []*Frame { return d.terms.list() }

// TypedefFrames returns typedef frames in document order.
func (d *Document) TypedefFrames() []*Frame { return d.typedefs.list() }

// InstanceFrames returns instance frames in document order.
func (d *Document) InstanceFrames() []*Frame { return d.instances.list() }

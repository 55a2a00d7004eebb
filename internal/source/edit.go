package source

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrEditOutOfRange reports an edit that does not fit the document it is applied to.
var ErrEditOutOfRange = errors.New("edit out of range")

// Edit replaces Length bytes at Offset with Text.
type Edit struct {
	Offset uint32
	Length uint32
	Text   string
}

// Delta is the signed size change produced by the edit.
func (e Edit) Delta() int64 {
	return int64(len(e.Text)) - int64(e.Length)
}

// End is the exclusive end of the replaced range in the old document.
func (e Edit) End() uint32 {
	return e.Offset + e.Length
}

// Apply returns content with the edit applied.
func (e Edit) Apply(content []byte) ([]byte, error) {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return nil, err
	}
	if e.Offset > size || e.End() > size {
		return nil, fmt.Errorf("%w: [%d,%d) in %d bytes", ErrEditOutOfRange, e.Offset, e.End(), size)
	}
	out := make([]byte, 0, int64(len(content))+e.Delta())
	out = append(out, content[:e.Offset]...)
	out = append(out, e.Text...)
	out = append(out, content[e.End():]...)
	return out, nil
}

// MapOffset translates an offset of the old document into the new one.
// Offsets inside the replaced range collapse onto the edit start when
// preferStart is set, and onto the end of the inserted text otherwise.
func (e Edit) MapOffset(off uint32, preferStart bool) uint32 {
	switch {
	case off <= e.Offset:
		return off
	case off >= e.End():
		return uint32(int64(off) + e.Delta())
	case preferStart:
		return e.Offset
	default:
		return e.Offset + uint32(len(e.Text))
	}
}

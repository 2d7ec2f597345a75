package renderer

import "unsafe"

// NameTable owns a list of NUL-terminated names together with a parallel
// table of pointers into that storage. Pointers()[i] always refers to the
// first byte of Names()[i].
//
// The goki driver only reads Strings(), which are copies it marshals into C
// memory itself, so nothing has to keep the table alive across the call.
// Pointers() is for code that hands the raw array to the driver directly;
// such a caller must keep the table reachable until that call returns.
type NameTable struct {
	storage  [][]byte
	pointers []*byte
}

func NewNameTable(names []string) *NameTable {
	t := &NameTable{
		storage:  make([][]byte, len(names)),
		pointers: make([]*byte, len(names)),
	}
	for i, name := range names {
		buf := make([]byte, len(name)+1)
		copy(buf, name)
		t.storage[i] = buf
		t.pointers[i] = &buf[0]
	}
	return t
}

// NewLayerNameTable builds the table for the enabled-layers field.
func NewLayerNameTable(layers []string) *NameTable {
	return NewNameTable(layers)
}

func (t *NameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.storage)
}

// Names returns the owned storage, each entry including its NUL terminator.
func (t *NameTable) Names() [][]byte {
	if t == nil {
		return nil
	}
	return t.storage
}

func (t *NameTable) Pointers() []*byte {
	if t == nil {
		return nil
	}
	return t.pointers
}

// Strings returns the names as NUL-terminated Go strings, the form the
// goki binding copies into C memory.
func (t *NameTable) Strings() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.storage))
	for i, b := range t.storage {
		out[i] = string(b)
	}
	return out
}

// At returns the i-th name without its terminator, read through the pointer table.
func (t *NameTable) At(i int) string {
	p := t.pointers[i]
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return unsafe.String(p, n)
}

func (t *NameTable) Contains(name string) bool {
	for i := range t.Len() {
		if t.At(i) == name {
			return true
		}
	}
	return false
}

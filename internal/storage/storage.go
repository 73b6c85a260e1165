// Package storage provides the page-addressable settings store backing the
// configuration table. The layout of the bytes inside a page is owned by the
// config package; this package only moves fixed-size pages around.
package storage

import (
	"errors"
	"fmt"
)

// PageSize is the size of one storage page in bytes.
const PageSize = 32

// Pager is a byte-addressable store organized in fixed-size pages. Reads may
// cross page boundaries; writes always replace a whole page.
type Pager interface {
	// ReadBuffer fills buf with the bytes starting at addr.
	ReadBuffer(addr int, buf []byte) error

	// WritePage replaces the page at the given index. data must be
	// PageSize bytes.
	WritePage(page int, data []byte) error
}

// Mem is an in-memory Pager, used in tests and as a scratch store when no
// settings file is configured.
type Mem struct {
	data []byte
}

// NewMem returns a zeroed in-memory store with the given number of pages.
func NewMem(pages int) *Mem {
	return &Mem{data: make([]byte, pages*PageSize)}
}

func (m *Mem) ReadBuffer(addr int, buf []byte) error {
	if addr < 0 || addr+len(buf) > len(m.data) {
		return fmt.Errorf("read out of range: addr %d len %d", addr, len(buf))
	}
	copy(buf, m.data[addr:])
	return nil
}

func (m *Mem) WritePage(page int, data []byte) error {
	if len(data) != PageSize {
		return errors.New("page data must be exactly one page")
	}
	addr := page * PageSize
	if addr < 0 || addr+PageSize > len(m.data) {
		return fmt.Errorf("page out of range: %d", page)
	}
	copy(m.data[addr:], data)
	return nil
}

// Bytes exposes the raw contents, for tests that check persisted layout.
func (m *Mem) Bytes() []byte {
	return m.data
}

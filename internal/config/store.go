package config

import (
	"fmt"
	"sync"

	"quadbank/internal/storage"
)

const (
	// NumBanks by PerBank encoders gives the NumEntries-entry table.
	NumBanks   = 4
	PerBank    = 16
	NumEntries = NumBanks * PerBank

	// Four packed entries fit one storage page.
	entriesPerPage = storage.PageSize / EntrySize

	// NumPages is the page footprint of the whole table.
	NumPages = NumEntries / entriesPerPage
)

// Store is the in-memory configuration table plus its persisted form. The
// table is loaded once at startup; afterwards the persisted bytes change only
// through Save and FactoryReset. The persisted read-modify-write path is a
// critical section: it takes the store lock for the duration.
type Store struct {
	mu      sync.Mutex
	pager   storage.Pager
	entries [NumEntries]Entry
}

// NewStore wraps a pager. Call Init before first use.
func NewStore(p storage.Pager) *Store {
	return &Store{pager: p}
}

// Init loads all 64 entries from the persisted store into the table.
func (s *Store) Init() error {
	for i := 0; i < NumEntries; i++ {
		e, err := s.Load(i/PerBank, i%PerBank)
		if err != nil {
			return fmt.Errorf("load entry %d: %w", i, err)
		}
		s.entries[i] = e
	}
	return nil
}

// Entry returns the live table entry for a banked encoder id. The pointer is
// into the table itself; feedback-driven phenotype reassignment mutates it in
// place.
func (s *Store) Entry(banked int) *Entry {
	return &s.entries[banked]
}

// Load reads and expands the persisted entry for one encoder, bypassing the
// in-memory table.
func (s *Store) Load(bank, encoder int) (Entry, error) {
	var buf [EntrySize]byte
	addr := bank*PerBank*EntrySize + encoder*EntrySize
	if err := s.pager.ReadBuffer(addr, buf[:]); err != nil {
		return Entry{}, err
	}
	return decodeEntry(buf[:]), nil
}

// Save merges a partial entry into the table and the persisted store. Fields
// at or above the Unchanged sentinel are left untouched in both. Each page
// holds the settings of four encoders, so the page is read back first to
// preserve its three neighbors.
func (s *Store) Save(bank, encoder int, partial Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mergeEntry(&s.entries[bank*PerBank+encoder], partial)

	page := make([]byte, storage.PageSize)
	pageIndex := bank*(PerBank/entriesPerPage) + encoder/entriesPerPage
	if err := s.pager.ReadBuffer(pageIndex*storage.PageSize, page); err != nil {
		return err
	}

	offset := EntrySize * (encoder % entriesPerPage)
	partial.mergeInto(page[offset : offset+EntrySize])

	return s.pager.WritePage(pageIndex, page)
}

// FactoryReset rewrites every persisted page with the factory defaults and
// reloads the table. A template page is built for one column of four
// encoders; for each page the bank colors are patched in, the page is
// written, and the per-entry MIDI numbers are stepped by four so every entry
// in a bank ends up with a distinct number.
func (s *Store) FactoryReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := Entry{
		HasDetent:     defHasDetent,
		DetentColor:   defDetentColor,
		ActiveColor:   defActiveColors[0],
		InactiveColor: defInactiveColors[0],
		Movement:      defMovement,
		DisplayMode:   defDisplayMode,
		SwitchAction:  defSwitchAction,
		SwitchChannel: defSwitchChannel,
		Channel:       defChannel,
		ShiftChannel:  defShiftChannel,
		Type:          defType,
		HighRes:       defHighRes,
	}

	page := make([]byte, storage.PageSize)
	for i := 0; i < entriesPerPage; i++ {
		e := def
		e.SwitchNumber = uint8(i)
		e.Number = uint8(i)
		packed := e.encode()
		copy(page[i*EntrySize:], packed[:])
	}

	for p := 0; p < NumPages; p++ {
		bank := p / (PerBank / entriesPerPage)
		for i := 0; i < entriesPerPage; i++ {
			page[i*EntrySize+2] = defActiveColors[bank]
			page[i*EntrySize+3] = defInactiveColors[bank]
		}

		if err := s.pager.WritePage(p, page); err != nil {
			return err
		}

		for i := 0; i < entriesPerPage; i++ {
			page[i*EntrySize+1] += entriesPerPage // switch MIDI number
			page[i*EntrySize+7] += entriesPerPage // encoder MIDI number
		}
	}

	for i := 0; i < NumEntries; i++ {
		e, err := s.Load(i/PerBank, i%PerBank)
		if err != nil {
			return err
		}
		s.entries[i] = e
	}
	return nil
}

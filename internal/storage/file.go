package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is a Pager backed by a fixed-size file, standing in for the
// non-volatile settings memory of a hardware unit. Pages are written through
// and synced so settings survive a crash.
type File struct {
	f    *os.File
	size int
}

// DefaultPath returns the platform-appropriate settings file location.
func DefaultPath() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "quadbank", "settings.bin"), nil
}

// OpenFile opens (or creates) a page file with the given number of pages.
// created reports whether a fresh zeroed file was made, so the caller knows
// to seed factory defaults.
func OpenFile(path string, pages int) (pf *File, created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, false, err
	}

	_, statErr := os.Stat(path)
	created = os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, false, err
	}

	size := pages * PageSize
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, false, err
	}

	return &File{f: f, size: size}, created, nil
}

func (p *File) ReadBuffer(addr int, buf []byte) error {
	if addr < 0 || addr+len(buf) > p.size {
		return fmt.Errorf("read out of range: addr %d len %d", addr, len(buf))
	}
	_, err := p.f.ReadAt(buf, int64(addr))
	return err
}

func (p *File) WritePage(page int, data []byte) error {
	if len(data) != PageSize {
		return fmt.Errorf("page data must be %d bytes", PageSize)
	}
	addr := page * PageSize
	if addr < 0 || addr+PageSize > p.size {
		return fmt.Errorf("page out of range: %d", page)
	}
	if _, err := p.f.WriteAt(data, int64(addr)); err != nil {
		return err
	}
	return p.f.Sync()
}

func (p *File) Close() error {
	return p.f.Close()
}

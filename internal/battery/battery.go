// Package battery persists cartridge RAM in a memory-mapped save file next
// to the ROM, so every write the game makes lands in the file directly.
package battery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// File is a save file mapped read-write into memory.
type File struct {
	path string
	file *os.File
	mmap mmap.MMap
}

// PathFor returns the save file path for a ROM: same directory, same base
// name, ".sav" extension.
func PathFor(romPath string) string {
	dir := filepath.Dir(filepath.Clean(romPath))
	base := filepath.Base(romPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".sav")
}

// Open maps the first size bytes of path, creating the file if needed. A new
// or extended file reads as 0xFF, like RAM that was never written.
func Open(path string, size int) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("battery: invalid size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("battery: open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("battery: stat %s: %w", path, err)
	}
	old := st.Size()
	if old < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("battery: grow %s: %w", path, err)
		}
	}

	m, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("battery: map %s: %w", path, err)
	}
	for i := old; i < int64(size); i++ {
		m[i] = 0xFF
	}
	if old == 0 {
		log.Printf("battery: created %s (%d bytes)", path, size)
	} else {
		log.Printf("battery: loaded %s (%d bytes)", path, size)
	}
	return &File{path: path, file: f, mmap: m}, nil
}

// Bytes is the mapped region. It stays valid until Close.
func (s *File) Bytes() []byte { return s.mmap }

// Path returns the file path.
func (s *File) Path() string { return s.path }

// Flush writes dirty pages back to the file.
func (s *File) Flush() error {
	return s.mmap.Flush()
}

// Close flushes and unmaps the file. Bytes must not be used afterwards.
func (s *File) Close() error {
	ferr := s.mmap.Flush()
	uerr := s.mmap.Unmap()
	cerr := s.file.Close()
	for _, err := range []error{ferr, uerr, cerr} {
		if err != nil {
			return fmt.Errorf("battery: close %s: %w", s.path, err)
		}
	}
	return nil
}

// Package transfer is the file collaborator behind import/export: a
// store that hands out file handles under one directory, and a JSON
// record-list codec.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var ErrBadName = errors.New("transfer: invalid file name")

// Store owns one directory of export files.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transfer: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// CreateForWrite creates a fresh export file. The suggested prefix is
// made unique with a uuid so repeated exports never clobber each other.
func (s *Store) CreateForWrite(prefix string) (*os.File, string, error) {
	name := fmt.Sprintf("%s-%s.json", prefix, uuid.NewString())
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, "", err
	}
	return f, name, nil
}

func (s *Store) OpenForRead(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, ErrBadName
	}
	return os.Open(filepath.Join(s.dir, name))
}

// List returns the export file names, newest name last.
func (s *Store) List() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// WriteRecords encodes the list as a JSON array.
func WriteRecords[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if items == nil {
		items = []T{}
	}
	return enc.Encode(items)
}

// ReadRecords decodes a JSON array of records. An empty file or empty
// array decodes to an empty list, not an error.
func ReadRecords[T any](r io.Reader) ([]T, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("transfer: decode records: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

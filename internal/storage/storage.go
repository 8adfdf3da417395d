package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glabrego/rss-cli/internal/feed"
)

// ErrUnsupportedFormat is wrapped by StorageError when the file extension
// does not name a known format.
var ErrUnsupportedFormat = errors.New("unsupported database extension; use .json, .yml, .yaml, .db or .sqlite")

// StorageError reports a failed load or save of the collection file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type format int

const (
	formatUnknown format = iota
	formatJSON
	formatYAML
	formatSQLite
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".yml", ".yaml":
		return formatYAML
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return formatUnknown
	}
}

// Supported reports whether path has an extension Load and Save understand.
func Supported(path string) bool {
	return formatFor(path) != formatUnknown
}

// Load reads the collection stored at path.
func Load(ctx context.Context, path string) (feed.Collection, error) {
	var c feed.Collection
	switch formatFor(path) {
	case formatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return c, &StorageError{Op: "read", Path: path, Err: err}
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return feed.Collection{}, &StorageError{Op: "parse JSON", Path: path, Err: err}
		}
	case formatYAML:
		data, err := os.ReadFile(path)
		if err != nil {
			return c, &StorageError{Op: "read", Path: path, Err: err}
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return feed.Collection{}, &StorageError{Op: "parse YAML", Path: path, Err: err}
		}
	case formatSQLite:
		if _, err := os.Stat(path); err != nil {
			return c, &StorageError{Op: "read", Path: path, Err: err}
		}
		loaded, err := loadSQLite(ctx, path)
		if err != nil {
			return feed.Collection{}, &StorageError{Op: "read sqlite", Path: path, Err: err}
		}
		c = loaded
	default:
		return c, &StorageError{Op: "load", Path: path, Err: ErrUnsupportedFormat}
	}
	return c, nil
}

// LoadOrEmpty behaves like Load but yields an empty collection when path does
// not exist yet. Unreadable or malformed files are still errors.
func LoadOrEmpty(ctx context.Context, path string) (feed.Collection, error) {
	if !Supported(path) {
		return feed.Collection{}, &StorageError{Op: "load", Path: path, Err: ErrUnsupportedFormat}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return feed.Collection{}, nil
	}
	return Load(ctx, path)
}

// Save writes the whole collection to path, replacing previous contents.
func Save(ctx context.Context, path string, c feed.Collection) error {
	c = withEmptyLists(c)
	var data []byte
	var err error
	switch formatFor(path) {
	case formatJSON:
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return &StorageError{Op: "serialize JSON", Path: path, Err: err}
		}
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(c)
		if err != nil {
			return &StorageError{Op: "serialize YAML", Path: path, Err: err}
		}
	case formatSQLite:
		if err := saveSQLite(ctx, path, c); err != nil {
			return &StorageError{Op: "write sqlite", Path: path, Err: err}
		}
		return nil
	default:
		return &StorageError{Op: "save", Path: path, Err: ErrUnsupportedFormat}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// FileStore binds Load and Save to one path.
type FileStore struct {
	Path string
}

func NewFileStore(path string) FileStore {
	return FileStore{Path: path}
}

func (s FileStore) Load(ctx context.Context) (feed.Collection, error) {
	return LoadOrEmpty(ctx, s.Path)
}

func (s FileStore) Save(ctx context.Context, c feed.Collection) error {
	return Save(ctx, s.Path, c)
}

// withEmptyLists returns a copy of c whose nil feed and item lists are empty,
// so files always carry "feeds": [] and "items": [] rather than null.
func withEmptyLists(c feed.Collection) feed.Collection {
	feeds := make([]feed.Feed, len(c.Feeds))
	for i, f := range c.Feeds {
		if f.Items == nil {
			f.Items = []feed.Entry{}
		}
		feeds[i] = f
	}
	return feed.Collection{Feeds: feeds}
}

// Package library keeps a named, versioned history of VSVDB payloads in a
// pebble database.
//
// Every Save appends a revision under
//
//	payload/<name>/<unix nanos, 8 bytes big-endian><ksuid, 20 bytes>
//
// so a prefix scan returns a name's revisions oldest first. The value is the
// 7-byte packed record.
package library

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/vsvdb/pkg/codec"
)

var (
	// ErrNotFound is returned when a name has no saved revisions.
	ErrNotFound = errors.New("payload not found")
	// ErrInvalidName is returned for empty names or names containing '/'.
	ErrInvalidName = errors.New("invalid payload name")
)

const (
	keyPrefix = "payload/"
	stampSize = 8
)

// Revision is one saved version of a named payload.
type Revision struct {
	ID      ksuid.KSUID  `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Record  codec.Record `json:"-" yaml:"-"`
	Hex     string       `json:"hex" yaml:"hex"`
	SavedAt time.Time    `json:"saved_at" yaml:"saved_at"`
}

// Library is a pebble-backed payload store. It is safe for concurrent use.
type Library struct {
	db *pebble.DB

	mu   sync.Mutex
	last int64
}

// Open opens or creates a library in dir.
func Open(dir string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := pebble.Open(dir, &pebble.Options{Logger: pebbleLogger{logger}})
	if err != nil {
		return nil, fmt.Errorf("failed to open library at %s: %w", dir, err)
	}
	return &Library{db: db}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save appends rec as the newest revision of name.
func (l *Library) Save(name string, rec codec.Record) (*Revision, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	id := ksuid.New()
	stamp := l.nextStamp()
	key := revisionKey(name, stamp, id)
	if err := l.db.Set(key, rec[:], pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to save %q: %w", name, err)
	}

	return newRevision(name, stamp, id, rec), nil
}

// Latest returns the newest revision of name.
func (l *Library) Latest(name string) (*Revision, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	iter, err := l.db.NewIter(prefixOptions(namePrefix(name)))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return decodeRevision(name, iter.Key(), iter.Value())
}

// History returns every revision of name, oldest first.
func (l *Library) History(name string) ([]*Revision, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	iter, err := l.db.NewIter(prefixOptions(namePrefix(name)))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var revs []*Revision
	for iter.First(); iter.Valid(); iter.Next() {
		rev, err := decodeRevision(name, iter.Key(), iter.Value())
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return revs, nil
}

// List returns the distinct saved names, sorted.
func (l *Library) List() ([]string, error) {
	iter, err := l.db.NewIter(prefixOptions([]byte(keyPrefix)))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	seen := make(map[string]struct{})
	for iter.First(); iter.Valid(); iter.Next() {
		rest := iter.Key()[len(keyPrefix):]
		i := bytes.IndexByte(rest, '/')
		if i < 0 {
			continue
		}
		seen[string(rest[:i])] = struct{}{}
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes every revision of name.
func (l *Library) Delete(name string) error {
	if _, err := l.Latest(name); err != nil {
		return err
	}
	prefix := namePrefix(name)
	if err := l.db.DeleteRange(prefix, upperBound(prefix), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

// ValidateName checks that name can be used as a key segment.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsRune(name, '/') {
		return fmt.Errorf("%w: %q contains '/'", ErrInvalidName, name)
	}
	return nil
}

// nextStamp returns a strictly increasing nanosecond timestamp so revisions
// saved within the same clock tick keep their order.
func (l *Library) nextStamp() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UnixNano()
	if now <= l.last {
		now = l.last + 1
	}
	l.last = now
	return now
}

func namePrefix(name string) []byte {
	return []byte(keyPrefix + name + "/")
}

func revisionKey(name string, stamp int64, id ksuid.KSUID) []byte {
	prefix := namePrefix(name)
	key := make([]byte, 0, len(prefix)+stampSize+len(id))
	key = append(key, prefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(stamp))
	return append(key, id.Bytes()...)
}

func decodeRevision(name string, key, value []byte) (*Revision, error) {
	suffix := key[len(namePrefix(name)):]
	if len(suffix) != stampSize+len(ksuid.Nil) {
		return nil, fmt.Errorf("malformed revision key %q", key)
	}
	stamp := int64(binary.BigEndian.Uint64(suffix[:stampSize]))
	id, err := ksuid.FromBytes(suffix[stampSize:])
	if err != nil {
		return nil, fmt.Errorf("malformed revision id: %w", err)
	}
	rec, err := codec.NewRecord(value)
	if err != nil {
		return nil, fmt.Errorf("corrupt revision %s of %q: %w", id, name, err)
	}
	return newRevision(name, stamp, id, rec), nil
}

func newRevision(name string, stamp int64, id ksuid.KSUID, rec codec.Record) *Revision {
	return &Revision{
		ID:      id,
		Name:    name,
		Record:  rec,
		Hex:     rec.String(),
		SavedAt: time.Unix(0, stamp).UTC(),
	}
}

func prefixOptions(prefix []byte) *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	}
}

// upperBound returns the smallest key greater than every key with prefix.
// Prefixes here always end in '/', so incrementing the last byte suffices.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	end[len(end)-1]++
	return end
}

// pebbleLogger routes pebble's informational output through slog.
type pebbleLogger struct {
	logger *slog.Logger
}

func (p pebbleLogger) Infof(format string, args ...interface{}) {
	p.logger.Debug(fmt.Sprintf(format, args...), "component", "pebble")
}

func (p pebbleLogger) Fatalf(format string, args ...interface{}) {
	p.logger.Error(fmt.Sprintf(format, args...), "component", "pebble")
	panic(fmt.Sprintf(format, args...))
}

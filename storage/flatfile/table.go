package flatfile

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Vane487/kursovarobota/core"
)

var errDuplicateKey = errors.New("duplicate key")

// table is an ordered in-memory copy of one data file. Every mutation rewrites the
// file and is undone in memory when the write fails.
type table[T any] struct {
	mutex sync.RWMutex
	rows  []T

	path   string
	comma  rune
	key    func(T) string
	encode func(T) []string
	decode func([]string) (T, error)
	check  func(T) error // optional, applied while loading
	log    core.Logger
}

func (t *table[T]) load() (core.LoadReport, error) {
	report := core.LoadReport{File: t.path}
	lines, bad, exists, err := readLines(t.path, t.comma)
	if err != nil {
		return report, err
	}
	if !exists {
		t.log.Info("data file not found, starting empty", "file", t.path)
	}

	for _, b := range bad {
		report.Skipped++
		t.log.Warn("skipping malformed line", "file", t.path, "line", b.num, b.err)
	}

	rows := make([]T, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, ln := range lines {
		row, err := t.decode(ln.fields)
		if err == nil && t.check != nil {
			err = t.check(row)
		}
		if err == nil {
			if _, dup := seen[t.key(row)]; dup {
				err = fmt.Errorf("%w %q", errDuplicateKey, t.key(row))
			}
		}
		if err != nil {
			report.Skipped++
			t.log.Warn("skipping invalid line", "file", t.path, "line", ln.num, err)
			continue
		}
		seen[t.key(row)] = struct{}{}
		rows = append(rows, row)
	}
	report.Loaded = len(rows)

	t.mutex.Lock()
	t.rows = rows
	t.mutex.Unlock()
	return report, nil
}

// save writes all rows. Callers hold the lock.
func (t *table[T]) save() error {
	records := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, t.encode(row))
	}
	return writeLines(t.path, t.comma, records)
}

func (t *table[T]) persist() error {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.save()
}

func (t *table[T]) clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.rows = nil
}

func (t *table[T]) query() []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return append(make([]T, 0, len(t.rows)), t.rows...)
}

func (t *table[T]) indexOf(key string) int {
	for i, row := range t.rows {
		if t.key(row) == key {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(key string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if i := t.indexOf(key); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

func (t *table[T]) insert(row T) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.indexOf(t.key(row)) >= 0 {
		return fmt.Errorf("%w %q", errDuplicateKey, t.key(row))
	}
	n := len(t.rows)
	t.rows = append(t.rows, row)
	if err := t.save(); err != nil {
		t.rows = t.rows[:n]
		return err
	}
	return nil
}

func (t *table[T]) replace(row T) (bool, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	i := t.indexOf(t.key(row))
	if i < 0 {
		return false, nil
	}
	old := t.rows[i]
	t.rows[i] = row
	if err := t.save(); err != nil {
		t.rows[i] = old
		return false, err
	}
	return true, nil
}

func (t *table[T]) remove(key string) (bool, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	i := t.indexOf(key)
	if i < 0 {
		return false, nil
	}
	old := t.rows
	rows := make([]T, 0, len(t.rows)-1)
	rows = append(rows, t.rows[:i]...)
	t.rows = append(rows, t.rows[i+1:]...)
	if err := t.save(); err != nil {
		t.rows = old
		return false, err
	}
	return true, nil
}

// reorder stable-sorts the rows by less and persists the new order.
func (t *table[T]) reorder(less func(a, b T) bool) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	old := t.rows
	rows := append(make([]T, 0, len(t.rows)), t.rows...)
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	t.rows = rows
	if err := t.save(); err != nil {
		t.rows = old
		return err
	}
	return nil
}

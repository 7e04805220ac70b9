package flatfile

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// line is one parsed record with its 1-based line number.
type line struct {
	num    int
	fields []string
}

// badLine is a line the csv reader could not parse.
type badLine struct {
	num int
	err error
}

// readLines parses every record of path split on comma, with RFC 4180 quoting.
// A missing file is not an error: exists is false and no lines are returned.
func readLines(path string, comma rune) (lines []line, bad []badLine, exists bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, false, nil
		}
		return nil, nil, false, errors.Wrapf(err, "opening %s", path)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = comma
	r.FieldsPerRecord = -1 // field count is checked per kind
	r.LazyQuotes = true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				bad = append(bad, badLine{num: perr.StartLine, err: perr.Err})
				continue
			}
			return nil, nil, true, errors.Wrapf(err, "reading %s", path)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		num, _ := r.FieldPos(0)
		lines = append(lines, line{num: num, fields: rec})
	}
	return lines, bad, true, nil
}

// writeLines replaces path with records. The data goes to a temporary file in the same
// directory first and is renamed over path, so readers never see a partial file.
func writeLines(path string, comma rune, records [][]string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	w.Comma = comma
	if err := w.WriteAll(records); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

package core

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	localeMu  sync.RWMutex
	localeTag = language.Ukrainian
)

// SetupLocale sets the process-wide locale used for sorting. Call it once from main.
func SetupLocale(name string) error {
	tag, err := language.Parse(CleanString(name))
	if err != nil {
		return errors.Wrapf(err, "parsing locale %q", name)
	}
	localeMu.Lock()
	localeTag = tag
	localeMu.Unlock()
	return nil
}

func Locale() language.Tag {
	localeMu.RLock()
	defer localeMu.RUnlock()
	return localeTag
}

// Fold returns s case-folded for caseless matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case in any script.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(CleanString(substr)))
}

// NewCollator returns a case-insensitive collator for the current locale.
// A Collator is not safe for concurrent use; create one per sort.
func NewCollator() *collate.Collator {
	return collate.New(Locale(), collate.IgnoreCase)
}

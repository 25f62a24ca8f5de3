/*
Package dirlist enumerates a flat directory of icon source files.

Entries are returned in a locale-aware, case-insensitive and numeric-aware
order ("icon2" sorts before "icon10"). This order is what codepoints are
assigned in, so it has to be stable from run to run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package dirlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// tracer traces to tracing key 'industricons.dirlist'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.dirlist")
}

// Platform artifact files which are never icons.
var ignored = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
}

// Entry is a single file of a directory listing. Entries are ordered by
// base name, so that the three views of a listing (paths, file names,
// base names) line up index by index.
type Entry struct {
	Path     string // full path
	FileName string // file name with extension
	BaseName string // file name without extension
}

// Listing is the sorted contents of a directory.
type Listing struct {
	Dir     string
	Entries []Entry
}

// List enumerates dir, which is expected to be flat. Sub-directories and
// platform artifact files are skipped. An empty directory is not an error,
// but will be reported as a warning.
func List(dir string) (Listing, error) {
	listing := Listing{Dir: dir}
	fi, err := os.Stat(dir)
	if err != nil {
		return listing, core.IOError(err, "cannot read directory %s", dir)
	}
	if !fi.IsDir() {
		return listing, core.Error(core.EINVALID, "%s is not a directory", dir)
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return listing, core.IOError(err, "cannot read directory %s", dir)
	}
	for _, d := range dirents {
		if d.IsDir() {
			tracer().Debugf("skipping sub-directory %s", d.Name())
			continue
		}
		if ignored[d.Name()] {
			continue
		}
		listing.Entries = append(listing.Entries, Entry{
			Path:     filepath.Join(dir, d.Name()),
			FileName: d.Name(),
			BaseName: BaseName(d.Name()),
		})
	}
	if len(listing.Entries) == 0 {
		tracer().Infof("warning: directory %s is empty", dir)
	}
	cmp := newComparator()
	sort.SliceStable(listing.Entries, func(i, j int) bool {
		a, b := listing.Entries[i], listing.Entries[j]
		if a.BaseName != b.BaseName {
			return cmp.less(a.BaseName, b.BaseName)
		}
		return cmp.less(a.FileName, b.FileName)
	})
	tracer().Debugf("listed %d files in %s", len(listing.Entries), dir)
	return listing, nil
}

// Len returns the number of entries.
func (l Listing) Len() int {
	return len(l.Entries)
}

// IsEmpty is true for a listing without entries.
func (l Listing) IsEmpty() bool {
	return len(l.Entries) == 0
}

// Paths returns the full paths of all entries, in sorted order.
func (l Listing) Paths() []string {
	return l.collect(func(e Entry) string { return e.Path })
}

// FileNames returns the file names of all entries, in sorted order.
func (l Listing) FileNames() []string {
	return l.collect(func(e Entry) string { return e.FileName })
}

// BaseNames returns the file names without extension, in sorted order.
func (l Listing) BaseNames() []string {
	return l.collect(func(e Entry) string { return e.BaseName })
}

func (l Listing) collect(f func(Entry) string) []string {
	s := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		s[i] = f(e)
	}
	return s
}

// BaseName strips directory and extension from a file name.
func BaseName(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Sort sorts names in place, using the same order as List.
func Sort(names []string) {
	cmp := newComparator()
	sort.SliceStable(names, func(i, j int) bool {
		return cmp.less(names[i], names[j])
	})
}

// --- Comparison ------------------------------------------------------------

// comparator wraps a collator, which is not safe for concurrent use.
type comparator struct {
	coll *collate.Collator
}

func newComparator() comparator {
	return comparator{
		coll: collate.New(language.Und, collate.Loose, collate.Numeric),
	}
}

// less compares case- and accent-insensitive with numeric runs compared by
// value. Names equal under the collator are ordered by their bytes, which
// makes the order total.
func (c comparator) less(a, b string) bool {
	if r := c.coll.CompareString(a, b); r != 0 {
		return r < 0
	}
	return a < b
}

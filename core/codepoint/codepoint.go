/*
Package codepoint assigns Unicode private-use-area codepoints to icons.

Assignment is a pure function of the sorted icon names and a start value:
the first name receives the start codepoint, every following name the next
one. The resulting mapping is persisted as pretty-printed JSON, listing the
icons in assignment order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package codepoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/MfgOpen/industricons/core"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.codepoint'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.codepoint")
}

// DefaultStart is the first codepoint handed out, located in the Unicode
// private use area (U+E000…U+F8FF).
const DefaultStart = 60000

// Mapping maps icon base names to codepoints. It remembers the order of
// assignment. A Mapping is not modified after it has been created.
type Mapping struct {
	m          *linkedhashmap.Map
	duplicates []string
}

// Assign hands out codepoints to names, in the order given, starting with
// start and incrementing by one. A name occuring more than once keeps its
// first codepoint; later occurences do not consume a codepoint and are
// reported by Duplicates.
func Assign(names []string, start int) *Mapping {
	mapping := &Mapping{m: linkedhashmap.New()}
	cp := start
	for _, name := range names {
		if _, found := mapping.m.Get(name); found {
			tracer().Errorf("duplicate icon name %q, keeping first codepoint", name)
			mapping.duplicates = append(mapping.duplicates, name)
			continue
		}
		mapping.m.Put(name, cp)
		cp++
	}
	tracer().Debugf("assigned %d codepoints, starting at %d", mapping.m.Size(), start)
	return mapping
}

// Len returns the number of icons in the mapping.
func (m *Mapping) Len() int {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Size()
}

// Names returns the icon names in assignment order.
func (m *Mapping) Names() []string {
	names := make([]string, 0, m.Len())
	m.Each(func(name string, _ int) {
		names = append(names, name)
	})
	return names
}

// Codepoint returns the codepoint for an icon name.
func (m *Mapping) Codepoint(name string) (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	v, found := m.m.Get(name)
	if !found {
		return 0, false
	}
	return v.(int), true
}

// Each calls f for every entry, in assignment order.
func (m *Mapping) Each(f func(name string, cp int)) {
	if m.Len() == 0 {
		return
	}
	it := m.m.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(int))
	}
}

// Duplicates lists names which had been submitted to Assign more than once.
func (m *Mapping) Duplicates() []string {
	return m.duplicates
}

// MarshalJSON writes the mapping as a JSON object, indented by two spaces,
// with keys in assignment order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m.Len() == 0 {
		return []byte("{}"), nil
	}
	compact, err := m.m.ToJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a mapping, preserving the order of keys.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	lhm := linkedhashmap.New()
	if err := lhm.FromJSON(data); err != nil {
		return err
	}
	m.m = linkedhashmap.New()
	m.duplicates = nil
	it := lhm.Iterator()
	for it.Next() {
		f, ok := it.Value().(float64)
		if !ok || f != math.Trunc(f) {
			return fmt.Errorf("codepoint for %v is not an integer: %v", it.Key(), it.Value())
		}
		m.m.Put(it.Key(), int(f))
	}
	return nil
}

// Save writes m to path, replacing an existing file.
func Save(path string, m *Mapping) error {
	data, err := m.MarshalJSON()
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot serialize codepoint mapping")
	}
	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		return core.IOError(err, "cannot remove old mapping %s", path)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return core.IOError(err, "cannot write mapping %s", path)
	}
	tracer().Infof("wrote %d codepoints to %s", m.Len(), path)
	return nil
}

// Load reads a mapping previously written by Save.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.IOError(err, "cannot read mapping %s", path)
	}
	m := &Mapping{}
	if err = m.UnmarshalJSON(data); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "mapping %s is malformed", path)
	}
	return m, nil
}

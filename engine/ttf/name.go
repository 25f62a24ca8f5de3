package ttf

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// name IDs
const (
	nameFamily         = 1
	nameSubfamily      = 2
	nameUniqueID       = 3
	nameFullName       = 4
	nameVersion        = 5
	namePostScriptName = 6
	nameDescription    = 10
)

type nameRecord struct {
	platform, encoding, language, id uint16
	data                             []byte
}

// PostScriptName returns the family name stripped of characters not allowed
// in PostScript font names.
func (f *Font) PostScriptName() string {
	var b strings.Builder
	for _, r := range f.Family + "-" + f.Style {
		if r > 32 && r < 127 && !strings.ContainsRune("[](){}<>/%", r) {
			b.WriteRune(r)
		}
	}
	return truncate(b.String(), 63)
}

func (f *Font) names() map[uint16]string {
	names := map[uint16]string{
		nameFamily:         f.Family,
		nameSubfamily:      f.Style,
		nameUniqueID:       f.Family + ":" + f.Version,
		nameFullName:       f.Family + " " + f.Style,
		nameVersion:        f.Version,
		namePostScriptName: f.PostScriptName(),
	}
	if f.Description != "" {
		names[nameDescription] = f.Description
	}
	return names
}

// nameTable writes every name twice: in Mac Roman for the Macintosh
// platform and in UTF-16BE for the Windows platform.
func (f *Font) nameTable() []byte {
	macEnc := encoding.ReplaceUnsupported(charmap.Macintosh.NewEncoder())
	winEnc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	var records []nameRecord
	for id, s := range f.names() {
		if s == "" {
			continue
		}
		if mac, err := macEnc.Bytes([]byte(s)); err == nil {
			records = append(records, nameRecord{1, 0, 0, id, mac})
		} else {
			tracer().Errorf("cannot encode name %q for Macintosh platform: %v", s, err)
		}
		if win, err := winEnc.Bytes([]byte(s)); err == nil {
			records = append(records, nameRecord{3, 1, 0x409, id, win})
		} else {
			tracer().Errorf("cannot encode name %q for Windows platform: %v", s, err)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.platform != b.platform {
			return a.platform < b.platform
		}
		return a.id < b.id
	})
	var buf, strs bytes.Buffer
	be := binary.BigEndian
	w := func(v uint16) { _ = binary.Write(&buf, be, v) }
	w(0)
	w(uint16(len(records)))
	w(uint16(6 + 12*len(records)))
	for _, r := range records {
		w(r.platform)
		w(r.encoding)
		w(r.language)
		w(r.id)
		w(uint16(len(r.data)))
		w(uint16(strs.Len()))
		strs.Write(r.data)
	}
	buf.Write(strs.Bytes())
	return buf.Bytes()
}

package ttf

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/MfgOpen/industricons/engine/outline"
)

// --- head ------------------------------------------------------------------

type headTable struct {
	Version                uint32
	FontRevision           int32
	CheckSumAdjustment     uint32
	MagicNumber            uint32
	Flags                  uint16
	UnitsPerEm             uint16
	Created                int64
	Modified               int64
	XMin, YMin, XMax, YMax int16
	MacStyle               uint16
	LowestRecPPEM          uint16
	FontDirectionHint      int16
	IndexToLocFormat       int16
	GlyphDataFormat        int16
}

// seconds between 1904-01-01 and 1970-01-01
const macEpochOffset = 2082844800

func (f *Font) headTable(m metrics) []byte {
	var created int64
	if !f.Created.IsZero() {
		created = f.Created.Unix() + macEpochOffset
	}
	return structBytes(headTable{
		Version:           0x00010000,
		FontRevision:      int32(math.Round(f.Revision * 0x10000)),
		MagicNumber:       0x5F0F3CF5,
		Flags:             0x000B, // baseline at y=0, lsb at x=0, integer ppem
		UnitsPerEm:        uint16(f.UnitsPerEm),
		Created:           created,
		Modified:          created,
		XMin:              int16(m.bbox.xMin),
		YMin:              int16(m.bbox.yMin),
		XMax:              int16(m.bbox.xMax),
		YMax:              int16(m.bbox.yMax),
		LowestRecPPEM:     8,
		FontDirectionHint: 2,
		IndexToLocFormat:  1, // long offsets
	})
}

// --- hhea ------------------------------------------------------------------

type hheaTable struct {
	Version                                 uint32
	Ascender, Descender, LineGap            int16
	AdvanceWidthMax                         uint16
	MinLeftSideBearing, MinRightSideBearing int16
	XMaxExtent                              int16
	CaretSlopeRise, CaretSlopeRun           int16
	CaretOffset                             int16
	Reserved                                [4]int16
	MetricDataFormat                        int16
	NumberOfHMetrics                        uint16
}

func (f *Font) hheaTable(glyphs []Glyph, m metrics) []byte {
	return structBytes(hheaTable{
		Version:             0x00010000,
		Ascender:            int16(f.Ascent()),
		Descender:           int16(-f.Descent),
		AdvanceWidthMax:     uint16(m.advanceMax),
		MinLeftSideBearing:  int16(m.minLSB),
		MinRightSideBearing: int16(m.minRSB),
		XMaxExtent:          int16(m.xMaxExtent),
		CaretSlopeRise:      1,
		NumberOfHMetrics:    uint16(len(glyphs)),
	})
}

// --- hmtx ------------------------------------------------------------------

func hmtxTable(glyphs []Glyph) []byte {
	var buf bytes.Buffer
	for i := range glyphs {
		lsb := 0
		if b := glyphBox(&glyphs[i]); !b.empty {
			lsb = b.xMin
		}
		_ = binary.Write(&buf, binary.BigEndian, uint16(glyphs[i].Advance))
		_ = binary.Write(&buf, binary.BigEndian, int16(lsb))
	}
	return buf.Bytes()
}

// --- maxp ------------------------------------------------------------------

type maxpFields struct {
	Version               uint32
	NumGlyphs             uint16
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

func maxpTable(glyphs []Glyph, m metrics) []byte {
	return structBytes(maxpFields{
		Version:     0x00010000,
		NumGlyphs:   uint16(len(glyphs)),
		MaxPoints:   uint16(m.maxPoints),
		MaxContours: uint16(m.maxContours),
		MaxZones:    2,
	})
}

// --- OS/2 ------------------------------------------------------------------

type os2Table struct {
	Version                                  uint16
	XAvgCharWidth                            int16
	UsWeightClass, UsWidthClass              uint16
	FsType                                   uint16
	YSubscriptXSize, YSubscriptYSize         int16
	YSubscriptXOffset, YSubscriptYOffset     int16
	YSuperscriptXSize, YSuperscriptYSize     int16
	YSuperscriptXOffset, YSuperscriptYOffset int16
	YStrikeoutSize, YStrikeoutPosition       int16
	SFamilyClass                             int16
	Panose                                   [10]byte
	UlUnicodeRange                           [4]uint32
	AchVendID                                [4]byte
	FsSelection                              uint16
	UsFirstCharIndex, UsLastCharIndex        uint16
	STypoAscender, STypoDescender            int16
	STypoLineGap                             int16
	UsWinAscent, UsWinDescent                uint16
	UlCodePageRange                          [2]uint32
	SxHeight, SCapHeight                     int16
	UsDefaultChar, UsBreakChar, UsMaxContext uint16
}

func (f *Font) os2Table(glyphs []Glyph, m metrics) []byte {
	upm := f.UnitsPerEm
	t := os2Table{
		Version:             4,
		XAvgCharWidth:       int16(m.avgAdvance),
		UsWeightClass:       400,
		UsWidthClass:        5,
		YSubscriptXSize:     int16(upm * 65 / 100),
		YSubscriptYSize:     int16(upm * 60 / 100),
		YSubscriptYOffset:   int16(upm * 7 / 100),
		YSuperscriptXSize:   int16(upm * 65 / 100),
		YSuperscriptYSize:   int16(upm * 60 / 100),
		YSuperscriptYOffset: int16(upm * 48 / 100),
		YStrikeoutSize:      int16(upm * 5 / 100),
		YStrikeoutPosition:  int16(upm * 26 / 100),
		AchVendID:           [4]byte{'N', 'O', 'N', 'E'},
		FsSelection:         0x0040, // regular
		UsFirstCharIndex:    uint16(m.firstCP),
		UsLastCharIndex:     uint16(m.lastCP),
		STypoAscender:       int16(f.Ascent()),
		STypoDescender:      int16(-f.Descent),
		UsWinAscent:         uint16(max(f.Ascent(), m.bbox.yMax)),
		UsWinDescent:        uint16(max(f.Descent, -m.bbox.yMin)),
		UlCodePageRange:     [2]uint32{1, 0}, // Latin 1
		UsMaxContext:        1,
	}
	t.Panose[0] = 5 // pictorial
	for _, g := range glyphs {
		if g.Codepoint >= 0xE000 && g.Codepoint <= 0xF8FF {
			t.UlUnicodeRange[1] |= 1 << (60 - 32) // Private Use Area
			break
		}
	}
	return structBytes(t)
}

// --- post ------------------------------------------------------------------

type postHeader struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

// number of glyph names predefined by the Macintosh standard order
const numStandardMacNames = 258

func postTable(glyphs []Glyph) []byte {
	var buf bytes.Buffer
	buf.Write(structBytes(postHeader{
		Version:            0x00020000,
		UnderlinePosition:  -75,
		UnderlineThickness: 50,
	}))
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(glyphs)))
	names := PostScriptNames(glyphs)
	var strs bytes.Buffer
	next := numStandardMacNames
	for i, name := range names {
		if i == 0 { // .notdef is the first standard name
			_ = binary.Write(&buf, binary.BigEndian, uint16(0))
			continue
		}
		_ = binary.Write(&buf, binary.BigEndian, uint16(next))
		next++
		strs.WriteByte(byte(len(name)))
		strs.WriteString(name)
	}
	buf.Write(strs.Bytes())
	return buf.Bytes()
}

// PostScriptNames derives valid and unique glyph names: at most 63
// characters out of [A-Za-z0-9._], not starting with a digit. The first
// glyph is always named ".notdef".
func PostScriptNames(glyphs []Glyph) []string {
	names := make([]string, len(glyphs))
	used := map[string]bool{".notdef": true}
	for i, g := range glyphs {
		if i == 0 {
			names[0] = ".notdef"
			continue
		}
		name := sanitizeName(g.Name)
		candidate := name
		for k := 1; used[candidate]; k++ {
			suffix := "_" + strconv.Itoa(k)
			candidate = truncate(name, 63-len(suffix)) + suffix
		}
		used[candidate] = true
		names[i] = candidate
	}
	return names
}

func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') || name[0] == '.' {
		name = "g" + name
	}
	return truncate(name, 63)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// --- cmap ------------------------------------------------------------------

type cmapSegment struct {
	start, end uint16
	delta      uint16
}

// cmapTable writes a format 4 subtable, referenced for the Unicode and the
// Windows platforms.
func cmapTable(glyphs []Glyph) []byte {
	type mapping struct {
		cp  uint16
		gid uint16
	}
	var maps []mapping
	for gid, g := range glyphs {
		if g.Codepoint != 0 {
			maps = append(maps, mapping{uint16(g.Codepoint), uint16(gid)})
		}
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i].cp < maps[j].cp })
	var segs []cmapSegment
	for i, mp := range maps {
		if i > 0 {
			last := &segs[len(segs)-1]
			if mp.cp == last.end+1 && mp.gid == maps[i-1].gid+1 {
				last.end = mp.cp
				continue
			}
		}
		segs = append(segs, cmapSegment{start: mp.cp, end: mp.cp, delta: mp.gid - mp.cp})
	}
	segs = append(segs, cmapSegment{start: 0xFFFF, end: 0xFFFF, delta: 1})

	be := binary.BigEndian
	var sub bytes.Buffer
	w := func(v uint16) { _ = binary.Write(&sub, be, v) }
	segCount := len(segs)
	pow2, log2 := searchParams(segCount)
	w(4)                           // format
	w(uint16(16 + 8*segCount))     // length
	w(0)                           // language
	w(uint16(2 * segCount))        // segCountX2
	w(uint16(2 * pow2))            // searchRange
	w(uint16(log2))                // entrySelector
	w(uint16(2*segCount - 2*pow2)) // rangeShift
	for _, s := range segs {
		w(s.end)
	}
	w(0) // reserved
	for _, s := range segs {
		w(s.start)
	}
	for _, s := range segs {
		w(s.delta)
	}
	for range segs {
		w(0) // idRangeOffset
	}

	var buf bytes.Buffer
	const subtableOffset = 4 + 2*8
	for _, v := range []uint16{0, 2} { // version, numTables
		_ = binary.Write(&buf, be, v)
	}
	for _, enc := range [][2]uint16{{0, 3}, {3, 1}} { // Unicode BMP, Windows UCS-2
		_ = binary.Write(&buf, be, enc[0])
		_ = binary.Write(&buf, be, enc[1])
		_ = binary.Write(&buf, be, uint32(subtableOffset))
	}
	buf.Write(sub.Bytes())
	return buf.Bytes()
}

// --- glyf / loca -----------------------------------------------------------

// glyph flags
const (
	flagOnCurve    = 0x01
	flagXShort     = 0x02
	flagYShort     = 0x04
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

func glyfAndLoca(glyphs []Glyph) (glyf, loca []byte) {
	var g, l bytes.Buffer
	be := binary.BigEndian
	for i := range glyphs {
		_ = binary.Write(&l, be, uint32(g.Len()))
		data := encodeGlyph(&glyphs[i])
		g.Write(data)
		g.Write(make([]byte, pad4(len(data))-len(data)))
	}
	_ = binary.Write(&l, be, uint32(g.Len()))
	return g.Bytes(), l.Bytes()
}

// encodeGlyph writes a simple glyph. Empty glyphs have no data at all.
func encodeGlyph(g *Glyph) []byte {
	b := glyphBox(g)
	if b.empty {
		return nil
	}
	be := binary.BigEndian
	var buf bytes.Buffer
	w16 := func(v int) { _ = binary.Write(&buf, be, int16(v)) }
	w16(len(g.Contours))
	w16(b.xMin)
	w16(b.yMin)
	w16(b.xMax)
	w16(b.yMax)
	end := -1
	var pts []outline.Point
	for _, c := range g.Contours {
		end += len(c)
		_ = binary.Write(&buf, be, uint16(end))
		pts = append(pts, c...)
	}
	w16(0) // no instructions
	var flags, xs, ys bytes.Buffer
	px, py := 0, 0
	for _, p := range pts {
		var flag byte
		if p.OnCurve {
			flag |= flagOnCurve
		}
		flag |= encodeDelta(&xs, p.X-px, flagXShort, flagXSameOrPos)
		flag |= encodeDelta(&ys, p.Y-py, flagYShort, flagYSameOrPos)
		flags.WriteByte(flag)
		px, py = p.X, p.Y
	}
	buf.Write(flags.Bytes())
	buf.Write(xs.Bytes())
	buf.Write(ys.Bytes())
	return buf.Bytes()
}

// encodeDelta writes a coordinate delta in its shortest form and returns
// the flag bits describing that form.
func encodeDelta(buf *bytes.Buffer, d int, short, sameOrPos byte) byte {
	switch {
	case d == 0:
		return sameOrPos
	case d > 0 && d < 256:
		buf.WriteByte(byte(d))
		return short | sameOrPos
	case d < 0 && d > -256:
		buf.WriteByte(byte(-d))
		return short
	}
	_ = binary.Write(buf, binary.BigEndian, int16(d))
	return 0
}

// Package gapbuffer stores editor lines in a single backing byte array, each
// line's content kept as one contiguous UTF-8 run, while supporting
// grapheme-aware insertion and deletion. GetLine copies a line's content out
// of the backing array into a string.
package gapbuffer

import (
	"fmt"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// LinePageSize is the fixed allocation unit backing every line.
const LinePageSize = 256

// Segment describes one grapheme cluster's byte range and display column
// range within a line's content.
type Segment struct {
	SegIndex             int
	StartByteIndex        int
	EndByteIndex          int
	BytesSize             int
	StartDisplayColIndex  int
	DisplayWidth          int
}

// LineMetadata tracks where a line lives in the backing buffer and how its
// content decomposes into grapheme segments. Byte offsets on Segment and
// ContentLen are relative to BufferStartByteIndex.
type LineMetadata struct {
	BufferStartByteIndex int
	ContentLen           int
	Capacity             int
	Segments             []Segment
	GraphemeCount        int
	DisplayWidth         int
}

// ContentRange returns the byte bounds of live content, relative to the
// line's own start.
func (m *LineMetadata) ContentRange() (start, end int) {
	return 0, m.ContentLen
}

// GetByteIndex maps a segment index to its starting byte offset. Segment 0
// maps to 0; a segment at or beyond grapheme_count maps to content_len.
func (m *LineMetadata) GetByteIndex(seg int) int {
	if seg <= 0 {
		return 0
	}
	if seg >= m.GraphemeCount {
		return m.ContentLen
	}
	return m.Segments[seg].StartByteIndex
}

// GetSegIndex is the inverse of GetByteIndex on segment boundaries, found by
// linear scan.
func (m *LineMetadata) GetSegIndex(byteIdx int) int {
	for i, s := range m.Segments {
		if byteIdx <= s.StartByteIndex {
			return i
		}
	}
	return len(m.Segments)
}

// CheckIsInMiddleOfGrapheme returns the segment that would be split if the
// caret sat at display column col, or false if col is a legal caret
// position.
func (m *LineMetadata) CheckIsInMiddleOfGrapheme(col int) (Segment, bool) {
	for _, s := range m.Segments {
		if col > s.StartDisplayColIndex && col < s.StartDisplayColIndex+s.DisplayWidth {
			return s, true
		}
	}
	return Segment{}, false
}

// LineOutOfBoundsError reports a row index beyond the buffer's line count.
type LineOutOfBoundsError struct{ Row int }

func (e *LineOutOfBoundsError) Error() string {
	return fmt.Sprintf("gapbuffer: line %d out of bounds", e.Row)
}

// ByteOutOfBoundsError reports a byte position beyond a line's content.
type ByteOutOfBoundsError struct{ Pos, ContentLen int }

func (e *ByteOutOfBoundsError) Error() string {
	return fmt.Sprintf("gapbuffer: byte position %d out of bounds (content length %d)", e.Pos, e.ContentLen)
}

// Buffer is the zero-copy gap buffer: a flat byte array partitioned into
// LinePageSize pages, one or more of which back each line.
type Buffer struct {
	data  []byte
	lines []LineMetadata
}

// New returns an empty gap buffer with no lines.
func New() *Buffer {
	return &Buffer{}
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineView holds a copy of a line's content and a pointer to its metadata.
type LineView struct {
	Content string
	Meta    *LineMetadata
}

// GetLine returns row's content, copied out of the backing array into a
// string, plus a pointer to its metadata.
func (b *Buffer) GetLine(row int) (LineView, error) {
	if row < 0 || row >= len(b.lines) {
		return LineView{}, &LineOutOfBoundsError{Row: row}
	}
	line := &b.lines[row]
	content := string(b.data[line.BufferStartByteIndex : line.BufferStartByteIndex+line.ContentLen])
	return LineView{Content: content, Meta: line}, nil
}

// GetStringAt returns the single grapheme cluster starting at display column
// col, or "" if no segment starts there.
func (v LineView) GetStringAt(col int) string {
	for _, s := range v.Meta.Segments {
		if s.StartDisplayColIndex == col {
			return v.Content[s.StartByteIndex:s.EndByteIndex]
		}
	}
	return ""
}

// RightOf returns the content from the segment at or after col to the end
// of the line.
func (v LineView) RightOf(col int) string {
	for _, s := range v.Meta.Segments {
		if s.StartDisplayColIndex >= col {
			return v.Content[s.StartByteIndex:]
		}
	}
	return ""
}

// LeftOf returns the content from the start of the line up to (not
// including) the segment at col.
func (v LineView) LeftOf(col int) string {
	for _, s := range v.Meta.Segments {
		if s.StartDisplayColIndex >= col {
			return v.Content[:s.StartByteIndex]
		}
	}
	return v.Content
}

// End returns the last grapheme cluster in the line, or "" if empty.
func (v LineView) End() string {
	if len(v.Meta.Segments) == 0 {
		return ""
	}
	last := v.Meta.Segments[len(v.Meta.Segments)-1]
	return v.Content[last.StartByteIndex:last.EndByteIndex]
}

// ClipToRange returns a Unicode-safe clip of the line along display columns:
// it skips leading columns below startCol, then consumes whole segments
// whose cumulative width fits within maxWidth.
func (v LineView) ClipToRange(startCol, maxWidth int) string {
	startByte, endByte := -1, -1
	width := 0
	for _, s := range v.Meta.Segments {
		if s.StartDisplayColIndex < startCol {
			continue
		}
		if startByte == -1 {
			startByte = s.StartByteIndex
		}
		if width+s.DisplayWidth > maxWidth {
			break
		}
		width += s.DisplayWidth
		endByte = s.EndByteIndex
	}
	if startByte == -1 {
		return ""
	}
	if endByte == -1 {
		endByte = startByte
	}
	return v.Content[startByte:endByte]
}

// segmentContent splits content into grapheme segments using uniseg cluster
// boundaries, with each segment's display width computed via uniwidth (the
// same width function the offscreen buffer uses for single runes) so a
// cluster's width is never out of step with how it paints on screen.
func segmentContent(content string) ([]Segment, int, int) {
	var segs []Segment
	state := -1
	byteOffset := 0
	colOffset := 0
	segIdx := 0
	remaining := content
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		state = newState
		width := uniwidth.StringWidth(cluster)
		segs = append(segs, Segment{
			SegIndex:             segIdx,
			StartByteIndex:       byteOffset,
			EndByteIndex:         byteOffset + len(cluster),
			BytesSize:            len(cluster),
			StartDisplayColIndex: colOffset,
			DisplayWidth:         width,
		})
		byteOffset += len(cluster)
		colOffset += width
		segIdx++
		remaining = rest
	}
	return segs, segIdx, colOffset
}

func (b *Buffer) rebuildSegments(row int) {
	line := &b.lines[row]
	content := string(b.data[line.BufferStartByteIndex : line.BufferStartByteIndex+line.ContentLen])
	segs, count, width := segmentContent(content)
	line.Segments = segs
	line.GraphemeCount = count
	line.DisplayWidth = width
}

// insertPages grows the backing array by n pages at atOffset, shifting
// everything from atOffset onward to the right, and bumps the
// BufferStartByteIndex of every line whose start is at or past atOffset.
func (b *Buffer) insertPages(atOffset, n int) {
	sz := n * LinePageSize
	grown := make([]byte, len(b.data)+sz)
	copy(grown, b.data[:atOffset])
	copy(grown[atOffset+sz:], b.data[atOffset:])
	b.data = grown
	for i := range b.lines {
		if b.lines[i].BufferStartByteIndex >= atOffset {
			b.lines[i].BufferStartByteIndex += sz
		}
	}
}

// removePages is insertPages' inverse: it shrinks the backing array by n
// pages starting at atOffset.
func (b *Buffer) removePages(atOffset, n int) {
	sz := n * LinePageSize
	copy(b.data[atOffset:], b.data[atOffset+sz:])
	b.data = b.data[:len(b.data)-sz]
	for i := range b.lines {
		if b.lines[i].BufferStartByteIndex > atOffset {
			b.lines[i].BufferStartByteIndex -= sz
		}
	}
}

// AddLine appends an empty line.
func (b *Buffer) AddLine() {
	_ = b.InsertEmptyLine(len(b.lines))
}

// InsertEmptyLine allocates one page at the appropriate buffer offset for a
// new empty line at row, shifting later lines right. Fails if row exceeds
// the current line count.
func (b *Buffer) InsertEmptyLine(row int) error {
	if row < 0 || row > len(b.lines) {
		return &LineOutOfBoundsError{Row: row}
	}
	offset := len(b.data)
	if row < len(b.lines) {
		offset = b.lines[row].BufferStartByteIndex
	}
	b.insertPages(offset, 1)
	b.data[offset] = '\n'

	b.lines = append(b.lines, LineMetadata{})
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = LineMetadata{BufferStartByteIndex: offset, ContentLen: 0, Capacity: LinePageSize}
	return nil
}

// RemoveLine frees row's pages, shifting later lines left, and drops its
// metadata.
func (b *Buffer) RemoveLine(row int) error {
	if row < 0 || row >= len(b.lines) {
		return &LineOutOfBoundsError{Row: row}
	}
	line := b.lines[row]
	b.removePages(line.BufferStartByteIndex, line.Capacity/LinePageSize)
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	return nil
}

// ensureCapacity grows row's own page span so it can hold extra more bytes
// of content (plus the trailing LF), shifting every line after it right.
func (b *Buffer) ensureCapacity(row, extra int) {
	line := &b.lines[row]
	needed := line.ContentLen + extra + 1
	if needed <= line.Capacity {
		return
	}
	pages := (needed - line.Capacity + LinePageSize - 1) / LinePageSize
	atOffset := line.BufferStartByteIndex + line.Capacity
	b.insertPages(atOffset, pages)
	line.Capacity += pages * LinePageSize
}

// InsertTextAtGrapheme is the single entry point for user input: it locates
// the byte position for seg, grows capacity if needed, shifts the tail
// (including the LF) right, copies text into the hole, and re-segments.
func (b *Buffer) InsertTextAtGrapheme(row, seg int, text string) error {
	if row < 0 || row >= len(b.lines) {
		return &LineOutOfBoundsError{Row: row}
	}
	textBytes := []byte(text)
	textLen := len(textBytes)
	if textLen == 0 {
		return nil
	}

	isAppend := seg >= b.lines[row].GraphemeCount
	insertPos := b.lines[row].GetByteIndex(seg)

	b.ensureCapacity(row, textLen)
	line := &b.lines[row]

	absInsert := line.BufferStartByteIndex + insertPos
	absOldLF := line.BufferStartByteIndex + line.ContentLen
	tailLen := absOldLF + 1 - absInsert

	copy(b.data[absInsert+textLen:absInsert+textLen+tailLen], b.data[absInsert:absInsert+tailLen])
	copy(b.data[absInsert:absInsert+textLen], textBytes)

	oldContentLen := line.ContentLen
	oldGraphemeCount := line.GraphemeCount
	oldDisplayWidth := line.DisplayWidth

	line.ContentLen = oldContentLen + textLen
	newLFAbs := line.BufferStartByteIndex + line.ContentLen
	for i := newLFAbs + 1; i < line.BufferStartByteIndex+line.Capacity; i++ {
		b.data[i] = 0
	}
	b.data[newLFAbs] = '\n'

	if isAppend && insertPos == oldContentLen {
		segs, count, width := segmentContent(text)
		for i := range segs {
			segs[i].SegIndex += oldGraphemeCount
			segs[i].StartByteIndex += oldContentLen
			segs[i].EndByteIndex += oldContentLen
			segs[i].StartDisplayColIndex += oldDisplayWidth
		}
		line.Segments = append(line.Segments, segs...)
		line.GraphemeCount += count
		line.DisplayWidth += width
	} else {
		b.rebuildSegments(row)
	}
	return nil
}

// InsertTextAtBytePos inserts raw text at an explicit byte position within a
// line's content, using cursor-position semantics (pos == content_len is
// allowed).
func (b *Buffer) InsertTextAtBytePos(row, pos int, text string) error {
	if row < 0 || row >= len(b.lines) {
		return &LineOutOfBoundsError{Row: row}
	}
	line := &b.lines[row]
	if pos > line.ContentLen {
		return &ByteOutOfBoundsError{Pos: pos, ContentLen: line.ContentLen}
	}
	return b.InsertTextAtGrapheme(row, line.GetSegIndex(pos), text)
}

// DeleteGraphemeAt deletes the single grapheme cluster at seg.
func (b *Buffer) DeleteGraphemeAt(row, seg int) error {
	return b.DeleteRange(row, seg, seg+1)
}

// DeleteRange deletes segments [startSeg, endSeg), shifting the tail
// (including the LF) left over the removed bytes and null-filling the
// vacated capacity. An empty or inverted range is a no-op; endSeg beyond
// the line's grapheme count is clamped.
func (b *Buffer) DeleteRange(row, startSeg, endSeg int) error {
	if row < 0 || row >= len(b.lines) {
		return &LineOutOfBoundsError{Row: row}
	}
	if startSeg >= endSeg {
		return nil
	}
	line := &b.lines[row]
	if endSeg > line.GraphemeCount {
		endSeg = line.GraphemeCount
	}
	if startSeg < 0 {
		startSeg = 0
	}
	if startSeg >= endSeg {
		return nil
	}

	startByte := line.GetByteIndex(startSeg)
	endByte := line.GetByteIndex(endSeg)
	deleteLen := endByte - startByte
	if deleteLen <= 0 {
		return nil
	}

	absStart := line.BufferStartByteIndex + startByte
	absOldLF := line.BufferStartByteIndex + line.ContentLen
	tailLen := absOldLF + 1 - (absStart + deleteLen)

	copy(b.data[absStart:absStart+tailLen], b.data[absStart+deleteLen:absStart+deleteLen+tailLen])

	line.ContentLen -= deleteLen
	newLFAbs := line.BufferStartByteIndex + line.ContentLen
	for i := newLFAbs + 1; i < line.BufferStartByteIndex+line.Capacity; i++ {
		b.data[i] = 0
	}

	b.rebuildSegments(row)
	return nil
}

package termcore

// CharacterSet selects which glyph table printable bytes are translated
// through before being written to the grid.
type CharacterSet uint8

const (
	CharacterSetAscii CharacterSet = iota
	CharacterSetDecGraphics
)

// OscEvent is an opaque OSC (Operating System Command) sequence the parser
// recognized but does not interpret further. Recognized codes (title,
// hyperlink, cwd, clipboard, shell-integration marks) still produce one
// of these alongside any buffer-local effect, so a host that only cares
// about a subset can drain a single FIFO queue instead of special-casing
// each code. OSC codes that Terminal has no handler method for (such as
// OSC 9 notifications) are not queued.
type OscEvent struct {
	Code    int
	Payload string
}

// DsrResponse is a Device Status Report reply the output parser could not
// deliver itself (the parser never writes back to its own input stream).
// The host drains pending_dsr_responses and transmits them to the PTY.
type DsrResponse struct {
	Bytes []byte
}

// AnsiState is the offscreen buffer's parser-visible state: everything the
// VT-100 output parser reads or mutates besides the grid and cursor position.
type AnsiState struct {
	// SavedCursorForDecsc holds the position saved by ESC 7 / CSI s, read by
	// ESC 8 / CSI u. Nil until the first save.
	SavedCursorForDecsc *Pos

	CharacterSet CharacterSet

	// AutoWrap is DECAWM (CSI ?7h/l). Default true.
	AutoWrap bool

	// CurrentStyle is the SGR accumulator applied to subsequently printed cells.
	CurrentStyle Style

	PendingOscEvents    []OscEvent
	PendingDsrResponses []DsrResponse

	// ScrollRegionTop/Bottom is the DECSTBM region, half-open [top, bottom).
	// Defaults to the full buffer height.
	ScrollRegionTop    RowIndex
	ScrollRegionBottom RowIndex
}

// NewAnsiState returns the default parser state for a buffer of the given height.
func NewAnsiState(height RowHeight) AnsiState {
	return AnsiState{
		CharacterSet:       CharacterSetAscii,
		AutoWrap:           true,
		ScrollRegionTop:    0,
		ScrollRegionBottom: RowIndex(height),
	}
}

// PushOscEvent appends an OSC event in parse order.
func (s *AnsiState) PushOscEvent(code int, payload string) {
	s.PendingOscEvents = append(s.PendingOscEvents, OscEvent{Code: code, Payload: payload})
}

// PushDsrResponse appends a device-status reply in parse order.
func (s *AnsiState) PushDsrResponse(b []byte) {
	s.PendingDsrResponses = append(s.PendingDsrResponses, DsrResponse{Bytes: b})
}

// DrainOscEvents returns and clears all queued OSC events, FIFO order.
func (s *AnsiState) DrainOscEvents() []OscEvent {
	events := s.PendingOscEvents
	s.PendingOscEvents = nil
	return events
}

// DrainDsrResponses returns and clears all queued DSR responses, FIFO order.
func (s *AnsiState) DrainDsrResponses() []DsrResponse {
	responses := s.PendingDsrResponses
	s.PendingDsrResponses = nil
	return responses
}

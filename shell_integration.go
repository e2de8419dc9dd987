package termcore

import (
	"strings"

	"github.com/danielgatis/go-ansicode"
)

// PromptMark records one OSC 133 shell-integration mark: where a prompt,
// command, or command output begins or ends. The core has no scrollback, so
// Row is simply the grid row the mark landed on at write time — a host that
// keeps its own history is responsible for remembering where that row ended
// up once it scrolls off.
type PromptMark struct {
	Type     ansicode.ShellIntegrationMark
	Row      int
	ExitCode int
}

// recordPromptMark appends a mark for the cursor's current row, called from
// the ShellIntegrationMark Handler method in vt100_handler.go.
func (t *Terminal) recordPromptMark(mark ansicode.ShellIntegrationMark, exitCode int) {
	t.promptMarks = append(t.promptMarks, PromptMark{
		Type:     mark,
		Row:      int(t.buf.cursorPos.Row),
		ExitCode: exitCode,
	})
}

// PromptMarks returns a copy of all recorded marks, oldest first.
func (t *Terminal) PromptMarks() []PromptMark {
	marks := make([]PromptMark, len(t.promptMarks))
	copy(marks, t.promptMarks)
	return marks
}

// PromptMarkCount returns the number of recorded marks.
func (t *Terminal) PromptMarkCount() int { return len(t.promptMarks) }

// ClearPromptMarks discards all recorded marks.
func (t *Terminal) ClearPromptMarks() { t.promptMarks = nil }

// NextPromptRow returns the row of the first mark after currentRow, or -1 if
// none exists. markType of -1 matches any mark type.
func (t *Terminal) NextPromptRow(currentRow int, markType ansicode.ShellIntegrationMark) int {
	for _, mark := range t.promptMarks {
		if mark.Row > currentRow && (int(markType) == -1 || mark.Type == markType) {
			return mark.Row
		}
	}
	return -1
}

// PrevPromptRow returns the row of the last mark before currentRow, or -1 if
// none exists. markType of -1 matches any mark type.
func (t *Terminal) PrevPromptRow(currentRow int, markType ansicode.ShellIntegrationMark) int {
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := t.promptMarks[i]
		if mark.Row < currentRow && (int(markType) == -1 || mark.Type == markType) {
			return mark.Row
		}
	}
	return -1
}

// GetPromptMarkAt returns the mark recorded at row, or nil if none exists.
func (t *Terminal) GetPromptMarkAt(row int) *PromptMark {
	for i := range t.promptMarks {
		if t.promptMarks[i].Row == row {
			mark := t.promptMarks[i]
			return &mark
		}
	}
	return nil
}

// lineText renders one grid row as plain text, Void cells skipped and
// trailing Spacer cells trimmed.
func (t *Terminal) lineText(row RowIndex) string {
	line := t.buf.Line(row)
	if line == nil {
		return ""
	}
	var b strings.Builder
	lastNonBlank := -1
	for i, pc := range line {
		if pc.Kind == PixelCharPlainText {
			lastNonBlank = i
		}
	}
	for i := 0; i <= lastNonBlank; i++ {
		pc := line[i]
		switch pc.Kind {
		case PixelCharPlainText:
			b.WriteRune(pc.DisplayChar)
		case PixelCharSpacer:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// GetLastCommandOutput returns the text between the most recent matched
// CommandExecuted/CommandFinished mark pair, trimming trailing blank lines.
// Returns "" if no complete pair is recorded.
func (t *Terminal) GetLastCommandOutput() string {
	var lastExecuted, lastFinished *PromptMark
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := &t.promptMarks[i]
		if lastFinished == nil && mark.Type == ansicode.CommandFinished {
			lastFinished = mark
		}
		if lastExecuted == nil && mark.Type == ansicode.CommandExecuted {
			lastExecuted = mark
		}
		if lastExecuted != nil && lastFinished != nil {
			if lastExecuted.Row < lastFinished.Row {
				break
			}
			lastExecuted, lastFinished = nil, nil
		}
	}
	if lastExecuted == nil || lastFinished == nil {
		return ""
	}

	var lines []string
	for row := lastExecuted.Row; row < lastFinished.Row; row++ {
		lines = append(lines, t.lineText(RowIndex(row)))
	}

	lastNonEmpty := -1
	for i, line := range lines {
		if line != "" {
			lastNonEmpty = i
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

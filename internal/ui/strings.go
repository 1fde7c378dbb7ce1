package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end. Used for file paths in titles.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// lineCount returns the number of display rows in s.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// clipLines splits s into exactly height rows, each cut to width cells.
func clipLines(s string, width, height int) []string {
	rows := make([]string, 0, height)
	if s != "" {
		for _, line := range strings.Split(s, "\n") {
			if len(rows) == height {
				break
			}
			rows = append(rows, ansi.Truncate(line, width, ""))
		}
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

// padCells right-pads a possibly styled line to width cells.
func padCells(line string, width int) string {
	if w := ansi.StringWidth(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

// inputWindow trims the text around the cursor cell so that before, at and
// after fit in width cells with the cursor visible. Widths are display cells,
// so wide runes count twice.
func inputWindow(before, at, after string, width int) (string, string) {
	avail := width - runewidth.StringWidth(at)
	if avail <= 0 {
		return "", ""
	}
	before = keepTail(before, avail)
	after = runewidth.Truncate(after, avail-runewidth.StringWidth(before), "")
	return before, after
}

// keepTail drops leading runes until s fits in width cells.
func keepTail(s string, width int) string {
	for s != "" && runewidth.StringWidth(s) > width {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

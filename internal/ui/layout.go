package ui

import "time"

// Screen split.
const (
	// TranscriptHeightPercent is the share of rows given to the transcript.
	TranscriptHeightPercent = 90

	// MinBottomHeight keeps one content row inside the bordered bottom panes.
	MinBottomHeight = 3
)

// Log overlay limits.
const (
	// LogOverlayLines is the number of log records read for the overlay.
	LogOverlayLines = 500
)

// Timing constants.
const (
	// DefaultRequestTimeout bounds a backend call when none is configured.
	DefaultRequestTimeout = 2 * time.Minute

	// ProbeTimeout bounds the startup reachability check.
	ProbeTimeout = 3 * time.Second
)

const noticeAwaiting = "still waiting for the model…"

// layoutHeights splits the terminal height into transcript and bottom rows.
func layoutHeights(height int) (top, bottom int) {
	if height <= 0 {
		return 0, 0
	}
	top = height * TranscriptHeightPercent / 100
	bottom = height - top
	if bottom < MinBottomHeight {
		bottom = min(MinBottomHeight, height)
		top = height - bottom
	}
	return top, bottom
}

// layoutWidths splits the bottom row between the mode and input panes.
func layoutWidths(width int) (left, right int) {
	left = width / 2
	return left, width - left
}

// inner returns the content size of a bordered box.
func inner(width, height int) (int, int) {
	return max(width-2, 0), max(height-2, 0)
}

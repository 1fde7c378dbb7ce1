// Package ui provides the terminal chat interface for paa.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a *state.State holding the mode,
// the input buffer and the conversation log; Update is the only code that
// mutates it. Key presses are dispatched on (mode, key) in dispatch.go.
//
// # Modes
//
//   - Navigation: the default. Scroll the transcript, open the help or log
//     overlay, cycle the theme, or quit with q.
//   - Chat: keystrokes edit the input buffer; Enter sends it to the model.
//
// Esc toggles between the two. Ctrl+C quits from anywhere.
//
// # Event Flow
//
//  1. Run() builds the Model and starts the program on the alternate screen
//  2. Init() probes the backend when it implements Pinger
//  3. Enter in Chat mode appends the message and starts a generateCmd
//  4. The reply arrives as a responseMsg; replies for anything but the
//     pending request are dropped
//  5. Quitting cancels the model context, abandoning an outstanding request
//
// # Layout
//
// The top 90% of the screen holds the transcript, or an overlay. The bottom
// row is split between the mode indicator and the input pane. render() is a
// pure function of the state and a frame describing size, theme and scroll.
package ui

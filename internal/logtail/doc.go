// Package logtail reads the tail of paa's log file for the in-app log overlay.
//
// # Overview
//
// The terminal belongs to the UI, so paa logs to a file. Pressing "l" in
// navigation mode opens an overlay with the most recent records; this package
// supplies them.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one pass
// with O(maxLines) memory:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, l := range lines {
//		fmt.Println(l.String())
//	}
//
// A missing file yields no lines and no error, since nothing may have been
// logged yet.
//
// # Record Format
//
// Records written by internal/logging are zap JSON objects. Parse extracts the
// timestamp, level and message and keeps the remaining keys as Fields:
//
//	{"level":"info","ts":"2026-10-19T14:03:22.120+0200","msg":"message submitted","chars":12}
//	→ 14:03:22 INFO  message submitted chars=12
//
// Anything that is not a JSON object, for example a panic trace, passes
// through unchanged.
package logtail

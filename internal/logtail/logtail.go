package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Line is one log record. Records that are not zap JSON keep only Raw and
// Message.
type Line struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]any
	Raw     string
}

// reserved keys written by the zap encoder config in internal/logging.
var reserved = map[string]bool{"ts": true, "level": true, "msg": true, "caller": true, "logger": true, "stacktrace": true}

// Read returns the last maxLines records of the file at path, oldest first.
// A non-positive maxLines returns every record. A missing file is not an error.
func Read(path string, maxLines int) ([]Line, error) {
	raw, err := readRaw(path, maxLines)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, Parse(r))
	}
	return lines, nil
}

// Parse decodes a single zap JSON record.
func Parse(raw string) Line {
	line := Line{Raw: raw, Message: raw}
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return line
	}
	if msg, ok := rec["msg"].(string); ok {
		line.Message = msg
	}
	if lvl, ok := rec["level"].(string); ok {
		line.Level = strings.ToUpper(lvl)
	}
	if ts, ok := rec["ts"].(string); ok {
		if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			line.Time = t
		} else if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			line.Time = t
		}
	}
	for k, v := range rec {
		if reserved[k] {
			continue
		}
		if line.Fields == nil {
			line.Fields = make(map[string]any)
		}
		line.Fields[k] = v
	}
	return line
}

// String formats the record as "15:04:05 LEVEL message key=value ...".
func (l Line) String() string {
	if l.Level == "" && l.Time.IsZero() {
		return l.Message
	}
	var b strings.Builder
	if !l.Time.IsZero() {
		b.WriteString(l.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", l.Level, l.Message)
	keys := make([]string, 0, len(l.Fields))
	for k := range l.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.Fields[k])
	}
	return b.String()
}

func readRaw(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

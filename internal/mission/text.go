package mission

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TextLog appends one tab-separated line per mission:
//
//	<RFC3339 time> <outcome> <score> <destroyed> <duration> <source> <player> <impactor>
type TextLog struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

// OpenText opens (or creates) the text log at path for appending.
func OpenText(path string) (*TextLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open mission log: %w", err)
	}
	return &TextLog{path: path, f: f}, nil
}

// Append writes r as a single line.
func (l *TextLog) Append(_ context.Context, r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.WriteString(formatLine(r)); err != nil {
		return fmt.Errorf("append mission: %w", err)
	}
	return nil
}

// Recent reads the file back and returns the last n records, newest first.
// Lines that do not parse are skipped.
func (l *TextLog) Recent(_ context.Context, n int) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("read mission log: %w", err)
	}
	defer f.Close()

	var all []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if r, ok := parseLine(sc.Text()); ok {
			all = append(all, r)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan mission log: %w", err)
	}

	if n <= 0 {
		return nil, nil
	}
	out := make([]Record, 0, min(n, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// Close closes the underlying file.
func (l *TextLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

func formatLine(r Record) string {
	fields := []string{
		r.At.UTC().Format(time.RFC3339),
		string(r.Outcome),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Destroyed),
		r.Duration.Round(time.Millisecond).String(),
		clean(r.Source),
		clean(r.Player),
		clean(r.Impactor),
	}
	return strings.Join(fields, "\t") + "\n"
}

func parseLine(line string) (Record, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) != 8 {
		return Record{}, false
	}
	at, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return Record{}, false
	}
	score, err := strconv.Atoi(parts[2])
	if err != nil {
		return Record{}, false
	}
	destroyed, err := strconv.Atoi(parts[3])
	if err != nil {
		return Record{}, false
	}
	dur, err := time.ParseDuration(parts[4])
	if err != nil {
		return Record{}, false
	}
	return Record{
		At:        at,
		Outcome:   Outcome(parts[1]),
		Score:     score,
		Destroyed: destroyed,
		Duration:  dur,
		Source:    parts[5],
		Player:    parts[6],
		Impactor:  parts[7],
	}, true
}

// clean keeps free-text fields on one line and in one column.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

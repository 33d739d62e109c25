// Package history keeps the append-only transcript of a chat session.
package history

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Entry prefixes
const (
	UserPrefix = "You: "
	BotPrefix  = "Bot: "
)

// Entry is one recorded line of a past exchange.
type Entry string

// UserEntry formats a question line.
func UserEntry(question string) Entry {
	return Entry(UserPrefix + question)
}

// BotEntry formats an answer line.
func BotEntry(answer string) Entry {
	return Entry(BotPrefix + answer)
}

// IsUser reports whether the entry records a question.
func (e Entry) IsUser() bool {
	return strings.HasPrefix(string(e), UserPrefix)
}

// Text returns the entry without its speaker prefix.
func (e Entry) Text() string {
	s := string(e)
	if after, ok := strings.CutPrefix(s, UserPrefix); ok {
		return after
	}
	if after, ok := strings.CutPrefix(s, BotPrefix); ok {
		return after
	}
	return s
}

// Exchange pairs a question with the answer it received.
type Exchange struct {
	Question string
	Answer   string
}

// Log is an ordered, append-only sequence of entries. Entries are never
// removed or edited; a completed exchange always adds exactly two.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Append records one completed exchange.
func (l *Log) Append(question, answer string) {
	l.entries = append(l.entries, UserEntry(question), BotEntry(answer))
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Exchanges returns the log as question/answer pairs, oldest first.
func (l *Log) Exchanges() []Exchange {
	out := make([]Exchange, 0, len(l.entries)/2)
	for i := 0; i+1 < len(l.entries); i += 2 {
		out = append(out, Exchange{
			Question: l.entries[i].Text(),
			Answer:   l.entries[i+1].Text(),
		})
	}
	return out
}

// Encode serializes the log for session storage.
func (l *Log) Encode() ([]byte, error) {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = string(e)
	}
	data, err := sonic.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// Decode restores a log produced by Encode. An odd number of entries or a
// line out of You/Bot order is rejected.
func Decode(data []byte) (*Log, error) {
	var lines []string
	if err := sonic.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("failed to decode history: odd entry count %d", len(lines))
	}

	l := &Log{entries: make([]Entry, len(lines))}
	for i, line := range lines {
		e := Entry(line)
		wantUser := i%2 == 0
		if e.IsUser() != wantUser || (!wantUser && !strings.HasPrefix(line, BotPrefix)) {
			return nil, fmt.Errorf("failed to decode history: entry %d out of order", i)
		}
		l.entries[i] = e
	}
	return l, nil
}

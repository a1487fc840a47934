package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Default conversation bounds.
const (
	// DefaultCapacity is the number of turns kept in short-term history.
	DefaultCapacity = 20

	// summaryTurns is how many recent turns feed the rolling summary.
	summaryTurns = 10

	// recentTurns is how many turns a Context snapshot carries.
	recentTurns = 5
)

// Turn is one conversation message.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Context is an immutable snapshot of conversation state handed to the
// planner and replanner as prompt context.
type Context struct {
	// Summary is the rolling conversation summary.
	Summary string

	// Recent holds the most recent turns, oldest first.
	Recent []Turn
}

// HistoryText renders the recent turns as "role: content" lines.
func (c Context) HistoryText() string {
	lines := make([]string, 0, len(c.Recent))
	for _, t := range c.Recent {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}
	return strings.Join(lines, "\n")
}

// Conversation is the bounded short-term conversation history. It is safe
// for concurrent use; within a single run the engine only reads from it.
type Conversation struct {
	mu       sync.RWMutex
	capacity int
	turns    []Turn
}

// NewConversation creates a conversation bounded to capacity turns.
// A non-positive capacity uses DefaultCapacity.
func NewConversation(capacity int) *Conversation {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Conversation{capacity: capacity}
}

// Append adds a turn, evicting the oldest once capacity is exceeded.
func (c *Conversation) Append(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, Turn{Role: role, Content: content, Timestamp: time.Now()})
	if len(c.turns) > c.capacity {
		c.turns = c.turns[len(c.turns)-c.capacity:]
	}
}

// Commit records a completed exchange: the user request and the agent's
// final answer. This is the only write the engine performs, after a run
// finishes.
func (c *Conversation) Commit(userInput, finalAnswer string) {
	c.Append("user", userInput)
	if finalAnswer != "" {
		c.Append("assistant", finalAnswer)
	}
}

// Snapshot captures the current summary and recent turns for prompt use.
func (c *Conversation) Snapshot() Context {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recent := c.tail(recentTurns)
	return Context{
		Summary: c.summaryLocked(),
		Recent:  recent,
	}
}

// Summary returns the rolling summary: the concatenated content of the most
// recent turns.
func (c *Conversation) Summary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summaryLocked()
}

func (c *Conversation) summaryLocked() string {
	tail := c.tail(summaryTurns)
	parts := make([]string, 0, len(tail))
	for _, t := range tail {
		parts = append(parts, t.Content)
	}
	return strings.Join(parts, "\n")
}

// tail returns a copy of the last n turns. Callers must hold the lock.
func (c *Conversation) tail(n int) []Turn {
	start := len(c.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(c.turns)-start)
	copy(out, c.turns[start:])
	return out
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

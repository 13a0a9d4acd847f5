// Package command implements the Command pattern with a bounded,
// cursor-based undo/redo history, grounded on
// original_source/forge2d/src/commands.rs.
package command

import (
	"fmt"

	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/internal/engerr"
)

// Command is a closed transaction with a forward effect and its
// inverse over the World.
type Command interface {
	Execute(w *ecsworld.World) error
	Undo(w *ecsworld.World) error
	Description() string
}

// History is a bounded deque of executed commands plus a cursor: at
// index k, indices [0,k) are the applied prefix.
type History struct {
	commands []Command
	cursor   int
	capacity int
}

// NewHistory returns an empty History bounded to capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// Execute runs cmd.Execute. On success: any redoable tail is dropped,
// cmd is appended, and if capacity is exceeded the oldest entry is
// dropped and the cursor clamped. On error, the history is unchanged.
func (h *History) Execute(w *ecsworld.World, cmd Command) error {
	if err := cmd.Execute(w); err != nil {
		return err
	}

	if h.cursor < len(h.commands) {
		h.commands = h.commands[:h.cursor]
	}
	h.commands = append(h.commands, cmd)

	if len(h.commands) > h.capacity {
		h.commands = h.commands[1:]
	} else {
		h.cursor = len(h.commands)
		return nil
	}
	h.cursor = len(h.commands)
	return nil
}

// Undo reverts the command before the cursor and moves the cursor back.
func (h *History) Undo(w *ecsworld.World) error {
	if h.cursor == 0 {
		return fmt.Errorf("command: undo: %w", engerr.ErrNothingToUndo)
	}
	idx := h.cursor - 1
	if err := h.commands[idx].Undo(w); err != nil {
		return err
	}
	h.cursor = idx
	return nil
}

// Redo re-applies the command at the cursor and advances it.
func (h *History) Redo(w *ecsworld.World) error {
	if h.cursor == len(h.commands) {
		return fmt.Errorf("command: redo: %w", engerr.ErrNothingToRedo)
	}
	if err := h.commands[h.cursor].Execute(w); err != nil {
		return err
	}
	h.cursor++
	return nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor < len(h.commands) }

// Clear empties the history.
func (h *History) Clear() {
	h.commands = nil
	h.cursor = 0
}

// Len returns the number of commands currently retained.
func (h *History) Len() int { return len(h.commands) }

// Cursor returns the current cursor position.
func (h *History) Cursor() int { return h.cursor }

package usecase

import (
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shandysiswandi/postlearn/internal/identity/entity"
)

// SetDigit stores raw (empty or a single character) in slot index. A filled
// slot moves the cursor to the next slot unless it is the last one. An index
// outside the slots or a raw value longer than one character is ignored and
// reported as false.
func (l *Login) SetDigit(index int, raw string) bool {
	if utf8.RuneCountInString(raw) > 1 {
		return false
	}

	l.mu.Lock()
	if index < 0 || index >= l.codeLength {
		l.mu.Unlock()
		return false
	}

	l.slots[index] = raw

	moved := -1
	if raw != "" && index < l.codeLength-1 {
		l.focus = index + 1
		moved = l.focus
	}
	l.mu.Unlock()

	l.notifyFocus(moved)
	return true
}

// HandleKey applies navigation keys pressed in slot index. It never changes
// slot contents: Backspace only moves back when the slot is already empty.
func (l *Login) HandleKey(index int, key entity.Key) bool {
	l.mu.Lock()
	if index < 0 || index >= l.codeLength {
		l.mu.Unlock()
		return false
	}

	moved := -1
	switch key {
	case entity.KeyBackspace:
		if l.slots[index] == "" && index > 0 {
			moved = index - 1
		}
	case entity.KeyArrowLeft:
		if index > 0 {
			moved = index - 1
		}
	case entity.KeyArrowRight:
		if index < l.codeLength-1 {
			moved = index + 1
		}
	}

	if moved >= 0 {
		l.focus = moved
	}
	l.mu.Unlock()

	l.notifyFocus(moved)
	return true
}

// HandlePaste replaces every slot with the leading characters of text, one
// per slot, leaving the rest empty. Characters are not filtered. The cursor
// lands on the first empty slot, or the last slot when all are filled.
func (l *Login) HandlePaste(text string) {
	runes := []rune(text)
	head := lo.Slice(runes, 0, l.codeLength)

	l.mu.Lock()
	slots := make([]string, l.codeLength)
	for i, r := range head {
		slots[i] = string(r)
	}
	l.slots = slots

	next := lo.IndexOf(slots, "")
	if next < 0 {
		next = l.codeLength - 1
	}
	l.focus = next
	l.mu.Unlock()

	l.notifyFocus(next)
}

// IsComplete reports whether every slot holds a character.
func (l *Login) IsComplete() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.isComplete()
}

// isComplete expects mu to be held.
func (l *Login) isComplete() bool {
	return lo.EveryBy(l.slots, func(s string) bool { return s != "" })
}

// Package history keeps bounded undo and redo stacks of document snapshots.
package history

import "cellsketch/internal/doc"

// Limit is the maximum number of undo snapshots kept.
const Limit = 100

type Manager struct {
	undo []*doc.Document
	redo []*doc.Document
}

func New() *Manager {
	return &Manager{}
}

// Snapshot records a deep copy of d as the state to return to, evicting the
// oldest entry past Limit. Any redo history is discarded.
func (m *Manager) Snapshot(d *doc.Document) {
	m.Record(d.Clone())
}

// Record is Snapshot for a copy the caller already made; the manager takes
// ownership of d.
func (m *Manager) Record(d *doc.Document) {
	m.undo = append(m.undo, d)
	if len(m.undo) > Limit {
		m.undo[0] = nil
		m.undo = m.undo[1:]
	}
	m.redo = m.redo[:0]
}

// Undo returns the previous document, saving cur for Redo. It reports false
// when there is nothing to undo.
func (m *Manager) Undo(cur *doc.Document) (*doc.Document, bool) {
	if len(m.undo) == 0 {
		return cur, false
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cur.Clone())
	return prev, true
}

func (m *Manager) Redo(cur *doc.Document) (*doc.Document, bool) {
	if len(m.redo) == 0 {
		return cur, false
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cur.Clone())
	if len(m.undo) > Limit {
		m.undo = m.undo[1:]
	}
	return next, true
}

// Reset drops both stacks.
func (m *Manager) Reset() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }
func (m *Manager) Len() int      { return len(m.undo) }
func (m *Manager) RedoLen() int  { return len(m.redo) }

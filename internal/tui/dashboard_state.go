package tui

import "github.com/akyairhashvil/mvno/internal/config"

// ViewState tracks the cursor and side list layout.
type ViewState struct {
	cursor    int
	listWidth int
	// expansionDirty is set when the open groups changed and not yet saved.
	expansionDirty bool
	loaded         bool
}

func newViewState(listWidth int) *ViewState {
	if listWidth < config.MinListWidth {
		listWidth = config.DefaultListWidth
	}
	return &ViewState{listWidth: listWidth}
}

// clampCursor keeps the cursor on an existing row.
func (v *ViewState) clampCursor(rows int) {
	if v.cursor >= rows {
		v.cursor = rows - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// ModalManager tracks which overlay owns the keyboard.
type ModalManager struct {
	current ModalState
}

func newModalManager() *ModalManager {
	return &ModalManager{}
}

func (m *ModalManager) ActiveModal() ModalType {
	if m.current == nil {
		return ModalNone
	}
	return m.current.Type()
}

func (m *ModalManager) IsOpen() bool {
	return m.current != nil
}

func (m *ModalManager) Open(state ModalState) {
	m.current = state
}

func (m *ModalManager) Close() {
	m.current = nil
}

func (m *ModalManager) Is(t ModalType) bool {
	return m.current != nil && m.current.Type() == t
}

func (m *ModalManager) EditState() (*EditState, bool) {
	state, ok := m.current.(*EditState)
	return state, ok
}

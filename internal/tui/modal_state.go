package tui

type ModalType int

const (
	ModalNone ModalType = iota
	ModalEdit
	ModalSearch
	ModalHelp
)

type ModalState interface {
	Type() ModalType
}

// EditState is the task being edited.
type EditState struct {
	TaskID string
}

func (s *EditState) Type() ModalType { return ModalEdit }

type SearchState struct{}

func (s *SearchState) Type() ModalType { return ModalSearch }

type HelpState struct{}

func (s *HelpState) Type() ModalType { return ModalHelp }

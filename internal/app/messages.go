package app

// Kind names a semantic action produced by key classification.
type Kind int

const (
	MsgQuit Kind = iota
	MsgForceQuit
	MsgSwitchToNoteList
	MsgSwitchToCalendar
	MsgSwitchToTasks
	MsgPreviousMonth
	MsgNextMonth
	MsgSave
	MsgChar
	MsgBackspace
	MsgEnterSearch
	MsgExitSearch
	MsgPreviousNote
	MsgNextNote
	MsgOpenNote
	MsgNewNote
	MsgRenameNote
	MsgSetTitle
	MsgDeleteNote
	MsgConfirmDelete
	MsgToggleHelp
	MsgToggleFocus
	MsgPreviousTag
	MsgNextTag
	MsgSelectTag
	MsgNewLine
	MsgPreviousTask
	MsgNextTask
	MsgToggleTaskComplete
	MsgNewTask
	MsgDeleteTask
	MsgCursorLeft
	MsgCursorRight
	MsgCursorUp
	MsgCursorDown
	MsgEnterTagInput
	MsgAddTag
	MsgEnterInsertMode
	MsgEnterNormalMode
	MsgEnterCommandMode
	MsgExecuteCommand
)

// Message is one classified input. Runes is only set for MsgChar and may
// hold several runes when text is pasted.
type Message struct {
	Kind  Kind
	Runes []rune
}

func message(k Kind) Message {
	return Message{Kind: k}
}

func charMsg(r ...rune) Message {
	return Message{Kind: MsgChar, Runes: r}
}

package tui

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardChanged is sent when the board store reports a change, whether it
// came from this UI or another caller sharing the store.
type MsgBoardChanged struct {
	Command string
}

func (MsgBoardChanged) sealed() {}

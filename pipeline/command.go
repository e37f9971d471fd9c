package pipeline

// Command is a keyboard command polled once per frame cycle.  Input is
// frame-synchronous, one pending key is decoded at the top of each
// iteration and anything unrecognised maps to CmdNone.
type Command int

const (
	// CmdNone means no pending input this cycle
	CmdNone Command = iota
	// CmdQuit triggers an ordered shutdown of the session
	CmdQuit
	// CmdToggleDebug switches between the default and debug confidence
	// thresholds
	CmdToggleDebug
	// CmdScreenshot saves the current annotated frame to disk
	CmdScreenshot
)

const keyEscape = 27

// DecodeKey maps a waitKey code to a Command
func DecodeKey(key int) Command {

	switch key {
	case 'q', 'Q', keyEscape:
		return CmdQuit
	case 'd', 'D':
		return CmdToggleDebug
	case 's', 'S':
		return CmdScreenshot
	default:
		return CmdNone
	}
}

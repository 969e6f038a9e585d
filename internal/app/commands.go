package app

import (
	"fmt"
	"strings"
)

// executeCommand runs the ':' input. The leading ':' is not part of the
// command name.
func (r *Reducer) executeCommand(s *State) {
	input := strings.TrimSpace(strings.TrimPrefix(s.CommandInput, ":"))
	s.CommandInput = ""

	switch input {
	case "w", "write":
		r.save(s)
	case "q", "quit":
		r.Apply(s, message(MsgQuit))
	case "wq":
		r.save(s)
		if !s.Dirty {
			s.Running = false
		}
	default:
		s.StatusMessage = fmt.Sprintf("Not a command: %s", input)
	}

	if s.Mode == ModeCommand {
		s.Mode = ModeNormal
	}
}

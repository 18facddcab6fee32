package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/connect4/tui/internal/model"
)

var (
	// ErrUnknownType marks frames with a discriminant this client does not
	// recognize. Callers log and drop them.
	ErrUnknownType = errors.New("unknown event type")

	errMissingType = errors.New("frame has no type field")
)

// envelope is the superset of fields any inbound frame may carry.
type envelope struct {
	Type    EventType        `json:"type"`
	Game    *model.Game      `json:"game"`
	Result  model.GameResult `json:"result"`
	Winner  *model.Player    `json:"winner"`
	Message string           `json:"message"`
}

// Decode parses one inbound frame into its event variant. Any returned
// error means the frame is dropped; decode failures never reach the
// session state machine.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse frame: %w", err)
	}

	switch env.Type {
	case EventGameStart:
		if env.Game == nil {
			return nil, fmt.Errorf("%s: missing game payload", env.Type)
		}
		return GameStart{Game: env.Game}, nil
	case EventMoveMade:
		if env.Game == nil {
			return nil, fmt.Errorf("%s: missing game payload", env.Type)
		}
		return MoveMade{Game: env.Game}, nil
	case EventGameEnd:
		if env.Game == nil {
			return nil, fmt.Errorf("%s: missing game payload", env.Type)
		}
		return GameEnd{Game: env.Game, Result: env.Result, Winner: env.Winner}, nil
	case EventRejoined:
		if env.Game == nil {
			return nil, fmt.Errorf("%s: missing game payload", env.Type)
		}
		return Rejoined{Game: env.Game}, nil
	case EventError:
		return ServerError{Message: env.Message}, nil
	case "":
		return nil, errMissingType
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

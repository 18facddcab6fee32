package session

// CanSubmitMove reports whether a move attempt by identity in column is
// worth sending right now: the session must be Playing and the snapshot's
// current turn must be the local player's piece. This is a UX pre-check
// only; the server remains the arbiter and may still reject the move.
func CanSubmitMove(s State, identity string, column int) bool {
	if s.Status != StatusPlaying || s.Game == nil {
		return false
	}
	if column < 0 || column >= s.Game.Columns() {
		return false
	}
	piece, ok := s.Game.PieceOf(identity)
	if !ok {
		return false
	}
	return s.Game.CurrentTurn == piece
}

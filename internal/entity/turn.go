package entity

// Turn is one request from the transport: the opponent's last move, if any, and the
// moves that are legal right now. The legal list is authoritative and keeps its order.
type Turn struct {
	Opponent   *Move  `json:"opponent,omitempty"`
	LegalMoves []Move `json:"legal_moves" validate:"max=9,unique,dive"`
}

func (that *Turn) HasOpponentMove() bool {
	return that.Opponent != nil
}

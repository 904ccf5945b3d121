package request

// StartSessionRequest is the request body for starting a blackjack session
type StartSessionRequest struct {
	PlayerID string `json:"player_id"`
	Wager    int64  `json:"wager"`
}

// SetBalanceRequest is the request body for an administrative balance overwrite
type SetBalanceRequest struct {
	Amount int64 `json:"amount"`
}

// SetCreditsRequest is the request body for an administrative credits overwrite
type SetCreditsRequest struct {
	Amount int64 `json:"amount"`
}

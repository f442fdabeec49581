package judgment

import "errors"

// RuleError is a rejected player action. Nothing in the game changes when one is returned.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Code + ": " + e.Message
}

// Is matches any RuleError with the same code, so messages may vary per call site.
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	return ok && t.Code == e.Code
}

func NewRuleError(code, message string) *RuleError {
	return &RuleError{Code: code, Message: message}
}

var (
	ErrNotYourTurn        = NewRuleError("NOT_YOUR_TURN", "It is not your turn")
	ErrInvalidBidRange    = NewRuleError("INVALID_BID_RANGE", "Bid outside allowed range")
	ErrDealerBidForbidden = NewRuleError("DEALER_BID_FORBIDDEN", "Dealer bid cannot make total bids equal cards dealt")
	ErrCardNotInHand      = NewRuleError("CARD_NOT_IN_HAND", "Card not in hand")
	ErrSuitFollowRequired = NewRuleError("SUIT_FOLLOW_REQUIRED", "You must follow suit when possible")
	ErrWrongPhase         = NewRuleError("WRONG_PHASE", "That action is not allowed in this phase")
	ErrGameFinished       = NewRuleError("GAME_FINISHED", "The game has finished")
	ErrTooFewPlayers      = NewRuleError("TOO_FEW_PLAYERS", "At least two players are required")
	ErrInvalidBaseCards   = NewRuleError("INVALID_BASE_CARDS", "Base hand must be 4, 8 or 16")
)

// Code extracts the rule code of err, or "" when err is not a RuleError.
func Code(err error) string {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Code
	}
	return ""
}

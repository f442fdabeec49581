package judgment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleError(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("NOT_YOUR_TURN: It is not your turn", ErrNotYourTurn.Error())
	assert.Equal("NOT_YOUR_TURN", Code(ErrNotYourTurn))
	assert.Equal("NOT_YOUR_TURN", Code(fmt.Errorf("bid: %w", ErrNotYourTurn)))
	assert.Empty(Code(errors.New("boom")))

	custom := NewRuleError("INVALID_BID_RANGE", "Bid must be between 0 and 3")
	assert.ErrorIs(custom, ErrInvalidBidRange)
	assert.NotErrorIs(custom, ErrNotYourTurn)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardTransitions(t *testing.T) {
	assert.True(t, BoardTransitions.Allows(RequestStatusNew, RequestStatusInProgress))
	assert.True(t, BoardTransitions.Allows(RequestStatusNew, RequestStatusScrap))
	assert.True(t, BoardTransitions.Allows(RequestStatusInProgress, RequestStatusNew))
	assert.True(t, BoardTransitions.Allows(RequestStatusInProgress, RequestStatusRepaired))
	assert.True(t, BoardTransitions.Allows(RequestStatusInProgress, RequestStatusScrap))

	// Board treats repaired as terminal, so new can never jump there.
	assert.False(t, BoardTransitions.Allows(RequestStatusNew, RequestStatusRepaired))
	assert.Empty(t, BoardTransitions.Targets(RequestStatusRepaired))
	assert.Empty(t, BoardTransitions.Targets(RequestStatusScrap))
}

func TestDetailTransitions(t *testing.T) {
	assert.True(t, DetailTransitions.Allows(RequestStatusNew, RequestStatusInProgress))
	assert.True(t, DetailTransitions.Allows(RequestStatusInProgress, RequestStatusRepaired))
	assert.True(t, DetailTransitions.Allows(RequestStatusInProgress, RequestStatusScrap))

	// Detail view cannot drag work back to new, but can scrap a repair.
	assert.False(t, DetailTransitions.Allows(RequestStatusInProgress, RequestStatusNew))
	assert.True(t, DetailTransitions.Allows(RequestStatusRepaired, RequestStatusScrap))
	assert.Empty(t, DetailTransitions.Targets(RequestStatusScrap))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []RequestStatus{RequestStatusNew, RequestStatusInProgress, RequestStatusRepaired, RequestStatusScrap} {
		assert.True(t, ValidStatus(status))
	}
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))
}

package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{"open to processing", StatusOpen, StatusProcessing, true},
		{"open to cancelled", StatusOpen, StatusCancelled, true},
		{"open to accepted skips assignment", StatusOpen, StatusAccepted, false},
		{"processing to accepted", StatusProcessing, StatusAccepted, true},
		{"processing back to open", StatusProcessing, StatusOpen, true},
		{"processing to cancelled", StatusProcessing, StatusCancelled, true},
		{"accepted to on site", StatusAccepted, StatusOnSite, true},
		{"accepted cannot be cancelled", StatusAccepted, StatusCancelled, false},
		{"on site to in progress", StatusOnSite, StatusInProgress, true},
		{"on site to awaiting description", StatusOnSite, StatusAwaitingDescription, true},
		{"in progress to awaiting description", StatusInProgress, StatusAwaitingDescription, true},
		{"awaiting description to awaiting approval", StatusAwaitingDescription, StatusAwaitingWorkApproval, true},
		{"awaiting approval to completed", StatusAwaitingWorkApproval, StatusCompleted, true},
		{"awaiting approval back to awaiting description", StatusAwaitingWorkApproval, StatusAwaitingDescription, true},
		{"completed to closed", StatusCompleted, StatusClosed, true},
		{"completed cannot reopen", StatusCompleted, StatusOpen, false},
		{"closed is terminal", StatusClosed, StatusOpen, false},
		{"cancelled is terminal", StatusCancelled, StatusOpen, false},
		{"no shortcut from open to completed", StatusOpen, StatusCompleted, false},
		{"no skipping description submission", StatusAwaitingDescription, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTicketStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusClosed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusCompleted.IsTerminal())
}

func TestTicketStatus_RequiresAssignee(t *testing.T) {
	for _, s := range []TicketStatus{
		StatusAccepted, StatusOnSite, StatusInProgress,
		StatusAwaitingDescription, StatusAwaitingWorkApproval, StatusCompleted,
	} {
		assert.True(t, s.RequiresAssignee(), "status %s", s)
	}
	for _, s := range []TicketStatus{StatusOpen, StatusProcessing, StatusClosed, StatusCancelled} {
		assert.False(t, s.RequiresAssignee(), "status %s", s)
	}
}

func TestNewTicketStatus(t *testing.T) {
	s, err := NewTicketStatus("on_site")
	assert.NoError(t, err)
	assert.Equal(t, StatusOnSite, s)

	_, err = NewTicketStatus("teleported")
	assert.Error(t, err)
}

package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

func TestCancelTicket_Success(t *testing.T) {
	tk := newOpenTicket(t)
	dispatcher := &mockEventDispatcher{}
	uc := NewCancelTicketUseCase(ticketRepoReturning(tk), newTestMarkdown(), dispatcher, newTestLogger())

	result, err := uc.Execute(context.Background(), CancelTicketCommand{
		TicketID: 1,
		ActorID:  testRequesterID,
		Reason:   "no longer needed",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "no longer needed", result.Reason)
	assert.Len(t, dispatcher.Published, 1)
}

func TestCancelTicket_AssignedTicketRejected(t *testing.T) {
	tk := newAssignedTicket(t)
	uc := NewCancelTicketUseCase(ticketRepoReturning(tk), newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), CancelTicketCommand{TicketID: 1, ActorID: testRequesterID, Reason: "changed my mind"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestCancelTicket_RequiresReason(t *testing.T) {
	uc := NewCancelTicketUseCase(&mockTicketRepository{}, newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), CancelTicketCommand{TicketID: 1, ActorID: testRequesterID, Reason: ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

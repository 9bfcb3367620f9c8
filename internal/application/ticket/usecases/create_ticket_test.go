package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

func validCreateCommand() CreateTicketCommand {
	return CreateTicketCommand{
		TenantID:    testTenantID,
		Title:       "Broken aircon",
		Description: "Server room unit not cooling",
		Category:    "hvac",
		Priority:    "high",
		RequesterID: testRequesterID,
		Location:    "Building A",
	}
}

func TestCreateTicket_Success(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(42)
		},
	}

	slaTiers := map[vo.Priority]ticket.SLATier{
		vo.PriorityHigh: {Resolution: 8 * time.Hour},
	}
	uc := NewCreateTicketUseCase(repo, &mockNumberGenerator{}, ticket.NewTableSLAPolicy(slaTiers), newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)

	assert.Equal(t, uint(42), result.TicketID)
	assert.Equal(t, "TKT-20260828-0001", result.Number)
	assert.Equal(t, "open", result.Status)
	require.NotNil(t, result.ResolutionDue)

	require.NotNil(t, saved)
	assert.Equal(t, vo.StatusOpen, saved.Status())
	assert.NotNil(t, saved.ResolutionDue())
}

func TestCreateTicket_NoSLAConfigured(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return tk.SetID(1)
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockNumberGenerator{}, ticket.NoSLAPolicy{}, newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.Nil(t, result.ResolutionDue)
}

func TestCreateTicket_SanitizesDescription(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(1)
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockNumberGenerator{}, ticket.NoSLAPolicy{}, newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	cmd := validCreateCommand()
	cmd.Description = `Unit down <script>alert("x")</script> since Monday`

	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotContains(t, saved.Description(), "<script>")
}

func TestCreateTicket_Validation(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockNumberGenerator{}, ticket.NoSLAPolicy{}, newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	tests := []struct {
		name   string
		mutate func(*CreateTicketCommand)
	}{
		{"missing tenant", func(c *CreateTicketCommand) { c.TenantID = 0 }},
		{"missing requester", func(c *CreateTicketCommand) { c.RequesterID = 0 }},
		{"empty title", func(c *CreateTicketCommand) { c.Title = "" }},
		{"empty description", func(c *CreateTicketCommand) { c.Description = "" }},
		{"bad category", func(c *CreateTicketCommand) { c.Category = "gardening" }},
		{"bad priority", func(c *CreateTicketCommand) { c.Priority = "asap" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tt.mutate(&cmd)
			_, err := uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

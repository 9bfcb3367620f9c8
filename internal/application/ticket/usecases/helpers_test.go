package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
)

const (
	testTenantID     = uint(1)
	testRequesterID  = uint(10)
	testContractorID = uint(20)
	testAdminID      = uint(30)
)

func newOpenTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(testTenantID, "Broken aircon", "Server room unit not cooling", vo.CategoryHVAC, vo.PriorityHigh, testRequesterID, "Building A", nil)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	require.NoError(t, tk.SetNumber("TKT-20260828-0001"))
	return tk
}

func newAssignedTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk := newOpenTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))
	tk.ClearEvents()
	return tk
}

func validPlanForTest() ticket.JobPlan {
	return ticket.JobPlan{
		TechnicianName:   "S. Dlamini",
		TechnicianPhone:  "+27 82 555 0101",
		ScheduledArrival: time.Now().Add(24 * time.Hour),
		EstimatedHours:   2,
	}
}

func newTicketAwaitingApproval(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk := newAssignedTicket(t)
	require.NoError(t, tk.Accept(testContractorID, validPlanForTest()))
	require.NoError(t, tk.ConfirmOnSite(testRequesterID))
	require.NoError(t, tk.RequestWorkDescription(testRequesterID))
	require.NoError(t, tk.SubmitWorkDescription(testContractorID, "Replaced compressor relay"))
	tk.ClearEvents()
	return tk
}

func newCompletedTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk := newTicketAwaitingApproval(t)
	require.NoError(t, tk.ApproveWork(testRequesterID))
	tk.ClearEvents()
	return tk
}

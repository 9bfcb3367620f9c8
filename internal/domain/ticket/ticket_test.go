package ticket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
)

const (
	testTenantID     = uint(1)
	testRequesterID  = uint(10)
	testContractorID = uint(20)
	testAdminID      = uint(30)
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(testTenantID, "Broken aircon", "Unit in server room not cooling", vo.CategoryHVAC, vo.PriorityHigh, testRequesterID, "Building A, Floor 2", nil)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	require.NoError(t, tk.SetNumber("TKT-20260828-0001"))
	return tk
}

func validJobPlan() JobPlan {
	return JobPlan{
		TechnicianName:   "S. Dlamini",
		TechnicianPhone:  "+27 82 555 0101",
		ScheduledArrival: time.Now().Add(24 * time.Hour),
		EstimatedHours:   2,
	}
}

// advanceTo walks a fresh ticket to the given status through the normal path.
func advanceTo(t *testing.T, tk *Ticket, target vo.TicketStatus) {
	t.Helper()
	steps := []struct {
		status vo.TicketStatus
		apply  func() error
	}{
		{vo.StatusProcessing, func() error { return tk.Assign(testContractorID, testAdminID) }},
		{vo.StatusAccepted, func() error { return tk.Accept(testContractorID, validJobPlan()) }},
		{vo.StatusOnSite, func() error { return tk.ConfirmOnSite(testRequesterID) }},
		{vo.StatusAwaitingDescription, func() error { return tk.RequestWorkDescription(testRequesterID) }},
		{vo.StatusAwaitingWorkApproval, func() error { return tk.SubmitWorkDescription(testContractorID, "Replaced compressor relay") }},
		{vo.StatusCompleted, func() error { return tk.ApproveWork(testRequesterID) }},
		{vo.StatusClosed, func() error { return tk.Close(testRequesterID) }},
	}
	for _, step := range steps {
		require.NoError(t, step.apply())
		if tk.Status() == target {
			return
		}
	}
	require.Equal(t, target, tk.Status())
}

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket(testTenantID, "Leaking tap", "Kitchen tap drips constantly", vo.CategoryPlumbing, vo.PriorityLow, testRequesterID, "Unit 4", nil)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.AssigneeID())
	assert.Equal(t, 1, tk.Version())
	assert.Empty(t, tk.PendingEvents())
}

func TestNewTicket_Validation(t *testing.T) {
	tests := []struct {
		name     string
		tenantID uint
		title    string
		desc     string
		category vo.Category
		priority vo.Priority
	}{
		{"missing tenant", 0, "t", "d", vo.CategoryGeneral, vo.PriorityLow},
		{"empty title", testTenantID, "", "d", vo.CategoryGeneral, vo.PriorityLow},
		{"empty description", testTenantID, "t", "", vo.CategoryGeneral, vo.PriorityLow},
		{"bad category", testTenantID, "t", "d", vo.Category("gardening"), vo.PriorityLow},
		{"bad priority", testTenantID, "t", "d", vo.CategoryGeneral, vo.Priority("asap")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.tenantID, tt.title, tt.desc, tt.category, tt.priority, testRequesterID, "loc", nil)
			assert.Error(t, err)
		})
	}
}

func TestTicket_FullLifecycle(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.Assign(testContractorID, testAdminID))
	assert.Equal(t, vo.StatusProcessing, tk.Status())
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, testContractorID, *tk.AssigneeID())
	assert.NotNil(t, tk.AssignedAt())

	require.NoError(t, tk.Accept(testContractorID, validJobPlan()))
	assert.Equal(t, vo.StatusAccepted, tk.Status())
	assert.NotNil(t, tk.ContractorAcceptedAt())
	assert.NotNil(t, tk.JobPlan())

	require.NoError(t, tk.ConfirmOnSite(testRequesterID))
	assert.Equal(t, vo.StatusOnSite, tk.Status())
	assert.NotNil(t, tk.OnSiteAt())

	require.NoError(t, tk.RequestWorkDescription(testRequesterID))
	assert.Equal(t, vo.StatusAwaitingDescription, tk.Status())

	require.NoError(t, tk.SubmitWorkDescription(testContractorID, "Replaced compressor relay"))
	assert.Equal(t, vo.StatusAwaitingWorkApproval, tk.Status())
	assert.Equal(t, "Replaced compressor relay", tk.WorkDescription())

	require.NoError(t, tk.ApproveWork(testRequesterID))
	assert.Equal(t, vo.StatusCompleted, tk.Status())
	assert.NotNil(t, tk.WorkDescriptionApprovedAt())
	assert.NotNil(t, tk.CompletedAt())

	require.NoError(t, tk.Close(testRequesterID))
	assert.Equal(t, vo.StatusClosed, tk.Status())
	assert.NotNil(t, tk.ClosedAt())
}

func TestTicket_Assign_AlreadyAssigned(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))

	err := tk.Assign(uint(21), testAdminID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTicket_Accept_WrongActor(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))

	err := tk.Accept(uint(99), validJobPlan())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, vo.StatusProcessing, tk.Status())
}

func TestTicket_Accept_InvalidJobPlan(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))

	plan := validJobPlan()
	plan.TechnicianName = ""
	err := tk.Accept(testContractorID, plan)
	assert.Error(t, err)
	assert.Equal(t, vo.StatusProcessing, tk.Status())
}

func TestTicket_RejectAssignment(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))

	require.NoError(t, tk.RejectAssignment(testContractorID, "fully booked this week"))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.AssigneeID())
	assert.Nil(t, tk.AssignedAt())
	assert.Equal(t, "fully booked this week", tk.AssignRejectReason())

	// Reassignment works after rejection.
	require.NoError(t, tk.Assign(uint(21), testAdminID))
	assert.Equal(t, vo.StatusProcessing, tk.Status())
	assert.Empty(t, tk.AssignRejectReason())
}

func TestTicket_RejectAssignment_RequiresReason(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))

	err := tk.RejectAssignment(testContractorID, "")
	assert.Error(t, err)
	assert.Equal(t, vo.StatusProcessing, tk.Status())
}

func TestTicket_WorkDescriptionCycle(t *testing.T) {
	tk := newTestTicket(t)
	advanceTo(t, tk, vo.StatusAwaitingWorkApproval)

	require.NoError(t, tk.RejectWork(testRequesterID, "photos missing"))
	assert.Equal(t, vo.StatusAwaitingDescription, tk.Status())
	assert.Empty(t, tk.WorkDescription())
	assert.Equal(t, "photos missing", tk.WorkRejectionReason())

	// Resubmission overwrites and clears the previous rejection reason.
	require.NoError(t, tk.SubmitWorkDescription(testContractorID, "Replaced relay, photos attached"))
	assert.Equal(t, vo.StatusAwaitingWorkApproval, tk.Status())
	assert.Equal(t, "Replaced relay, photos attached", tk.WorkDescription())
	assert.Empty(t, tk.WorkRejectionReason())

	require.NoError(t, tk.ApproveWork(testRequesterID))
	assert.Equal(t, vo.StatusCompleted, tk.Status())
}

func TestTicket_RejectWork_RequiresReason(t *testing.T) {
	tk := newTestTicket(t)
	advanceTo(t, tk, vo.StatusAwaitingWorkApproval)

	err := tk.RejectWork(testRequesterID, "")
	assert.Error(t, err)
	assert.Equal(t, vo.StatusAwaitingWorkApproval, tk.Status())
}

func TestTicket_StartWork(t *testing.T) {
	tk := newTestTicket(t)
	advanceTo(t, tk, vo.StatusOnSite)

	require.NoError(t, tk.StartWork(testContractorID))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	assert.NotNil(t, tk.WorkStartedAt())

	require.NoError(t, tk.RequestWorkDescription(testRequesterID))
	assert.Equal(t, vo.StatusAwaitingDescription, tk.Status())
}

func TestTicket_Cancel(t *testing.T) {
	t.Run("open ticket", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.Cancel(testRequesterID, "no longer needed"))
		assert.Equal(t, vo.StatusCancelled, tk.Status())
		assert.Equal(t, "no longer needed", tk.CancelReason())
	})

	t.Run("assigned ticket cannot be cancelled", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.Assign(testContractorID, testAdminID))
		err := tk.Cancel(testRequesterID, "changed my mind")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("requires reason", func(t *testing.T) {
		tk := newTestTicket(t)
		err := tk.Cancel(testRequesterID, "")
		assert.Error(t, err)
		assert.Equal(t, vo.StatusOpen, tk.Status())
	})

	t.Run("wrong actor", func(t *testing.T) {
		tk := newTestTicket(t)
		err := tk.Cancel(testContractorID, "nope")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestTicket_UpdateDetails(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.UpdateDetails(testRequesterID, "Broken aircon (urgent)", "Now leaking water too", vo.PriorityUrgent))
	assert.Equal(t, "Broken aircon (urgent)", tk.Title())
	assert.Equal(t, vo.PriorityUrgent, tk.Priority())

	require.NoError(t, tk.Assign(testContractorID, testAdminID))
	err := tk.UpdateDetails(testRequesterID, "too late", "too late", vo.PriorityLow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTicket_TimestampsAreImmutable(t *testing.T) {
	tk := newTestTicket(t)
	advanceTo(t, tk, vo.StatusAwaitingWorkApproval)
	firstSubmitted := tk.WorkDescriptionSubmittedAt()
	require.NotNil(t, firstSubmitted)

	require.NoError(t, tk.RejectWork(testRequesterID, "redo"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, tk.SubmitWorkDescription(testContractorID, "second attempt"))

	assert.Equal(t, *firstSubmitted, *tk.WorkDescriptionSubmittedAt())
}

func TestTicket_DeadlinesComputedOnce(t *testing.T) {
	tk := newTestTicket(t)

	first := time.Now().Add(4 * time.Hour).UTC()
	later := time.Now().Add(8 * time.Hour).UTC()
	tk.ScheduleResponseDeadline(&first)
	tk.ScheduleResponseDeadline(&later)

	require.NotNil(t, tk.ResponseDue())
	assert.Equal(t, first, *tk.ResponseDue())
}

func TestTicket_OverdueChecks(t *testing.T) {
	tk := newTestTicket(t)
	due := time.Now().Add(-time.Hour).UTC()
	tk.ScheduleResponseDeadline(&due)
	tk.ScheduleResolutionDeadline(&due)

	now := time.Now().UTC()
	assert.True(t, tk.IsResponseOverdue(now))
	assert.True(t, tk.IsResolutionOverdue(now))

	advanceTo(t, tk, vo.StatusCompleted)
	assert.False(t, tk.IsResponseOverdue(now))
	assert.False(t, tk.IsResolutionOverdue(now))
}

func TestTicket_PendingEvents(t *testing.T) {
	tk := newTestTicket(t)
	require.NoError(t, tk.Assign(testContractorID, testAdminID))
	require.NoError(t, tk.Accept(testContractorID, validJobPlan()))

	evts := tk.PendingEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, EventTicketAssigned, evts[0].GetEventType())
	assert.Equal(t, EventTicketAccepted, evts[1].GetEventType())

	tk.ClearEvents()
	assert.Empty(t, tk.PendingEvents())
}

func TestReconstructTicket_AssigneeInvariant(t *testing.T) {
	now := time.Now().UTC()
	state := TicketState{
		ID:          1,
		Number:      "TKT-20260828-0002",
		TenantID:    testTenantID,
		Title:       "t",
		Description: "d",
		Category:    vo.CategoryGeneral,
		Priority:    vo.PriorityMedium,
		Status:      vo.StatusAccepted,
		RequesterID: testRequesterID,
		Version:     3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := ReconstructTicket(state)
	assert.Error(t, err)

	assignee := testContractorID
	state.AssigneeID = &assignee
	tk, err := ReconstructTicket(state)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusAccepted, tk.Status())
	assert.Equal(t, 3, tk.Version())
}

func TestTicket_InvalidTransitionIsTyped(t *testing.T) {
	tk := newTestTicket(t)

	err := tk.ConfirmOnSite(testRequesterID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

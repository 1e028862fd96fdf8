package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/service"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func errField(t *testing.T, err error) any {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Details["field"]
}

func TestCreateRequestDefaultsFromEquipment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	request, err := env.requests.Create(ctx, env.enduser, service.RequestCreateInput{
		Subject:     "Spindle vibration",
		Type:        domain.RequestTypeCorrective,
		EquipmentID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusNew, request.Status)
	assert.Equal(t, domain.RequestPriorityMedium, request.Priority)
	assert.Equal(t, env.enduser.ID, request.RequesterID)
	// Team and technician come off the equipment record.
	require.NotNil(t, request.TeamID)
	assert.Equal(t, int64(1), *request.TeamID)
	require.NotNil(t, request.TechnicianID)
	assert.Equal(t, int64(3), *request.TechnicianID)
}

func TestCreatePreventiveRequiresScheduledDate(t *testing.T) {
	env := newTestEnv()
	_, err := env.requests.Create(context.Background(), env.enduser, service.RequestCreateInput{
		Subject:     "Quarterly inspection",
		Type:        domain.RequestTypePreventive,
		EquipmentID: 1,
	})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "scheduled_date", errField(t, err))
}

func TestCreateRejectsScrappedEquipment(t *testing.T) {
	env := newTestEnv()
	_, err := env.requests.Create(context.Background(), env.enduser, service.RequestCreateInput{
		Subject:     "Fix the press",
		Type:        domain.RequestTypeCorrective,
		EquipmentID: 2,
	})
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestCreateRejectsNonTechnicianAssignee(t *testing.T) {
	env := newTestEnv()
	_, err := env.requests.Create(context.Background(), env.manager, service.RequestCreateInput{
		Subject:      "Belt replacement",
		Type:         domain.RequestTypeCorrective,
		EquipmentID:  3,
		TechnicianID: int64Ptr(env.enduser.ID),
	})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "technician_id", errField(t, err))
}

func TestUpdateStatusRejectsRepairedTarget(t *testing.T) {
	env := newTestEnv()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Leak", Status: domain.RequestStatusInProgress})

	_, err := env.requests.UpdateStatus(context.Background(), env.admin, seeded.ID, domain.RequestStatusRepaired)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "duration_hours", errField(t, err))
}

func TestUpdateStatusFollowsDetailTable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Leak", Status: domain.RequestStatusInProgress})

	// Detail view has no way back to new.
	_, err := env.requests.UpdateStatus(ctx, env.admin, seeded.ID, domain.RequestStatusNew)
	assert.Equal(t, "INVALID_TRANSITION", errCode(t, err))

	updated, err := env.requests.UpdateStatus(ctx, env.admin, seeded.ID, domain.RequestStatusScrap)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusScrap, updated.Status)

	// Unlike the board, the detail flow can scrap a repaired request.
	repaired := env.seedRequest(domain.MaintenanceRequest{Subject: "Fixed", Status: domain.RequestStatusRepaired})
	updated, err = env.requests.UpdateStatus(ctx, env.admin, repaired.ID, domain.RequestStatusScrap)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusScrap, updated.Status)
}

func TestCompleteStampsDurationAndDate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Grinding noise", Status: domain.RequestStatusInProgress, EquipmentID: 1})
	require.NoError(t, env.equipRepo.SetStatus(ctx, 1, domain.EquipmentStatusUnderMaintenance))

	completed, err := env.requests.Complete(ctx, env.technician, seeded.ID, 2.5)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRepaired, completed.Status)
	require.NotNil(t, completed.DurationHours)
	assert.Equal(t, 2.5, *completed.DurationHours)
	require.NotNil(t, completed.CompletedDate)
	assert.WithinDuration(t, time.Now(), *completed.CompletedDate, time.Minute)

	// Equipment returns to service once the repair is done.
	equipment, err := env.equipRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusActive, equipment.Status)
}

func TestCompleteRejectsNonPositiveDuration(t *testing.T) {
	env := newTestEnv()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Noise", Status: domain.RequestStatusInProgress})

	_, err := env.requests.Complete(context.Background(), env.admin, seeded.ID, 0)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "duration_hours", errField(t, err))
}

func TestScrapCascadesToEquipment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Beyond repair", Status: domain.RequestStatusInProgress, EquipmentID: 3})

	_, err := env.requests.UpdateStatus(ctx, env.manager, seeded.ID, domain.RequestStatusScrap)
	require.NoError(t, err)

	equipment, err := env.equipRepo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusScrapped, equipment.Status)
}

func TestAssignTechnicianRejectsClosedRequest(t *testing.T) {
	env := newTestEnv()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Done", Status: domain.RequestStatusRepaired})

	_, err := env.requests.AssignTechnician(context.Background(), env.manager, seeded.ID, int64Ptr(env.technician.ID))
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestPickTaskClaimsUnassignedOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	open := env.seedRequest(domain.MaintenanceRequest{Subject: "Unclaimed", TeamID: int64Ptr(1)})

	picked, err := env.requests.PickTask(ctx, env.technician, open.ID)
	require.NoError(t, err)
	require.NotNil(t, picked.TechnicianID)
	assert.Equal(t, env.technician.ID, *picked.TechnicianID)

	// A second claim on the same card conflicts.
	taken := env.seedRequest(domain.MaintenanceRequest{Subject: "Taken", TeamID: int64Ptr(1), TechnicianID: int64Ptr(4)})
	_, err = env.requests.PickTask(ctx, env.technician, taken.ID)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestDeleteIsNotImplemented(t *testing.T) {
	env := newTestEnv()
	err := env.requests.Delete(context.Background(), env.admin, 1)
	assert.Equal(t, "NOT_IMPLEMENTED", errCode(t, err))
}

func TestListVisibleScopesByRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedRequest(domain.MaintenanceRequest{Subject: "Mech 1", TeamID: int64Ptr(1), RequesterID: 5})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Mech 2", TeamID: int64Ptr(1), RequesterID: 2})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Mech 3", TeamID: int64Ptr(1), RequesterID: 2})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Elec 1", TeamID: int64Ptr(2), RequesterID: 2, EquipmentID: 3})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Elec 2", TeamID: int64Ptr(2), RequesterID: 2, EquipmentID: 3})

	all, err := env.requests.ListVisible(ctx, env.manager, service.RequestListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	// Technician on team 1 sees only that team's work.
	mine, err := env.requests.ListVisible(ctx, env.technician, service.RequestListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	// End users see only what they raised.
	own, err := env.requests.ListVisible(ctx, env.enduser, service.RequestListFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Mech 1", own[0].Subject)
}

func TestTeamlessTechnicianFallsBackToAssignments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	loner := &domain.User{ID: 9, Name: "Solo Tech", Role: domain.RoleTechnician}
	env.userRepo.add(*loner)

	env.seedRequest(domain.MaintenanceRequest{Subject: "Assigned to solo", TechnicianID: int64Ptr(9)})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Someone else's", TechnicianID: int64Ptr(3), TeamID: int64Ptr(1)})

	visible, err := env.requests.ListVisible(ctx, loner, service.RequestListFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Assigned to solo", visible[0].Subject)
}

func TestOverdueFilterDropsStatusFacets(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	past := time.Now().Add(-72 * time.Hour)
	future := time.Now().Add(72 * time.Hour)

	env.seedRequest(domain.MaintenanceRequest{Subject: "Late open", ScheduledDate: &past, Status: domain.RequestStatusNew})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Late done", ScheduledDate: &past, Status: domain.RequestStatusRepaired})
	env.seedRequest(domain.MaintenanceRequest{Subject: "On time", ScheduledDate: &future, Status: domain.RequestStatusNew})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Unscheduled", Status: domain.RequestStatusNew})

	// The status facet is ignored when the overdue lens is on; only the
	// genuinely late, still-open card comes back.
	overdue, err := env.requests.ListVisible(ctx, env.admin, service.RequestListFilter{
		Statuses:    []domain.RequestStatus{domain.RequestStatusRepaired},
		OverdueOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Late open", overdue[0].Subject)
}

func TestGetVisibleDeniesForeignRequest(t *testing.T) {
	env := newTestEnv()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Private", RequesterID: 2, TeamID: int64Ptr(2)})

	_, err := env.requests.GetVisible(context.Background(), env.enduser, seeded.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	_, err = env.requests.GetVisible(context.Background(), env.technician, seeded.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestListCalendarWindow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	inside := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	env.seedRequest(domain.MaintenanceRequest{Subject: "July service", ScheduledDate: &inside, Type: domain.RequestTypePreventive})
	env.seedRequest(domain.MaintenanceRequest{Subject: "September service", ScheduledDate: &outside, Type: domain.RequestTypePreventive})
	env.seedRequest(domain.MaintenanceRequest{Subject: "No date"})

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC)
	scheduled, err := env.requests.ListCalendar(ctx, env.admin, from, to)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "July service", scheduled[0].Subject)
}

func TestStatusChangesLeaveAuditTrail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seeded := env.seedRequest(domain.MaintenanceRequest{Subject: "Audited", Status: domain.RequestStatusNew})

	_, err := env.requests.UpdateStatus(ctx, env.manager, seeded.ID, domain.RequestStatusInProgress)
	require.NoError(t, err)

	entries, err := env.requests.ListActivity(ctx, env.manager, seeded.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityStatusChange, entries[0].ChangeType)
	require.NotNil(t, entries[0].ActorID)
	assert.Equal(t, env.manager.ID, *entries[0].ActorID)
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/events"
	"github.com/gearguard/maintenance-service/internal/service"
)

func newEquipmentService(env *testEnv, dispatcher events.Dispatcher) *service.EquipmentService {
	return service.NewEquipmentService(service.EquipmentDependencies{
		EquipmentRepo: env.equipRepo,
		TeamRepo:      env.teamRepo,
		UserRepo:      env.userRepo,
		RequestRepo:   env.reqRepo,
		Dispatcher:    dispatcher,
	})
}

func TestEquipmentCreateValidatesCatalogs(t *testing.T) {
	env := newTestEnv()
	svc := newEquipmentService(env, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.EquipmentInput{
		Name: "Lathe 7", CategoryID: 1, DepartmentID: 1, LocationID: 1,
		TeamID: int64Ptr(1), DefaultTechnicianID: int64Ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusActive, created.Status)

	_, err = svc.Create(ctx, service.EquipmentInput{Name: "Bad", CategoryID: 999, DepartmentID: 1, LocationID: 1})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "category_id", errField(t, err))

	_, err = svc.Create(ctx, service.EquipmentInput{Name: "Bad", CategoryID: 1, DepartmentID: 1, LocationID: 1, TeamID: int64Ptr(404)})
	assert.Equal(t, "NOT_FOUND", errCode(t, err))

	// Only technicians can be the default assignee.
	_, err = svc.Create(ctx, service.EquipmentInput{Name: "Bad", CategoryID: 1, DepartmentID: 1, LocationID: 1, DefaultTechnicianID: int64Ptr(env.enduser.ID)})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Equal(t, "default_technician_id", errField(t, err))
}

func TestEquipmentUpdateRejectsScrapped(t *testing.T) {
	env := newTestEnv()
	svc := newEquipmentService(env, nil)

	_, err := svc.Update(context.Background(), 2, service.EquipmentInput{
		Name: "Refurbished Press", CategoryID: 1, DepartmentID: 1, LocationID: 1,
	})
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestEquipmentScrapPublishesEvent(t *testing.T) {
	env := newTestEnv()
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.Event
	dispatcher.Subscribe(events.EventEquipmentScrapped, func(_ context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})
	svc := newEquipmentService(env, dispatcher)
	ctx := context.Background()

	scrapped, err := svc.Scrap(ctx, env.manager, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusScrapped, scrapped.Status)
	require.Len(t, seen, 1)
	assert.Equal(t, events.EquipmentScrappedPayload{EquipmentID: 1}, seen[0].Payload)
	assert.Equal(t, env.manager.ID, seen[0].Actor.UserID)

	// Scrapping twice conflicts; the asset never comes back.
	_, err = svc.Scrap(ctx, env.manager, 1)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestOpenRequestCountIgnoresClosedWork(t *testing.T) {
	env := newTestEnv()
	svc := newEquipmentService(env, nil)
	ctx := context.Background()

	env.seedRequest(domain.MaintenanceRequest{Subject: "Open", EquipmentID: 1, Status: domain.RequestStatusNew})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Active", EquipmentID: 1, Status: domain.RequestStatusInProgress})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Done", EquipmentID: 1, Status: domain.RequestStatusRepaired})
	env.seedRequest(domain.MaintenanceRequest{Subject: "Other asset", EquipmentID: 3, Status: domain.RequestStatusNew})

	count, err := svc.OpenRequestCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

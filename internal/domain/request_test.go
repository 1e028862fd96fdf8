package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name      string
		scheduled *time.Time
		status    RequestStatus
		want      bool
	}{
		{"no schedule", nil, RequestStatusNew, false},
		{"past schedule open", &past, RequestStatusNew, true},
		{"past schedule in progress", &past, RequestStatusInProgress, true},
		{"past schedule repaired", &past, RequestStatusRepaired, false},
		{"past schedule scrap", &past, RequestStatusScrap, false},
		{"future schedule", &future, RequestStatusNew, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := MaintenanceRequest{ScheduledDate: tc.scheduled, Status: tc.status}
			assert.Equal(t, tc.want, request.IsOverdue(now))
		})
	}
}

func TestIsClosed(t *testing.T) {
	assert.False(t, (&MaintenanceRequest{Status: RequestStatusNew}).IsClosed())
	assert.False(t, (&MaintenanceRequest{Status: RequestStatusInProgress}).IsClosed())
	assert.True(t, (&MaintenanceRequest{Status: RequestStatusRepaired}).IsClosed())
	assert.True(t, (&MaintenanceRequest{Status: RequestStatusScrap}).IsClosed())
}

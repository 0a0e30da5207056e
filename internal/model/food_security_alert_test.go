package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestAlertSeverity(t *testing.T) {
	tests := []struct {
		name        string
		level       AlertLevel
		escalation  int
		population  *int64
		want        int
		description string
	}{
		{
			name:        "high level large population",
			level:       LevelHigh,
			escalation:  2,
			population:  int64Ptr(50000),
			want:        10,
			description: "4x2 + (2-1) + 1",
		},
		{name: "high level small population", level: LevelHigh, escalation: 2, population: int64Ptr(5000), want: 9},
		{name: "info floor", level: LevelInfo, escalation: 1, want: 2},
		{name: "unknown level clamps to one", level: "", escalation: 1, want: 1},
		{name: "critical caps at ten", level: LevelCritical, escalation: 3, population: int64Ptr(200000), want: 10},
		{name: "small population adds nothing", level: LevelMedium, escalation: 1, population: int64Ptr(500), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &FoodSecurityAlert{AlertLevel: tt.level, EscalationLevel: tt.escalation, AffectedPopulation: tt.population}
			assert.Equal(t, tt.want, a.ComputeSeverity(), tt.description)
		})
	}
}

func TestAlertInitialize(t *testing.T) {
	a := &FoodSecurityAlert{Title: "Maize blight", AlertLevel: LevelHigh, EscalationLevel: 2, AffectedPopulation: int64Ptr(50000)}
	require.NoError(t, PrepareCreate(a, testNow, stubGenerator{}))

	assert.True(t, a.Active)
	assert.Equal(t, ResolutionUnresolved, a.ResolutionStatus)
	assert.Equal(t, SourceUnverified, a.SourceReliability)
	require.NotNil(t, a.SeverityScore)
	assert.Equal(t, 10, *a.SeverityScore)
	assert.Equal(t, "ALT250314CAFE0001", a.AlertCode)
}

func TestAlertEscalation(t *testing.T) {
	a := &FoodSecurityAlert{AlertLevel: LevelMedium}
	a.Initialize(testNow, stubGenerator{})
	require.Equal(t, 1, a.EscalationLevel)

	a.Escalate(testNow)
	a.Escalate(testNow)
	assert.Equal(t, 3, a.EscalationLevel)
	assert.Equal(t, LevelMedium, a.AlertLevel)

	a.Escalate(testNow)
	assert.Equal(t, 4, a.EscalationLevel)
	assert.Equal(t, LevelCritical, a.AlertLevel)
	assert.Equal(t, 10, *a.SeverityScore)

	a.Escalate(testNow)
	a.Escalate(testNow)
	assert.Equal(t, 5, a.EscalationLevel, "escalation stops at five")
}

func TestAlertResolutionFlow(t *testing.T) {
	a := &FoodSecurityAlert{AlertLevel: LevelLow}
	a.Initialize(testNow, stubGenerator{})

	a.Deactivate(testNow)
	assert.True(t, a.Active, "unresolved, unexpired alerts stay active")

	assert.True(t, a.CanMarkInProgress())
	a.MarkInProgress()
	assert.Equal(t, ResolutionInProgress, a.ResolutionStatus)
	assert.False(t, a.CanMarkInProgress())

	a.MarkResolved(testNow)
	assert.Equal(t, ResolutionResolved, a.ResolutionStatus)
	assert.Equal(t, testNow, *a.ResolutionDate)

	assert.False(t, a.CanReactivate(testNow), "active alerts are not reactivated")
	a.Deactivate(testNow)
	assert.False(t, a.Active)
	assert.False(t, a.CanExtend(3), "inactive alerts keep their expiry")

	assert.True(t, a.CanReactivate(testNow))
	a.Reactivate(testNow)
	assert.True(t, a.Active)
	assert.Equal(t, ResolutionUnresolved, a.ResolutionStatus)
	assert.Nil(t, a.ResolutionDate)
}

func TestAlertExpiry(t *testing.T) {
	a := &FoodSecurityAlert{AlertLevel: LevelHigh, ExpiryDate: timePtr(testNow.AddDate(0, 0, -1))}
	a.Initialize(testNow, stubGenerator{})

	assert.False(t, a.IsActive(testNow))
	assert.False(t, a.CanEscalate(testNow))
	assert.True(t, a.CanDeactivate(testNow))

	a.Deactivate(testNow)
	assert.False(t, a.CanReactivate(testNow))
	a.Reactivate(testNow)
	assert.False(t, a.Active, "expired alerts cannot be reactivated")
}

func TestAlertExtendExpiry(t *testing.T) {
	a := &FoodSecurityAlert{AlertLevel: LevelHigh}
	a.Initialize(testNow, stubGenerator{})

	assert.False(t, a.CanExtend(5), "no expiry to extend")

	a.ExpiryDate = timePtr(testNow.AddDate(0, 0, 2))
	assert.False(t, a.CanExtend(0))
	assert.True(t, a.CanExtend(5))

	a.ExtendExpiry(5)
	assert.Equal(t, testNow.AddDate(0, 0, 7), *a.ExpiryDate)
}

func TestAlertCollections(t *testing.T) {
	a := &FoodSecurityAlert{}
	a.AddStakeholder("MINAGRI")
	a.AddStakeholder("MINAGRI")
	a.AddStakeholder("")
	a.AddFollowUpAlert("FSA-2")

	assert.Equal(t, []string{"MINAGRI"}, []string(a.Stakeholders))
	assert.Equal(t, []string{"FSA-2"}, []string(a.FollowUpAlerts))
}

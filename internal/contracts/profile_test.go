package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskTolerance(t *testing.T) {
	tests := []struct {
		in      string
		want    RiskTolerance
		wantErr bool
	}{
		{"High", RiskHigh, false},
		{"aggressive", RiskHigh, false},
		{"LOW", RiskLow, false},
		{"conservative", RiskLow, false},
		{"Safety", RiskLow, false},
		{"moderate", RiskModerate, false},
		{"yolo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRiskTolerance(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserProfile_Validate(t *testing.T) {
	age := 30
	zero := 0

	valid := UserProfile{Amount: 100000, HorizonYears: 5, RiskTolerance: RiskModerate, Age: &age}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		profile UserProfile
	}{
		{"zero amount", UserProfile{Amount: 0, HorizonYears: 5, RiskTolerance: RiskLow}},
		{"negative horizon", UserProfile{Amount: 10, HorizonYears: -1, RiskTolerance: RiskLow}},
		{"bad risk", UserProfile{Amount: 10, HorizonYears: 1, RiskTolerance: "Wild"}},
		{"zero age", UserProfile{Amount: 10, HorizonYears: 1, RiskTolerance: RiskHigh, Age: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.profile.Validate())
		})
	}
}

func TestParseMarketPhase(t *testing.T) {
	p, err := ParseMarketPhase("overheated")
	require.NoError(t, err)
	assert.Equal(t, PhaseOverheated, p)

	p, err = ParseMarketPhase("")
	require.NoError(t, err)
	assert.Equal(t, PhaseNeutral, p)

	p, err = ParseMarketPhase("bubble")
	assert.Error(t, err)
	assert.Equal(t, PhaseNeutral, p)
}

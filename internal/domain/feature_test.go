package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFeatureValidate(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		wantErr bool
	}{
		{
			name:    "valid feature",
			feature: Feature{ID: "f1", Type: TypeFeature, Start: day(2025, 1, 1), End: day(2025, 2, 1)},
		},
		{
			name:    "missing id",
			feature: Feature{Type: TypeFeature},
			wantErr: true,
		},
		{
			name:    "unknown type",
			feature: Feature{ID: "f1", Type: "milestone"},
			wantErr: true,
		},
		{
			name:    "end before start",
			feature: Feature{ID: "f1", Type: TypeFeature, Start: day(2025, 2, 1), End: day(2025, 1, 1)},
			wantErr: true,
		},
		{
			name:    "epic with parent",
			feature: Feature{ID: "e1", Type: TypeEpic, ParentEpic: "e0"},
			wantErr: true,
		},
		{
			name:    "undated feature is valid",
			feature: Feature{ID: "f1", Type: TypeFeature},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feature.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFeatureCovers(t *testing.T) {
	f := Feature{ID: "f1", Type: TypeFeature, Start: day(2025, 1, 10), End: day(2025, 1, 20)}

	assert.True(t, f.Covers(day(2025, 1, 10)), "start is inclusive")
	assert.True(t, f.Covers(day(2025, 1, 20)), "end is inclusive")
	assert.False(t, f.Covers(day(2025, 1, 9)))
	assert.False(t, f.Covers(day(2025, 1, 21)))
}

func TestFeatureClone_IndependentTeamLoads(t *testing.T) {
	f := Feature{ID: "f1", Type: TypeFeature, TeamLoads: []TeamLoad{{Team: "t1", Load: 50}}}
	c := f.Clone()
	c.TeamLoads[0].Load = 80

	assert.Equal(t, 50.0, f.TeamLoads[0].Load)
}

func TestOverrideMerge(t *testing.T) {
	s1 := day(2025, 1, 1)
	e1 := day(2025, 2, 1)
	e2 := day(2025, 3, 1)

	o := Override{Start: &s1, End: &e1}
	merged := o.Merge(Override{End: &e2})

	require.NotNil(t, merged.Start)
	require.NotNil(t, merged.End)
	assert.Equal(t, s1, *merged.Start, "unset fields keep existing value")
	assert.Equal(t, e2, *merged.End)
	assert.Equal(t, e1, *o.End, "source override is untouched")
}

func TestScenarioCloneOverrides_ShallowCopy(t *testing.T) {
	s := day(2025, 1, 5)
	sc := Scenario{ID: "s1", Overrides: map[string]Override{"f1": {Start: &s}}}

	clone := sc.CloneOverrides()
	delete(clone, "f1")

	assert.Contains(t, sc.Overrides, "f1")
}

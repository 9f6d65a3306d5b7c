package airspace

import (
	"testing"

	"flight-simulator/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	ap := NewAirspace()

	p, ok := ap.Lookup(" llbg ")
	require.True(t, ok)
	assert.Equal(t, types.NewLatLng(32.0114, 34.8867), p)

	p, ok = ap.Lookup("cipka")
	require.True(t, ok)
	assert.Equal(t, types.NewLatLng(32.05, 34.75), p)

	_, ok = ap.Lookup("NOWHERE")
	assert.False(t, ok)
}

func TestResolveTarget(t *testing.T) {
	ap := NewAirspace()

	tests := []struct {
		in      string
		want    types.LatLng
		wantErr bool
	}{
		{"EGLL", types.NewLatLng(51.4700, -0.4543), false},
		{"D filka", types.NewLatLng(31.85, 35.05), false},
		{"10.5 -20.25", types.NewLatLng(10.5, -20.25), false},
		{"D 10 20", types.LatLng{}, true},
		{"ZZZZ", types.LatLng{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ap.ResolveTarget(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearest(t *testing.T) {
	ap := NewAirspace()

	a, d := ap.Nearest(types.NewLatLng(51.5, -0.1))
	require.NotNil(t, a)
	assert.Equal(t, "EGLL", a.ID)
	assert.Less(t, d, 0.5)

	empty := &Airspace{Airports: map[string]*Airport{}}
	a, _ = empty.Nearest(types.NewLatLng(0, 0))
	assert.Nil(t, a)
}

func TestAirportIDsSorted(t *testing.T) {
	ids := NewAirspace().AirportIDs()
	require.Len(t, ids, 9)
	assert.IsIncreasing(t, ids)
}

package leds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainlights/leds"
)

func TestPinFor(t *testing.T) {
	for led := 1; led <= leds.Count; led++ {
		pin, err := leds.PinFor(led)
		require.NoError(t, err)
		assert.Equal(t, led+3, pin)
	}

	for _, led := range []int{0, -1, 25, 100} {
		_, err := leds.PinFor(led)
		assert.ErrorIs(t, err, leds.ErrInvalidParameter, "LED %d", led)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, leds.IsValid(1))
	assert.True(t, leds.IsValid(24))
	assert.False(t, leds.IsValid(0))
	assert.False(t, leds.IsValid(25))
}

func TestSubsetLight(t *testing.T) {
	tests := []struct {
		name     string
		subset   leds.Subset
		position int
		want     int
		wantErr  bool
	}{
		{name: "first green", subset: leds.Green, position: 1, want: 1},
		{name: "last green", subset: leds.Green, position: 6, want: 6},
		{name: "last amber", subset: leds.Amber, position: 6, want: 12},
		{name: "second red", subset: leds.Red, position: 2, want: 14},
		{name: "last red", subset: leds.Red, position: 12, want: 24},
		{name: "red has only 12 positions", subset: leds.Red, position: 13, wantErr: true},
		{name: "green has only 6 positions", subset: leds.Green, position: 7, wantErr: true},
		{name: "zero position", subset: leds.Amber, position: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.subset.Light(tt.position)
			if tt.wantErr {
				assert.ErrorIs(t, err, leds.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubsetsCoverAllLeds(t *testing.T) {
	assert.Equal(t, 6, leds.Green.Size())
	assert.Equal(t, 6, leds.Amber.Size())
	assert.Equal(t, 12, leds.Red.Size())

	assert.Equal(t, leds.Green.Last+1, leds.Amber.First)
	assert.Equal(t, leds.Amber.Last+1, leds.Red.First)
	assert.Equal(t, leds.Count, leds.Red.Last)
}

package dnp3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoubleBitFrom(t *testing.T) {
	tests := []struct {
		name string
		x    uint8
		want DoubleBit
	}{
		{"all bits clear", 0b00, DoubleBitIntermediate},
		{"determined off", 0b01, DoubleBitDeterminedOff},
		{"determined on", 0b10, DoubleBitDeterminedOn},
		{"indeterminate", 0b11, DoubleBitIndeterminate},
		{"high bits ignored", 0b1110, DoubleBitDeterminedOn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DoubleBitFrom(tt.x))
		})
	}
}

func TestDoubleBitString(t *testing.T) {
	require.Equal(t, "Intermediate", DoubleBitIntermediate.String())
	require.Equal(t, "DeterminedOn", DoubleBitDeterminedOn.String())
}

func TestFlags(t *testing.T) {
	f := Flags(0x81)
	require.True(t, f.Online())
	require.True(t, f.State())
	require.False(t, f.Restart())

	f = Flags(0x06)
	require.True(t, f.Restart())
	require.True(t, f.CommLost())
	require.False(t, f.Online())
	require.False(t, f.State())
}

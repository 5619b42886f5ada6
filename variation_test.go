package dnp3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupVariation(t *testing.T) {
	tests := []struct {
		name      string
		group     uint8
		variation uint8
		want      ObjectShape
		ok        bool
	}{
		{"binary input packed", 1, 1, ObjectShape{Kind: ShapeSingleBit}, true},
		{"binary input with flags", 1, 2, ObjectShape{Kind: ShapeFixedSize, Size: 1}, true},
		{"binary input default", 1, 0, ObjectShape{Kind: ShapeAnyVariation}, true},
		{"binary event with absolute time", 2, 2, ObjectShape{Kind: ShapeFixedSize, Size: 7}, true},
		{"double-bit packed", 3, 1, ObjectShape{Kind: ShapeDoubleBit}, true},
		{"counter 32-bit with flag", 20, 1, ObjectShape{Kind: ShapeFixedSize, Size: 5}, true},
		{"frozen counter with flag and time", 21, 5, ObjectShape{Kind: ShapeFixedSize, Size: 11}, true},
		{"analog double precision", 30, 6, ObjectShape{Kind: ShapeFixedSize, Size: 9}, true},
		{"class 1 data", 60, 2, ObjectShape{Kind: ShapeAnyVariation}, true},
		{"internal indications", 80, 1, ObjectShape{Kind: ShapeSingleBit}, true},
		{"octet string", 110, 4, ObjectShape{Kind: ShapeSizedByVariation, Size: 4}, true},
		{"octet string var 0", 110, 0, ObjectShape{Kind: ShapeSizedByVariation, Size: 0}, true},
		{"octet string event", 111, 16, ObjectShape{Kind: ShapeSizedByVariation, Size: 16}, true},
		{"unknown group", 99, 1, ObjectShape{}, false},
		{"unknown variation in known group", 1, 9, ObjectShape{}, false},
		{"class data has no variation 0", 60, 0, ObjectShape{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, ok := LookupVariation(tt.group, tt.variation)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, shape)
			}
		})
	}
}

func TestGroupVariationIdentity(t *testing.T) {
	gv := groupVar(30, 1)
	require.Equal(t, Group30Var1, gv)
	require.Equal(t, uint8(30), gv.Group())
	require.Equal(t, uint8(1), gv.Variation())
	require.Equal(t, "g30v1", gv.String())
}

func TestGroupVariationName(t *testing.T) {
	require.Equal(t, "Analog Input - 32-bit With Flag", Group30Var1.Name())
	require.Equal(t, "Class Data - Class 0", Group60Var1.Name())
	require.Equal(t, "Octet String", groupVar(110, 21).Name())
	require.Equal(t, "Octet String Event", groupVar(111, 3).Name())
	require.Equal(t, "g113v1", groupVar(113, 1).Name())
}

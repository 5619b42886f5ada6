package dnp3

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestDecodeRangedFixedRecords(t *testing.T) {
	cur := NewReadCursor([]byte{0x81, 0x01, 0x00})
	obj, err := DecodeRanged(1, 2, mustRange(t, 0, 2), cur)
	require.NoError(t, err)
	require.Equal(t, Group1Var2, obj.GroupVar)
	require.Equal(t, RangedRecords, obj.Kind)
	require.True(t, cur.Empty())

	require.Equal(t, []byte{0x81}, obj.Records.ItemAt(0))
	require.Equal(t, []byte{0x01}, obj.Records.ItemAt(1))
	require.Equal(t, []byte{0x00}, obj.Records.ItemAt(2))
}

func TestDecodeRangedConsumesExactBudget(t *testing.T) {
	tests := []struct {
		name        string
		group       uint8
		variation   uint8
		start, stop uint32
		bufLen      int
		wantLeft    int
	}{
		{"packed bits count 9", 1, 1, 0, 8, 4, 2},
		{"double bits count 9", 3, 1, 0, 8, 4, 1},
		{"five byte records count 2", 30, 1, 0, 1, 12, 2},
		{"octet strings of 4 count 2", 110, 4, 5, 6, 10, 2},
		{"default variation consumes nothing", 60, 1, 0, 100, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewReadCursor(make([]byte, tt.bufLen))
			_, err := DecodeRanged(tt.group, tt.variation, mustRange(t, tt.start, tt.stop), cur)
			require.NoError(t, err)
			require.Equal(t, tt.wantLeft, cur.Remaining())
		})
	}
}

func TestDecodeRangedTruncated(t *testing.T) {
	// g30v2 is 3 bytes per item; count 3 needs 9.
	cur := NewReadCursor(make([]byte, 8))
	_, err := DecodeRanged(30, 2, mustRange(t, 0, 2), cur)
	require.True(t, IsReadOverflow(err))
}

func TestDecodeRangedOctetVarZero(t *testing.T) {
	cur := NewReadCursor([]byte{0x01, 0x02})
	_, err := DecodeRanged(110, 0, mustRange(t, 0, 1), cur)
	require.ErrorIs(t, err, ErrZeroLengthOctetData)

	obj, err := DecodeRangedRead(110, 0, mustRange(t, 0, 1))
	require.NoError(t, err)
	require.Equal(t, RangedOctetsVar0, obj.Kind)
	require.Nil(t, obj.Octets)
}

func TestDecodeRangedUnknownVariation(t *testing.T) {
	cur := NewReadCursor([]byte{0x01})
	_, err := DecodeRanged(99, 1, mustRange(t, 0, 0), cur)
	require.True(t, IsInvalidQualifier(err))

	_, err = DecodeRangedRead(99, 1, mustRange(t, 0, 0))
	require.True(t, IsInvalidQualifier(err))
}

func TestDecodeRangedReadProducesEmptyViews(t *testing.T) {
	rng := mustRange(t, 2, 10)

	tests := []struct {
		name      string
		group     uint8
		variation uint8
		kind      RangedKind
	}{
		{"packed bits", 1, 1, RangedBits},
		{"double bits", 3, 1, RangedDoubleBits},
		{"fixed records", 30, 1, RangedRecords},
		{"octet strings", 110, 8, RangedOctets},
		{"class data", 60, 2, RangedAllObjects},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := DecodeRangedRead(tt.group, tt.variation, rng)
			require.NoError(t, err)
			require.Equal(t, tt.kind, obj.Kind)

			// The count survives for indexing purposes, but the view
			// holds no payload and iterates nothing.
			switch tt.kind {
			case RangedBits:
				require.Equal(t, uint32(9), obj.Bits.Count())
				it := obj.Bits.Iter()
				_, ok := it.Next()
				require.False(t, ok)
			case RangedDoubleBits:
				require.Equal(t, uint32(9), obj.DoubleBits.Count())
				it := obj.DoubleBits.Iter()
				_, ok := it.Next()
				require.False(t, ok)
			case RangedRecords:
				require.Equal(t, uint32(9), obj.Records.Count())
				it := obj.Records.Iter()
				_, ok := it.Next()
				require.False(t, ok)
			case RangedOctets:
				require.Equal(t, uint32(9), obj.Octets.Count())
				it := obj.Octets.Iter()
				_, ok := it.Next()
				require.False(t, ok)
			}
		})
	}
}

func withTestLogger(t *testing.T) *test.Hook {
	t.Helper()
	prev := _lg
	lg, hook := test.NewNullLogger()
	lg.SetLevel(logrus.DebugLevel)
	SetLogger(lg)
	t.Cleanup(func() { SetLogger(prev) })
	return hook
}

func TestLogEmissionFollowsDecodeOrder(t *testing.T) {
	hook := withTestLogger(t)

	cur := NewReadCursor([]byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00})
	obj, err := DecodeRanged(30, 4, mustRange(t, 7, 9), cur)
	require.NoError(t, err)

	obj.Log(logrus.InfoLevel)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	for i, entry := range entries {
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "Analog Input - 16-bit Without Flag", entry.Message)
		require.Equal(t, "g30v4", entry.Data["object"])
		require.Equal(t, uint32(7+i), entry.Data["index"])
	}
}

func TestLogSkipsPayloadFreeShapes(t *testing.T) {
	hook := withTestLogger(t)

	obj, err := DecodeRanged(60, 1, mustRange(t, 0, 0), NewReadCursor(nil))
	require.NoError(t, err)
	obj.Log(logrus.InfoLevel)

	marker, err := DecodeRangedRead(110, 0, mustRange(t, 0, 0))
	require.NoError(t, err)
	marker.Log(logrus.InfoLevel)

	require.Empty(t, hook.AllEntries())
}

func TestLogBitValues(t *testing.T) {
	hook := withTestLogger(t)

	cur := NewReadCursor([]byte{0b0000_0010})
	obj, err := DecodeRanged(1, 1, mustRange(t, 0, 1), cur)
	require.NoError(t, err)
	obj.Log(logrus.DebugLevel)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, false, entries[0].Data["value"])
	require.Equal(t, true, entries[1].Data["value"])
	require.Equal(t, logrus.DebugLevel, entries[0].Level)
}

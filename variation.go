// Package dnp3 implements the DNP3 (IEEE 1815) application-layer object
// codec: a zero-copy decoder turning group/variation object headers and
// their payload bytes into typed measurement and control views.
package dnp3

import "fmt"

/*
GroupVariation identifies one encoding of a DNP3 data object: the group
selects the kind of point (binary input, counter, analog input, ...) and the
variation selects how the point is put on the wire (packed bits, with or
without flags, 16- or 32-bit, ...).

The identity is packed as group<<8 | variation so it can be used directly as
a map key and compared cheaply.
*/
type GroupVariation uint16

func groupVar(group, variation uint8) GroupVariation {
	return GroupVariation(uint16(group)<<8 | uint16(variation))
}

func (gv GroupVariation) Group() uint8 {
	return uint8(gv >> 8)
}

func (gv GroupVariation) Variation() uint8 {
	return uint8(gv)
}

// String renders the conventional gXvY form, e.g. "g30v1".
func (gv GroupVariation) String() string {
	return fmt.Sprintf("g%dv%d", gv.Group(), gv.Variation())
}

const (
	// Binary Input (group 1). Variation 0 requests the default variation
	// and carries no data; variation 1 is the packed single-bit format;
	// variation 2 carries a one-byte flags field per point:
	//   | <-               8 bits                -> |
	//   ---------------------------------------------
	//   | ST | RES | CF | LF | RF | CL | RE | OL    |
	Group1Var0 GroupVariation = 0x0100
	Group1Var1 GroupVariation = 0x0101
	Group1Var2 GroupVariation = 0x0102

	// Binary Input Event (group 2): flags only, flags with 48-bit absolute
	// time, flags with 16-bit relative time.
	Group2Var0 GroupVariation = 0x0200
	Group2Var1 GroupVariation = 0x0201
	Group2Var2 GroupVariation = 0x0202
	Group2Var3 GroupVariation = 0x0203

	// Double-bit Binary Input (group 3): packed 2-bit pairs, or one flags
	// byte per point with the pair in bits 6-7.
	Group3Var0 GroupVariation = 0x0300
	Group3Var1 GroupVariation = 0x0301
	Group3Var2 GroupVariation = 0x0302

	// Double-bit Binary Input Event (group 4).
	Group4Var0 GroupVariation = 0x0400
	Group4Var1 GroupVariation = 0x0401
	Group4Var2 GroupVariation = 0x0402
	Group4Var3 GroupVariation = 0x0403

	// Binary Output (group 10): packed status bits or one flags byte.
	Group10Var0 GroupVariation = 0x0A00
	Group10Var1 GroupVariation = 0x0A01
	Group10Var2 GroupVariation = 0x0A02

	// Counter (group 20): 32/16-bit, with or without a leading flags byte.
	Group20Var0 GroupVariation = 0x1400
	Group20Var1 GroupVariation = 0x1401
	Group20Var2 GroupVariation = 0x1402
	Group20Var5 GroupVariation = 0x1405
	Group20Var6 GroupVariation = 0x1406

	// Frozen Counter (group 21): as group 20, plus variations carrying the
	// 48-bit time of freeze.
	Group21Var0  GroupVariation = 0x1500
	Group21Var1  GroupVariation = 0x1501
	Group21Var2  GroupVariation = 0x1502
	Group21Var5  GroupVariation = 0x1505
	Group21Var6  GroupVariation = 0x1506
	Group21Var9  GroupVariation = 0x1509
	Group21Var10 GroupVariation = 0x150A

	// Analog Input (group 30): 32/16-bit integer with or without flags,
	// single/double float with flags.
	Group30Var0 GroupVariation = 0x1E00
	Group30Var1 GroupVariation = 0x1E01
	Group30Var2 GroupVariation = 0x1E02
	Group30Var3 GroupVariation = 0x1E03
	Group30Var4 GroupVariation = 0x1E04
	Group30Var5 GroupVariation = 0x1E05
	Group30Var6 GroupVariation = 0x1E06

	// Analog Input Event (group 32), default variation only: events are
	// range-addressable solely in read requests.
	Group32Var0 GroupVariation = 0x2000

	// Analog Output Status (group 40).
	Group40Var0 GroupVariation = 0x2800
	Group40Var1 GroupVariation = 0x2801
	Group40Var2 GroupVariation = 0x2802
	Group40Var3 GroupVariation = 0x2803
	Group40Var4 GroupVariation = 0x2804

	// Time and Date (group 50), 48-bit millisecond timestamp.
	Group50Var1 GroupVariation = 0x3201

	// Class Data (group 60): class 0 (static) and event classes 1-3.
	// Pure request forms, never any payload.
	Group60Var1 GroupVariation = 0x3C01
	Group60Var2 GroupVariation = 0x3C02
	Group60Var3 GroupVariation = 0x3C03
	Group60Var4 GroupVariation = 0x3C04

	// Internal Indications (group 80), packed bits.
	Group80Var1 GroupVariation = 0x5001
)

// Octet-string groups: the variation number is the per-item byte length, so
// every variation 1-255 is implicitly defined and variation 0 means
// "unspecified length".
const (
	GroupOctetString      uint8 = 110
	GroupOctetStringEvent uint8 = 111
)

// ShapeKind classifies how a variation lays its items out on the wire.
type ShapeKind uint8

const (
	// ShapeAnyVariation carries no payload; it only names a group (and
	// optionally a preferred variation) in a request.
	ShapeAnyVariation ShapeKind = iota
	// ShapeSingleBit packs one bit per item, LSB first.
	ShapeSingleBit
	// ShapeDoubleBit packs two bits per item, LSB first.
	ShapeDoubleBit
	// ShapeFixedSize carries one fixed-width binary record per item.
	ShapeFixedSize
	// ShapeSizedByVariation carries records whose width is the variation
	// number itself.
	ShapeSizedByVariation
)

// ObjectShape is a variation's wire-shape category plus its parameters.
// Size is the per-item byte width for ShapeFixedSize and
// ShapeSizedByVariation; zero otherwise.
type ObjectShape struct {
	Kind ShapeKind
	Size uint8
}

// variationCatalog is the closed set of range-addressable variations.
// Record widths are the IEEE 1815 fixed sizes. Octet-string groups are not
// listed; LookupVariation derives their shape from the variation number.
var variationCatalog = map[GroupVariation]ObjectShape{
	Group1Var0: {Kind: ShapeAnyVariation},
	Group1Var1: {Kind: ShapeSingleBit},
	Group1Var2: {Kind: ShapeFixedSize, Size: 1},

	Group2Var0: {Kind: ShapeAnyVariation},
	Group2Var1: {Kind: ShapeFixedSize, Size: 1},
	Group2Var2: {Kind: ShapeFixedSize, Size: 7},
	Group2Var3: {Kind: ShapeFixedSize, Size: 3},

	Group3Var0: {Kind: ShapeAnyVariation},
	Group3Var1: {Kind: ShapeDoubleBit},
	Group3Var2: {Kind: ShapeFixedSize, Size: 1},

	Group4Var0: {Kind: ShapeAnyVariation},
	Group4Var1: {Kind: ShapeFixedSize, Size: 1},
	Group4Var2: {Kind: ShapeFixedSize, Size: 7},
	Group4Var3: {Kind: ShapeFixedSize, Size: 3},

	Group10Var0: {Kind: ShapeAnyVariation},
	Group10Var1: {Kind: ShapeSingleBit},
	Group10Var2: {Kind: ShapeFixedSize, Size: 1},

	Group20Var0: {Kind: ShapeAnyVariation},
	Group20Var1: {Kind: ShapeFixedSize, Size: 5},
	Group20Var2: {Kind: ShapeFixedSize, Size: 3},
	Group20Var5: {Kind: ShapeFixedSize, Size: 4},
	Group20Var6: {Kind: ShapeFixedSize, Size: 2},

	Group21Var0:  {Kind: ShapeAnyVariation},
	Group21Var1:  {Kind: ShapeFixedSize, Size: 5},
	Group21Var2:  {Kind: ShapeFixedSize, Size: 3},
	Group21Var5:  {Kind: ShapeFixedSize, Size: 11},
	Group21Var6:  {Kind: ShapeFixedSize, Size: 9},
	Group21Var9:  {Kind: ShapeFixedSize, Size: 4},
	Group21Var10: {Kind: ShapeFixedSize, Size: 2},

	Group30Var0: {Kind: ShapeAnyVariation},
	Group30Var1: {Kind: ShapeFixedSize, Size: 5},
	Group30Var2: {Kind: ShapeFixedSize, Size: 3},
	Group30Var3: {Kind: ShapeFixedSize, Size: 4},
	Group30Var4: {Kind: ShapeFixedSize, Size: 2},
	Group30Var5: {Kind: ShapeFixedSize, Size: 5},
	Group30Var6: {Kind: ShapeFixedSize, Size: 9},

	Group32Var0: {Kind: ShapeAnyVariation},

	Group40Var0: {Kind: ShapeAnyVariation},
	Group40Var1: {Kind: ShapeFixedSize, Size: 5},
	Group40Var2: {Kind: ShapeFixedSize, Size: 3},
	Group40Var3: {Kind: ShapeFixedSize, Size: 5},
	Group40Var4: {Kind: ShapeFixedSize, Size: 9},

	Group50Var1: {Kind: ShapeFixedSize, Size: 6},

	Group60Var1: {Kind: ShapeAnyVariation},
	Group60Var2: {Kind: ShapeAnyVariation},
	Group60Var3: {Kind: ShapeAnyVariation},
	Group60Var4: {Kind: ShapeAnyVariation},

	Group80Var1: {Kind: ShapeSingleBit},
}

// LookupVariation resolves a group/variation pair against the object
// library. It is total and closed: combinations outside the library report
// ok == false, and the caller turns that into a protocol-level rejection.
// The table is read-only and safe for concurrent use.
func LookupVariation(group, variation uint8) (ObjectShape, bool) {
	if group == GroupOctetString || group == GroupOctetStringEvent {
		return ObjectShape{Kind: ShapeSizedByVariation, Size: variation}, true
	}
	shape, ok := variationCatalog[groupVar(group, variation)]
	return shape, ok
}

var variationNames = map[GroupVariation]string{
	Group1Var0:   "Binary Input - Any Variation",
	Group1Var1:   "Binary Input - Packed Format",
	Group1Var2:   "Binary Input - With Flags",
	Group2Var0:   "Binary Input Event - Any Variation",
	Group2Var1:   "Binary Input Event - Without Time",
	Group2Var2:   "Binary Input Event - With Absolute Time",
	Group2Var3:   "Binary Input Event - With Relative Time",
	Group3Var0:   "Double-bit Binary Input - Any Variation",
	Group3Var1:   "Double-bit Binary Input - Packed Format",
	Group3Var2:   "Double-bit Binary Input - With Flags",
	Group4Var0:   "Double-bit Binary Input Event - Any Variation",
	Group4Var1:   "Double-bit Binary Input Event - Without Time",
	Group4Var2:   "Double-bit Binary Input Event - With Absolute Time",
	Group4Var3:   "Double-bit Binary Input Event - With Relative Time",
	Group10Var0:  "Binary Output - Any Variation",
	Group10Var1:  "Binary Output - Packed Format",
	Group10Var2:  "Binary Output - Output Status With Flags",
	Group20Var0:  "Counter - Any Variation",
	Group20Var1:  "Counter - 32-bit With Flag",
	Group20Var2:  "Counter - 16-bit With Flag",
	Group20Var5:  "Counter - 32-bit Without Flag",
	Group20Var6:  "Counter - 16-bit Without Flag",
	Group21Var0:  "Frozen Counter - Any Variation",
	Group21Var1:  "Frozen Counter - 32-bit With Flag",
	Group21Var2:  "Frozen Counter - 16-bit With Flag",
	Group21Var5:  "Frozen Counter - 32-bit With Flag and Time",
	Group21Var6:  "Frozen Counter - 16-bit With Flag and Time",
	Group21Var9:  "Frozen Counter - 32-bit Without Flag",
	Group21Var10: "Frozen Counter - 16-bit Without Flag",
	Group30Var0:  "Analog Input - Any Variation",
	Group30Var1:  "Analog Input - 32-bit With Flag",
	Group30Var2:  "Analog Input - 16-bit With Flag",
	Group30Var3:  "Analog Input - 32-bit Without Flag",
	Group30Var4:  "Analog Input - 16-bit Without Flag",
	Group30Var5:  "Analog Input - Single-precision With Flag",
	Group30Var6:  "Analog Input - Double-precision With Flag",
	Group32Var0:  "Analog Input Event - Any Variation",
	Group40Var0:  "Analog Output Status - Any Variation",
	Group40Var1:  "Analog Output Status - 32-bit With Flag",
	Group40Var2:  "Analog Output Status - 16-bit With Flag",
	Group40Var3:  "Analog Output Status - Single-precision With Flag",
	Group40Var4:  "Analog Output Status - Double-precision With Flag",
	Group50Var1:  "Time and Date - Absolute Time",
	Group60Var1:  "Class Data - Class 0",
	Group60Var2:  "Class Data - Class 1",
	Group60Var3:  "Class Data - Class 2",
	Group60Var4:  "Class Data - Class 3",
	Group80Var1:  "Internal Indications - Packed Format",
}

// Name returns the standard's object name, or the gXvY form for
// combinations without a registered name (octet strings among them).
func (gv GroupVariation) Name() string {
	if name, ok := variationNames[gv]; ok {
		return name
	}
	switch gv.Group() {
	case GroupOctetString:
		return "Octet String"
	case GroupOctetStringEvent:
		return "Octet String Event"
	}
	return gv.String()
}

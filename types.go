package dnp3

/*
DoubleBit is the 2-bit state code carried by double-bit binary objects.

	| bits | state          |
	| 00   | Intermediate   |
	| 01   | DeterminedOff  |
	| 10   | DeterminedOn   |
	| 11   | Indeterminate  |
*/
type DoubleBit uint8

const (
	DoubleBitIntermediate  DoubleBit = 0b00
	DoubleBitDeterminedOff DoubleBit = 0b01
	DoubleBitDeterminedOn  DoubleBit = 0b10
	DoubleBitIndeterminate DoubleBit = 0b11
)

// DoubleBitFrom decodes the lowest two bits of x.
func DoubleBitFrom(x uint8) DoubleBit {
	return DoubleBit(x & 0b11)
}

func (d DoubleBit) String() string {
	switch d {
	case DoubleBitIntermediate:
		return "Intermediate"
	case DoubleBitDeterminedOff:
		return "DeterminedOff"
	case DoubleBitDeterminedOn:
		return "DeterminedOn"
	default:
		return "Indeterminate"
	}
}

/*
Flags is the measurement quality byte leading most "With Flag(s)"
variations:

	| <-                   8 bits                    -> |
	-----------------------------------------------------
	| ST | RES | CF | LF | RF | CL | RE | OL            |

Bit 7 doubles as the point state for binary objects and bit 5 as over-range
for analogs; interpretation of the high bits is per-group, so only the
shared low bits get named masks here.
*/
type Flags uint8

const (
	FlagOnline       Flags = 1 << 0
	FlagRestart      Flags = 1 << 1
	FlagCommLost     Flags = 1 << 2
	FlagRemoteForced Flags = 1 << 3
	FlagLocalForced  Flags = 1 << 4
)

func (f Flags) Online() bool       { return f&FlagOnline != 0 }
func (f Flags) Restart() bool      { return f&FlagRestart != 0 }
func (f Flags) CommLost() bool     { return f&FlagCommLost != 0 }
func (f Flags) RemoteForced() bool { return f&FlagRemoteForced != 0 }
func (f Flags) LocalForced() bool  { return f&FlagLocalForced != 0 }

// State extracts the binary point state carried in bit 7 of flag-bearing
// binary variations.
func (f Flags) State() bool {
	return f&(1<<7) != 0
}

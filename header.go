package dnp3

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

/*
Fragment is one parsed application-layer fragment.

The fragment starts with a two-byte application header (four bytes on
responses, which append the internal indications):

	| <-              8 bits              -> |
	| FIR | FIN | CON | UNS | SEQ     [4b]   |  application control
	| Function Code                          |
	| IIN1 (responses only)                  |
	| IIN2 (responses only)                  |

followed by zero or more object headers, each a group/variation/qualifier
tuple, the qualifier's range fields, and (outside of READ requests) the
object payload:

	| Object Group                           |
	| Object Variation                       |
	| Qualifier Code                         |
	| Range fields (per qualifier)           |
	| Payload (absent in READ requests)      |
*/
type Fragment struct {
	Control  Control
	Function FunctionCode
	IIN      *IIN // responses only
	Headers  []*ObjectHeader
}

// Control is the application control byte: first/final fragment bits,
// confirmation request, unsolicited flag, and the 4-bit sequence number.
type Control struct {
	Fir bool
	Fin bool
	Con bool
	Uns bool
	Seq uint8
}

const (
	ctrlFir     uint8 = 0x80
	ctrlFin     uint8 = 0x40
	ctrlCon     uint8 = 0x20
	ctrlUns     uint8 = 0x10
	ctrlSeqMask uint8 = 0x0F
)

func ControlFrom(b uint8) Control {
	return Control{
		Fir: b&ctrlFir != 0,
		Fin: b&ctrlFin != 0,
		Con: b&ctrlCon != 0,
		Uns: b&ctrlUns != 0,
		Seq: b & ctrlSeqMask,
	}
}

func (c Control) Byte() uint8 {
	b := c.Seq & ctrlSeqMask
	if c.Fir {
		b |= ctrlFir
	}
	if c.Fin {
		b |= ctrlFin
	}
	if c.Con {
		b |= ctrlCon
	}
	if c.Uns {
		b |= ctrlUns
	}
	return b
}

// FunctionCode is the application-layer function.
type FunctionCode uint8

const (
	FuncConfirm             FunctionCode = 0x00
	FuncRead                FunctionCode = 0x01
	FuncWrite               FunctionCode = 0x02
	FuncSelect              FunctionCode = 0x03
	FuncOperate             FunctionCode = 0x04
	FuncDirectOperate       FunctionCode = 0x05
	FuncDirectOperateNoAck  FunctionCode = 0x06
	FuncImmediateFreeze     FunctionCode = 0x07
	FuncColdRestart         FunctionCode = 0x0D
	FuncWarmRestart         FunctionCode = 0x0E
	FuncEnableUnsolicited   FunctionCode = 0x14
	FuncDisableUnsolicited  FunctionCode = 0x15
	FuncResponse            FunctionCode = 0x81
	FuncUnsolicitedResponse FunctionCode = 0x82
)

func (f FunctionCode) String() string {
	switch f {
	case FuncConfirm:
		return "CONFIRM"
	case FuncRead:
		return "READ"
	case FuncWrite:
		return "WRITE"
	case FuncSelect:
		return "SELECT"
	case FuncOperate:
		return "OPERATE"
	case FuncDirectOperate:
		return "DIRECT_OPERATE"
	case FuncDirectOperateNoAck:
		return "DIRECT_OPERATE_NO_ACK"
	case FuncImmediateFreeze:
		return "IMMEDIATE_FREEZE"
	case FuncColdRestart:
		return "COLD_RESTART"
	case FuncWarmRestart:
		return "WARM_RESTART"
	case FuncEnableUnsolicited:
		return "ENABLE_UNSOLICITED"
	case FuncDisableUnsolicited:
		return "DISABLE_UNSOLICITED"
	case FuncResponse:
		return "RESPONSE"
	case FuncUnsolicitedResponse:
		return "UNSOLICITED_RESPONSE"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(f))
	}
}

// IIN is the pair of internal indication bytes on every response.
type IIN struct {
	IIN1 uint8
	IIN2 uint8
}

func (i IIN) Class1Events() bool   { return i.IIN1&(1<<1) != 0 }
func (i IIN) Class2Events() bool   { return i.IIN1&(1<<2) != 0 }
func (i IIN) Class3Events() bool   { return i.IIN1&(1<<3) != 0 }
func (i IIN) NeedTime() bool       { return i.IIN1&(1<<4) != 0 }
func (i IIN) DeviceTrouble() bool  { return i.IIN1&(1<<6) != 0 }
func (i IIN) DeviceRestart() bool  { return i.IIN1&(1<<7) != 0 }
func (i IIN) ObjectUnknown() bool  { return i.IIN2&(1<<1) != 0 }
func (i IIN) ParameterError() bool { return i.IIN2&(1<<2) != 0 }

// QualifierCode selects how an object header addresses its items. Only the
// start/stop and all-objects forms are handled here; count/prefix forms
// belong to the sibling decoder for prefixed headers.
type QualifierCode uint8

const (
	QualifierRange8     QualifierCode = 0x00
	QualifierRange16    QualifierCode = 0x01
	QualifierAllObjects QualifierCode = 0x06
)

// ObjectHeader is one decoded object header with its payload view.
type ObjectHeader struct {
	Qualifier QualifierCode
	Range     Range // zero-valued for all-objects headers
	Objects   *RangedObjects
}

// ParseRequest parses a master-to-outstation fragment. READ requests carry
// header-only objects; every other function carries payload.
func ParseRequest(data []byte) (*Fragment, error) {
	return parseFragment(data, false)
}

// ParseResponse parses an outstation-to-master fragment, including the
// internal indication bytes.
func ParseResponse(data []byte) (*Fragment, error) {
	return parseFragment(data, true)
}

func parseFragment(data []byte, response bool) (*Fragment, error) {
	cur := NewReadCursor(data)

	ctrl, err := cur.ReadU8()
	if err != nil {
		return nil, err
	}
	function, err := cur.ReadU8()
	if err != nil {
		return nil, err
	}
	frag := &Fragment{
		Control:  ControlFrom(ctrl),
		Function: FunctionCode(function),
	}
	if response {
		iin1, err := cur.ReadU8()
		if err != nil {
			return nil, err
		}
		iin2, err := cur.ReadU8()
		if err != nil {
			return nil, err
		}
		frag.IIN = &IIN{IIN1: iin1, IIN2: iin2}
	}

	for !cur.Empty() {
		header, err := parseObjectHeader(cur, frag.Function == FuncRead)
		if err != nil {
			return nil, err
		}
		frag.Headers = append(frag.Headers, header)
	}
	return frag, nil
}

func parseObjectHeader(cur *ReadCursor, read bool) (*ObjectHeader, error) {
	group, err := cur.ReadU8()
	if err != nil {
		return nil, err
	}
	variation, err := cur.ReadU8()
	if err != nil {
		return nil, err
	}
	qualifier, err := cur.ReadU8()
	if err != nil {
		return nil, err
	}

	var rng Range
	switch QualifierCode(qualifier) {
	case QualifierRange8:
		start, err := cur.ReadU8()
		if err != nil {
			return nil, err
		}
		stop, err := cur.ReadU8()
		if err != nil {
			return nil, err
		}
		if rng, err = NewRange(uint32(start), uint32(stop)); err != nil {
			return nil, err
		}
	case QualifierRange16:
		start, err := cur.ReadU16LE()
		if err != nil {
			return nil, err
		}
		stop, err := cur.ReadU16LE()
		if err != nil {
			return nil, err
		}
		if rng, err = NewRange(uint32(start), uint32(stop)); err != nil {
			return nil, err
		}
	case QualifierAllObjects:
		// No range fields and never any payload, regardless of mode.
		if _, ok := LookupVariation(group, variation); !ok {
			return nil, &InvalidQualifierError{Group: group, Variation: variation}
		}
		return &ObjectHeader{
			Qualifier: QualifierAllObjects,
			Objects: &RangedObjects{
				GroupVar: groupVar(group, variation),
				Kind:     RangedAllObjects,
			},
		}, nil
	default:
		return nil, &UnknownQualifierError{Code: qualifier}
	}

	var objects *RangedObjects
	if read {
		objects, err = DecodeRangedRead(group, variation, rng)
	} else {
		objects, err = DecodeRanged(group, variation, rng, cur)
	}
	if err != nil {
		return nil, err
	}
	return &ObjectHeader{
		Qualifier: QualifierCode(qualifier),
		Range:     rng,
		Objects:   objects,
	}, nil
}

// Log emits the fragment identity and every decoded item at the given
// severity.
func (f *Fragment) Log(level logrus.Level) {
	fields := logrus.Fields{
		"function": f.Function.String(),
		"fir":      f.Control.Fir,
		"fin":      f.Control.Fin,
		"seq":      f.Control.Seq,
	}
	if f.IIN != nil {
		fields["iin"] = fmt.Sprintf("[0x%02X, 0x%02X]", f.IIN.IIN1, f.IIN.IIN2)
	}
	_lg.WithFields(fields).Log(level, "application fragment")
	for _, h := range f.Headers {
		h.Objects.Log(level)
	}
}

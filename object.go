package dnp3

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RangedKind tags which payload form a decoded ranged object carries.
type RangedKind uint8

const (
	// RangedAllObjects carries no payload: a default-variation or class
	// request form.
	RangedAllObjects RangedKind = iota
	RangedBits
	RangedDoubleBits
	RangedRecords
	RangedOctets
	// RangedOctetsVar0 marks an octet-string header at variation 0, the
	// "unspecified length" request form. Legal only in read mode.
	RangedOctetsVar0
)

/*
RangedObjects is the decoded form of one range-qualified object header: the
group/variation identity plus exactly one payload view matching the
variation's wire shape. Exactly the field selected by Kind is non-nil.

A RangedObjects is built once per incoming header, handed to the
measurement/control/logging consumer, and discarded; it is never mutated.
Like the sequence views it holds, it borrows the fragment buffer.
*/
type RangedObjects struct {
	GroupVar GroupVariation
	Kind     RangedKind

	Bits       *BitSequence
	DoubleBits *DoubleBitSequence
	Records    *FixedSequence
	Octets     *OctetSequence
}

// DecodeRanged decodes the payload of a range-qualified object header in a
// fragment that carries data (responses, writes, unsolicited reports).
// It consumes exactly the byte budget implied by the variation's shape and
// the range count, and fails without consuming on truncated input.
func DecodeRanged(group, variation uint8, rng Range, cur *ReadCursor) (*RangedObjects, error) {
	shape, ok := LookupVariation(group, variation)
	if !ok {
		return nil, &InvalidQualifierError{Group: group, Variation: variation}
	}

	obj := &RangedObjects{GroupVar: groupVar(group, variation)}
	var err error
	switch shape.Kind {
	case ShapeAnyVariation:
		// A default-variation header carries no per-index data; the
		// range is irrelevant and nothing is consumed.
		obj.Kind = RangedAllObjects
	case ShapeSingleBit:
		obj.Kind = RangedBits
		obj.Bits, err = newBitSequence(rng, cur)
	case ShapeDoubleBit:
		obj.Kind = RangedDoubleBits
		obj.DoubleBits, err = newDoubleBitSequence(rng, cur)
	case ShapeFixedSize:
		obj.Kind = RangedRecords
		obj.Records, err = newFixedSequence(shape.Size, rng, cur)
	case ShapeSizedByVariation:
		if variation == 0 {
			return nil, ErrZeroLengthOctetData
		}
		obj.Kind = RangedOctets
		obj.Octets, err = newOctetSequence(shape.Size, rng, cur)
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// DecodeRangedRead decodes a range-qualified object header inside a READ
// request. Such headers carry no payload by definition, so this never
// touches a cursor and never fails on buffer content: it produces the empty
// counterpart of each shape, keeping the request's range so counts and
// indices remain visible.
func DecodeRangedRead(group, variation uint8, rng Range) (*RangedObjects, error) {
	shape, ok := LookupVariation(group, variation)
	if !ok {
		return nil, &InvalidQualifierError{Group: group, Variation: variation}
	}

	obj := &RangedObjects{GroupVar: groupVar(group, variation)}
	switch shape.Kind {
	case ShapeAnyVariation:
		obj.Kind = RangedAllObjects
	case ShapeSingleBit:
		obj.Kind = RangedBits
		obj.Bits = emptyBitSequence(rng)
	case ShapeDoubleBit:
		obj.Kind = RangedDoubleBits
		obj.DoubleBits = emptyDoubleBitSequence(rng)
	case ShapeFixedSize:
		obj.Kind = RangedRecords
		obj.Records = emptyFixedSequence(shape.Size, rng)
	case ShapeSizedByVariation:
		if variation == 0 {
			obj.Kind = RangedOctetsVar0
		} else {
			obj.Kind = RangedOctets
			obj.Octets = emptyOctetSequence(shape.Size, rng)
		}
	}
	return obj, nil
}

// Log emits one structured record per decoded (index, value) pair, in
// ascending index order, at the given severity. Payload-free forms emit
// nothing: a data-free header has no per-item information to report.
func (o *RangedObjects) Log(level logrus.Level) {
	name := o.GroupVar.Name()
	switch o.Kind {
	case RangedBits:
		for it := o.Bits.Iter(); ; {
			item, ok := it.Next()
			if !ok {
				break
			}
			o.logItem(level, name, item.Index, item.Value)
		}
	case RangedDoubleBits:
		for it := o.DoubleBits.Iter(); ; {
			item, ok := it.Next()
			if !ok {
				break
			}
			o.logItem(level, name, item.Index, item.Value.String())
		}
	case RangedRecords:
		for it := o.Records.Iter(); ; {
			item, ok := it.Next()
			if !ok {
				break
			}
			o.logItem(level, name, item.Index, fmt.Sprintf("% X", item.Value))
		}
	case RangedOctets:
		for it := o.Octets.Iter(); ; {
			item, ok := it.Next()
			if !ok {
				break
			}
			o.logItem(level, name, item.Index, fmt.Sprintf("% X", item.Value))
		}
	}
}

func (o *RangedObjects) logItem(level logrus.Level, name string, index uint32, value any) {
	_lg.WithFields(logrus.Fields{
		"object": o.GroupVar.String(),
		"index":  index,
		"value":  value,
	}).Log(level, name)
}

package dnp3

import "fmt"

/*
Range is the inclusive start/stop index interval decoded from a one- or
two-byte start/stop qualifier. It selects which point indices an object
header covers; the payload bytes that follow are laid out in ascending index
order beginning at Start.
*/
type Range struct {
	start uint32
	stop  uint32
}

// NewRange rejects an inverted interval instead of assuming the qualifier
// decoder enforced it: an inverted start/stop on the wire is a malformed
// header.
func NewRange(start, stop uint32) (Range, error) {
	if stop < start {
		return Range{}, ErrInvalidRange
	}
	return Range{start: start, stop: stop}, nil
}

func (r Range) Start() uint32 { return r.start }
func (r Range) Stop() uint32  { return r.stop }

// Count is the number of indices covered. The full 32-bit interval
// saturates rather than wrapping.
func (r Range) Count() uint32 {
	n := r.count64()
	if n > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(n)
}

func (r Range) count64() uint64 {
	return uint64(r.stop) - uint64(r.start) + 1
}

// offsetOf converts a point index into a zero-based item offset. Indices
// only come from code iterating the range, so a miss is a programming
// error, not an input error.
func (r Range) offsetOf(index uint32) uint64 {
	if index < r.start || index > r.stop {
		panic(fmt.Sprintf("index %d outside range %d..%d", index, r.start, r.stop))
	}
	return uint64(index - r.start)
}

// Indexed pairs a decoded value with the point index it belongs to.
type Indexed[T any] struct {
	Index uint32
	Value T
}

/*
The sequence views below are stateless, zero-copy windows over the payload
bytes of one object header. A view holds only the borrowed byte slice and
the range; every access recomputes its byte offset, so a view can be
iterated any number of times or indexed directly without mutation. The
underlying buffer must stay alive and unmodified while the view is in use.

The read-request form of each view carries no payload: it keeps the range
(so Count and indices are still meaningful) but holds zero backed items and
iterates nothing.
*/

// BitSequence is a packed single-bit view: bit k of the byte stream, LSB
// first, is the value of index start+k. Total width is ceil(count/8) bytes.
type BitSequence struct {
	data  []byte
	rng   Range
	items uint64
}

func newBitSequence(rng Range, cur *ReadCursor) (*BitSequence, error) {
	data, err := cur.ReadBytes((rng.count64() + 7) / 8)
	if err != nil {
		return nil, err
	}
	return &BitSequence{data: data, rng: rng, items: rng.count64()}, nil
}

func emptyBitSequence(rng Range) *BitSequence {
	return &BitSequence{rng: rng}
}

func (s *BitSequence) Count() uint32 { return s.rng.Count() }
func (s *BitSequence) Range() Range  { return s.rng }

// ItemAt returns the bit for a point index. The index must lie within the
// view's range and the view must carry payload.
func (s *BitSequence) ItemAt(index uint32) bool {
	return s.bit(s.rng.offsetOf(index))
}

func (s *BitSequence) bit(k uint64) bool {
	return (s.data[k/8]>>(k%8))&1 == 1
}

func (s *BitSequence) Iter() BitIter {
	return BitIter{seq: s}
}

type BitIter struct {
	seq *BitSequence
	pos uint64
}

func (it *BitIter) Next() (Indexed[bool], bool) {
	if it.pos >= it.seq.items {
		return Indexed[bool]{}, false
	}
	k := it.pos
	it.pos++
	return Indexed[bool]{Index: it.seq.rng.start + uint32(k), Value: it.seq.bit(k)}, true
}

// DoubleBitSequence is a packed 2-bit view: bits 2k and 2k+1 of the byte
// stream, LSB first, form the state code of index start+k. Total width is
// ceil(count*2/8) bytes.
type DoubleBitSequence struct {
	data  []byte
	rng   Range
	items uint64
}

func newDoubleBitSequence(rng Range, cur *ReadCursor) (*DoubleBitSequence, error) {
	data, err := cur.ReadBytes((rng.count64()*2 + 7) / 8)
	if err != nil {
		return nil, err
	}
	return &DoubleBitSequence{data: data, rng: rng, items: rng.count64()}, nil
}

func emptyDoubleBitSequence(rng Range) *DoubleBitSequence {
	return &DoubleBitSequence{rng: rng}
}

func (s *DoubleBitSequence) Count() uint32 { return s.rng.Count() }
func (s *DoubleBitSequence) Range() Range  { return s.rng }

func (s *DoubleBitSequence) ItemAt(index uint32) DoubleBit {
	return s.pair(s.rng.offsetOf(index))
}

func (s *DoubleBitSequence) pair(k uint64) DoubleBit {
	return DoubleBitFrom(s.data[k/4] >> ((k % 4) * 2))
}

func (s *DoubleBitSequence) Iter() DoubleBitIter {
	return DoubleBitIter{seq: s}
}

type DoubleBitIter struct {
	seq *DoubleBitSequence
	pos uint64
}

func (it *DoubleBitIter) Next() (Indexed[DoubleBit], bool) {
	if it.pos >= it.seq.items {
		return Indexed[DoubleBit]{}, false
	}
	k := it.pos
	it.pos++
	return Indexed[DoubleBit]{Index: it.seq.rng.start + uint32(k), Value: it.seq.pair(k)}, true
}

// FixedSequence is a view over fixed-width binary records: item k is the raw
// size-byte record at byte offset k*size. Record contents are not
// interpreted at this layer; higher layers decode the fields.
type FixedSequence struct {
	data  []byte
	size  uint8
	rng   Range
	items uint64
}

func newFixedSequence(size uint8, rng Range, cur *ReadCursor) (*FixedSequence, error) {
	data, err := cur.ReadBytes(rng.count64() * uint64(size))
	if err != nil {
		return nil, err
	}
	return &FixedSequence{data: data, size: size, rng: rng, items: rng.count64()}, nil
}

func emptyFixedSequence(size uint8, rng Range) *FixedSequence {
	return &FixedSequence{size: size, rng: rng}
}

func (s *FixedSequence) Count() uint32   { return s.rng.Count() }
func (s *FixedSequence) Range() Range    { return s.rng }
func (s *FixedSequence) RecordSize() int { return int(s.size) }

// ItemAt returns the raw record for a point index as a sub-slice of the
// fragment buffer.
func (s *FixedSequence) ItemAt(index uint32) []byte {
	return s.record(s.rng.offsetOf(index))
}

func (s *FixedSequence) record(k uint64) []byte {
	off := k * uint64(s.size)
	return s.data[off : off+uint64(s.size)]
}

func (s *FixedSequence) Iter() FixedIter {
	return FixedIter{seq: s}
}

type FixedIter struct {
	seq *FixedSequence
	pos uint64
}

func (it *FixedIter) Next() (Indexed[[]byte], bool) {
	if it.pos >= it.seq.items {
		return Indexed[[]byte]{}, false
	}
	k := it.pos
	it.pos++
	return Indexed[[]byte]{Index: it.seq.rng.start + uint32(k), Value: it.seq.record(k)}, true
}

// OctetSequence is the view for size-by-variation octet strings: the
// variation number is the per-item byte length, so item k is the raw
// variation-byte string at offset k*variation.
type OctetSequence struct {
	data  []byte
	size  uint8
	rng   Range
	items uint64
}

func newOctetSequence(size uint8, rng Range, cur *ReadCursor) (*OctetSequence, error) {
	data, err := cur.ReadBytes(rng.count64() * uint64(size))
	if err != nil {
		return nil, err
	}
	return &OctetSequence{data: data, size: size, rng: rng, items: rng.count64()}, nil
}

func emptyOctetSequence(size uint8, rng Range) *OctetSequence {
	return &OctetSequence{size: size, rng: rng}
}

func (s *OctetSequence) Count() uint32  { return s.rng.Count() }
func (s *OctetSequence) Range() Range   { return s.rng }
func (s *OctetSequence) OctetSize() int { return int(s.size) }

func (s *OctetSequence) ItemAt(index uint32) []byte {
	return s.octets(s.rng.offsetOf(index))
}

func (s *OctetSequence) octets(k uint64) []byte {
	off := k * uint64(s.size)
	return s.data[off : off+uint64(s.size)]
}

func (s *OctetSequence) Iter() OctetIter {
	return OctetIter{seq: s}
}

type OctetIter struct {
	seq *OctetSequence
	pos uint64
}

func (it *OctetIter) Next() (Indexed[[]byte], bool) {
	if it.pos >= it.seq.items {
		return Indexed[[]byte]{}, false
	}
	k := it.pos
	it.pos++
	return Indexed[[]byte]{Index: it.seq.rng.start + uint32(k), Value: it.seq.octets(k)}, true
}

package dnp3

import "encoding/binary"

// EventClasses selects which event classes a scan asks for.
type EventClasses struct {
	Class1 bool
	Class2 bool
	Class3 bool
}

func AllEventClasses() EventClasses {
	return EventClasses{Class1: true, Class2: true, Class3: true}
}

func (e EventClasses) Any() bool {
	return e.Class1 || e.Class2 || e.Class3
}

func (e EventClasses) write(w *headerWriter) {
	if e.Class1 {
		w.allObjects(Group60Var2)
	}
	if e.Class2 {
		w.allObjects(Group60Var3)
	}
	if e.Class3 {
		w.allObjects(Group60Var4)
	}
}

// Classes is an event-class selection optionally combined with class 0
// (static data).
type Classes struct {
	Class0 bool
	Events EventClasses
}

// IntegrityPoll selects all event classes plus class 0.
func IntegrityPoll() Classes {
	return Classes{Class0: true, Events: AllEventClasses()}
}

func EventScan(events EventClasses) Classes {
	return Classes{Events: events}
}

// Event classes go first so the outstation reports events before static
// data in the response.
func (c Classes) write(w *headerWriter) {
	c.Events.write(w)
	if c.Class0 {
		w.allObjects(Group60Var1)
	}
}

// ReadRequest is one object header to place in a READ fragment.
type ReadRequest interface {
	write(w *headerWriter) error
}

type classScan struct {
	classes Classes
}

type rangeScan struct {
	group     uint8
	variation uint8
	start     uint32
	stop      uint32
	twoByte   bool
}

// ClassScan reads class data using all-objects headers.
func ClassScan(classes Classes) ReadRequest {
	return classScan{classes: classes}
}

// Range8Scan reads a variation over a one-byte start/stop range.
func Range8Scan(group, variation, start, stop uint8) ReadRequest {
	return rangeScan{group: group, variation: variation, start: uint32(start), stop: uint32(stop)}
}

// Range16Scan reads a variation over a two-byte start/stop range.
func Range16Scan(group, variation uint8, start, stop uint16) ReadRequest {
	return rangeScan{group: group, variation: variation, start: uint32(start), stop: uint32(stop), twoByte: true}
}

func (s classScan) write(w *headerWriter) error {
	s.classes.write(w)
	return nil
}

func (s rangeScan) write(w *headerWriter) error {
	if _, ok := LookupVariation(s.group, s.variation); !ok {
		return &InvalidQualifierError{Group: s.group, Variation: s.variation}
	}
	if s.stop < s.start {
		return ErrInvalidRange
	}
	if s.twoByte {
		w.range16(s.group, s.variation, uint16(s.start), uint16(s.stop))
	} else {
		w.range8(s.group, s.variation, uint8(s.start), uint8(s.stop))
	}
	return nil
}

// BuildReadRequest serializes a single-fragment READ request containing the
// given object headers, in order.
func BuildReadRequest(seq uint8, requests ...ReadRequest) ([]byte, error) {
	w := &headerWriter{}
	w.push(Control{Fir: true, Fin: true, Seq: seq & ctrlSeqMask}.Byte())
	w.push(uint8(FuncRead))
	for _, r := range requests {
		if err := r.write(w); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

type headerWriter struct {
	buf []byte
}

func (w *headerWriter) push(bytes ...uint8) {
	w.buf = append(w.buf, bytes...)
}

func (w *headerWriter) allObjects(gv GroupVariation) {
	w.push(gv.Group(), gv.Variation(), uint8(QualifierAllObjects))
}

func (w *headerWriter) range8(group, variation, start, stop uint8) {
	w.push(group, variation, uint8(QualifierRange8), start, stop)
}

func (w *headerWriter) range16(group, variation uint8, start, stop uint16) {
	w.push(group, variation, uint8(QualifierRange16))
	var field [2]byte
	binary.LittleEndian.PutUint16(field[:], start)
	w.push(field[:]...)
	binary.LittleEndian.PutUint16(field[:], stop)
	w.push(field[:]...)
}

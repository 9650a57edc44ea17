package live

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Encoder writes the two wire primitives every frame on a live
// connection is assembled from: unsigned varints and length-prefixed
// strings. The varint scratch space lives in the Encoder itself, so
// encoding a frame allocates nothing beyond the destination buffer.
type Encoder struct {
	w       io.Writer
	scratch [binary.MaxVarintLen64]byte
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteUvarint writes v in variable-length encoding.
func (e *Encoder) WriteUvarint(v uint64) error {
	n := binary.PutUvarint(e.scratch[:], v)
	return e.WriteBytes(e.scratch[:n])
}

// WriteString writes s prefixed with its byte length as a varint.
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// WriteBytes writes p as-is, with no length prefix.
func (e *Encoder) WriteBytes(p []byte) error {
	_, err := e.w.Write(p)
	return err
}

// WriteBool writes b as a single 0/1 byte.
func (e *Encoder) WriteBool(b bool) error {
	if b {
		return e.WriteBytes([]byte{1})
	}
	return e.WriteBytes([]byte{0})
}

// Decoder reads the primitives an Encoder writes. It keeps no scratch
// state: each read allocates exactly what it hands back, so decoded
// strings are safe to retain past the next call.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadByte implements io.ByteReader so binary.ReadUvarint can consume
// the decoder directly.
func (d *Decoder) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUvarint reads one unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(d)
}

// ReadBytes reads exactly n bytes.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	p := make([]byte, n)
	if _, err := io.ReadFull(d.r, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadString reads a varint length followed by that many bytes.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	p, err := d.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadBool reads the single byte WriteBool wrote.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

// EncodeEvent encodes a client event frame. Encoder errors are ignored
// throughout the frame builders: writes into a bytes.Buffer cannot
// fail.
func EncodeEvent(evt Event) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(FrameEvent))
	enc := NewEncoder(&buf)
	enc.WriteUvarint(uint64(evt.NodeID))
	enc.WriteString(evt.Name)
	enc.WriteString(evt.Value)
	return buf.Bytes()
}

// DecodeEvent decodes a client event frame.
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) == 0 || data[0] != byte(FrameEvent) {
		return nil, errors.New("live: not an event frame")
	}
	dec := NewDecoder(bytes.NewReader(data[1:]))

	nodeID, err := dec.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("live: event node id: %w", err)
	}
	name, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("live: event name: %w", err)
	}
	value, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("live: event value: %w", err)
	}
	return &Event{NodeID: uint32(nodeID), Name: name, Value: value}, nil
}

// EncodeMutations encodes a batch of recorded mutations: a frame byte,
// a varint count, then each Mutation's opcode followed by whichever
// fields that opcode uses.
func EncodeMutations(muts []Mutation) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(FrameMutations))
	enc := NewEncoder(&buf)
	enc.WriteUvarint(uint64(len(muts)))
	for i := range muts {
		encodeMutation(enc, &muts[i])
	}
	return buf.Bytes()
}

func encodeMutation(enc *Encoder, m *Mutation) {
	enc.WriteBytes([]byte{byte(m.Op)})
	enc.WriteUvarint(uint64(m.NodeID))

	switch m.Op {
	case OpCreateElement:
		enc.WriteString(m.Tag)
	case OpCreateElementNS:
		enc.WriteString(m.NS)
		enc.WriteString(m.Tag)
	case OpCreateText, OpCreateComment, OpSetTextContent, OpSetElementText:
		enc.WriteString(m.Text)
	case OpInsertBefore:
		enc.WriteUvarint(uint64(m.ParentID))
		enc.WriteUvarint(uint64(m.ReferenceID))
	case OpAppendChild, OpRemoveChild:
		enc.WriteUvarint(uint64(m.ParentID))
	case OpSetAttribute, OpSetStyle, OpSetProp, OpSetData:
		enc.WriteString(m.Key)
		enc.WriteString(m.Value)
	case OpRemoveAttribute, OpRemoveStyle, OpRemoveData, OpAddEventListener, OpRemoveEventListener:
		enc.WriteString(m.Key)
	case OpSetClass:
		enc.WriteString(m.Key)
		enc.WriteBool(m.On)
	}
}

// DecodeMutations decodes a batch of mutations from wire format.
func DecodeMutations(data []byte) ([]Mutation, error) {
	if len(data) == 0 || data[0] != byte(FrameMutations) {
		return nil, errors.New("live: not a mutations frame")
	}
	dec := NewDecoder(bytes.NewReader(data[1:]))

	count, err := dec.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("live: mutation count: %w", err)
	}

	muts := make([]Mutation, 0, count)
	for i := uint64(0); i < count; i++ {
		m, err := decodeMutation(dec)
		if err != nil {
			return nil, fmt.Errorf("live: mutation %d: %w", i, err)
		}
		muts = append(muts, m)
	}
	return muts, nil
}

func decodeMutation(dec *Decoder) (Mutation, error) {
	var m Mutation

	op, err := dec.ReadByte()
	if err != nil {
		return m, err
	}
	m.Op = MutationOp(op)

	nodeID, err := dec.ReadUvarint()
	if err != nil {
		return m, err
	}
	m.NodeID = uint32(nodeID)

	switch m.Op {
	case OpCreateElement:
		m.Tag, err = dec.ReadString()
	case OpCreateElementNS:
		if m.NS, err = dec.ReadString(); err == nil {
			m.Tag, err = dec.ReadString()
		}
	case OpCreateText, OpCreateComment, OpSetTextContent, OpSetElementText:
		m.Text, err = dec.ReadString()
	case OpInsertBefore:
		var parent, ref uint64
		if parent, err = dec.ReadUvarint(); err == nil {
			ref, err = dec.ReadUvarint()
		}
		m.ParentID, m.ReferenceID = uint32(parent), uint32(ref)
	case OpAppendChild, OpRemoveChild:
		var parent uint64
		parent, err = dec.ReadUvarint()
		m.ParentID = uint32(parent)
	case OpSetAttribute, OpSetStyle, OpSetProp, OpSetData:
		if m.Key, err = dec.ReadString(); err == nil {
			m.Value, err = dec.ReadString()
		}
	case OpRemoveAttribute, OpRemoveStyle, OpRemoveData, OpAddEventListener, OpRemoveEventListener:
		m.Key, err = dec.ReadString()
	case OpSetClass:
		if m.Key, err = dec.ReadString(); err == nil {
			m.On, err = dec.ReadBool()
		}
	}
	return m, err
}

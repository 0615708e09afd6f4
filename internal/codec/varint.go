package codec

import (
	"bufio"
	"fts/internal/common"
	"fts/internal/postingserr"
	"io"
)

// maxVarintBytes bounds a 64-bit varint: 10 groups of 7 bits cover 70
// bits, more than enough for 64, so a decode that is still continuing
// past the 10th byte is corrupt input, not a legitimately large value.
const maxVarintBytes = 10

// Writer encodes unsigned 64-bit integers as 7-bits-per-byte varints
// (low 7 bits per byte, continuation bit set on every byte but the
// last) and float64s as raw little-endian 8-byte values, per the
// postings byte format.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteUint(v uint64) error {
	var buf [maxVarintBytes]byte
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if v == 0 {
			break
		}
	}
	_, err := w.w.Write(buf[:n])
	return postingserr.WrapIo("codec.WriteUint", err)
}

func (w *Writer) WriteDouble(f float64) error {
	_, err := w.w.Write(common.Float64ToBytes(f))
	return postingserr.WrapIo("codec.WriteDouble", err)
}

// Reader decodes the inverse of Writer. It is built over a
// *bufio.Reader so a single byte at a time can be pulled for varint
// decoding and a fixed 8-byte span can be pulled for doubles from the
// same underlying stream.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// AtEOF reports whether the stream has no more bytes to offer, without
// consuming any. Sequential record readers use it to distinguish a
// clean end-of-stream from a mid-record decode failure.
func (r *Reader) AtEOF() bool {
	_, err := r.r.Peek(1)
	return err != nil
}

func (r *Reader) ReadUint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, &postingserr.CodecError{Kind: postingserr.Truncated, Err: err}
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, &postingserr.CodecError{Kind: postingserr.Overflow}
}

func (r *Reader) ReadDouble() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, &postingserr.CodecError{Kind: postingserr.Truncated, Err: err}
	}
	return common.BytesToFloat64(buf[:]), nil
}

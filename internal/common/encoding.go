package common

import (
	"bytes"
	"encoding/binary"
)

func Uint32ToBytes(i uint32) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, i)
	return b.Bytes()
}

func Uint64ToBytes(i uint64) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, i)
	return b.Bytes()
}

func Float64ToBytes(f float64) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, f)
	return b.Bytes()
}

func BytesToUint32(b []byte) (i uint32) {
	binary.Read(bytes.NewReader(b), binary.LittleEndian, &i)
	return
}
func BytesToUint64(b []byte) (i uint64) {
	binary.Read(bytes.NewReader(b), binary.LittleEndian, &i)
	return
}

func BytesToFloat64(b []byte) (f float64) {
	binary.Read(bytes.NewReader(b), binary.LittleEndian, &f)
	return
}

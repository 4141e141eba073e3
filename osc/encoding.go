package osc

import (
	"bytes"
	"encoding/binary"
	"io"
)

// MaxPacketSize is the largest UDP datagram the codec will produce or accept.
const MaxPacketSize = 65507

const bit32Size = 4

////
// De/Encoding helpers
////

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

// writePaddedString writes a NUL-terminated string to the buffer, padded to a
// 4-byte boundary. Returns the number of written bytes.
func writePaddedString(str string, b *bytes.Buffer) int {
	b.WriteString(str)
	n := len(str) + 1
	for i := 0; i < 1+padBytesNeeded(n); i++ {
		b.WriteByte(0)
	}
	return n + padBytesNeeded(n)
}

// readPaddedString reads a NUL-terminated, 4-byte-aligned string from the
// buffer. Returns the string and the number of bytes consumed.
func readPaddedString(b *bytes.Buffer) (string, int, error) {
	str, err := b.ReadString(0)
	if err != nil {
		return "", 0, io.EOF
	}
	n := len(str) + padBytesNeeded(len(str))

	// Drop the terminating NUL and the padding.
	pad := padBytesNeeded(len(str))
	if b.Len() < pad {
		return "", 0, io.EOF
	}
	b.Next(pad)

	return str[:len(str)-1], n, nil
}

// writeBlob writes the data byte array as an OSC blob: a big-endian 4-byte
// length prefix followed by the bytes, padded to a 4-byte boundary.
func writeBlob(data []byte, b *bytes.Buffer) int {
	var size [bit32Size]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(data)))
	b.Write(size[:])
	b.Write(data)

	pad := padBytesNeeded(len(data))
	for i := 0; i < pad; i++ {
		b.WriteByte(0)
	}
	return bit32Size + len(data) + pad
}

// readBlob reads a length-prefixed OSC blob from the buffer. Padding bytes
// are consumed and not returned.
func readBlob(b *bytes.Buffer) ([]byte, error) {
	if b.Len() < bit32Size {
		return nil, io.EOF
	}
	blobLen := int(binary.BigEndian.Uint32(b.Next(bit32Size)))
	if blobLen < 0 || blobLen+padBytesNeeded(blobLen) > b.Len() {
		return nil, io.ErrUnexpectedEOF
	}

	data := make([]byte, blobLen)
	copy(data, b.Next(blobLen))
	b.Next(padBytesNeeded(blobLen))

	return data, nil
}

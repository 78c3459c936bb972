package id3

import "encoding/binary"

// MaxSynchsafe is the largest value a synchsafe integer can hold.
const MaxSynchsafe = 1<<28 - 1

// EncodeSynchsafe spreads the low 28 bits of v over four bytes, seven
// bits per byte, so that no byte has its most significant bit set.
func EncodeSynchsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v>>21) & 0x7f,
		byte(v>>14) & 0x7f,
		byte(v>>7) & 0x7f,
		byte(v) & 0x7f,
	}
}

// DecodeSynchsafe is the inverse of EncodeSynchsafe. The most
// significant bit of each byte is ignored.
func DecodeSynchsafe(b [4]byte) uint32 {
	return uint32(b[0]&0x7f)<<21 |
		uint32(b[1]&0x7f)<<14 |
		uint32(b[2]&0x7f)<<7 |
		uint32(b[3]&0x7f)
}

// encodeFrameSize encodes a frame size the way version v stores it.
// ID3v2.3 predates synchsafe frame sizes.
func encodeFrameSize(size int, v Version) [4]byte {
	if v.Major() == 3 {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(size))
		return b
	}
	return EncodeSynchsafe(uint32(size))
}

func decodeFrameSize(b [4]byte, v Version) int {
	if v.Major() == 3 {
		return int(binary.BigEndian.Uint32(b[:]))
	}
	return int(DecodeSynchsafe(b))
}

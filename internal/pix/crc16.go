package pix

import "fmt"

// CRC-16/CCITT-FALSE parameters.
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Checksum computes CRC-16/CCITT-FALSE (no reflection, no final XOR).
func Checksum(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// ChecksumHex renders the checksum of s as 4 uppercase hex digits.
func ChecksumHex(s string) string {
	return fmt.Sprintf("%04X", Checksum([]byte(s)))
}

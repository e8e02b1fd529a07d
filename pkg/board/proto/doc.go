// Package proto provides the controller board wire protocol.
package proto

// The protocol is spoken between the host (e.g. a Raspberry Pi) and the
// microcontroller on the expansion board over a serial port.
//
// Every frame is:
//
//	0xAA 0x55 FUNCTION LENGTH PAYLOAD... CRC8
//
// CRC8 covers FUNCTION, LENGTH and PAYLOAD, but not the start bytes.
// LENGTH is limited to 251 so a full frame always fits in 256 bytes.
//
// Encoding is stateless. Decoding is done byte by byte with Parser so it
// can be driven directly from a blocking serial read loop.

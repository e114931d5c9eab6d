// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

// ClockDivisor returns the 3-bit baud rate divisor selector for the given
// peripheral input clock and target bit rate, both in Hz.
//
// The effective bit rate is pclk / 2^(br+1), and the selector returned is the
// smallest whose effective rate does not exceed speed.
//
// Requires 0 < speed <= pclk; Configure checks this before calling.
func ClockDivisor(pclk, speed uint32) uint8 {
	switch ratio := pclk / speed; {
	case ratio <= 2:
		return 0b000
	case ratio <= 5:
		return 0b001
	case ratio <= 11:
		return 0b010
	case ratio <= 23:
		return 0b011
	case ratio <= 47:
		return 0b100
	case ratio <= 95:
		return 0b101
	case ratio <= 191:
		return 0b110
	default:
		return 0b111
	}
}

// EffectiveRate returns the bit rate in Hz produced by a divisor selector
// with the given peripheral input clock.
func EffectiveRate(pclk uint32, br uint8) uint32 {
	return pclk >> (br + 1)
}

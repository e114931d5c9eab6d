// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

import "tinygo.org/x/drivers"

// Bus adapts an 8-bit handle to the bus interface consumed by device
// drivers, so a handle can sit under display, sensor and flash drivers that
// expect a Tx/Transfer style bus.
type Bus struct {
	s *Spi8
}

// Bus returns the drivers-facing view of the handle.
func (s *Spi8) Bus() Bus {
	return Bus{s}
}

var _ drivers.SPI = Bus{}

// Transfer exchanges a single byte.
func (b Bus) Transfer(c byte) (byte, error) {
	buf := [1]byte{c}
	if err := b.s.Transfer(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Tx transmits w while receiving into r.
//
// If r is nil the received data is discarded, if w is nil zeroes are
// transmitted, and otherwise the buffers must be of equal length.
func (b Bus) Tx(w, r []byte) error {
	switch {
	case w == nil:
		for i := range r {
			r[i] = 0
		}
		return b.s.Transfer(r)
	case r == nil:
		return b.s.Write(w)
	case len(w) != len(r):
		return ErrBufferMismatch
	}
	copy(r, w)
	return b.s.Transfer(r)
}

// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

// Package bitbang provides a software SPI controller on GPIO lines for hosts
// with no SPI silicon.
//
// Only the controller role is supported, MSB first, in any of the four clock
// modes, with 8-bit or 16-bit frames. The chip select line is managed by the
// caller, as with the hardware driver.
//
// The caller must have opened the gpio package before creating a Master.
package bitbang

import (
	"sync"
	"time"

	"github.com/warthog618/gpio"
	"github.com/warthog618/spi"
	"tinygo.org/x/drivers"
)

// Master is a bit-bashed SPI controller on three GPIO lines.
type Master struct {
	mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	tclk time.Duration
	cpha bool
	sclk *gpio.Pin
	mosi *gpio.Pin
	miso *gpio.Pin
}

var _ drivers.SPI = (*Master)(nil)

// New creates a Master.
//
// tclk is the time between clock edges, so half the clock cycle time.
func New(tclk time.Duration, mode spi.Mode, sclk, mosi, miso int) *Master {
	m := Master{
		tclk: tclk,
		cpha: mode.Phase == spi.CaptureSecondEdge,
		sclk: gpio.NewPin(sclk),
		mosi: gpio.NewPin(mosi),
		miso: gpio.NewPin(miso),
	}
	// park the clock at its idle level before driving it
	if mode.Polarity == spi.IdleHigh {
		m.sclk.High()
	} else {
		m.sclk.Low()
	}
	m.sclk.Output()
	m.mosi.Low()
	m.mosi.Output()
	m.miso.Input()
	return &m
}

// Close returns the lines to inputs.
func (m *Master) Close() {
	m.mu.Lock()
	m.sclk.Input()
	m.mosi.Input()
	m.mu.Unlock()
}

// frame clocks one frame of the given width out on Mosi while clocking the
// received frame in from Miso. Assumes the caller holds the mu lock.
func (m *Master) frame(w uint16, bits int) uint16 {
	var r uint16
	for i := bits - 1; i >= 0; i-- {
		out := gpio.Level(w>>uint(i)&1 != 0)
		if m.cpha {
			// shift on the leading edge, capture on the trailing edge
			m.sclk.Toggle()
			m.mosi.Write(out)
			time.Sleep(m.tclk)
			m.sclk.Toggle()
			if m.miso.Read() == gpio.High {
				r |= 1 << uint(i)
			}
			time.Sleep(m.tclk)
		} else {
			// data valid before the leading edge, capture on it
			m.mosi.Write(out)
			time.Sleep(m.tclk)
			m.sclk.Toggle()
			if m.miso.Read() == gpio.High {
				r |= 1 << uint(i)
			}
			time.Sleep(m.tclk)
			m.sclk.Toggle()
		}
	}
	return r
}

// Transfer exchanges a single byte.
func (m *Master) Transfer(b byte) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return byte(m.frame(uint16(b), 8)), nil
}

// Transfer16 exchanges a single 16-bit frame.
func (m *Master) Transfer16(w uint16) (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame(w, 16), nil
}

// Tx transmits w while receiving into r.
//
// If r is nil the received data is discarded, if w is nil zeroes are
// transmitted, and otherwise the buffers must be of equal length.
func (m *Master) Tx(w, r []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case w == nil:
		for i := range r {
			r[i] = byte(m.frame(0, 8))
		}
	case r == nil:
		for _, b := range w {
			m.frame(uint16(b), 8)
		}
	case len(w) != len(r):
		return spi.ErrBufferMismatch
	default:
		for i := range w {
			r[i] = byte(m.frame(uint16(w[i]), 8))
		}
	}
	return nil
}

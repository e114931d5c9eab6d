// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

// Package spitest provides a simulated SPI register set for testing drivers
// without hardware.
//
// A Device implements both spi.Registers and spi.ResetClock. Frames written
// to the data register are looped back into a modelled 4-byte receive FIFO,
// with transmit readiness deasserting while the FIFO is full, so the
// interleaving of a transfer against a shallow FIFO is exercised
// deterministically. Fault and stall conditions can be injected to drive the
// error paths.
package spitest

import "github.com/warthog618/spi"

// Device simulates the register block of one SPI peripheral, wired in
// loopback.
//
// Device is not safe for concurrent use, matching the ownership model of the
// driver itself.
type Device struct {
	cr1  uint32
	cr2  uint32
	pclk uint32

	// rx holds the frames in flight between the data register writes and
	// reads.
	rx []uint16

	// txBytes models the occupancy of the transmit FIFO in send-only
	// mode. One byte drains per status poll.
	txBytes int

	ovr     bool
	modf    bool
	stalled bool

	// set overrun once this many data register reads have occurred
	ovrAfterReads int

	sent    []uint16
	reads   int
	srReads int

	clockOn bool
	resets  int
}

// fifoBytes is the depth of the modelled FIFO.
const fifoBytes = 4

// New returns a loopback Device with a 48MHz peripheral clock.
func New() *Device {
	return &Device{pclk: 48000000}
}

// SetPCLK sets the peripheral input clock frequency reported to the driver.
func (d *Device) SetPCLK(hz uint32) {
	d.pclk = hz
}

// frameBytes returns the size of a frame given the programmed data size.
func (d *Device) frameBytes() int {
	if (d.cr2>>spi.CR2_DSShift)&spi.CR2_DSMask == spi.CR2_DS16>>spi.CR2_DSShift {
		return 2
	}
	return 1
}

func (d *Device) depth() int {
	return fifoBytes / d.frameBytes()
}

func (d *Device) sendOnly() bool {
	return d.cr1&spi.CR1_BIDIMODE != 0
}

// spi.Registers

func (d *Device) CR1() uint32 {
	return d.cr1
}

func (d *Device) SetCR1(v uint32) {
	d.cr1 = v
}

func (d *Device) CR2() uint32 {
	return d.cr2
}

func (d *Device) SetCR2(v uint32) {
	d.cr2 = v
}

// SR synthesizes the status register from the FIFO model. Each poll also
// drains one byte from the transmit FIFO, standing in for time passing on
// the wire.
func (d *Device) SR() uint32 {
	d.srReads++
	if d.txBytes > 0 {
		d.txBytes--
	}
	var sr uint32
	if d.ovr {
		sr |= spi.SR_OVR
	}
	if d.modf {
		sr |= spi.SR_MODF
	}
	if len(d.rx) > 0 && !d.stalled {
		sr |= spi.SR_RXNE
	}
	if d.sendOnly() {
		if d.txBytes == 0 {
			sr |= spi.SR_TXE
		}
	} else if len(d.rx) < d.depth() {
		sr |= spi.SR_TXE
	}
	switch {
	case d.txBytes == 0:
	case d.txBytes == 1:
		sr |= 1 << spi.SR_FTLVLShift
	case d.txBytes == 2:
		sr |= 2 << spi.SR_FTLVLShift
	default:
		sr |= 3 << spi.SR_FTLVLShift
	}
	return sr
}

func (d *Device) DR8() uint8 {
	return uint8(d.pop())
}

func (d *Device) SetDR8(v uint8) {
	d.push(uint16(v))
}

func (d *Device) DR16() uint16 {
	return d.pop()
}

func (d *Device) SetDR16(v uint16) {
	d.push(v)
}

func (d *Device) push(v uint16) {
	d.sent = append(d.sent, v)
	if d.sendOnly() {
		d.txBytes += d.frameBytes()
		return
	}
	if len(d.rx) >= d.depth() {
		// arrived before the FIFO was drained; frame lost
		d.ovr = true
		return
	}
	d.rx = append(d.rx, v)
}

func (d *Device) pop() uint16 {
	d.reads++
	if d.ovrAfterReads > 0 && d.reads >= d.ovrAfterReads {
		d.ovr = true
	}
	if len(d.rx) == 0 {
		return 0
	}
	v := d.rx[0]
	d.rx = d.rx[1:]
	return v
}

// spi.ResetClock

func (d *Device) EnableClock(spi.Periph) {
	d.clockOn = true
}

// ResetPulse models the peripheral reset by zeroing the control registers.
func (d *Device) ResetPulse(spi.Periph) {
	d.resets++
	d.cr1 = 0
	d.cr2 = 0
}

func (d *Device) PCLK() uint32 {
	return d.pclk
}

// Fault injection.

// InjectOverrun latches the overrun status bit until ClearFaults.
func (d *Device) InjectOverrun() {
	d.ovr = true
}

// InjectModeFault latches the mode fault status bit until ClearFaults.
func (d *Device) InjectModeFault() {
	d.modf = true
}

// OverrunAfterReads arms the overrun bit to latch once n frames have been
// read from the data register.
func (d *Device) OverrunAfterReads(n int) {
	d.ovrAfterReads = n
}

// ClearFaults clears any latched fault bits.
func (d *Device) ClearFaults() {
	d.ovr = false
	d.modf = false
	d.ovrAfterReads = 0
}

// StallRx controls whether received frames are withheld from the receive
// ready bit, modelling a stalled bus.
func (d *Device) StallRx(stall bool) {
	d.stalled = stall
}

// Observers.

// Sent returns every frame written to the data register, in order.
func (d *Device) Sent() []uint16 {
	return d.sent
}

// SRReads returns the number of status register polls performed.
func (d *Device) SRReads() int {
	return d.srReads
}

// ClockEnabled reports whether the peripheral clock gate has been opened.
func (d *Device) ClockEnabled() bool {
	return d.clockOn
}

// Resets returns the number of reset pulses seen.
func (d *Device) Resets() int {
	return d.resets
}

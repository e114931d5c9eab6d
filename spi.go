// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

//
//
// Package spi provides a driver for integrated SPI peripherals with a small
// transmit/receive FIFO.
//
// The driver supports:
// - controller (clock generating) and peripheral (clock following) roles
// - the four standard clock polarity/phase modes, MSB first
// - blocking full-duplex and send-only transfers
// - 8-bit and 16-bit frames
//
// The package intentionally does not support:
//  - DMA or interrupt driven transfers (all transfers are polled)
//  - chip select management (handle CS separately, e.g. with a GPIO pin)
//
// Hardware access is through the Registers capability bound at configuration
// time, so the same driver runs against memory-mapped hardware (see mmio) or
// a simulated register set (see spitest).
//
// Example of use:
//
//	s, err := spi.Configure(regs, spi.SPI1, spi.Pins{Sck: spi.PA5, Miso: spi.PA6, Mosi: spi.PA7},
//		spi.Mode3, 1000000, rcc)
//	if err != nil {
//		panic(err)
//	}
//	buf := []uint8{0x9f, 0, 0, 0}
//	err = s.Transfer(buf)
//
// A handle is owned by a single goroutine; the driver provides no internal
// locking.
//
package spi

// Polarity is the idle level of the clock line.
type Polarity uint8

const (
	IdleLow Polarity = iota
	IdleHigh
)

// Phase selects the clock edge on which data is captured.
type Phase uint8

const (
	CaptureFirstEdge Phase = iota
	CaptureSecondEdge
)

// Mode is one of the four standard clock polarity/phase conventions.
type Mode struct {
	Polarity Polarity
	Phase    Phase
}

// The standard SPI mode numbering.
var (
	Mode0 = Mode{IdleLow, CaptureFirstEdge}
	Mode1 = Mode{IdleLow, CaptureSecondEdge}
	Mode2 = Mode{IdleHigh, CaptureFirstEdge}
	Mode3 = Mode{IdleHigh, CaptureSecondEdge}
)

// dev is the state shared by both frame widths.
//
// All fields are immutable after construction; the only mutable resource is
// the register block behind regs.
type dev struct {
	regs   Registers
	pins   Pins
	periph Periph
}

// Spi8 is a handle to an SPI peripheral configured for 8-bit frames.
type Spi8 struct {
	dev
}

// Spi16 is a handle to an SPI peripheral configured for 16-bit frames.
type Spi16 struct {
	dev
}

// Configure brings the peripheral out of reset and into the enabled state in
// the controller role, returning an 8-bit handle that owns the register block
// and pins.
//
// The bit rate is speed in Hz, which must be positive and no greater than the
// peripheral input clock. The chip select line is managed by the caller.
func Configure(regs Registers, periph Periph, pins Pins, mode Mode, speed uint32, rc ResetClock) (*Spi8, error) {
	if !ValidPins(periph, pins) {
		return nil, ErrInvalidPins
	}
	pclk := rc.PCLK()
	if speed == 0 || speed > pclk {
		return nil, ErrInvalidSpeed
	}
	rc.EnableClock(periph)
	rc.ResetPulse(periph)
	s := &Spi8{dev{regs: regs, pins: pins, periph: periph}}
	s.initController(mode, ClockDivisor(pclk, speed))
	s.setWidth8()
	s.Enable()
	return s, nil
}

// ConfigureSlave brings the peripheral out of reset and into the enabled
// state in the peripheral role, returning an 8-bit handle.
//
// The clock is supplied externally so no bit rate is programmed, and chip
// select is the hardware NSS line.
func ConfigureSlave(regs Registers, periph Periph, pins Pins, mode Mode, rc ResetClock) (*Spi8, error) {
	if !ValidPins(periph, pins) {
		return nil, ErrInvalidPins
	}
	rc.EnableClock(periph)
	rc.ResetPulse(periph)
	s := &Spi8{dev{regs: regs, pins: pins, periph: periph}}
	s.initPeripheral(mode)
	s.setWidth8()
	s.Enable()
	return s, nil
}

func (s *dev) initController(mode Mode, br uint8) {
	// Make sure the SPI unit is disabled so we can configure it.
	s.regs.SetCR1(s.regs.CR1() &^ CR1_SPE)

	// mstr: controller role
	// br: baud rate divisor
	// lsbfirst clear: MSB first
	// ssm+ssi: software slave management with NSS held high, so the
	// controller never observes itself selected and the NSS pin is free
	// for other uses
	// rxonly, bidimode clear: 2-line unidirectional
	cr1 := CR1_MSTR | CR1_SSM | CR1_SSI | uint32(br)<<CR1_BRShift
	if mode.Phase == CaptureSecondEdge {
		cr1 |= CR1_CPHA
	}
	if mode.Polarity == IdleHigh {
		cr1 |= CR1_CPOL
	}
	s.regs.SetCR1(cr1)
}

func (s *dev) initPeripheral(mode Mode) {
	// Make sure the SPI unit is disabled so we can configure it.
	s.regs.SetCR1(s.regs.CR1() &^ CR1_SPE)

	// mstr clear: peripheral role
	// lsbfirst clear: MSB first
	// ssm clear: hardware chip select is authoritative
	// rxonly, bidimode clear: 2-line unidirectional
	cr1 := uint32(0)
	if mode.Phase == CaptureSecondEdge {
		cr1 |= CR1_CPHA
	}
	if mode.Polarity == IdleHigh {
		cr1 |= CR1_CPOL
	}
	s.regs.SetCR1(cr1)
}

// setWidth8 programs 8-bit frames with the RX FIFO threshold at one frame,
// and disables SS output.
func (s *dev) setWidth8() {
	s.regs.SetCR2(CR2_FRXTH | CR2_DS8)
}

// setWidth16 programs 16-bit frames with the RX FIFO threshold at one frame,
// and disables SS output.
func (s *dev) setWidth16() {
	s.regs.SetCR2(CR2_DS16)
}

// Enable sets the peripheral enable bit. It is idempotent.
func (s *dev) Enable() {
	s.regs.SetCR1(s.regs.CR1() | CR1_SPE)
}

// Disable clears the peripheral enable bit. It is idempotent.
func (s *dev) Disable() {
	s.regs.SetCR1(s.regs.CR1() &^ CR1_SPE)
}

// Reset pulses the peripheral reset line while preserving the control
// register contents, including the enable bit.
//
// Must not be called mid-transfer.
func (s *dev) Reset(rc ResetClock) {
	cr1 := s.regs.CR1()
	cr2 := s.regs.CR2()
	rc.ResetPulse(s.periph)
	s.regs.SetCR2(cr2)
	s.regs.SetCR1(cr1)
}

// Release returns ownership of the register block and pins to the caller.
// The peripheral is left in its last programmed state, not reset.
func (s *dev) Release() (Registers, Pins) {
	return s.regs, s.pins
}

// To16Bit converts the handle to 16-bit frames.
//
// The receiver must not be used after conversion, and the peripheral must not
// be mid-transfer. The enable bit is preserved.
func (s *Spi8) To16Bit() *Spi16 {
	s.setWidth16()
	return &Spi16{s.dev}
}

// To8Bit converts the handle to 8-bit frames.
//
// The receiver must not be used after conversion, and the peripheral must not
// be mid-transfer. The enable bit is preserved.
func (s *Spi16) To8Bit() *Spi8 {
	s.setWidth8()
	return &Spi8{s.dev}
}

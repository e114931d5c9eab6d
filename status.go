// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

import "errors"

var (
	// ErrOverrun indicates a received frame arrived before the previous one
	// was drained from the receive FIFO. Data has been lost and the whole
	// transfer must be considered failed.
	ErrOverrun = errors.New("spi: overrun")

	// ErrModeFault indicates the hardware detected a role or select
	// disagreement, typically a wiring or multi-controller contention
	// problem.
	ErrModeFault = errors.New("spi: mode fault")

	// ErrIncompleteTransfer indicates reception never caught up with
	// transmission while draining the receive FIFO after the last frame
	// was sent.
	ErrIncompleteTransfer = errors.New("spi: incomplete transfer")

	// ErrInvalidPins indicates the pins cannot be bound to the requested
	// signals of the peripheral.
	ErrInvalidPins = errors.New("spi: pins not valid for peripheral")

	// ErrInvalidSpeed indicates the requested bit rate is zero or exceeds
	// the peripheral input clock.
	ErrInvalidSpeed = errors.New("spi: speed not achievable")

	// ErrBufferMismatch indicates the write and read buffers of a duplex
	// exchange differ in length.
	ErrBufferMismatch = errors.New("spi: buffer lengths differ")

	// errWouldBlock is the internal not-ready-yet signal between the
	// status checks and the polling loops. It never escapes a transfer
	// call.
	errWouldBlock = errors.New("spi: would block")
)

// checkRead classifies the current status for the receive direction.
// It returns nil if a frame is waiting in the receive FIFO, errWouldBlock if
// not yet, or the detected fault.
func (s *dev) checkRead() error {
	sr := s.regs.SR()
	switch {
	case sr&SR_OVR != 0:
		return ErrOverrun
	case sr&SR_MODF != 0:
		return ErrModeFault
	case sr&SR_RXNE != 0:
		return nil
	}
	return errWouldBlock
}

// checkSend classifies the current status for the transmit direction.
// Readiness requires the transmit FIFO empty and the shift register idle.
func (s *dev) checkSend() error {
	sr := s.regs.SR()
	switch {
	case sr&SR_OVR != 0:
		return ErrOverrun
	case sr&SR_MODF != 0:
		return ErrModeFault
	case sr&SR_TXE != 0 && sr&SR_BSY == 0:
		return nil
	}
	return errWouldBlock
}

// blockRead spins on checkRead until a frame is ready or a fault is detected.
func (s *dev) blockRead() error {
	for {
		if err := s.checkRead(); err != errWouldBlock {
			return err
		}
	}
}

// blockSend spins on checkSend until ready or a fault is detected.
func (s *dev) blockSend() error {
	for {
		if err := s.checkSend(); err != errWouldBlock {
			return err
		}
	}
}

// sendBufferSize estimates the free space in the transmit FIFO, in frames,
// from the FTLVL occupancy field.
func (s *dev) sendBufferSize() uint8 {
	switch (s.regs.SR() >> SR_FTLVLShift) & SR_FTLVLMask {
	case 0:
		// FIFO empty
		return 4
	case 1:
		// FIFO 1/4 full
		return 3
	case 2:
		// FIFO 1/2 full
		return 2
	default:
		// FIFO full
		return 0
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

// ResetClock is the clock-tree and reset-controller collaborator for the SPI
// blocks.
//
// It gates the peripheral input clock, pulses the peripheral reset line, and
// reports the input clock frequency used to derive the baud rate divisor.
type ResetClock interface {
	// EnableClock opens the clock gate for the peripheral.
	EnableClock(Periph)

	// ResetPulse asserts then deasserts the peripheral reset line,
	// returning the peripheral to its reset state with the clock running.
	ResetPulse(Periph)

	// PCLK returns the peripheral input clock frequency in Hz.
	PCLK() uint32
}

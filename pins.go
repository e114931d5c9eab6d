// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

// Periph identifies one of the SPI blocks.
type Periph uint8

const (
	SPI1 Periph = iota
	SPI2
)

// Pin identifies a port pin that may carry an SPI signal.
type Pin uint8

// Port A pins.
const (
	PA0 Pin = iota
	PA1
	PA2
	PA3
	PA4
	PA5
	PA6
	PA7
	PA8
	PA9
	PA10
	PA11
	PA12
	PA13
	PA14
	PA15
)

// Port B pins.
const (
	PB0 Pin = iota + 16
	PB1
	PB2
	PB3
	PB4
	PB5
	PB6
	PB7
	PB8
)

// Port F pins.
const (
	PF0 Pin = iota + 32
	PF1
	PF2
	PF3
	PF4
)

// Signal is the role a pin plays on the SPI bus.
type Signal uint8

const (
	Sck Signal = iota
	Miso
	Mosi
)

// Pins are the three signal lines bound to a handle.
// The select line is managed by the caller and is not part of the binding.
type Pins struct {
	Sck  Pin
	Miso Pin
	Mosi Pin
}

// pinFunc is one allowed (peripheral, pin, signal) binding and the
// alternate function that selects it.
type pinFunc struct {
	periph Periph
	pin    Pin
	signal Signal
	af     uint8
}

var pinFuncs = []pinFunc{
	{SPI1, PA1, Sck, 0},
	{SPI1, PA2, Sck, 10},
	{SPI1, PA5, Sck, 0},
	{SPI1, PA9, Sck, 10},
	{SPI1, PB3, Sck, 0},
	{SPI1, PA0, Miso, 10},
	{SPI1, PA3, Miso, 0},
	{SPI1, PA6, Miso, 0},
	{SPI1, PA7, Miso, 10},
	{SPI1, PA11, Miso, 0},
	{SPI1, PA13, Miso, 10},
	{SPI1, PB4, Miso, 0},
	{SPI1, PA1, Mosi, 10},
	{SPI1, PA2, Mosi, 0},
	{SPI1, PA3, Mosi, 10},
	{SPI1, PA7, Mosi, 0},
	{SPI1, PA8, Mosi, 10},
	{SPI1, PA12, Mosi, 0},
	{SPI1, PB5, Mosi, 0},
	{SPI2, PA1, Sck, 0},
	{SPI2, PB2, Sck, 1},
	{SPI2, PB8, Sck, 1},
	{SPI2, PF0, Sck, 3},
	{SPI2, PA3, Miso, 0},
	{SPI2, PA9, Miso, 0},
	{SPI2, PB6, Miso, 3},
	{SPI2, PF1, Miso, 3},
	{SPI2, PF3, Miso, 3},
	{SPI2, PA4, Mosi, 2},
	{SPI2, PA10, Mosi, 0},
	{SPI2, PB7, Mosi, 1},
	{SPI2, PF2, Mosi, 3},
}

// LookupAF returns the alternate function that binds pin to the given signal
// of the peripheral, and whether such a binding exists.
func LookupAF(periph Periph, pin Pin, signal Signal) (uint8, bool) {
	for _, pf := range pinFuncs {
		if pf.periph == periph && pf.pin == pin && pf.signal == signal {
			return pf.af, true
		}
	}
	return 0, false
}

// ValidPins returns true if all three lines can be bound to the peripheral.
func ValidPins(periph Periph, pins Pins) bool {
	if _, ok := LookupAF(periph, pins.Sck, Sck); !ok {
		return false
	}
	if _, ok := LookupAF(periph, pins.Miso, Miso); !ok {
		return false
	}
	_, ok := LookupAF(periph, pins.Mosi, Mosi)
	return ok
}

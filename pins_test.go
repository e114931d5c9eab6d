// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

/*
  Test suite for the pin compatibility data.
*/
package spi

import (
	"testing"
)

func TestLookupAF(t *testing.T) {
	patterns := []struct {
		periph Periph
		pin    Pin
		signal Signal
		af     uint8
		ok     bool
	}{
		{SPI1, PA5, Sck, 0, true},
		{SPI1, PA2, Sck, 10, true},
		{SPI1, PA6, Miso, 0, true},
		{SPI1, PA13, Miso, 10, true},
		{SPI1, PA7, Mosi, 0, true},
		{SPI2, PF0, Sck, 3, true},
		{SPI2, PB6, Miso, 3, true},
		{SPI2, PA4, Mosi, 2, true},
		// miso pin as sck
		{SPI1, PA6, Sck, 0, false},
		// SPI1 sck on SPI2
		{SPI2, PA5, Sck, 0, false},
		{SPI1, PA14, Sck, 0, false},
	}
	for _, p := range patterns {
		af, ok := LookupAF(p.periph, p.pin, p.signal)
		if ok != p.ok {
			t.Errorf("periph %d pin %d signal %d: got ok %v, want %v", p.periph, p.pin, p.signal, ok, p.ok)
			continue
		}
		if ok && af != p.af {
			t.Errorf("periph %d pin %d signal %d: got af %d, want %d", p.periph, p.pin, p.signal, af, p.af)
		}
	}
}

func TestValidPins(t *testing.T) {
	if !ValidPins(SPI1, Pins{Sck: PA5, Miso: PA6, Mosi: PA7}) {
		t.Error("rejected valid SPI1 binding")
	}
	if !ValidPins(SPI2, Pins{Sck: PB8, Miso: PF1, Mosi: PF2}) {
		t.Error("rejected valid SPI2 binding")
	}
	// miso and mosi swapped
	if ValidPins(SPI1, Pins{Sck: PA5, Miso: PA7, Mosi: PA6}) {
		t.Error("accepted swapped data lines")
	}
	if ValidPins(SPI2, Pins{Sck: PA5, Miso: PA6, Mosi: PA7}) {
		t.Error("accepted SPI1 binding on SPI2")
	}
}

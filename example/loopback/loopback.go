// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"

	"github.com/warthog618/spi"
	"github.com/warthog618/spi/spitest"
)

// This example runs a full-duplex transfer against the simulated register
// set, so it works anywhere - no hardware required. It demonstrates the
// driver API end to end: configure, transfer, width conversion, release.
func main() {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1,
		spi.Pins{Sck: spi.PA5, Miso: spi.PA6, Mosi: spi.PA7},
		spi.Mode3, 1000000, d)
	if err != nil {
		panic(err)
	}
	buf := []uint8{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}
	if err = s.Transfer(buf); err != nil {
		panic(err)
	}
	fmt.Printf("8-bit loopback: % x\n", buf)

	w := s.To16Bit()
	wbuf := []uint16{0xcafe, 0xf00d}
	if err = w.Transfer(wbuf); err != nil {
		panic(err)
	}
	fmt.Printf("16-bit loopback: % x\n", wbuf)

	w.Release()
}

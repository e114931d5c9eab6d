// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

// Test suite for the configuration state machine, against the simulated
// register set.
package spi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/spi"
	"github.com/warthog618/spi/spitest"
)

var testPins = spi.Pins{Sck: spi.PA5, Miso: spi.PA6, Mosi: spi.PA7}

func TestConfigure(t *testing.T) {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode3, 1000000, d)
	require.Nil(t, err)
	require.NotNil(t, s)
	assert.True(t, d.ClockEnabled())
	assert.Equal(t, 1, d.Resets())

	cr1 := d.CR1()
	assert.NotZero(t, cr1&spi.CR1_CPHA)
	assert.NotZero(t, cr1&spi.CR1_CPOL)
	assert.NotZero(t, cr1&spi.CR1_MSTR)
	assert.NotZero(t, cr1&spi.CR1_SSM)
	assert.NotZero(t, cr1&spi.CR1_SSI)
	assert.NotZero(t, cr1&spi.CR1_SPE)
	assert.Zero(t, cr1&spi.CR1_LSBFIRST)
	assert.Zero(t, cr1&spi.CR1_RXONLY)
	assert.Zero(t, cr1&spi.CR1_BIDIMODE)
	// 48MHz pclk and 1MHz target
	br := uint8(cr1 >> spi.CR1_BRShift & spi.CR1_BRMask)
	assert.Equal(t, spi.ClockDivisor(48000000, 1000000), br)

	assert.Equal(t, spi.CR2_FRXTH|spi.CR2_DS8, d.CR2())
}

func TestConfigureMode0(t *testing.T) {
	d := spitest.New()
	_, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 1000000, d)
	require.Nil(t, err)
	assert.Zero(t, d.CR1()&spi.CR1_CPHA)
	assert.Zero(t, d.CR1()&spi.CR1_CPOL)
}

func TestConfigureSlave(t *testing.T) {
	d := spitest.New()
	s, err := spi.ConfigureSlave(d, spi.SPI1, testPins, spi.Mode1, d)
	require.Nil(t, err)
	require.NotNil(t, s)

	cr1 := d.CR1()
	assert.NotZero(t, cr1&spi.CR1_CPHA)
	assert.Zero(t, cr1&spi.CR1_CPOL)
	assert.Zero(t, cr1&spi.CR1_MSTR)
	// hardware chip select is authoritative
	assert.Zero(t, cr1&spi.CR1_SSM)
	assert.Zero(t, cr1&spi.CR1_SSI)
	// clock is external, no divisor programmed
	assert.Zero(t, cr1>>spi.CR1_BRShift&spi.CR1_BRMask)
	assert.NotZero(t, cr1&spi.CR1_SPE)
}

func TestConfigureInvalidPins(t *testing.T) {
	d := spitest.New()
	_, err := spi.Configure(d, spi.SPI2, testPins, spi.Mode0, 1000000, d)
	assert.Equal(t, spi.ErrInvalidPins, err)
	// nothing touched before validation
	assert.False(t, d.ClockEnabled())
	assert.Equal(t, 0, d.Resets())
}

func TestConfigureInvalidSpeed(t *testing.T) {
	d := spitest.New()
	_, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 0, d)
	assert.Equal(t, spi.ErrInvalidSpeed, err)
	// faster than the input clock
	_, err = spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 96000000, d)
	assert.Equal(t, spi.ErrInvalidSpeed, err)
}

func TestWidthConversion(t *testing.T) {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 1000000, d)
	require.Nil(t, err)
	cr2 := d.CR2()

	w := s.To16Bit()
	assert.Equal(t, spi.CR2_DS16, d.CR2())
	// enable preserved across conversion
	assert.NotZero(t, d.CR1()&spi.CR1_SPE)

	// converting back restores the 8-bit configuration exactly
	w.To8Bit()
	assert.Equal(t, cr2, d.CR2())
	assert.NotZero(t, d.CR1()&spi.CR1_SPE)
}

func TestEnableDisable(t *testing.T) {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 1000000, d)
	require.Nil(t, err)
	cr1 := d.CR1()

	s.Disable()
	assert.Zero(t, d.CR1()&spi.CR1_SPE)
	// idempotent, and touches nothing else
	s.Disable()
	assert.Equal(t, cr1&^spi.CR1_SPE, d.CR1())

	s.Enable()
	assert.Equal(t, cr1, d.CR1())
	s.Enable()
	assert.Equal(t, cr1, d.CR1())
}

func TestReset(t *testing.T) {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode2, 3000000, d)
	require.Nil(t, err)
	cr1 := d.CR1()
	cr2 := d.CR2()

	s.Reset(d)
	assert.Equal(t, 2, d.Resets())
	assert.Equal(t, cr1, d.CR1())
	assert.Equal(t, cr2, d.CR2())

	// disabled handles stay disabled across a reset
	s.Disable()
	s.Reset(d)
	assert.Zero(t, d.CR1()&spi.CR1_SPE)
	assert.Equal(t, cr1&^spi.CR1_SPE, d.CR1())
}

func TestRelease(t *testing.T) {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1, testPins, spi.Mode0, 1000000, d)
	require.Nil(t, err)
	cr1 := d.CR1()

	regs, pins := s.Release()
	assert.True(t, regs == spi.Registers(d))
	assert.Equal(t, testPins, pins)
	// left in its last programmed state
	assert.Equal(t, cr1, d.CR1())
}

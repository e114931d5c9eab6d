// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

// Test suite for the simulated register set itself.
package spitest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/spi"
	"github.com/warthog618/spi/spitest"
)

func TestLoopback(t *testing.T) {
	d := spitest.New()
	d.SetCR2(spi.CR2_FRXTH | spi.CR2_DS8)
	d.SetDR8(0x12)
	d.SetDR8(0x34)
	assert.NotZero(t, d.SR()&spi.SR_RXNE)
	assert.Equal(t, uint8(0x12), d.DR8())
	assert.Equal(t, uint8(0x34), d.DR8())
	assert.Zero(t, d.SR()&spi.SR_RXNE)
	assert.Equal(t, []uint16{0x12, 0x34}, d.Sent())
}

func TestBackpressure(t *testing.T) {
	d := spitest.New()
	d.SetCR2(spi.CR2_FRXTH | spi.CR2_DS8)
	for i := 0; i < 4; i++ {
		assert.NotZero(t, d.SR()&spi.SR_TXE)
		d.SetDR8(uint8(i))
	}
	// FIFO full; transmit readiness deasserts rather than overrunning
	assert.Zero(t, d.SR()&spi.SR_TXE)
	assert.Zero(t, d.SR()&spi.SR_OVR)
	// a fifth frame arriving anyway is an overrun
	d.SetDR8(4)
	assert.NotZero(t, d.SR()&spi.SR_OVR)
}

func TestSendOnlyFIFOLevel(t *testing.T) {
	d := spitest.New()
	d.SetCR2(spi.CR2_FRXTH | spi.CR2_DS8)
	d.SetCR1(spi.CR1_BIDIMODE | spi.CR1_BIDIOE)
	for i := 0; i < 4; i++ {
		d.SetDR8(uint8(i))
	}
	// each poll drains one byte, so the occupancy field steps down
	assert.Equal(t, uint32(3), d.SR()>>spi.SR_FTLVLShift&spi.SR_FTLVLMask)
	assert.Equal(t, uint32(2), d.SR()>>spi.SR_FTLVLShift&spi.SR_FTLVLMask)
	assert.Equal(t, uint32(1), d.SR()>>spi.SR_FTLVLShift&spi.SR_FTLVLMask)
	assert.Equal(t, uint32(0), d.SR()>>spi.SR_FTLVLShift&spi.SR_FTLVLMask)
	assert.NotZero(t, d.SR()&spi.SR_TXE)
	// nothing looped back in send-only mode
	assert.Zero(t, d.SR()&spi.SR_RXNE)
}

func TestResetPulse(t *testing.T) {
	d := spitest.New()
	d.SetCR1(0x347)
	d.SetCR2(0x1700)
	d.ResetPulse(spi.SPI1)
	assert.Zero(t, d.CR1())
	assert.Zero(t, d.CR2())
	assert.Equal(t, 1, d.Resets())
}

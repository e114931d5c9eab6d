// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

// Registers provides access to the control, status and data registers of one
// SPI block.
//
// The driver takes exclusive ownership of the Registers passed to Configure
// and performs all hardware access through it, so the peripheral can be backed
// by memory-mapped hardware (see the mmio subpackage) or by a simulation
// (see the spitest subpackage).
//
// The data register is accessed with the width of the current frame size.
// An 8-bit access must touch only the low byte of the register, otherwise a
// single write would occupy two FIFO slots.
type Registers interface {
	CR1() uint32
	SetCR1(uint32)
	CR2() uint32
	SetCR2(uint32)
	SR() uint32
	DR8() uint8
	SetDR8(uint8)
	DR16() uint16
	SetDR16(uint16)
}

// Control register 1 fields.
const (
	CR1_CPHA     uint32 = 1 << 0  // clock phase
	CR1_CPOL     uint32 = 1 << 1  // clock polarity
	CR1_MSTR     uint32 = 1 << 2  // controller role
	CR1_SPE      uint32 = 1 << 6  // peripheral enable
	CR1_LSBFIRST uint32 = 1 << 7  // frame format
	CR1_SSI      uint32 = 1 << 8  // internal slave select
	CR1_SSM      uint32 = 1 << 9  // software slave management
	CR1_RXONLY   uint32 = 1 << 10 // receive only
	CR1_BIDIOE   uint32 = 1 << 14 // output enable in bidirectional mode
	CR1_BIDIMODE uint32 = 1 << 15 // bidirectional data mode

	CR1_BRShift        = 3   // baud rate divisor field
	CR1_BRMask  uint32 = 0x7 // 3 bits wide
)

// Control register 2 fields.
const (
	CR2_SSOE  uint32 = 1 << 2  // SS output enable
	CR2_FRXTH uint32 = 1 << 12 // RX FIFO threshold, set for 8-bit

	CR2_DSShift        = 8   // data size field, frame bits - 1
	CR2_DSMask  uint32 = 0xf // 4 bits wide

	CR2_DS8  uint32 = 0x7 << CR2_DSShift
	CR2_DS16 uint32 = 0xf << CR2_DSShift
)

// Status register fields.
const (
	SR_RXNE uint32 = 1 << 0 // receive FIFO not empty
	SR_TXE  uint32 = 1 << 1 // transmit FIFO empty
	SR_MODF uint32 = 1 << 5 // mode fault
	SR_OVR  uint32 = 1 << 6 // receive overrun
	SR_BSY  uint32 = 1 << 7 // shift register busy

	SR_FTLVLShift        = 11  // transmit FIFO level field
	SR_FTLVLMask  uint32 = 0x3 // 2 bits wide
)

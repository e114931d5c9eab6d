// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

// Package mmio exposes a physical SPI register block as an spi.Registers by
// memory mapping it from /dev/mem.
//
// This requires root, and a kernel built without CONFIG_STRICT_DEVMEM.
package mmio

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Register offsets within the block, in words.
const (
	cr1Reg = 0 // 0x00
	cr2Reg = 1 // 0x04
	srReg  = 2 // 0x08
	drReg  = 3 // 0x0c
)

// ErrAlreadyClosed indicates the block mapping has been released.
var ErrAlreadyClosed = errors.New("mmio: already closed")

// Block is a memory-mapped SPI register block.
type Block struct {
	// mem8 is the raw mapping, one page containing the block.
	mem8 []uint8
	// mem is the word view of the block itself.
	mem []uint32
	// dr8 is the byte address of the data register, for 8-bit access.
	dr8 *uint8
	// dr16 is the halfword address of the data register.
	dr16 *uint16
}

// Open maps the SPI register block at the given physical base address.
func Open(base uint64) (*Block, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pageSize := uint64(unix.Getpagesize())
	pageBase := base &^ (pageSize - 1)
	mem8, err := unix.Mmap(
		int(f.Fd()),
		int64(pageBase),
		int(pageSize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	blk := unsafe.Pointer(&mem8[base-pageBase])
	b := Block{
		mem8: mem8,
		mem:  unsafe.Slice((*uint32)(blk), 4),
		dr8:  (*uint8)(unsafe.Add(blk, drReg*4)),
		dr16: (*uint16)(unsafe.Add(blk, drReg*4)),
	}
	return &b, nil
}

// Close unmaps the register block.
func (b *Block) Close() error {
	if b.mem8 == nil {
		return ErrAlreadyClosed
	}
	mem8 := b.mem8
	b.mem8 = nil
	b.mem = nil
	b.dr8 = nil
	b.dr16 = nil
	return unix.Munmap(mem8)
}

func (b *Block) CR1() uint32 {
	return b.mem[cr1Reg]
}

func (b *Block) SetCR1(v uint32) {
	b.mem[cr1Reg] = v
}

func (b *Block) CR2() uint32 {
	return b.mem[cr2Reg]
}

func (b *Block) SetCR2(v uint32) {
	b.mem[cr2Reg] = v
}

func (b *Block) SR() uint32 {
	return b.mem[srReg]
}

// DR8 reads only the low byte of the data register so a single frame is
// taken from the FIFO.
func (b *Block) DR8() uint8 {
	return *b.dr8
}

func (b *Block) SetDR8(v uint8) {
	*b.dr8 = v
}

func (b *Block) DR16() uint16 {
	return *b.dr16
}

func (b *Block) SetDR16(v uint16) {
	*b.dr16 = v
}

// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/spi"
	"github.com/warthog618/spi/mmio"
)

// This example reads the JEDEC ID of a SPI flash wired to SPI1. The chip
// select must be strapped low, or driven separately - the driver leaves CS
// to the caller. The default register block address and pin assignments are
// defined in loadConfig, but can be altered via configuration (env, flag or
// config file).
func main() {
	cfg := loadConfig()
	base := uint64(cfg.MustGet("base").Uint())
	blk, err := mmio.Open(base)
	if err != nil {
		panic(err)
	}
	defer blk.Close()
	pins := spi.Pins{
		Sck:  parsePin(cfg.MustGet("sck").String()),
		Miso: parsePin(cfg.MustGet("miso").String()),
		Mosi: parsePin(cfg.MustGet("mosi").String()),
	}
	rc := rcc{pclk: uint32(cfg.MustGet("pclk").Uint())}
	s, err := spi.Configure(blk, spi.SPI1, pins, spi.Mode0,
		uint32(cfg.MustGet("rate").Uint()), rc)
	if err != nil {
		panic(err)
	}
	defer s.Release()
	// JEDEC Read ID, then three ID bytes.
	buf := []uint8{0x9f, 0, 0, 0}
	if err = s.Transfer(buf); err != nil {
		panic(err)
	}
	fmt.Printf("manufacturer 0x%02x, device 0x%02x%02x\n", buf[1], buf[2], buf[3])
}

// rcc covers the clock-tree collaborator for boards where the boot firmware
// has already enabled and released the SPI clock gate, which is the common
// case when poking registers from userspace.
type rcc struct {
	pclk uint32
}

func (r rcc) EnableClock(spi.Periph) {}

func (r rcc) ResetPulse(spi.Periph) {}

func (r rcc) PCLK() uint32 {
	return r.pclk
}

func parsePin(name string) spi.Pin {
	var port spi.Pin
	var n uint8
	_, err := fmt.Sscanf(name, "PA%d", &n)
	if err != nil {
		port = spi.PB0
		_, err = fmt.Sscanf(name, "PB%d", &n)
	}
	if err != nil {
		port = spi.PF0
		_, err = fmt.Sscanf(name, "PF%d", &n)
	}
	if err != nil {
		panic(fmt.Sprintf("can't parse pin '%s'", name))
	}
	return port + spi.Pin(n)
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"base": 0x40013000,
		"pclk": 48000000,
		"rate": 1000000,
		"sck":  "PA5",
		"miso": "PA6",
		"mosi": "PA7",
	}
	def := dict.New(dict.WithMap(defaultConfig))
	// highest priority sources first - flags override environment
	cfg := config.New(
		pflag.New(),
		env.New(env.WithEnvPrefix("JEDEC_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "jedec.json", json.NewDecoder()))
	return cfg
}

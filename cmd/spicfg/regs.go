// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warthog618/spi"
	"github.com/warthog618/spi/spitest"
)

func init() {
	regsCmd.Flags().Uint32VarP(&regsOpts.PCLK, "pclk", "c", 48000000, "peripheral input clock in Hz")
	regsCmd.Flags().Uint8VarP(&regsOpts.Mode, "mode", "m", 0, "SPI mode (0-3)")
	regsCmd.Flags().BoolVarP(&regsOpts.Slave, "slave", "s", false, "peripheral role")
	regsCmd.Flags().BoolVarP(&regsOpts.Wide, "wide", "w", false, "16-bit frames")
	rootCmd.AddCommand(regsCmd)
}

var (
	regsCmd = &cobra.Command{
		Use:     "regs [<rate>]",
		Short:   "Show the control register images a configuration programs",
		Example: "  spicfg regs --mode 3 --wide 1000000",
		RunE:    regs,
	}
	regsOpts = struct {
		PCLK  uint32
		Mode  uint8
		Slave bool
		Wide  bool
	}{}
)

var modes = []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3}

func regs(cmd *cobra.Command, args []string) error {
	if regsOpts.Mode > 3 {
		return fmt.Errorf("invalid mode '%d'", regsOpts.Mode)
	}
	mode := modes[regsOpts.Mode]
	d := spitest.New()
	d.SetPCLK(regsOpts.PCLK)
	pins := spi.Pins{Sck: spi.PA5, Miso: spi.PA6, Mosi: spi.PA7}
	var s *spi.Spi8
	var err error
	if regsOpts.Slave {
		if len(args) != 0 {
			return fmt.Errorf("rate is set by the bus controller, not the peripheral")
		}
		s, err = spi.ConfigureSlave(d, spi.SPI1, pins, mode, d)
	} else {
		if len(args) != 1 {
			return fmt.Errorf("controller role requires a rate")
		}
		rate, perr := strconv.ParseUint(args[0], 10, 32)
		if perr != nil {
			return fmt.Errorf("can't parse rate '%s'", args[0])
		}
		s, err = spi.Configure(d, spi.SPI1, pins, mode, uint32(rate), d)
	}
	if err != nil {
		return err
	}
	if regsOpts.Wide {
		s.To16Bit()
	}
	fmt.Printf("CR1: 0x%08x\nCR2: 0x%08x\n", d.CR1(), d.CR2())
	return nil
}

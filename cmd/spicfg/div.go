// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warthog618/spi"
)

func init() {
	divCmd.Flags().Uint32VarP(&divOpts.PCLK, "pclk", "c", 48000000, "peripheral input clock in Hz")
	rootCmd.AddCommand(divCmd)
}

var (
	divCmd = &cobra.Command{
		Use:     "div <rate1>...",
		Short:   "Compute the baud divisor for a target bit rate or rates",
		Example: "  spicfg div --pclk 24000000 1000000",
		Args:    cobra.MinimumNArgs(1),
		RunE:    div,
	}
	divOpts = struct {
		PCLK uint32
	}{}
)

func div(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		rate, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("can't parse rate '%s'", arg)
		}
		if rate == 0 || uint32(rate) > divOpts.PCLK {
			return spi.ErrInvalidSpeed
		}
		br := spi.ClockDivisor(divOpts.PCLK, uint32(rate))
		fmt.Printf("rate %d: br=%d (pclk/%d) effective %dHz\n",
			rate, br, 2<<br, spi.EffectiveRate(divOpts.PCLK, br))
	}
	return nil
}

// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/spi"
	"github.com/warthog618/spi/spitest"
)

func init() {
	loopbackCmd.Flags().IntVarP(&loopbackOpts.Len, "len", "n", 16, "number of frames to exchange")
	rootCmd.AddCommand(loopbackCmd)
}

var (
	loopbackCmd = &cobra.Command{
		Use:   "loopback",
		Short: "Run a full-duplex transfer against the simulated register set",
		RunE:  loopback,
	}
	loopbackOpts = struct {
		Len int
	}{}
)

func loopback(cmd *cobra.Command, args []string) error {
	d := spitest.New()
	s, err := spi.Configure(d, spi.SPI1,
		spi.Pins{Sck: spi.PA5, Miso: spi.PA6, Mosi: spi.PA7},
		spi.Mode0, 1000000, d)
	if err != nil {
		return err
	}
	buf := make([]uint8, loopbackOpts.Len)
	for i := range buf {
		buf[i] = uint8(i)
	}
	if err = s.Transfer(buf); err != nil {
		return err
	}
	for i := range buf {
		if buf[i] != uint8(i) {
			return fmt.Errorf("frame %d read back as %d", i, buf[i])
		}
	}
	fmt.Printf("exchanged %d frames in %d status polls\n", len(buf), d.SRReads())
	return nil
}

// SPDX-License-Identifier: MIT
//
// Copyright © 2021 Kent Gibson <warthog618@gmail.com>.

package spi

// setSendOnly switches the line drivers to half-duplex output so the data-in
// line is never driven by the peripheral.
func (s *dev) setSendOnly() {
	s.regs.SetCR1(s.regs.CR1() | CR1_BIDIMODE | CR1_BIDIOE)
}

// setFullDuplex switches the line drivers back to 2-line unidirectional.
func (s *dev) setFullDuplex() {
	s.regs.SetCR1(s.regs.CR1() &^ (CR1_BIDIMODE | CR1_BIDIOE))
}

// Transfer performs a full-duplex exchange of len(words) 8-bit frames,
// overwriting each element with the frame received in its place.
//
// Writes and reads are interleaved with two independent cursors so the
// receive FIFO, which is far shallower than a typical transfer, is drained
// while frames are still being queued. On a fault the buffer is only valid
// up to the last element exchanged before the fault.
//
// The trailing drain does not wait out shift-register latency: a not-ready
// poll once all frames are written is reported as ErrIncompleteTransfer.
// A register block must latch receive-ready for a frame before it
// re-asserts transmit-ready for the next, as the spitest block does, or
// the last frame may be reported incomplete while still on the wire.
func (s *Spi8) Transfer(words []uint8) error {
	s.setFullDuplex()

	readPos := 0
	writePos := 0

	for writePos < len(words) {
		// Fill the transmit FIFO as much as possible.
		for writePos < len(words) {
			if err := s.checkSend(); err != nil {
				if err == errWouldBlock {
					break
				}
				return err
			}
			s.regs.SetDR8(words[writePos])
			writePos++
		}

		// Read from the receive FIFO whatever has arrived.
		for readPos < writePos {
			if err := s.checkRead(); err != nil {
				if err == errWouldBlock {
					break
				}
				return err
			}
			words[readPos] = s.regs.DR8()
			readPos++
		}
	}

	// All frames sent; drain whatever remains in the receive FIFO.
	// A not-ready here means reception never caught up, which cannot
	// happen under correct bus timing.
	for readPos < len(words) {
		if err := s.checkRead(); err != nil {
			if err == errWouldBlock {
				return ErrIncompleteTransfer
			}
			return err
		}
		words[readPos] = s.regs.DR8()
		readPos++
	}

	// An overrun during the transfer invalidates it even though the buffer
	// is fully populated - frames already read may be stale.
	if s.regs.SR()&SR_OVR != 0 {
		return ErrOverrun
	}
	return nil
}

// Write transmits len(words) 8-bit frames in order, discarding anything
// received.
//
// Free transmit capacity is estimated from the FIFO occupancy field so the
// status register is not polled per frame.
func (s *Spi8) Write(words []uint8) error {
	// Send only, so the receive buffer cannot overflow.
	s.setSendOnly()

	// Make sure we don't continue with an error condition.
	if err := s.blockSend(); err != nil {
		return err
	}

	var bufcap uint8
	for _, word := range words {
		// Loop as long as our send buffer is full.
		for bufcap == 0 {
			bufcap = s.sendBufferSize()
		}
		s.regs.SetDR8(word)
		bufcap--
	}

	// One last best-effort check to let the final frame clear the shift
	// register; a transient false-busy here is not a fault.
	_ = s.blockSend()
	return nil
}

// Transfer performs a full-duplex exchange of len(words) 16-bit frames,
// overwriting each element with the frame received in its place.
//
// 16-bit frames fill the FIFO in half the slots, so a frame-by-frame
// lockstep is sufficient here and the dual-cursor interleave of the 8-bit
// path is not applied.
func (s *Spi16) Transfer(words []uint16) error {
	s.setFullDuplex()

	for i := range words {
		if err := s.blockSend(); err != nil {
			return err
		}
		s.regs.SetDR16(words[i])
		if err := s.blockRead(); err != nil {
			return err
		}
		words[i] = s.regs.DR16()
	}
	return nil
}

// Write transmits len(words) 16-bit frames in order, discarding anything
// received.
func (s *Spi16) Write(words []uint16) error {
	// Send only, so the receive buffer cannot overflow.
	s.setSendOnly()

	for _, word := range words {
		if err := s.blockSend(); err != nil {
			return err
		}
		s.regs.SetDR16(word)
	}

	// One last best-effort check, as for the 8-bit path.
	_ = s.blockSend()
	return nil
}

package myers

import "github.com/o8191/GenomeWorks/internal/lanes"

// blockAdvance performs one block's worth of the Myers 1999 block-parallel
// column update (spec §4.2, steps 1-7) given the carry entering this block
// from its lower neighbor (or the synthetic warp carry, for block 0).
//
// pv & mv == 0 is both a precondition and a postcondition.
func blockAdvance(pv, mv, eq uint32, highestBit uint32, carryIn int) (newPv, newMv uint32, carryOut int) {
	xv := eq | mv // step 1

	if carryIn < 0 { // step 2
		eq |= 1
	}

	xh := ((eq & pv) + pv) ^ pv | eq // step 3

	ph := mv | ^(xh | pv) // step 4
	mh := pv & xh

	carryOut = lanes.Bit(ph, bitPos(highestBit)) - lanes.Bit(mh, bitPos(highestBit)) // step 5

	// step 6: shift ph, mh left by one bit, injecting this block's own
	// carry_in at bit 0: carry_in<0 injects into mh, carry_in>0 injects
	// into ph. Ph and Mh never share a set bit (mh lies within pv, and ph
	// within mv | ^pv, which are disjoint since pv & mv == 0), so
	// recovering bit(ph,31)/bit(mh,31) of the *previous* block from its
	// signed carry_out loses nothing when threaded in as this block's
	// carry_in.
	ph = ph << 1
	mh = mh << 1
	if carryIn < 0 {
		mh |= 1
	}
	if carryIn > 0 {
		ph |= 1
	}

	newPv = mh | ^(xv | ph) // step 7
	newMv = ph & xv

	return newPv, newMv, carryOut
}

func bitPos(highestBit uint32) int {
	pos := 0
	for highestBit > 1 {
		highestBit >>= 1
		pos++
	}
	return pos
}

// WarpAdvance drives one column update across every query block, simulating
// a SIMD group of warpWidth lanes advancing in lockstep strides (spec §4.3
// step 2b). pv, mv, eq, and highestBit must all have length nWords; warpCarryIn
// is the synthetic carry entering block 0 (1 for every column per §4.3.a,
// encoding that the implicit row 0 of the NW matrix increases by one at
// every target position).
//
// Within a stride, the block-to-block carry is passed in a single
// sequential sweep over the lanes rather than a speculate-and-fix-up loop:
// processing lane 0 before lane 1 before lane 2 (and so on) already
// satisfies each lane's carry dependency in one pass. The lanes do not
// advance in lockstep here, and lanes.SlideUp is not used for this handoff;
// only the stride-to-stride handoff goes through lanes.TopActive.
func WarpAdvance(pv, mv, eq, highestBit []uint32, warpCarryIn, warpWidth int) (newPv, newMv []uint32, carryOut []int) {
	nWords := len(pv)
	newPv = make([]uint32, nWords)
	newMv = make([]uint32, nWords)
	carryOut = make([]int, nWords)

	strideCarryIn := warpCarryIn
	for stride := 0; stride < nWords; stride += warpWidth {
		width := warpWidth
		if stride+width > nWords {
			width = nWords - stride
		}
		mask := lanes.NewActiveMask(warpWidth, width)

		pvGroup := lanes.NewGroup(pv[stride : stride+width])
		mvGroup := lanes.NewGroup(mv[stride : stride+width])
		eqGroup := lanes.NewGroup(eq[stride : stride+width])
		hbGroup := lanes.NewGroup(highestBit[stride : stride+width])

		outPv := make([]uint32, width)
		outMv := make([]uint32, width)
		outCarry := make([]int, width)
		outCarryBits := make([]uint32, width)

		carry := strideCarryIn
		for lane := 0; lane < width; lane++ {
			outPv[lane], outMv[lane], carry = blockAdvance(
				pvGroup.Lane(lane), mvGroup.Lane(lane), eqGroup.Lane(lane), hbGroup.Lane(lane), carry,
			)
			// The carry this lane produced is passed directly as the next
			// lane's carry_in by the sequential sweep.
			outCarry[lane] = carry
			outCarryBits[lane] = uint32(int32(carry))
		}

		copy(newPv[stride:stride+width], outPv)
		copy(newMv[stride:stride+width], outMv)
		copy(carryOut[stride:stride+width], outCarry)

		// spec §4.3.b: shuffle carry_out of the last active lane down to
		// lane 0 for the next stride, zeroing it in all other lanes. The
		// next stride only ever reads lane 0's carry, but routing it
		// through the same mask/TopActive primitives keeps this handoff
		// expressed with the same primitive used everywhere else in this
		// file.
		carryGroup := lanes.NewGroup(outCarryBits)
		strideCarryIn = int(int32(lanes.TopActive(carryGroup, mask)))
	}

	return newPv, newMv, carryOut
}

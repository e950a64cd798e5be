package bitvector

import "unsafe"

// UnsignedInteger constrains the scalar types BitVector can ingest and
// extract bits from. It stands in for the source's per-width integer trait.
type UnsignedInteger interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func bitSize[T UnsignedInteger]() int {
	var zero T

	return int(unsafe.Sizeof(zero)) * 8
}

func widthMask(width uint32) uint64 {
	if width >= wordBits {
		return ^uint64(0)
	}

	return (uint64(1) << width) - 1
}

// FromBitsTwoState builds a two-state BitVector of the given width from an
// unsigned scalar. width must not exceed the word size; callers passing too
// wide a width get a panic, since this is a construction-time contract
// violation, not a recoverable error.
func FromBitsTwoState[T UnsignedInteger](width uint32, value T) *BitVector {
	if int(width) > wordBits {
		panic("bitvector: from_bits_two_state width exceeds word size")
	}

	bv := New(width, false)
	bv.value = uint64(value) & widthMask(width)

	return bv
}

// FromBitsFourState builds a four-state BitVector of the given width from
// unsigned value/mask scalars. width must not exceed half the word size.
func FromBitsFourState[T UnsignedInteger](width uint32, value, mask T) *BitVector {
	if int(width) > wordBits/2 {
		panic("bitvector: from_bits_four_state width exceeds half word size")
	}

	bv := New(width, true)
	bv.value = uint64(value) & widthMask(width)
	bv.mask = uint64(mask) & widthMask(width)

	return bv
}

// ToBitsTwoState extracts v as an unsigned scalar of type T. It fails with
// ErrTooWide if v's width exceeds T's width, or if v is four-state: a
// four-state value cannot be losslessly collapsed to a scalar without
// discarding its mask plane.
func ToBitsTwoState[T UnsignedInteger](v *BitVector) (T, error) {
	if v.fourState {
		return 0, ErrTooWide
	}

	if int(v.bitWidth) > bitSize[T]() {
		return 0, ErrTooWide
	}

	return T(v.inlineOrHeapValue()), nil
}

// ToBitsFourState extracts v's value and mask planes as unsigned scalars of
// type T. A two-state vector extracts with an all-zero mask, matching the
// equality rule that a two-state vector is a four-state vector with zero
// mask. It fails with ErrTooWide if v's width exceeds T's width.
func ToBitsFourState[T UnsignedInteger](v *BitVector) (value, mask T, err error) {
	if int(v.bitWidth) > bitSize[T]() {
		return 0, 0, ErrTooWide
	}

	value = T(v.inlineOrHeapValue())
	if v.fourState {
		mask = T(v.inlineOrHeapMask())
	}

	return value, mask, nil
}

// inlineOrHeapValue returns the first (and, for any width this package lets
// reach here, only) value word regardless of storage mode.
func (v *BitVector) inlineOrHeapValue() uint64 {
	if v.heapValue != nil {
		return v.heapValue[0]
	}

	return v.value
}

func (v *BitVector) inlineOrHeapMask() uint64 {
	if v.heapMask != nil {
		return v.heapMask[0]
	}

	return v.mask
}

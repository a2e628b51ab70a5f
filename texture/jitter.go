package texture

// Halton returns element i of the Halton low-discrepancy sequence with
// base b, in [0, 1).
func Halton(i, b uint32) float32 {
	f := float32(1.0)
	r := float32(0.0)
	for i > 0 {
		f /= float32(b)
		r += f * float32(i%b)
		i /= b
	}
	return r
}

// Jitter returns a sub-texel offset for temporal accumulation pass i,
// scaled to the given resolution. X uses base 2, Y base 3, each remapped
// from [0,1) to [-1,1) before the resolution divide.
func Jitter(i uint32, width, height float32) (x, y float32) {
	jx := 2.0*Halton(i, 2) - 1.0
	jy := 2.0*Halton(i, 3) - 1.0
	return jx / width, jy / height
}

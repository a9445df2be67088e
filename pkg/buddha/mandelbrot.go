package buddha

// trajectory iterates z → z² + c from z = c for up to n steps, collecting
// each iterate before advancing it.
//
// Orbits that escape (squared magnitude above 4) return the prefix
// collected so far; orbits that stay bounded for the whole budget return
// nil. Only escaping candidates therefore contribute to the histogram.
func trajectory(c complex128, n int) []complex128 {
	zRe := real(c)
	zIm := imag(c)

	// Cache the squared components; the update and the escape test both
	// need them.
	zRe2 := zRe * zRe
	zIm2 := zIm * zIm

	var sequence []complex128

	for i := 0; i < n; i++ {
		sequence = append(sequence, complex(zRe, zIm))

		// z = z² + c split into components:
		//   Im(z² + c) = 2·re·im + c.im
		//   Re(z² + c) = re² - im² + c.re
		zIm = 2*zRe*zIm + imag(c)
		zRe = zRe2 - zIm2 + real(c)

		zRe2 = zRe * zRe
		zIm2 = zIm * zIm

		// |z|² > 2² is the escape test |z| > 2 without the sqrt.
		if zRe2+zIm2 > 4 {
			return sequence
		}
	}

	return nil
}

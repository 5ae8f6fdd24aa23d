package bignum

// Polyval evaluates y = sum coeffs[i] * x^(n-1-i) with Horner's scheme, the
// coefficients being given from the highest degree to the lowest.
func Polyval(coeffs []float64, x float64) (y float64) {
	for _, c := range coeffs {
		y = y*x + c
	}
	return
}

/*
Package economize approximates real functions on an interval with polynomials of a
given degree, by truncated Taylor series and Chebyshev economization, with exact
rational coefficients.

The engine is split in the following packages:
  - utils/bignum: exact polynomials over big.Rat, intervals and arbitrary precision elementary functions.
  - chebyshev: the memoized Chebyshev polynomials of the first kind and the degree reduction.
  - symbolic: expressions in x, their Taylor series and their evaluation.
  - approximation: the approximation of a function, its error and the search for the best Taylor degree.

The economize command in cmd/economize exposes the engine on the command line.
*/
package economize

// Package floatkind abstracts the solver and classifier packages over
// single- and double-precision floating point, the way a generic numeric
// trait would in a language with type classes. Go has neither traits nor
// operator overloading, so the arithmetic operators themselves are used
// directly on the type parameter and only the non-operator primitives
// (natural log, integer power, infinity, conversion) are exposed as free
// functions here.
package floatkind

import "math"

// Float is satisfied by the two floating point kinds the solver and
// classifier packages are generic over.
type Float interface {
	~float32 | ~float64
}

// Ln returns the natural logarithm of x.
func Ln[F Float](x F) F {
	return F(math.Log(float64(x)))
}

// Powi raises x to the integer power n.
func Powi[F Float](x F, n int) F {
	return F(math.Pow(float64(x), float64(n)))
}

// Inf returns positive infinity (or negative, if sign < 0) in F.
func Inf[F Float](sign int) F {
	return F(math.Inf(sign))
}

// FromInt converts an int to F.
func FromInt[F Float](n int) F {
	return F(n)
}

// FromFloat64 converts an f64 constant to F.
func FromFloat64[F Float](v float64) F {
	return F(v)
}

// Max returns the larger of a and b.
func Max[F Float](a, b F) F {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[F Float](a, b F) F {
	if a < b {
		return a
	}
	return b
}

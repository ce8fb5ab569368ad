package basics

// MultiplyU8 computes round(a*b/255) using the fast integer form used
// throughout AGG: t = a*b + 128; (t + (t>>8)) >> 8. Exact for every
// a, b in [0,255].
func MultiplyU8(a, b Int8u) Int8u {
	t := uint32(a)*uint32(b) + 128
	return Int8u(((t >> 8) + t) >> 8)
}

// LerpU8 linearly interpolates from p to q by a/255, i.e.
// p + (q-p)*a/255, with p>q handled via AGG's rounding-bias correction
// so that Lerp(p,q,0)==p and Lerp(p,q,255)==q exactly.
func LerpU8(p, q, a Int8u) Int8u {
	var bias int32
	if p > q {
		bias = 1
	}
	t := (int32(q)-int32(p))*int32(a) + 128 - bias
	return Int8u(int32(p) + (((t >> 8) + t) >> 8))
}

// PrelerpU8 combines a premultiplied source q over a premultiplied
// destination p using coverage a: p + q - multiply(p, a).
func PrelerpU8(p, q, a Int8u) Int8u {
	return p + q - MultiplyU8(p, a)
}

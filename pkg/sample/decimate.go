package sample

// Decimate picks at most maxPoints evenly spaced samples, always including the first.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
// If len(samples) <= maxPoints, all samples are copied.
func Decimate(dst []Sample, samples []Sample, maxPoints int) []Sample {
	if maxPoints <= 0 {
		return dst[:0]
	}

	n := min(len(samples), maxPoints)
	if cap(dst) >= n {
		dst = dst[:0]
	} else {
		dst = make([]Sample, 0, n)
	}

	if len(samples) <= maxPoints {
		return append(dst, samples...)
	}

	step := float32(len(samples)) / float32(maxPoints)
	for i := range maxPoints {
		idx := int(float32(i) * step)
		if idx < len(samples) {
			dst = append(dst, samples[idx])
		}
	}

	return dst
}

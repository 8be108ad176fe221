package sample

// Stats summarizes the readings of one channel.
type Stats struct {
	Count    int
	Min, Max uint16
	sum      uint32
}

// Add accumulates one reading.
func (s *Stats) Add(v uint16) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.sum += uint32(v)
	s.Count++
}

// Mean returns the average reading rounded to the nearest count.
func (s Stats) Mean() uint16 {
	if s.Count == 0 {
		return 0
	}
	return uint16((s.sum + uint32(s.Count)/2) / uint32(s.Count))
}

// Summarize accumulates samples per channel. Samples with an out of range
// channel are skipped.
func Summarize(samples []Sample) [NumChannels]Stats {
	var stats [NumChannels]Stats
	for _, s := range samples {
		if s.Channel >= NumChannels {
			continue
		}
		stats[s.Channel].Add(s.Value)
	}
	return stats
}

package rng

// Range возвращает число из [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	return s.Float()*(hi-lo) + lo
}

// Bool возвращает true с вероятностью prob.
// Для prob == 0.5 тратится один байт потока (младший бит).
func (s *Stream) Bool(prob float64) bool {
	switch {
	case prob >= 1:
		return true
	case prob <= 0:
		return false
	case prob == 0.5:
		return s.Bit()
	}
	return s.Float() < prob
}

// Shuffle возвращает перемешанную копию items (Фишер-Йейтс вперёд).
func Shuffle[T any](s *Stream, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		j := int(s.LegacyInt(int64(len(out)-i-1))) + i
		if i != j {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Choice возвращает случайный элемент. Для пустого среза - нулевое значение и false.
func Choice[T any](s *Stream, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.LegacyInt(int64(len(items)-1))], true
}

// Weighted - элемент взвешенного выбора. Порядок элементов важен для воспроизводимости.
type Weighted[K any] struct {
	Key    K
	Weight float64
}

// WeightedChoice выбирает ключ по накопленным весам.
// Неположительные веса считаются нулевыми. Если сумма весов <= 0,
// возвращается первый ключ без обращения к потоку.
func WeightedChoice[K any](s *Stream, items []Weighted[K]) K {
	var zero K
	if len(items) == 0 {
		return zero
	}

	total := 0.0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return items[0].Key
	}

	rd := s.Float() * total
	for _, it := range items {
		w := max(it.Weight, 0)
		if rd <= w {
			return it.Key
		}
		rd -= w
	}
	return items[len(items)-1].Key
}

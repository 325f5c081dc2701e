// Package rng реализует детерминированный генератор случайных чисел.
//
// Поток строится из строкового ключа: каждый блок = SHA-512(seed ++ LE uint32(stateIdx)),
// байты блоков потребляются строго последовательно. Одинаковый ключ даёт одинаковую
// последовательность на любой машине и в любом процессе.
package rng

import (
	"crypto/sha512"
	"encoding/binary"
	"math/bits"
)

const (
	// BlockSize - размер одного хеш-блока (SHA-512).
	BlockSize = sha512.Size

	// MaxSupportBit - максимальная разрядность целых, которую выдаёт поток.
	MaxSupportBit = 53

	// MaxInt - наибольшее значение LegacyInt.
	MaxInt int64 = (1 << MaxSupportBit) - 1
)

// BlockSource выдаёт очередной блок из BlockSize байт.
type BlockSource interface {
	NextBlock() []byte
}

type hashBlocks struct {
	seed     []byte
	stateIdx uint32
}

func (h *hashBlocks) NextBlock() []byte {
	payload := make([]byte, len(h.seed)+4)
	copy(payload, h.seed)
	binary.LittleEndian.PutUint32(payload[len(h.seed):], h.stateIdx)
	h.stateIdx++

	sum := sha512.Sum512(payload)
	return sum[:]
}

// Stream - поток случайных байт и чисел. Не потокобезопасен:
// один поток принадлежит одному последовательному исполнителю.
type Stream struct {
	src BlockSource
	buf []byte
	pos int
}

// New создаёт поток из ключа.
func New(seedKey string) *Stream {
	return NewAt(seedKey, 0)
}

// NewAt создаёт поток, начинающийся с блока stateIdx.
func NewAt(seedKey string, stateIdx uint32) *Stream {
	return NewFromSource(&hashBlocks{seed: []byte(seedKey), stateIdx: stateIdx})
}

// NewFromSource создаёт поток поверх произвольного источника блоков (нужно в тестах).
func NewFromSource(src BlockSource) *Stream {
	s := &Stream{src: src}
	s.refill()
	return s
}

func (s *Stream) refill() {
	s.buf = s.src.NextBlock()
	s.pos = 0
}

// Bytes возвращает следующие n байт потока. n <= 0 даёт пустой срез.
func (s *Stream) Bytes(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		if s.pos >= len(s.buf) {
			s.refill()
		}
		take := min(n-len(out), len(s.buf)-s.pos)
		out = append(out, s.buf[s.pos:s.pos+take]...)
		s.pos += take
	}
	return out
}

// bitsBytes читает ceil(n/8) байт и обрезает старший байт до n бит.
func (s *Stream) bitsBytes(n int) []byte {
	size := (n + 7) >> 3
	head := n & 0x7

	next := s.Bytes(size)
	if head != 0 {
		next[size-1] &= byte(0xFF >> (8 - head))
	}
	return next
}

func (s *Stream) intBits(n int) int64 {
	raw := s.bitsBytes(n)
	var padded [8]byte
	copy(padded[:], raw)
	return int64(binary.LittleEndian.Uint64(padded[:]))
}

// Bit возвращает младший бит следующего байта потока.
func (s *Stream) Bit() bool {
	return s.bitsBytes(1)[0] != 0
}

// LegacyInt возвращает равномерное целое из [0, max].
// Отрицательный max даёт значение из [max, 0], max > MaxInt обрезается до MaxInt.
func (s *Stream) LegacyInt(max int64) int64 {
	switch {
	case max == 0:
		return 0
	case max < 0:
		return -s.LegacyInt(-max)
	case max >= MaxInt:
		return s.intBits(MaxSupportBit)
	}

	width := bits.Len64(uint64(max))
	n := s.intBits(width)
	for n > max {
		n = s.intBits(width)
	}
	return n
}

// Float возвращает число из [0, 1) с разрешением 2^-53.
func (s *Stream) Float() float64 {
	const limit = int64(1) << MaxSupportBit
	for {
		n := s.intBits(MaxSupportBit + 1)
		if n < limit {
			return float64(n) / float64(limit)
		}
	}
}

// Int возвращает целое из [0, bound). bound <= 0 даёт 0.
func (s *Stream) Int(bound int) int {
	if bound <= 0 {
		return 0
	}
	return int(s.LegacyInt(int64(bound - 1)))
}

// IntRange возвращает целое из [lo, hi] включительно.
func (s *Stream) IntRange(lo, hi int) int {
	return int(s.LegacyInt(int64(hi-lo))) + lo
}

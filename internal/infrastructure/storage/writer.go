package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"opensam-core/internal/domain"
)

const (
	MagicHeader string = `OSRP` // 4 байта
	Version1    uint32 = 1
	// Version2 добавляет версию правил сразу после ключа: uint8 длина + байты.
	Version2    uint32 = 2

	// FileExt - расширение файлов повтора.
	FileExt = ".osrp"
)

// ErrInvalidMagic - файл не является записью повтора.
var ErrInvalidMagic = errors.New("invalid replay magic")

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Timestamp   int64   // 8 байт
	SeedLen     uint16  // 2 байта
	ActionCount uint32  // 4 байта
}

// ActionHeader - заголовок каждой записи команды.
type ActionHeader struct {
	Year       int32  // 4
	Month      uint8  // 1
	ActorID    int64  // 8
	CodeLen    uint8  // 1
	PayloadLen uint32 // 4
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	name := session.ID
	if name == "" {
		name = fmt.Sprintf("%d", session.Timestamp)
	}
	path := filepath.Join(s.SaveDir, "replay_"+name+FileExt)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create replay: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, session); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flush replay: %w", err)
	}
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	seed := []byte(s.SeedKey)
	if len(seed) > math.MaxUint16 {
		return fmt.Errorf("seed key too long: %d", len(seed))
	}
	ruleset := []byte(s.Ruleset)
	if len(ruleset) > math.MaxUint8 {
		return fmt.Errorf("ruleset too long: %d", len(ruleset))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:     Version2,
		Timestamp:   s.Timestamp,
		SeedLen:     uint16(len(seed)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(seed); err != nil {
		return fmt.Errorf("failed to write seed: %w", err)
	}
	if _, err := w.Write(append([]byte{uint8(len(ruleset))}, ruleset...)); err != nil {
		return fmt.Errorf("failed to write ruleset: %w", err)
	}

	// 2. Пишем команды
	for _, act := range s.Actions {
		code := []byte(act.Command)
		if len(code) > math.MaxUint8 {
			return fmt.Errorf("command too long: %d", len(code))
		}
		if act.Month < 0 || act.Month > math.MaxUint8 {
			return fmt.Errorf("month out of range: %d", act.Month)
		}

		actHeader := ActionHeader{
			Year:       int32(act.Year),
			Month:      uint8(act.Month),
			ActorID:    act.ActorID,
			CodeLen:    uint8(len(code)),
			PayloadLen: uint32(len(act.Payload)),
		}

		// Пишем заголовок действия одной командой
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем динамические данные (тело)
		if _, err := w.Write(code); err != nil {
			return err
		}
		if len(act.Payload) > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}

package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"opensam-core/internal/domain"
)

// Load читает сессию из файла. ID сессии берётся из имени файла.
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	session, err := readBinary(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), FileExt)
	session.ID = strings.TrimPrefix(base, "replay_")
	return session, nil
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 && header.Version != Version2 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d or %d)", header.Version, Version1, Version2)
	}

	seed := make([]byte, header.SeedLen)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}

	session := &domain.ReplaySession{
		SeedKey:   string(seed),
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, header.ActionCount),
	}

	// В первой версии правил не было
	if header.Version >= Version2 {
		var n [1]byte
		if _, err := io.ReadFull(r, n[:]); err != nil {
			return nil, fmt.Errorf("failed to read ruleset length: %w", err)
		}
		ruleset := make([]byte, n[0])
		if _, err := io.ReadFull(r, ruleset); err != nil {
			return nil, fmt.Errorf("failed to read ruleset: %w", err)
		}
		session.Ruleset = string(ruleset)
	}

	// 2. Читаем команды
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d header: %w", i, err)
		}

		act := domain.ReplayAction{
			Year:    int(ah.Year),
			Month:   int(ah.Month),
			ActorID: ah.ActorID,
		}

		codeBuf := make([]byte, ah.CodeLen)
		if _, err := io.ReadFull(r, codeBuf); err != nil {
			return nil, fmt.Errorf("action %d code: %w", i, err)
		}
		act.Command = string(codeBuf)

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}

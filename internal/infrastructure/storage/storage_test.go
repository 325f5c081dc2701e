package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"

	"opensam-core/internal/domain"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		ID:        "abc",
		SeedKey:   "world-7:184-3",
		Ruleset:   "opensam-rules/1",
		Timestamp: 1700000000,
		Actions: []domain.ReplayAction{
			{Year: 184, Month: 3, ActorID: 1, Command: "훈련", Payload: json.RawMessage{}},
			{Year: 184, Month: 3, ActorID: 2, Command: "헌납", Payload: json.RawMessage(`{"isGold":true,"amount":1000}`)},
		},
	}
}

func TestReplayRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewReplayService(dir)
	if err != nil {
		t.Fatalf("NewReplayService: %v", err)
	}

	in := sampleSession()
	path, err := svc.Save(in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.ID != in.ID || out.SeedKey != in.SeedKey || out.Ruleset != in.Ruleset || out.Timestamp != in.Timestamp {
		t.Errorf("header mismatch: got %+v", out)
	}
	if len(out.Actions) != len(in.Actions) {
		t.Fatalf("actions = %d, want %d", len(out.Actions), len(in.Actions))
	}
	for i := range in.Actions {
		a, b := in.Actions[i], out.Actions[i]
		if a.Year != b.Year || a.Month != b.Month || a.ActorID != b.ActorID || a.Command != b.Command {
			t.Errorf("action %d: got %+v, want %+v", i, b, a)
		}
		if !bytes.Equal(a.Payload, b.Payload) {
			t.Errorf("action %d payload: got %s, want %s", i, b.Payload, a.Payload)
		}
	}
}

func TestReplayHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary: %v", err)
	}
	raw := buf.Bytes()
	if string(raw[:4]) != "OSRP" {
		t.Errorf("magic = %q", raw[:4])
	}
	// version 2, little-endian
	if raw[4] != 2 || raw[5] != 0 || raw[6] != 0 || raw[7] != 0 {
		t.Errorf("version bytes = %v", raw[4:8])
	}
	// заголовок 22 байта, затем ключ и длина версии правил
	seedEnd := 22 + len("world-7:184-3")
	if n := int(raw[seedEnd]); n != len("opensam-rules/1") || string(raw[seedEnd+1:seedEnd+1+n]) != "opensam-rules/1" {
		t.Errorf("ruleset bytes = %q", raw[seedEnd:seedEnd+1+n])
	}
}

// Файлы первой версии читаются без версии правил.
func TestReplayReadsVersion1(t *testing.T) {
	var buf bytes.Buffer
	seed := "old"
	header := ReplayFileHeader{Version: Version1, Timestamp: 1, SeedLen: uint16(len(seed)), ActionCount: 1}
	copy(header.Magic[:], MagicHeader)
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	buf.WriteString(seed)
	code := "휴식"
	act := ActionHeader{Year: 184, Month: 1, ActorID: 3, CodeLen: uint8(len(code))}
	if err := binary.Write(&buf, binary.LittleEndian, &act); err != nil {
		t.Fatal(err)
	}
	buf.WriteString(code)

	out, err := readBinary(&buf)
	if err != nil {
		t.Fatalf("readBinary: %v", err)
	}
	if out.SeedKey != "old" || out.Ruleset != "" || len(out.Actions) != 1 || out.Actions[0].Command != "휴식" {
		t.Errorf("session = %+v", out)
	}
}

func TestReplayRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary: %v", err)
	}
	raw := buf.Bytes()
	copy(raw, "NOPE")

	_, err := readBinary(bytes.NewReader(raw))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestReplayTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleSession()); err != nil {
		t.Fatalf("writeBinary: %v", err)
	}
	raw := buf.Bytes()
	if _, err := readBinary(bytes.NewReader(raw[:len(raw)-3])); err == nil {
		t.Error("expected error for truncated file")
	}
}

func TestJournalRecordAndResults(t *testing.T) {
	j, err := OpenJournal(MemoryPath)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	id, err := j.StartSession("", "seed-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if id == "" {
		t.Fatal("empty session id")
	}

	entries := []Entry{
		{SessionID: id, Seq: 1, ActorID: 2, Command: "헌납", Success: true, Logs: `["금 <C>300</>을 헌납했습니다."]`, Message: `{"nationChanges":{"gold":300}}`},
		{SessionID: id, Seq: 0, ActorID: 1, Command: "훈련", Success: false, Logs: `["병사가 없습니다."]`},
	}
	if err := j.Record(entries); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := j.Results(id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	if got[0].Seq != 0 || got[0].Command != "훈련" || got[0].Success {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].ActorID != 2 || !got[1].Success || got[1].Message == "" {
		t.Errorf("second = %+v", got[1])
	}

	lines, err := got[1].LogLines()
	if err != nil || len(lines) != 1 {
		t.Errorf("LogLines = %v, %v", lines, err)
	}

	seed, err := j.SessionSeed(id)
	if err != nil || seed != "seed-1" {
		t.Errorf("SessionSeed = %q, %v", seed, err)
	}
}

func TestJournalDuplicateSeqFails(t *testing.T) {
	j, err := OpenJournal(MemoryPath)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	id, err := j.StartSession("fixed", "seed")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	dup := []Entry{
		{SessionID: id, Seq: 0, Command: "휴식", Logs: "[]"},
		{SessionID: id, Seq: 0, Command: "휴식", Logs: "[]"},
	}
	if err := j.Record(dup); err == nil {
		t.Fatal("expected primary key violation")
	}

	// Транзакция откатилась целиком.
	got, err := j.Results(id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("results = %d, want 0 after rollback", len(got))
	}
}

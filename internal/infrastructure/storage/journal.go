package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MemoryPath открывает журнал в памяти (для тестов и пробных прогонов).
const MemoryPath = ":memory:"

// Entry - одна исполненная команда в журнале.
type Entry struct {
	SessionID string `db:"session_id"`
	Seq       int    `db:"seq"`
	ActorID   int64  `db:"actor_id"`
	Command   string `db:"command"`
	Success   bool   `db:"success"`
	// Logs - строки повествования, JSON-массив.
	Logs string `db:"logs"`
	// Message - сериализованный дифф, пустая строка при отказе.
	Message string `db:"message"`
}

// LogLines разбирает Logs обратно в строки.
func (e Entry) LogLines() ([]string, error) {
	var lines []string
	if err := json.Unmarshal([]byte(e.Logs), &lines); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	return lines, nil
}

// Journal - журнал результатов поверх SQLite.
type Journal struct {
	conn *sqlx.DB
}

// OpenJournal открывает или создаёт журнал по пути path.
func OpenJournal(path string) (*Journal, error) {
	dsn := path
	if path != MemoryPath {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// База в памяти живёт в одном соединении.
	conn.SetMaxOpenConns(1)

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close закрывает соединение.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS results (
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq INTEGER NOT NULL,
		actor_id INTEGER NOT NULL,
		command TEXT NOT NULL,
		success INTEGER NOT NULL,
		logs TEXT NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// StartSession регистрирует сессию. Пустой id заменяется новым UUID.
func (j *Journal) StartSession(id, seed string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := j.conn.Exec(
		"INSERT INTO sessions (id, seed, created_at) VALUES (?, ?, ?)",
		id, seed, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return id, nil
}

// Record дописывает записи сессии одной транзакцией.
func (j *Journal) Record(entries []Entry) error {
	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.NamedExec(`INSERT INTO results
			(session_id, seq, actor_id, command, success, logs, message)
			VALUES (:session_id, :seq, :actor_id, :command, :success, :logs, :message)`, e)
		if err != nil {
			return fmt.Errorf("record %s#%d: %w", e.SessionID, e.Seq, err)
		}
	}
	return tx.Commit()
}

// Results возвращает записи сессии в порядке исполнения.
func (j *Journal) Results(sessionID string) ([]Entry, error) {
	var entries []Entry
	err := j.conn.Select(&entries,
		`SELECT session_id, seq, actor_id, command, success, logs, message
		FROM results WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("results %s: %w", sessionID, err)
	}
	return entries, nil
}

// SessionSeed возвращает ключ потока сессии.
func (j *Journal) SessionSeed(sessionID string) (string, error) {
	var seed string
	if err := j.conn.Get(&seed, "SELECT seed FROM sessions WHERE id = ?", sessionID); err != nil {
		return "", fmt.Errorf("session %s: %w", sessionID, err)
	}
	return seed, nil
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"opensam-core/internal/config"
	"opensam-core/internal/engine"
	"opensam-core/internal/infrastructure/storage"
	"opensam-core/internal/version"
	"opensam-core/pkg/logger"
)

// Результаты идут в stdout, поэтому журнал CLI пишет в stderr.
func init() {
	logger.Configure(logger.Load(), os.Stderr)
}

// printed - то, что CLI выводит по каждой команде.
type printed struct {
	Seq     int             `json:"seq"`
	ActorID int64           `json:"actorId"`
	Command string          `json:"command"`
	Success bool            `json:"success"`
	Logs    []string        `json:"logs"`
	Message json.RawMessage `json:"message,omitempty"`
}

func main() {
	// 1. Парсинг конфигурации
	rt, err := config.LoadRuntime()
	if err != nil {
		logger.Log.Fatal("Failed to read runtime settings: ", err)
	}

	var scenarioPath, seed, replayPath string
	var record bool
	flag.StringVar(&scenarioPath, "scenario", "", "Path to JSON scenario (world snapshot and commands)")
	flag.StringVar(&seed, "seed", "", "Seed key (overrides the scenario one; empty means random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .osrp replay file to re-run against the scenario")
	flag.StringVar(&rt.JournalPath, "journal", rt.JournalPath, "SQLite journal path (empty disables)")
	flag.StringVar(&rt.ReplayDir, "replay-dir", rt.ReplayDir, "Directory for recorded replays")
	flag.BoolVar(&record, "record", false, "Record the turn as a replay file")
	flag.Parse()

	logger.Log.Info("Starting OpenSAM simulator...")
	logger.Log.Info(version.String())

	if scenarioPath == "" {
		logger.Log.Fatal("-scenario is required")
	}
	sc, err := engine.LoadScenario(scenarioPath)
	if err != nil {
		logger.Log.Fatal("Failed to load scenario: ", err)
	}

	cfg := engine.NewConfig()
	cfg.Rules = sc.Rules
	switch {
	case seed != "":
		cfg.SeedKey = seed
	case sc.SeedKey != "":
		cfg.SeedKey = sc.SeedKey
	}

	runner, err := engine.NewTurnRunner(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to build turn runner: ", err)
	}

	var journal *storage.Journal
	if rt.JournalPath != "" {
		journal, err = storage.OpenJournal(rt.JournalPath)
		if err != nil {
			logger.Log.Fatal("Failed to open journal: ", err)
		}
		defer journal.Close()
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		code := replay(runner, sc, journal, replayPath)
		if journal != nil {
			journal.Close()
		}
		os.Exit(code)
	}

	reqs, err := sc.Requests()
	if err != nil {
		logger.Log.Fatal("Invalid scenario commands: ", err)
	}
	logger.Log.Infof("Using seed key: %s", cfg.SeedKey)

	report := runner.Run(cfg.SeedKey, reqs)
	entries := toEntries(report)
	if err := printEntries(os.Stdout, entries); err != nil {
		logger.Log.Fatal("Failed to print results: ", err)
	}

	if journal != nil {
		if _, err := journal.StartSession(report.Session.ID, report.Session.SeedKey); err != nil {
			logger.Log.Fatal(err)
		}
		if err := journal.Record(entries); err != nil {
			logger.Log.Fatal("Failed to record journal: ", err)
		}
		logger.Log.WithField("session", report.Session.ID).Info("Journal recorded")
	}

	if record {
		svc, err := storage.NewReplayService(rt.ReplayDir)
		if err != nil {
			logger.Log.Fatal(err)
		}
		path, err := svc.Save(&report.Session)
		if err != nil {
			logger.Log.Fatal("Failed to save replay: ", err)
		}
		logger.Log.WithField("path", path).Info("Replay saved")
	}
}

// replay повторяет записанный ход и сверяет его с журналом, если тот есть.
// Возвращает код выхода.
func replay(runner *engine.TurnRunner, sc *engine.Scenario, journal *storage.Journal, path string) int {
	logger.Log.Info("Mode: Replay Simulation")

	svc := &storage.ReplayService{}
	session, err := svc.Load(path)
	if err != nil {
		logger.Log.Error("Failed to load replay: ", err)
		return 1
	}
	if err := version.CheckRuleset(session.Ruleset); err != nil {
		logger.Log.Error(err)
		return 1
	}
	reqs, err := sc.ReplayRequests(session.Actions)
	if err != nil {
		logger.Log.Error("Replay does not match scenario: ", err)
		return 1
	}

	report := runner.Run(session.SeedKey, reqs)
	report.Session.ID = session.ID
	entries := toEntries(report)
	if err := printEntries(os.Stdout, entries); err != nil {
		logger.Log.Error("Failed to print results: ", err)
		return 1
	}

	if journal == nil {
		return 0
	}
	recorded, err := journal.Results(session.ID)
	if err != nil {
		logger.Log.Error(err)
		return 1
	}
	if diff := compare(recorded, entries); diff != "" {
		logger.Log.WithField("session", session.ID).Error("Replay diverged: ", diff)
		return 2
	}
	logger.Log.WithField("session", session.ID).Info("Replay reproduced the journal")
	return 0
}

func toEntries(report engine.TurnReport) []storage.Entry {
	entries := make([]storage.Entry, 0, len(report.Outcomes))
	for i, out := range report.Outcomes {
		act := report.Session.Actions[i]
		logs, _ := json.Marshal(out.Result.Logs)
		entries = append(entries, storage.Entry{
			SessionID: report.Session.ID,
			Seq:       i,
			ActorID:   act.ActorID,
			Command:   act.Command,
			Success:   out.Result.Success,
			Logs:      string(logs),
			Message:   out.Result.MessageJSON(),
		})
	}
	return entries
}

func compare(recorded, fresh []storage.Entry) string {
	if len(recorded) != len(fresh) {
		return fmt.Sprintf("%d recorded results, %d replayed", len(recorded), len(fresh))
	}
	for i := range recorded {
		a, b := recorded[i], fresh[i]
		if a.Command != b.Command || a.Success != b.Success || a.Logs != b.Logs || a.Message != b.Message {
			return fmt.Sprintf("result #%d (%s) differs", i, a.Command)
		}
	}
	return ""
}

func printEntries(w io.Writer, entries []storage.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	for _, e := range entries {
		lines, err := e.LogLines()
		if err != nil {
			return err
		}
		p := printed{Seq: e.Seq, ActorID: e.ActorID, Command: e.Command, Success: e.Success, Logs: lines}
		if e.Message != "" {
			p.Message = json.RawMessage(e.Message)
		}
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

// Package sessionlog records practice sessions to a JSON file in the data
// directory and summarizes them per tool.
package sessionlog

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"slices"
	"time"

	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	ToolSendPractice = "Send Practice"
	ToolWPMTrainer   = "WPM Trainer"
)

// Record is one finished practice session.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Tool      string    `json:"tool"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Accuracy  float64   `json:"accuracy"`
	WPM       float64   `json:"wpm"`
}

// Summary aggregates the sessions of one tool.
type Summary struct {
	Tool        string
	Sessions    int
	Attempts    int
	AvgAccuracy float64
	AvgWPM      float64
}

// Path returns the session log location (~/.cwtofu/session_stats.json).
func Path() string {
	return common.DataPath("session_stats.json")
}

// NewRecord fills in id, timestamp and the rounded accuracy and wpm.
func NewRecord(tool string, correct, total int, wpm float64) Record {
	var accuracy float64
	if total > 0 {
		accuracy = round1(float64(correct) / float64(total) * 100)
	}
	return Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Tool:      tool,
		Correct:   correct,
		Total:     total,
		Accuracy:  accuracy,
		WPM:       round1(wpm),
	}
}

// Load returns all records, oldest first. A missing or unreadable file
// yields an empty log.
func Load() []Record {
	data, err := os.ReadFile(Path())
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// Append adds rec to the log. Sessions without attempts are not recorded.
func Append(rec Record) error {
	if rec.Total <= 0 {
		return nil
	}
	return save(append(Load(), rec))
}

// Clear removes the log file.
func Clear() error {
	err := os.Remove(Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func save(records []Record) error {
	if _, err := common.EnsureDataDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, Path())
}

// Summaries groups records by tool, sorted by tool name. Average WPM only
// counts sessions that measured a speed.
func Summaries(records []Record) []Summary {
	groups := lo.GroupBy(records, func(r Record) string { return r.Tool })
	tools := lo.Keys(groups)
	slices.Sort(tools)

	return lo.Map(tools, func(tool string, _ int) Summary {
		recs := groups[tool]
		speeds := lo.FilterMap(recs, func(r Record, _ int) (float64, bool) {
			return r.WPM, r.WPM > 0
		})
		s := Summary{
			Tool:        tool,
			Sessions:    len(recs),
			Attempts:    lo.SumBy(recs, func(r Record) int { return r.Total }),
			AvgAccuracy: round1(lo.Mean(lo.Map(recs, func(r Record, _ int) float64 { return r.Accuracy }))),
		}
		if len(speeds) > 0 {
			s.AvgWPM = round1(lo.Mean(speeds))
		}
		return s
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Package testutil provides shared test helpers for setting up preference
// stores and dataset fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/vitalog/internal/dataset"
	"github.com/starford/vitalog/internal/prefstore"
)

// MemStore creates a preference store backed by the in-memory provider.
func MemStore(t *testing.T) *prefstore.Store {
	t.Helper()
	s := prefstore.New(prefstore.NewMemory())
	t.Cleanup(func() { s.Close() })
	return s
}

// SQLiteStore creates a preference store backed by a temporary SQLite
// database that is automatically cleaned up.
func SQLiteStore(t *testing.T) *prefstore.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "vitalog-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	provider, err := prefstore.OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	s := prefstore.New(provider)
	t.Cleanup(func() { s.Close() })
	return s
}

// Dataset writes doc to a temporary insights file and loads it.
func Dataset(t *testing.T, doc string) *dataset.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "insights.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return data
}

// SampleInsights is a small but representative insights document used across
// API and pipeline tests.
const SampleInsights = `{
  "timeline": {
    "events": [
      {
        "type": "visit",
        "title": "Cardiology Follow-up",
        "date": "2024-03-10",
        "badge": "Visit",
        "description": "Routine hypertension and AFib follow-up.",
        "provider": "Dr. Sarah Chen, MD",
        "location": "Heart Center",
        "metrics": [
          {"name": "BP", "value": "132/82 mmHg", "status": "borderline"},
          {"name": "HR", "value": "76 bpm", "status": "normal"}
        ]
      },
      {
        "type": "lab",
        "title": "Quarterly Bloodwork",
        "date": "2024-02-14",
        "badge": "Lab",
        "description": "HbA1c and lipid panel.",
        "provider": "Quest Diagnostics"
      },
      {
        "type": "emergency",
        "title": "ER Visit - Chest Pain",
        "date": "2024-01-05",
        "badge": "Emergency",
        "description": "Evaluated for acute chest pain, ruled out MI.",
        "location": "Mercy General ER",
        "details": [
          {"time": "14:05", "event": "Arrival and triage"},
          {"time": "14:30", "event": "ECG and troponin draw"},
          {"time": "18:45", "event": "Discharged with follow-up plan"}
        ],
        "outcome": "Non-cardiac chest pain, likely musculoskeletal."
      }
    ]
  },
  "notifications": [
    {
      "id": "notif-1",
      "type": "alert",
      "title": "Blood Pressure Elevated",
      "message": "Weekly BP average above target.",
      "timestamp": "2024-03-11T08:00:00Z",
      "priority": "urgent"
    },
    {
      "id": "notif-2",
      "type": "reminder",
      "title": "Lisinopril Refill Due Soon",
      "message": "5 days of doses remaining.",
      "timestamp": "2024-03-10T08:00:00Z",
      "priority": "high"
    }
  ],
  "actions": [
    {"id": "action-1", "text": "Bring home BP log to next visit", "priority": "routine"},
    {"id": "action-2", "text": "Ask about statin dosage", "priority": "follow-up"}
  ]
}`

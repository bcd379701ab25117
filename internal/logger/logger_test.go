package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesJSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&buf, "taskmanager", "debug")

	log.WithField("task_id", 3).Info("task created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "task created" {
		t.Errorf("expected message field, got %v", entry["message"])
	}
	if entry["service"] != "taskmanager" {
		t.Errorf("expected service field, got %v", entry["service"])
	}
	if entry["task_id"] != float64(3) {
		t.Errorf("expected task_id field, got %v", entry["task_id"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("expected ts field")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&buf, "svc", "chatty")

	if log.Logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level, got %v", log.Logger.GetLevel())
	}

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug output to be suppressed, got %q", buf.String())
	}
}

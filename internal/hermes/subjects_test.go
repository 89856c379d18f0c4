package hermes

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSubjects(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{SubjectAssessmentCompleted("abc"), "kinship.assessment.abc.completed"},
		{SubjectAssessmentEscalated("abc"), "kinship.assessment.abc.escalated"},
		{SubjectAssessmentRejected("req-1"), "kinship.assessment.req-1.rejected"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}

}

// subjectMatches implements NATS token matching for '*' and '>'.
func subjectMatches(pattern, subject string) bool {
	p := strings.Split(pattern, ".")
	s := strings.Split(subject, ".")
	for i, tok := range p {
		if tok == ">" {
			return len(s) > i
		}
		if i >= len(s) || (tok != "*" && tok != s[i]) {
			return false
		}
	}
	return len(p) == len(s)
}

func inStream(subject string) bool {
	for _, p := range StreamSubjects() {
		if subjectMatches(p, subject) {
			return true
		}
	}
	return false
}

func TestStreamRetainsOutcomesNotRequests(t *testing.T) {
	for _, s := range []string{
		SubjectAssessmentCompleted("abc"),
		SubjectAssessmentEscalated("abc"),
		SubjectAssessmentRejected("req-1"),
		SubjectAssessmentStats,
	} {
		if !inStream(s) {
			t.Errorf("subject %q is outside the stream", s)
		}
	}
	if inStream(SubjectAssessmentRequest) {
		t.Error("request subject must not be retained")
	}
}

func TestStreamConfig(t *testing.T) {
	cfg := StreamConfig()
	if cfg.Name != StreamName {
		t.Errorf("unexpected stream name %q", cfg.Name)
	}
	if cfg.MaxMsgsPerSubject != 1 {
		t.Errorf("expected one message per subject, got %d", cfg.MaxMsgsPerSubject)
	}
	if cfg.MaxAge != 90*24*time.Hour {
		t.Errorf("expected 90 day retention, got %v", cfg.MaxAge)
	}
}

func TestIsEscalation(t *testing.T) {
	if !isEscalation(SubjectAssessmentEscalated("abc")) {
		t.Error("escalated subject not detected")
	}
	for _, s := range []string{SubjectAssessmentCompleted("abc"), SubjectAssessmentStats, ".escalated", "escalated"} {
		if isEscalation(s) {
			t.Errorf("%q wrongly treated as escalation", s)
		}
	}
}

func TestCompletedEventOmitsAnswers(t *testing.T) {
	evt := AssessmentCompletedEvent{
		SessionID:   "abc",
		RiskLevel:   "Low",
		StepLevel:   1,
		CompletedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["answers"]; ok {
		t.Error("completed event must not carry answers")
	}
	if m["session_id"] != "abc" || m["step_level"] != float64(1) {
		t.Errorf("unexpected payload: %s", data)
	}
}

package hermes

import (
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// SubjectAssessmentRequest carries submissions scored off the bus instead
	// of over HTTP. It is deliberately outside the stream: requests hold raw
	// answers and are not retained.
	SubjectAssessmentRequest = "kinship.assessment.request"
	SubjectAssessmentStats   = "kinship.assessment.stats"

	StreamName   = "KINSHIP_ASSESSMENTS"
	StreamMaxAge = 90 * 24 * time.Hour

	publishTimeout = 5 * time.Second
)

func SubjectAssessmentCompleted(sessionID string) string {
	return "kinship.assessment." + sessionID + ".completed"
}

// SubjectAssessmentEscalated is published in addition to completed when the
// safety triage lands on High.
func SubjectAssessmentEscalated(sessionID string) string {
	return "kinship.assessment." + sessionID + ".escalated"
}

func SubjectAssessmentRejected(requestID string) string {
	return "kinship.assessment." + requestID + ".rejected"
}

// StreamSubjects lists what the stream retains: outcomes and stats, never
// requests.
func StreamSubjects() []string {
	return []string{
		"kinship.assessment.*.completed",
		"kinship.assessment.*.escalated",
		"kinship.assessment.*.rejected",
		SubjectAssessmentStats,
	}
}

// StreamConfig keeps one message per subject. Outcome subjects are unique per
// session, so that is every outcome; the stats subject keeps only the latest
// snapshot.
func StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:              StreamName,
		Description:       "Kinship assessment outcomes, escalations and archive stats",
		Subjects:          StreamSubjects(),
		Retention:         jetstream.LimitsPolicy,
		Storage:           jetstream.FileStorage,
		Discard:           jetstream.DiscardOld,
		MaxAge:            StreamMaxAge,
		MaxMsgsPerSubject: 1,
		Duplicates:        2 * time.Minute,
	}
}

// isEscalation reports whether subject must be persisted with an ack.
func isEscalation(subject string) bool {
	const suffix = ".escalated"
	return len(subject) > len(suffix) && strings.HasSuffix(subject, suffix)
}

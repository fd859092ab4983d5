// Package report builds the structured payload handed to the external
// report-generating collaborator and defines the generation contract.
//
// The collaborator is prompt text in, report text out; everything beyond
// that boundary (transport, model choice, retries) lives outside this
// repository.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
)

// PayloadKind distinguishes single-match analysis from period review.
type PayloadKind string

const (
	KindMatch  PayloadKind = "match"
	KindPeriod PayloadKind = "period"
)

// payloadDateLayout names the day a payload covers.
const payloadDateLayout = "2006-01-02"

// MatchDocument is the serialized view of one session.
type MatchDocument struct {
	Workout model.Workout        `json:"workout"`
	Metrics model.DerivedMetrics `json:"metrics"`
}

// PeriodDocument is the serialized view of a day's sessions.
type PeriodDocument struct {
	Date     string              `json:"date"`
	Sessions []model.Session     `json:"sessions"`
	Summary  model.PeriodSummary `json:"summary"`
}

// Payload is the unit handed to a Generator: a structured document plus
// its JSON serialization.
type Payload struct {
	Kind   PayloadKind
	Date   string
	Match  *MatchDocument
	Period *PeriodDocument
	Body   json.RawMessage
}

// schemaNotes documents the unit and absence conventions for the
// collaborator, so prompt-level instructions never have to restate them.
var schemaNotes = []string{
	"duration is seconds; derived TRIMP already uses minutes",
	"energy values are kJ; divide by 4.184 for kcal",
	"null metric fields mean no data, never zero effect",
	"per-minute series are aligned by minute offset, gaps are not interpolated",
}

type envelope struct {
	Kind   PayloadKind `json:"kind"`
	Date   string      `json:"date"`
	Notes  []string    `json:"notes"`
	Match  any         `json:"match,omitempty"`
	Period any         `json:"period,omitempty"`
}

// BuildMatchPayload serializes one workout with its derived metrics.
func BuildMatchPayload(w model.Workout, m model.DerivedMetrics) (Payload, error) {
	doc := &MatchDocument{Workout: w, Metrics: m}
	body, err := json.MarshalIndent(envelope{
		Kind:  KindMatch,
		Date:  w.Start.Format(payloadDateLayout),
		Notes: schemaNotes,
		Match: doc,
	}, "", "  ")
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrEncodePayload, err)
	}
	return Payload{
		Kind:  KindMatch,
		Date:  w.Start.Format(payloadDateLayout),
		Match: doc,
		Body:  body,
	}, nil
}

// BuildPeriodPayload serializes a day of sessions with their combined
// summary for the multi-match review.
func BuildPeriodPayload(date time.Time, sessions []model.Session, summary model.PeriodSummary) (Payload, error) {
	doc := &PeriodDocument{
		Date:     date.Format(payloadDateLayout),
		Sessions: sessions,
		Summary:  summary,
	}
	body, err := json.MarshalIndent(envelope{
		Kind:   KindPeriod,
		Date:   doc.Date,
		Notes:  schemaNotes,
		Period: doc,
	}, "", "  ")
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrEncodePayload, err)
	}
	return Payload{
		Kind:   KindPeriod,
		Date:   doc.Date,
		Period: doc,
		Body:   body,
	}, nil
}

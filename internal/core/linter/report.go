package linter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Summary holds the analyzer's per-severity totals.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notices  int `json:"notices"`
}

// Report is a decoded analyzer report.
type Report struct {
	Messages []Message
	Summary  Summary
}

// Index builds the message index for the report.
func (r Report) Index() Index {
	return BuildIndex(r.Messages)
}

type externalReport struct {
	Messages []externalMessage `json:"messages"`
	Summary  Summary           `json:"summary"`
}

type externalMessage struct {
	UID         string     `json:"uid"`
	File        *string    `json:"file"`
	Line        *int       `json:"line"`
	Column      *int       `json:"column"`
	Type        string     `json:"type"`
	Message     string     `json:"message"`
	Description stringList `json:"description"`
	Code        stringList `json:"code"`
}

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// ParseReport decodes an analyzer report. Both the bare report and the
// `{"validation": {...}}` envelope served by the review API are accepted.
func ParseReport(r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}

	var envelope struct {
		Validation *externalReport `json:"validation"`
		externalReport
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}

	ext := envelope.externalReport
	if envelope.Validation != nil {
		ext = *envelope.Validation
	}

	report := Report{
		Messages: make([]Message, 0, len(ext.Messages)),
		Summary:  ext.Summary,
	}
	for _, m := range ext.Messages {
		report.Messages = append(report.Messages, m.toMessage())
	}

	return report, nil
}

func (m externalMessage) toMessage() Message {
	msg := Message{
		UID:         m.UID,
		Type:        Severity(strings.ToLower(m.Type)),
		Message:     m.Message,
		Description: m.Description,
		Code:        m.Code,
		Location:    Global(),
	}
	if m.File != nil {
		msg.Path = *m.File
	}
	if m.Line != nil {
		msg.Location = AtLine(*m.Line)
	}
	if m.Column != nil {
		msg.Column = *m.Column
	}
	return msg
}

package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GMResponse is the structured payload the game master is instructed to
// return for every turn. The model sometimes wraps it in markdown fences
// or pads it with prose, and sometimes omits fields entirely; parsing is
// deliberately lenient about the wrapper and strict about nothing.
type GMResponse struct {
	Narrative    string   `json:"narrative"`
	Options      []string `json:"options,omitempty"`
	DiceApplied  *bool    `json:"dice_applied,omitempty"`
	StateChanges *Delta   `json:"state_changes,omitempty"`
}

// Applied reports the game master's applicability flag. A missing flag
// means false: an under-specified response degrades toward an ordinary,
// non-mechanical turn, never toward overriding its narrative.
func (r *GMResponse) Applied() bool {
	return r.DiceApplied != nil && *r.DiceApplied
}

// Delta returns the proposed state changes, or a neutral empty delta
// when the game master sent none.
func (r *GMResponse) Delta() Delta {
	if r.StateChanges == nil {
		return Delta{}
	}
	return *r.StateChanges
}

// ParseGMResponse extracts the structured GM payload from raw LLM output.
// It tolerates ```json fences and leading/trailing prose around a single
// JSON object. A response with no parseable object returns an error; the
// caller falls back to treating the whole output as narrative.
func ParseGMResponse(content string) (*GMResponse, error) {
	raw := extractJSONObject(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in game master response")
	}

	var resp GMResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse game master response: %w", err)
	}
	if resp.Narrative == "" {
		return nil, fmt.Errorf("game master response has no narrative")
	}
	return &resp, nil
}

// EndingResponse is the payload the game master returns on a session's
// closing turn.
type EndingResponse struct {
	Narrative  string `json:"narrative"`
	EndingType string `json:"ending_type"`
}

// ParseEndingResponse extracts the ending payload from raw LLM output.
// An unrecognized or missing ending type falls back to neutral.
func ParseEndingResponse(content string) (*EndingResponse, error) {
	raw := extractJSONObject(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in ending response")
	}

	var resp EndingResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse ending response: %w", err)
	}
	if resp.Narrative == "" {
		return nil, fmt.Errorf("ending response has no narrative")
	}
	switch resp.EndingType {
	case EndingVictory, EndingDefeat, EndingNeutral:
	default:
		resp.EndingType = EndingNeutral
	}
	return &resp, nil
}

// extractJSONObject returns the outermost {...} span of the content,
// stripping markdown fences first.
func extractJSONObject(content string) string {
	s := content
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// ExtractOptions pulls numbered or bulleted action options out of a
// plain-text response. Fallback path for when the game master ignored
// the JSON contract.
func ExtractOptions(content string, max int) []string {
	var options []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "• "),
			hasNumberPrefix(trimmed):
			options = append(options, trimmed)
		}
		if len(options) >= max {
			break
		}
	}
	return options
}

func hasNumberPrefix(s string) bool {
	if len(s) < 2 {
		return false
	}
	return s[0] >= '1' && s[0] <= '9' && s[1] == '.'
}

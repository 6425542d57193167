package catalog

import (
	"encoding/json"
	"fmt"
)

// PuzzleType selects the answer-comparison rule for a puzzle.
type PuzzleType string

const (
	PuzzleInput           PuzzleType = "input"            // Exact string match
	PuzzleSequence        PuzzleType = "sequence"         // Ordered list equality
	PuzzleArrangement     PuzzleType = "arrangement"      // Ordered list equality
	PuzzleCombination     PuzzleType = "combination"      // Every solution element present in the submission
	PuzzleVisualSelection PuzzleType = "visual_selection" // Set equality (multi) or single-value equality (single)
)

// PuzzleOption is one selectable choice in a visual selection puzzle.
type PuzzleOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Visual      string `json:"visual,omitempty"` // Image path, opaque to the engine
}

// Puzzle is an answer-gated interaction scoped to one scene. Its own
// requirements (if any) gate whether a solve attempt is considered at
// all, independently of answer correctness. On-solve effects run in
// declared order exactly once; a solved puzzle is locked permanently
// via the synthesized flag "puzzle_<id>_solved".
type Puzzle struct {
	ID           string         `json:"id"`
	Type         PuzzleType     `json:"type"`
	Solution     Solution       `json:"solution"`
	Hint         string         `json:"hint,omitempty"`
	Requirements []Requirement  `json:"requirements,omitempty"`
	OnSolve      []Effect       `json:"on_solve,omitempty"`
	Options      []PuzzleOption `json:"options,omitempty"` // visual_selection only
}

// SolvedFlag returns the flag name that permanently records a solved
// puzzle in game state.
func SolvedFlag(puzzleID string) string {
	return "puzzle_" + puzzleID + "_solved"
}

// Solution is a puzzle answer. In JSON it is either a bare string or an
// array of strings; which shape is legal depends on the puzzle type.
// The same representation is used for submitted answers.
type Solution struct {
	Value  string
	Values []string
	IsList bool
}

// Answer builds a single-string solution value.
func Answer(s string) Solution {
	return Solution{Value: s}
}

// AnswerList builds a list solution value.
func AnswerList(values ...string) Solution {
	return Solution{Values: values, IsList: true}
}

// UnmarshalJSON implements custom JSON unmarshaling to support both the
// string and the array form.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = str
		s.Values = nil
		s.IsList = false
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("solution must be a string or an array of strings: %w", err)
	}
	s.Value = ""
	s.Values = list
	s.IsList = true
	return nil
}

// MarshalJSON writes back the same shape the solution was declared in.
func (s Solution) MarshalJSON() ([]byte, error) {
	if s.IsList {
		return json.Marshal(s.Values)
	}
	return json.Marshal(s.Value)
}

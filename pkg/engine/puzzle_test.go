package engine

import (
	"errors"
	"testing"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

func TestSolvePuzzle_Input(t *testing.T) {
	eng := newTestEngine(t)

	// Wrong answer first: recoverable, nothing changes.
	result, err := eng.SolvePuzzle("door_code", catalog.Answer("99999"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusIncorrectAnswer {
		t.Fatalf("Expected StatusIncorrectAnswer, got %v", result.Status)
	}
	gs := eng.State()
	if _, ok := gs.Flag("door_open"); ok {
		t.Error("Expected no flag change on a wrong answer")
	}
	if _, ok := gs.Flag(catalog.SolvedFlag("door_code")); ok {
		t.Error("Expected the puzzle still unsolved")
	}

	result, err = eng.SolvePuzzle("door_code", catalog.Answer("12080"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v", result.Status)
	}
	if len(result.Dialogs) != 1 || result.Dialogs[0].Text != "The lock clicks open." {
		t.Errorf("Expected the on-solve dialog, got %+v", result.Dialogs)
	}
	gs = eng.State()
	if v, _ := gs.Flag("door_open"); v != true {
		t.Errorf("Expected door_open set by on-solve effects, got %v", v)
	}
	if v, _ := gs.Flag(catalog.SolvedFlag("door_code")); v != true {
		t.Errorf("Expected the solved flag set, got %v", v)
	}
}

func TestSolvePuzzle_SolvedIsTerminal(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.SolvePuzzle("door_code", catalog.Answer("12080")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Clear the side-effect flag to observe whether effects replay.
	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectSetFlag, Flag: "door_open", Value: false}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, answer := range []catalog.Solution{catalog.Answer("12080"), catalog.Answer("99999")} {
		result, err := eng.SolvePuzzle("door_code", answer)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Status != StatusAlreadySolved {
			t.Errorf("Expected StatusAlreadySolved, got %v", result.Status)
		}
	}
	if v, _ := eng.State().Flag("door_open"); v != false {
		t.Error("Expected on-solve effects never replayed on a solved puzzle")
	}
}

func TestSolvePuzzle_RequirementsGate(t *testing.T) {
	eng := newTestEngine(t)

	// The window puzzle requires holding the door handle; a correct
	// answer is not even considered without it.
	result, err := eng.SolvePuzzle("window", catalog.AnswerList("door_handle"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusRequirementsNotMet {
		t.Fatalf("Expected StatusRequirementsNotMet, got %v", result.Status)
	}

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectAddItem, Item: "door_handle"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err = eng.SolvePuzzle("window", catalog.AnswerList("door_handle"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Errorf("Expected StatusOK once the item is held, got %v", result.Status)
	}
}

func TestSolvePuzzle_UnknownPuzzle(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.SolvePuzzle("sudoku", catalog.Answer("1"))
	if !errors.Is(err, ErrPuzzleNotFound) {
		t.Errorf("Expected ErrPuzzleNotFound, got %v", err)
	}
}

func TestAnswerMatches(t *testing.T) {
	arrangement := catalog.Puzzle{Type: catalog.PuzzleArrangement, Solution: catalog.AnswerList("alpha", "beta", "gamma")}
	combination := catalog.Puzzle{Type: catalog.PuzzleCombination, Solution: catalog.AnswerList("handle", "wedge")}
	multi := catalog.Puzzle{Type: catalog.PuzzleVisualSelection, Solution: catalog.AnswerList("red", "blue")}
	single := catalog.Puzzle{Type: catalog.PuzzleVisualSelection, Solution: catalog.Answer("up")}
	input := catalog.Puzzle{Type: catalog.PuzzleInput, Solution: catalog.Answer("12080")}

	tests := []struct {
		name     string
		puzzle   catalog.Puzzle
		answer   catalog.Solution
		expected bool
	}{
		{"input exact", input, catalog.Answer("12080"), true},
		{"input case sensitive", input, catalog.Answer("12o80"), false},
		{"input rejects list", input, catalog.AnswerList("12080"), false},

		{"arrangement exact order", arrangement, catalog.AnswerList("alpha", "beta", "gamma"), true},
		{"arrangement wrong order", arrangement, catalog.AnswerList("beta", "alpha", "gamma"), false},
		{"arrangement wrong length", arrangement, catalog.AnswerList("alpha", "beta"), false},

		{"combination exact", combination, catalog.AnswerList("handle", "wedge"), true},
		{"combination order ignored", combination, catalog.AnswerList("wedge", "handle"), true},
		{"combination superset accepted", combination, catalog.AnswerList("lint", "handle", "wedge"), true},
		{"combination missing element", combination, catalog.AnswerList("handle"), false},

		{"multi select set equality", multi, catalog.AnswerList("blue", "red"), true},
		{"multi select extra element", multi, catalog.AnswerList("red", "blue", "green"), false},
		{"multi select duplicate padding", multi, catalog.AnswerList("red", "red"), false},

		{"single select bare value", single, catalog.Answer("up"), true},
		{"single select one-element list", single, catalog.AnswerList("up"), true},
		{"single select wrong value", single, catalog.Answer("down"), false},
		{"single select long list", single, catalog.AnswerList("up", "down"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := answerMatches(tt.puzzle, tt.answer); got != tt.expected {
				t.Errorf("answerMatches(%v) = %v, expected %v", tt.answer, got, tt.expected)
			}
		})
	}
}

func TestSolvePuzzle_ArrangementFlow(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.SolvePuzzle("beds", catalog.AnswerList("gamma", "beta", "alpha"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusIncorrectAnswer {
		t.Fatalf("Expected StatusIncorrectAnswer for the reversed order, got %v", result.Status)
	}

	result, err = eng.SolvePuzzle("beds", catalog.AnswerList("alpha", "beta", "gamma"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v", result.Status)
	}
	if v, _ := eng.State().Flag("beds_arranged"); !Truthy(v) {
		t.Error("Expected beds_arranged flag set")
	}
}

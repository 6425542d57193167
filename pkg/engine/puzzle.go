package engine

import (
	"fmt"
	"time"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// SolvePuzzle compares a submitted answer against the named puzzle in
// the current scene.
//
// A solved puzzle is locked permanently through its synthesized flag;
// later attempts produce StatusAlreadySolved regardless of the answer.
// The puzzle's own requirements gate the attempt independently of
// correctness. A wrong answer is recoverable: the caller retries by
// calling again. On a correct answer the on-solve effects run in
// declared order and the solved flag is set after them, so the
// operation stays observably atomic.
func (e *Engine) SolvePuzzle(puzzleID string, answer catalog.Solution) (SolveResult, error) {
	scene, err := e.CurrentScene()
	if err != nil {
		return SolveResult{}, err
	}

	puzzle, ok := scene.Puzzle(puzzleID)
	if !ok {
		return SolveResult{}, fmt.Errorf("%w: %q in scene %q", ErrPuzzleNotFound, puzzleID, e.gs.CurrentScene)
	}

	solvedFlag := catalog.SolvedFlag(puzzleID)
	if v, ok := e.gs.Flag(solvedFlag); ok && Truthy(v) {
		return SolveResult{Status: StatusAlreadySolved}, nil
	}

	if !e.allMet(puzzle.Requirements) {
		return SolveResult{Status: StatusRequirementsNotMet}, nil
	}

	if !answerMatches(puzzle, answer) {
		return SolveResult{Status: StatusIncorrectAnswer}, nil
	}

	var dialogs []catalog.Dialog
	for _, eff := range puzzle.OnSolve {
		if err := e.applyEffect(eff, &dialogs, 0); err != nil {
			return SolveResult{}, fmt.Errorf("puzzle %q: %w", puzzleID, err)
		}
	}
	e.gs.SetFlag(solvedFlag, true)
	e.gs.UpdatedAt = time.Now().UTC()

	e.logger.Debug("puzzle solved", "puzzle", puzzleID, "type", puzzle.Type)
	return SolveResult{
		Status:  StatusOK,
		Effects: puzzle.OnSolve,
		Dialogs: dialogs,
	}, nil
}

// answerMatches applies the comparison rule keyed by puzzle type.
func answerMatches(p catalog.Puzzle, answer catalog.Solution) bool {
	switch p.Type {
	case catalog.PuzzleInput:
		return !answer.IsList && answer.Value == p.Solution.Value

	case catalog.PuzzleSequence, catalog.PuzzleArrangement:
		if !answer.IsList || !p.Solution.IsList {
			return false
		}
		if len(answer.Values) != len(p.Solution.Values) {
			return false
		}
		for i, want := range p.Solution.Values {
			if answer.Values[i] != want {
				return false
			}
		}
		return true

	case catalog.PuzzleCombination:
		// Containment, not equality: a submission holding extra
		// elements is accepted. Deliberately lenient.
		if !answer.IsList || !p.Solution.IsList {
			return false
		}
		for _, want := range p.Solution.Values {
			if !containsString(answer.Values, want) {
				return false
			}
		}
		return true

	case catalog.PuzzleVisualSelection:
		if p.Solution.IsList {
			// Multi-select: element-wise set equality, order ignored.
			if !answer.IsList || len(answer.Values) != len(p.Solution.Values) {
				return false
			}
			for _, want := range p.Solution.Values {
				if !containsString(answer.Values, want) {
					return false
				}
			}
			for _, got := range answer.Values {
				if !containsString(p.Solution.Values, got) {
					return false
				}
			}
			return true
		}
		// Single-select: a bare value or a one-element list.
		if answer.IsList {
			return len(answer.Values) == 1 && answer.Values[0] == p.Solution.Value
		}
		return answer.Value == p.Solution.Value

	default:
		return false
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

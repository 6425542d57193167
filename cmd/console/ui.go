package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/escape-engine/internal/content"
	"github.com/jwebster45206/escape-engine/pkg/catalog"
	"github.com/jwebster45206/escape-engine/pkg/engine"
	"github.com/jwebster45206/escape-engine/pkg/storage"
)

const placeholderText = "Type your answer..."

type uiMode int

const (
	modeExplore uiMode = iota
	modePuzzleSelect
	modePuzzleAnswer
	modeInventory
	modeQuitConfirm
	modeRestartConfirm
)

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(2).
			PaddingRight(1)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	broadcastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	keyHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var titleCaser = cases.Title(language.English)

// ConsoleUI is the BubbleTea model that runs the play loop. It is the
// UI collaborator: the engine decides everything, the UI renders and
// persists.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	eng    *engine.Engine
	store  storage.Storage
	logger *slog.Logger

	story viewport.Model
	input textinput.Model

	mode         uiMode
	activePuzzle catalog.Puzzle

	lines  []string
	status string
	ready  bool
	width  int
	height int
}

func NewConsoleUI(eng *engine.Engine, store storage.Storage, logger *slog.Logger) *ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = placeholderText
	ti.CharLimit = 200
	ti.Width = 40

	ui := &ConsoleUI{
		eng:    eng,
		store:  store,
		logger: logger,
		input:  ti,
		story:  viewport.New(60, 20),
	}

	if d := eng.Enter(); d != nil {
		ui.appendDialog(*d)
	}
	return ui
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return nil
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.story.Width = ui.storyWidth()
		ui.story.Height = msg.Height - 6
		ui.refreshStory()
		ui.ready = true
		return ui, nil

	case tea.KeyMsg:
		return ui.handleKey(msg)
	}

	var cmd tea.Cmd
	ui.story, cmd = ui.story.Update(msg)
	return ui, cmd
}

func (ui *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if ui.mode == modeQuitConfirm {
		switch key {
		case "y", "enter":
			return ui, tea.Quit
		default:
			ui.mode = modeExplore
			ui.status = ""
			return ui, nil
		}
	}

	if ui.mode == modeRestartConfirm {
		if key == "y" || key == "enter" {
			ui.restart()
		}
		ui.mode = modeExplore
		ui.status = ""
		return ui, nil
	}

	if ui.mode == modePuzzleAnswer {
		switch key {
		case "esc":
			ui.mode = modeExplore
			ui.input.Blur()
			return ui, nil
		case "enter":
			ui.submitAnswer(strings.TrimSpace(ui.input.Value()))
			ui.input.SetValue("")
			ui.input.Blur()
			ui.mode = modeExplore
			return ui, nil
		default:
			var cmd tea.Cmd
			ui.input, cmd = ui.input.Update(msg)
			return ui, cmd
		}
	}

	switch key {
	case "ctrl+c", "q":
		ui.mode = modeQuitConfirm
		ui.status = "Quit without saving? (y/n)"
		return ui, nil
	case "esc":
		ui.mode = modeExplore
		ui.status = ""
		return ui, nil
	case "p":
		ui.mode = modePuzzleSelect
		ui.status = "Select a puzzle by number, esc to cancel."
		return ui, nil
	case "i":
		ui.mode = modeInventory
		ui.status = "Use an item by number, esc to cancel."
		return ui, nil
	case "s":
		ui.save()
		return ui, nil
	case "r":
		ui.mode = modeRestartConfirm
		ui.status = "Restart from the beginning? Unsaved progress is lost. (y/n)"
		return ui, nil
	case "y":
		ui.copySaveID()
		return ui, nil
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		ui.story, cmd = ui.story.Update(msg)
		return ui, cmd
	}

	if n, ok := digit(key); ok {
		switch ui.mode {
		case modeExplore:
			ui.clickHotspot(n - 1)
		case modePuzzleSelect:
			ui.selectPuzzle(n - 1)
		case modeInventory:
			ui.useItem(n - 1)
		}
	}
	return ui, nil
}

func (ui *ConsoleUI) clickHotspot(idx int) {
	scene, err := ui.eng.CurrentScene()
	if err != nil {
		ui.fail(err)
		return
	}
	if idx < 0 || idx >= len(scene.Hotspots) {
		return
	}
	hotspot := scene.Hotspots[idx]

	result, err := ui.eng.Interact(hotspot.ID)
	if err != nil {
		ui.fail(err)
		return
	}

	ui.status = ""
	if hotspot.Hint != "" {
		ui.appendSystem(hotspot.Hint)
	}
	if result.Item != "" {
		if item, ok := ui.eng.Catalog().Item(result.Item); ok {
			ui.appendSystem(fmt.Sprintf("獲得道具：%s", item.Name))
		}
	}
	for _, d := range result.Dialogs {
		ui.appendDialog(d)
	}
	if hotspot.Panel != "" {
		ui.openPanel(hotspot.Panel)
	}
	ui.refreshStory()
}

// openPanel runs the UI side of a content-declared panel. Panels are
// presentation: they translate a player gesture into engine commands.
func (ui *ConsoleUI) openPanel(panel string) {
	switch panel {
	case "uv_light":
		// Switching the lamp on is UI bookkeeping; the reveal event
		// carries the narrative.
		if _, err := ui.eng.ApplyEffect(catalog.Effect{
			Type: catalog.EffectSetFlag, Flag: "uv_light_on", Value: true,
		}); err != nil {
			ui.fail(err)
			return
		}
		result, err := ui.eng.TriggerEvent("use_uv_light")
		if err != nil {
			ui.fail(err)
			return
		}
		for _, d := range result.Dialogs {
			ui.appendDialog(d)
		}
	case "pulse_clip":
		ui.appendSystem("脈搏夾夾上指尖，數字在跳。")
	default:
		ui.logger.Warn("Unknown panel", "panel", panel)
	}
}

func (ui *ConsoleUI) selectPuzzle(idx int) {
	scene, err := ui.eng.CurrentScene()
	if err != nil {
		ui.fail(err)
		return
	}
	if idx < 0 || idx >= len(scene.Puzzles) {
		return
	}
	ui.activePuzzle = scene.Puzzles[idx]
	ui.mode = modePuzzleAnswer
	ui.input.Placeholder = placeholderText
	if ui.activePuzzle.Hint != "" {
		ui.input.Placeholder = ui.activePuzzle.Hint
	}
	ui.status = fmt.Sprintf("%s — type the answer, enter to submit.", puzzleLabel(ui.activePuzzle))
	ui.input.Focus()
}

func (ui *ConsoleUI) submitAnswer(raw string) {
	if raw == "" {
		return
	}
	answer := parseAnswer(ui.activePuzzle, raw)

	result, err := ui.eng.SolvePuzzle(ui.activePuzzle.ID, answer)
	if err != nil {
		ui.fail(err)
		return
	}

	switch result.Status {
	case engine.StatusOK:
		ui.status = "Solved."
		for _, d := range result.Dialogs {
			ui.appendDialog(d)
		}
	case engine.StatusIncorrectAnswer:
		ui.status = "Nothing happens. That answer is wrong."
	case engine.StatusAlreadySolved:
		ui.status = "Already solved."
	case engine.StatusRequirementsNotMet:
		ui.status = "Something is still missing."
	}
	ui.refreshStory()
}

func (ui *ConsoleUI) useItem(idx int) {
	gs := ui.eng.State()
	if idx < 0 || idx >= len(gs.Inventory) {
		return
	}
	itemID := gs.Inventory[idx]

	result, err := ui.eng.UseItem(itemID)
	if err != nil {
		ui.fail(err)
		return
	}

	switch result.Status {
	case engine.StatusOK:
		ui.status = ""
		for _, d := range result.Dialogs {
			ui.appendDialog(d)
		}
		if result.OpenPanel != "" {
			ui.openPanel(result.OpenPanel)
		}
	case engine.StatusItemNotUsable:
		ui.status = "You can't use that."
	}
	ui.mode = modeExplore
	ui.refreshStory()
}

func (ui *ConsoleUI) save() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gs := ui.eng.State()
	if err := ui.store.SaveGameState(ctx, gs); err != nil {
		ui.logger.Error("Save failed", "error", err)
		ui.status = "Save failed, see console.log."
		return
	}
	ui.status = fmt.Sprintf("Saved %s.", shortID(gs.ID))
}

// restart discards the session and begins a fresh one on the same
// catalog. Saved games are untouched; the new session gets its own ID.
func (ui *ConsoleUI) restart() {
	eng, err := engine.New(ui.eng.Catalog(), engine.Options{
		Predicates: content.Predicates(),
		Logger:     ui.logger,
	})
	if err != nil {
		ui.fail(err)
		return
	}
	ui.eng = eng
	ui.lines = nil
	if d := eng.Enter(); d != nil {
		ui.appendDialog(*d)
	}
	ui.refreshStory()
	ui.status = "New game started."
}

func (ui *ConsoleUI) copySaveID() {
	id := ui.eng.State().ID.String()
	if err := clipboard.WriteAll(id); err != nil {
		ui.status = "Clipboard unavailable."
		return
	}
	ui.status = "Save ID copied to clipboard."
}

func (ui *ConsoleUI) fail(err error) {
	// Engine errors here mean broken content or a broken caller, not a
	// bad answer. Surface and log them.
	ui.logger.Error("Engine error", "error", err)
	ui.status = fmt.Sprintf("Engine error: %v", err)
}

func (ui *ConsoleUI) appendDialog(d catalog.Dialog) {
	text := wordwrap.String(d.Text, ui.storyWidth()-4)
	switch d.Type {
	case catalog.DialogBroadcast:
		ui.lines = append(ui.lines, broadcastStyle.Render("【廣播】"+text))
	case catalog.DialogSystem:
		ui.lines = append(ui.lines, systemStyle.Render(text))
	default:
		ui.lines = append(ui.lines, narratorStyle.Render(text))
	}
	ui.lines = append(ui.lines, "")
	ui.refreshStory()
}

func (ui *ConsoleUI) appendSystem(text string) {
	ui.lines = append(ui.lines, systemStyle.Render(wordwrap.String(text, ui.storyWidth()-4)), "")
	ui.refreshStory()
}

func (ui *ConsoleUI) refreshStory() {
	ui.story.SetContent(strings.Join(ui.lines, "\n"))
	ui.story.GotoBottom()
}

func (ui *ConsoleUI) storyWidth() int {
	if ui.width == 0 {
		return 60
	}
	return ui.width * 2 / 3
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	scene, err := ui.eng.CurrentScene()
	if err != nil {
		return fmt.Sprintf("Engine error: %v", err)
	}

	header := titleStyle.Render(fmt.Sprintf(" %s — %s ", ui.eng.Catalog().Name, scene.Name))
	left := storyPanelStyle.Width(ui.storyWidth()).Render(ui.story.View())
	right := metaPanelStyle.Width(ui.width - ui.storyWidth() - 2).Render(ui.metaPanel(scene))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	footer := keyHelpStyle.Render("1-9 interact · p puzzles · i inventory · s save · y copy id · r restart · q quit")
	if ui.mode == modePuzzleAnswer {
		footer = ui.input.View()
	}
	status := statusStyle.Render(ui.status)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, status)
}

func (ui *ConsoleUI) metaPanel(scene *catalog.Scene) string {
	var b strings.Builder
	gs := ui.eng.State()

	b.WriteString(sectionStyle.Render("Hotspots"))
	b.WriteString("\n")
	for i, h := range scene.Hotspots {
		marker := " "
		if gs.HasClicked(h.ID) {
			marker = "·"
		}
		fmt.Fprintf(&b, " %d%s %s\n", i+1, marker, h.Description)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Inventory"))
	b.WriteString("\n")
	if len(gs.Inventory) == 0 {
		b.WriteString(systemStyle.Render(" (empty)\n"))
	}
	for i, id := range gs.Inventory {
		if item, ok := ui.eng.Catalog().Item(id); ok {
			fmt.Fprintf(&b, " %d %s\n", i+1, item.Name)
		}
	}

	if len(scene.Puzzles) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Puzzles"))
		b.WriteString("\n")
		for i, p := range scene.Puzzles {
			solved := ""
			if v, ok := gs.Flag(catalog.SolvedFlag(p.ID)); ok && engine.Truthy(v) {
				solved = " ✓"
			}
			fmt.Fprintf(&b, " %d %s%s\n", i+1, puzzleLabel(p), solved)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d/%d scenes",
		sectionStyle.Render("Progress"), len(gs.VisitedScenes), len(ui.eng.Catalog().Scenes))
	return b.String()
}

// puzzleLabel renders a puzzle's type as a short English label.
func puzzleLabel(p catalog.Puzzle) string {
	label := titleCaser.String(strings.ReplaceAll(string(p.Type), "_", " "))
	return fmt.Sprintf("%s (%s)", p.ID, label)
}

// parseAnswer maps typed input onto the answer shape the puzzle type
// expects: a bare string, or a list split on spaces and commas.
func parseAnswer(p catalog.Puzzle, raw string) catalog.Solution {
	switch p.Type {
	case catalog.PuzzleSequence, catalog.PuzzleArrangement, catalog.PuzzleCombination:
		return catalog.AnswerList(splitAnswer(raw)...)
	case catalog.PuzzleVisualSelection:
		if p.Solution.IsList {
			return catalog.AnswerList(splitAnswer(raw)...)
		}
		return catalog.Answer(raw)
	default:
		return catalog.Answer(raw)
	}
}

func splitAnswer(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '、'
	})
	return fields
}

func digit(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0'), true
	}
	return 0, false
}

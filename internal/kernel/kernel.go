// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package kernel assembles the dispatch loop as a bubbletea tea.Model
(spec.md §5: "single-threaded cooperative. The dispatch loop owns AppState
exclusively"). It delegates every state mutation to internal/reducer and
every leaf I/O effect to internal/effectrunner, keeping for itself only the
handful of effects that need direct, synchronous access to AppState or the
completion engine without ever crossing a suspension point: Render,
ProcessPrefetchQueue, ScheduleCompletionDebounce, TriggerCompletion,
Sequence, and DispatchActions (spec.md §4.2, §5).

Like the teacher's cmd/api/main.go, nothing here is business logic — it is
orchestration: translating terminal events into Action values, running
Reduce, and turning the resulting Effect values into tea.Cmd values or
direct AppState reads.
*/
package kernel

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/completion"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/effectrunner"
	"github.com/taibuivan/pgview/internal/platform/config"
	"github.com/taibuivan/pgview/internal/ports"
	"github.com/taibuivan/pgview/internal/reducer"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
	"github.com/taibuivan/pgview/internal/tuirender"
)

// actionMsg delivers one reducer action into Update.
type actionMsg struct{ action action.Action }

// actionsMsg delivers a batch of actions (Sequence/DispatchActions results).
type actionsMsg struct{ actions []action.Action }

// tickMsg drives the periodic clock actions (message expiry, spinner).
type tickMsg time.Time

// triggerCompletionMsg fires when a debounce deadline elapses. It is
// handled directly by Update rather than routed through Reduce, because
// TriggerCompletion is a kernel-owned effect, not a member of the reducer's
// closed Action set (spec.md §4.2).
type triggerCompletionMsg struct{}

// tickInterval is how often the kernel wakes the loop even with no other
// activity, so expiring toasts and the "copied" flash are cleared promptly.
const tickInterval = 250 * time.Millisecond

// Model is the bubbletea program's root tea.Model.
type Model struct {
	state      *state.AppState
	connCache  *sessioncache.Store
	runner     *effectrunner.Runner
	completion *completion.Engine
	builder    *tuirender.Builder
	connStore  ports.ConnectionStore
	cfg        *config.Config
	lastFrame  string
	width      int
	height     int
}

// New constructs the kernel's root Model.
func New(
	initial *state.AppState,
	connCache *sessioncache.Store,
	runner *effectrunner.Runner,
	completionEngine *completion.Engine,
	connStore ports.ConnectionStore,
	cfg *config.Config,
) *Model {
	return &Model{
		state:      initial,
		connCache:  connCache,
		runner:     runner,
		completion: completionEngine,
		builder:    tuirender.NewBuilder(80, 24),
		connStore:  connStore,
		cfg:        cfg,
	}
}

// Init starts the periodic tick that clears expired messages and kicks off
// an initial connection-profile load so the setup overlay opens with data
// already in hand.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.scheduleOne(effect.LoadConnectionProfiles{}))
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update is the bubbletea event loop entry point: translate the incoming
// tea.Msg into zero or more Action values, run them through Reduce, and
// turn the resulting Effect values into tea.Cmd values.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.builder.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		act := translateKey(msg, m.state)
		if act == nil {
			return m, nil
		}
		return m, m.dispatch(act, time.Now())

	case tickMsg:
		cmd := m.dispatch(action.Tick{Now: time.Time(msg)}, time.Time(msg))
		return m, tea.Batch(cmd, tick())

	case actionMsg:
		return m, m.dispatch(msg.action, time.Now())

	case actionsMsg:
		now := time.Now()
		var cmds []tea.Cmd
		for _, a := range msg.actions {
			cmds = append(cmds, m.dispatch(a, now))
		}
		return m, tea.Batch(cmds...)

	case triggerCompletionMsg:
		return m, m.triggerCompletion()
	}

	return m, nil
}

// View renders the current frame; Render effects are a no-op signal in this
// architecture because bubbletea already calls View() after every Update.
func (m *Model) View() string {
	frame, _ := m.builder.Build(m.state)
	m.lastFrame = frame
	return frame
}

// dispatch runs act through the reducer and schedules its effects.
func (m *Model) dispatch(act action.Action, now time.Time) tea.Cmd {
	effects := reducer.Reduce(m.state, m.connCache, act, now)
	return m.scheduleEffects(effects)
}

// scheduleEffects turns a batch of effects into tea.Cmd values. Exclusive
// effects (OpenConsole) run synchronously, blocking this call — correct
// here because the terminal itself is suspended for the duration (spec.md
// §5: "no other effect runs and no actions are processed until it
// completes"). Everything else becomes a concurrent tea.Cmd.
func (m *Model) scheduleEffects(effects []effect.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		if effect.Exclusive(eff) {
			actions := m.runner.Execute(context.Background(), eff)
			cmds = append(cmds, emitActions(actions))
			continue
		}
		cmds = append(cmds, m.scheduleOne(eff))
	}
	return tea.Batch(cmds...)
}

// scheduleOne dispatches a single non-exclusive effect.
func (m *Model) scheduleOne(eff effect.Effect) tea.Cmd {
	switch e := eff.(type) {

	case effect.Render:
		// Handled implicitly: bubbletea calls View() after this Update
		// returns, and View() always re-reads the current AppState.
		return nil

	case effect.Sequence:
		return m.runSequence(e.Effects)

	case effect.DispatchActions:
		return func() tea.Msg { return actionsMsg{actions: e.Actions} }

	case effect.ProcessPrefetchQueue:
		return m.processPrefetchQueue()

	case effect.ScheduleCompletionDebounce:
		return scheduleDebounce(e.TriggerAtUnixMs)

	case effect.TriggerCompletion:
		return m.triggerCompletion()

	case effect.Quit:
		return tea.Quit

	default:
		return func() tea.Msg {
			actions := m.runner.Execute(context.Background(), eff)
			return actionsMsg{actions: actions}
		}
	}
}

// runSequence executes every effect in order within one goroutine, so
// CacheInvalidate really does finish before FetchMetadata starts (spec.md
// §4.2: "Sequence... strictly ordered execution").
func (m *Model) runSequence(effects []effect.Effect) tea.Cmd {
	return func() tea.Msg {
		var all []action.Action
		for _, eff := range effects {
			all = append(all, m.runner.Execute(context.Background(), eff)...)
		}
		return actionsMsg{actions: all}
	}
}

func emitActions(actions []action.Action) tea.Cmd {
	return func() tea.Msg { return actionsMsg{actions: actions} }
}

// processPrefetchQueue draws up to the configured concurrency's worth of
// tables from the ER coordinator and issues a PrefetchTableDetail effect
// per table (spec.md §4.4 "bounded worker draws from pending").
func (m *Model) processPrefetchQueue() tea.Cmd {
	if m.state.ErState.Coordinator == nil {
		return nil
	}
	batch := m.state.ErState.Coordinator.NextBatch(m.cfg.PrefetchConcurrency)
	var cmds []tea.Cmd
	for _, qualified := range batch {
		schema, table := splitQualifiedName(qualified)
		eff := effect.PrefetchTableDetail{DSN: m.state.Runtime.DSN, Schema: schema, Table: table}
		cmds = append(cmds, m.scheduleOne(eff))
	}
	return tea.Batch(cmds...)
}

func splitQualifiedName(qualified string) (schema, table string) {
	idx := strings.IndexByte(qualified, '.')
	if idx < 0 {
		return "", qualified
	}
	return qualified[:idx], qualified[idx+1:]
}

// scheduleDebounce waits until triggerAtUnixMs and then dispatches
// TriggerCompletion directly, rather than round-tripping through the
// reducer — debounce rearm is already handled by the reducer re-emitting
// this effect on every keystroke (spec.md §4.3).
func scheduleDebounce(triggerAtUnixMs int64) tea.Cmd {
	deadline := time.UnixMilli(triggerAtUnixMs)
	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return triggerCompletionMsg{} })
}

func (m *Model) triggerCompletion() tea.Cmd {
	prefix, fromTables := parseSqlModalContext(m.state.SqlModalText, m.state.SqlModalCursor)
	candidates := m.completion.Complete(prefix, currentMetadata(m.state), fromTables)

	converted := make([]action.CompletionCandidate, 0, len(candidates))
	for _, c := range candidates {
		converted = append(converted, action.CompletionCandidate{Text: c.Text, Kind: string(c.Kind), Score: c.Score})
	}
	return emitActions([]action.Action{action.CompletionUpdated{Candidates: converted}})
}

// parseSqlModalContext extracts the token immediately before cursor as the
// completion prefix, and every qualified table name following a FROM/JOIN
// keyword in the buffer up to cursor (best-effort, not a SQL parser, per
// spec.md §4.3's own stated scope).
func parseSqlModalContext(text string, cursor int) (prefix string, fromTables []string) {
	if cursor < 0 || cursor > len(text) {
		cursor = len(text)
	}
	head := text[:cursor]

	fields := strings.Fields(head)
	if len(fields) > 0 && !strings.HasSuffix(head, " ") {
		prefix = fields[len(fields)-1]
	}

	for i, f := range fields {
		upper := strings.ToUpper(f)
		if (upper == "FROM" || upper == "JOIN") && i+1 < len(fields) {
			fromTables = append(fromTables, strings.TrimRight(fields[i+1], ","))
		}
	}
	return prefix, fromTables
}

func currentMetadata(s *state.AppState) domain.DatabaseMetadata {
	if s.View.Metadata == nil {
		return domain.DatabaseMetadata{}
	}
	return *s.View.Metadata
}

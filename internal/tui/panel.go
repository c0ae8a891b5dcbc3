package tui

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/promptgen/internal/options"
	"github.com/jask/promptgen/internal/settings"
)

// ErrNoSettingsHandler is returned when a panel is built without a change
// callback. It is an integration error; callers should treat it as fatal.
var ErrNoSettingsHandler = errors.New("tui: settings panel needs an OnSettingsChange handler")

// PanelConfig wires a SettingsPanel to its owner.
type PanelConfig struct {
	Context context.Context
	// Settings is the record to display. The panel never edits it in place.
	Settings settings.AppSettings
	// OnSettingsChange receives a complete new record once per edit. Required.
	OnSettingsChange func(settings.AppSettings)
	// OnDatabaseUpdate is forwarded to the database manager. Optional.
	OnDatabaseUpdate func()
	// Vocabulary backs the database manager.
	Vocabulary VocabularyStore
	Logger     *slog.Logger
}

// picker pairs an include flag with the option field it gates.
type picker struct {
	include settings.Field
	value   settings.Field
	label   string
	section string
	options func() []options.Option
}

var pickers = []picker{
	{settings.FieldIncludeEthnicity, settings.FieldEthnicity, "Specify ethnicity", sectionPerson, options.Ethnicity},
	{settings.FieldIncludeGender, settings.FieldGender, "Specify gender", sectionPerson, options.Gender},
	{settings.FieldIncludeAspectRatio, settings.FieldAspectRatio, "Include aspect ratio", sectionPrompt, options.AspectRatio},
	{settings.FieldIncludeVersion, settings.FieldVersion, "Include version", sectionPrompt, options.Version},
	{settings.FieldIncludeStylize, settings.FieldStylize, "Include stylize", sectionPrompt, options.Stylize},
}

const (
	sectionPerson = "Person"
	sectionPrompt = "Prompt options"
)

type controlKind int

const (
	controlDatabase controlKind = iota
	controlTheme
	controlExpand
	controlPromptCount
	controlCheckbox
	controlSelect
	controlSuffix
)

// expandIndex is the chevron's position; the three header buttons always lead.
const expandIndex = 2

type control struct {
	kind   controlKind
	field  settings.Field
	picker *picker
}

func (c control) same(o control) bool {
	return c.kind == o.kind && c.field == o.field
}

type dropdown struct {
	field  settings.Field
	opts   []options.Option
	cursor int
}

// SettingsPanel renders the settings form for an AppSettings record it does
// not own. Every edit is reported through OnSettingsChange; the owner is
// expected to hand the new record back with SetSettings.
type SettingsPanel struct {
	ctx              context.Context
	settings         settings.AppSettings
	onSettingsChange func(settings.AppSettings)
	onDatabaseUpdate func()
	vocabulary       VocabularyStore
	logger           *slog.Logger

	// view-only state, never persisted
	expanded bool
	dbOpen   bool

	focus    control
	dbFocus  bool
	dropdown *dropdown
	suffix   textinput.Model
	db       *DatabaseManager
}

func NewSettingsPanel(cfg PanelConfig) (*SettingsPanel, error) {
	if cfg.OnSettingsChange == nil {
		return nil, ErrNoSettingsHandler
	}
	onDB := cfg.OnDatabaseUpdate
	if onDB == nil {
		onDB = func() {}
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	in := textinput.New()
	in.Placeholder = "e.g. --stop 80 --raw"
	in.Prompt = ""
	in.SetValue(cfg.Settings.CustomSuffix)
	return &SettingsPanel{
		ctx:              ctx,
		settings:         cfg.Settings,
		onSettingsChange: cfg.OnSettingsChange,
		onDatabaseUpdate: onDB,
		vocabulary:       cfg.Vocabulary,
		logger:           logger,
		focus:            control{kind: controlExpand},
		suffix:           in,
	}, nil
}

// SetSettings replaces the displayed record.
func (p *SettingsPanel) SetSettings(s settings.AppSettings) {
	p.settings = s
	if p.suffix.Value() != s.CustomSuffix {
		p.suffix.SetValue(s.CustomSuffix)
	}
}

func (p *SettingsPanel) Settings() settings.AppSettings { return p.settings }
func (p *SettingsPanel) Expanded() bool                 { return p.expanded }
func (p *SettingsPanel) DatabaseOpen() bool             { return p.dbOpen }

// CapturingText reports whether plain letter keys are being consumed by an
// input inside the panel.
func (p *SettingsPanel) CapturingText() bool {
	if p.dbFocus && p.db != nil {
		return true
	}
	return p.dropdown != nil || p.focusedControl().kind == controlSuffix
}

func (p *SettingsPanel) Init() tea.Cmd { return nil }

// set is the single write path: it derives the next record with one field
// replaced and reports it.
func (p *SettingsPanel) set(f settings.Field, v settings.Value) {
	next, err := p.settings.With(f, v)
	if err != nil {
		p.logger.Error("settings panel: rejected change", "field", f.String(), "err", err)
		return
	}
	p.onSettingsChange(next)
}

func (p *SettingsPanel) toggleDatabase() tea.Cmd {
	p.dbOpen = !p.dbOpen
	if !p.dbOpen {
		p.db = nil
		p.dbFocus = false
		return nil
	}
	p.db = NewDatabaseManager(p.ctx, p.vocabulary, p.onDatabaseUpdate)
	return p.db.Init()
}

func (p *SettingsPanel) toggleExpanded() {
	p.expanded = !p.expanded
	p.dropdown = nil
	if !p.expanded {
		p.suffix.Blur()
	}
}

func (p *SettingsPanel) toggleTheme() {
	p.set(settings.FieldDarkMode, settings.BoolValue(!p.settings.DarkMode))
}

// slide applies a textual slider value: parse, clamp to the allowed range,
// then emit when it differs from the current count.
func (p *SettingsPanel) slide(text string) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	n = settings.ClampPromptCount(n)
	if n == p.settings.PromptCount {
		return
	}
	p.set(settings.FieldPromptCount, settings.IntValue(n))
}

// selectOption emits value for f unless it is already selected.
func (p *SettingsPanel) selectOption(f settings.Field, value string) {
	if p.settings.Get(f).Text() == value {
		return
	}
	p.set(f, settings.StringValue(value))
}

func (p *SettingsPanel) cycleOption(c control, delta int) {
	opts := c.picker.options()
	if len(opts) == 0 {
		return
	}
	i := options.IndexOf(opts, p.settings.Get(c.field).Text())
	switch {
	case i < 0:
		i = 0
	default:
		i = (i + delta + len(opts)) % len(opts)
	}
	p.selectOption(c.field, opts[i].Value)
}

// controls lists the focusable controls in render order.
func (p *SettingsPanel) controls() []control {
	out := []control{{kind: controlDatabase}, {kind: controlTheme}, {kind: controlExpand}}
	if !p.expanded {
		return out
	}
	out = append(out, control{kind: controlPromptCount, field: settings.FieldPromptCount})
	for i := range pickers {
		pk := &pickers[i]
		out = append(out, control{kind: controlCheckbox, field: pk.include, picker: pk})
		if p.settings.Get(pk.include).Bool() {
			out = append(out, control{kind: controlSelect, field: pk.value, picker: pk})
		}
	}
	return append(out, control{kind: controlSuffix, field: settings.FieldCustomSuffix})
}

func (p *SettingsPanel) focusIndex(list []control) int {
	for i, c := range list {
		if c.same(p.focus) {
			return i
		}
	}
	// the focused control disappeared; fall back to the paired checkbox or the chevron
	for i, c := range list {
		if c.kind == controlCheckbox && c.picker != nil && c.picker.value == p.focus.field {
			return i
		}
	}
	return expandIndex
}

func (p *SettingsPanel) focusedControl() control {
	list := p.controls()
	return list[p.focusIndex(list)]
}

func (p *SettingsPanel) moveFocus(delta int) {
	list := p.controls()
	i := p.focusIndex(list) + delta
	if i < 0 || i >= len(list) {
		return
	}
	p.setFocus(list[i])
}

func (p *SettingsPanel) setFocus(c control) {
	p.focus = c
	if c.kind == controlSuffix {
		p.suffix.Focus()
	} else {
		p.suffix.Blur()
	}
}

func (p *SettingsPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case vocabLoadedMsg, vocabErrMsg:
		if p.db != nil {
			return p.db.Update(msg)
		}
		return nil
	case vocabChangedMsg:
		if p.db != nil {
			return p.db.Update(msg)
		}
		// the manager was closed mid-operation; the data still changed
		p.onDatabaseUpdate()
		return nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	if p.focusedControl().kind == controlSuffix {
		var cmd tea.Cmd
		p.suffix, cmd = p.suffix.Update(msg)
		return cmd
	}
	return nil
}

func (p *SettingsPanel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.dbFocus && p.db != nil {
		if key.Matches(msg, keys.Focus) || (!p.db.Capturing() && key.Matches(msg, keys.Cancel)) {
			p.dbFocus = false
			return nil
		}
		return p.db.Update(msg)
	}
	if p.dropdown != nil {
		p.handleDropdownKey(msg)
		return nil
	}

	if key.Matches(msg, keys.Focus) {
		if p.db != nil {
			p.dbFocus = true
			p.suffix.Blur()
		}
		return nil
	}

	c := p.focusedControl()
	if c.kind == controlSuffix {
		switch {
		case msg.Type == tea.KeyUp:
			p.moveFocus(-1)
			return nil
		case msg.Type == tea.KeyDown:
			return nil
		case msg.Type == tea.KeyEsc:
			p.moveFocus(-1)
			return nil
		}
		var cmd tea.Cmd
		p.suffix, cmd = p.suffix.Update(msg)
		if v := p.suffix.Value(); v != p.settings.CustomSuffix {
			p.set(settings.FieldCustomSuffix, settings.StringValue(v))
		}
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Database):
		return p.toggleDatabase()
	case key.Matches(msg, keys.Theme):
		p.toggleTheme()
		return nil
	case key.Matches(msg, keys.Expand):
		p.toggleExpanded()
		return nil
	case key.Matches(msg, keys.Up):
		p.moveFocus(-1)
		return nil
	case key.Matches(msg, keys.Down):
		p.moveFocus(1)
		return nil
	}

	switch c.kind {
	case controlDatabase:
		if key.Matches(msg, keys.Activate, keys.Toggle) {
			return p.toggleDatabase()
		}
	case controlTheme:
		if key.Matches(msg, keys.Activate, keys.Toggle) {
			p.toggleTheme()
		}
	case controlExpand:
		if key.Matches(msg, keys.Activate, keys.Toggle) {
			p.toggleExpanded()
		}
	case controlPromptCount:
		n := p.settings.PromptCount
		switch {
		case key.Matches(msg, keys.Left):
			p.slide(strconv.Itoa(n - 1))
		case key.Matches(msg, keys.Right):
			p.slide(strconv.Itoa(n + 1))
		case key.Matches(msg, keys.PageDown):
			p.slide(strconv.Itoa(n - 5))
		case key.Matches(msg, keys.PageUp):
			p.slide(strconv.Itoa(n + 5))
		case key.Matches(msg, keys.Home):
			p.slide(strconv.Itoa(settings.MinPromptCount))
		case key.Matches(msg, keys.End):
			p.slide(strconv.Itoa(settings.MaxPromptCount))
		}
	case controlCheckbox:
		if key.Matches(msg, keys.Activate, keys.Toggle) {
			p.set(c.field, settings.BoolValue(!p.settings.Get(c.field).Bool()))
		}
	case controlSelect:
		switch {
		case key.Matches(msg, keys.Left):
			p.cycleOption(c, -1)
		case key.Matches(msg, keys.Right):
			p.cycleOption(c, 1)
		case key.Matches(msg, keys.Activate, keys.Toggle):
			opts := c.picker.options()
			p.dropdown = &dropdown{
				field:  c.field,
				opts:   opts,
				cursor: max(options.IndexOf(opts, p.settings.Get(c.field).Text()), 0),
			}
		}
	}
	return nil
}

func (p *SettingsPanel) handleDropdownKey(msg tea.KeyMsg) {
	d := p.dropdown
	switch {
	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, keys.Down):
		if d.cursor < len(d.opts)-1 {
			d.cursor++
		}
	case key.Matches(msg, keys.Activate):
		p.dropdown = nil
		if len(d.opts) > 0 {
			p.selectOption(d.field, d.opts[d.cursor].Value)
		}
	case key.Matches(msg, keys.Cancel):
		p.dropdown = nil
	}
}

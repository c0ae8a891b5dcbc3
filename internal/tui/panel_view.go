package tui

import (
	"fmt"
	"strings"

	"github.com/jask/promptgen/internal/options"
	"github.com/jask/promptgen/internal/settings"
)

const sliderWidth = 30

// sliderTicks are the reference marks printed under the prompt count slider.
var sliderTicks = []int{1, 10, 20, 35, 50}

func (p *SettingsPanel) View() string {
	st := StylesFor(p.settings.DarkMode)
	focused := p.focusedControl()
	active := func(k controlKind, f settings.Field) bool {
		return !p.dbFocus && p.dropdown == nil && focused.kind == k && focused.field == f
	}
	render := func(text string, on bool) string {
		if on {
			return st.Focused.Render(text)
		}
		return st.Label.Render(text)
	}

	var b strings.Builder

	dbLabel := "[DB]"
	themeLabel := "[☾ dark]"
	if p.settings.DarkMode {
		themeLabel = "[☀ light]"
	}
	chevron := "[▼]"
	if p.expanded {
		chevron = "[▲]"
	}
	buttons := strings.Join([]string{
		render(dbLabel, active(controlDatabase, 0)),
		render(themeLabel, active(controlTheme, 0)),
		render(chevron, active(controlExpand, 0)),
	}, " ")
	b.WriteString(st.Title.Render("⚙ Settings") + "  " + buttons + "\n")

	if p.dbOpen && p.db != nil {
		b.WriteString(st.SubPanel.Render(p.db.View(st, p.dbFocus)) + "\n")
	}

	if p.expanded {
		b.WriteString(p.viewForm(st, active, render))
	}

	b.WriteString(st.Dim.Render(p.helpLine()))
	return st.Panel.Render(b.String())
}

func (p *SettingsPanel) viewForm(st Styles, active func(controlKind, settings.Field) bool, render func(string, bool) string) string {
	var b strings.Builder
	s := p.settings

	b.WriteString("\n")
	b.WriteString(render(fmt.Sprintf("Prompt count: %d", s.PromptCount), active(controlPromptCount, settings.FieldPromptCount)) + "\n")
	b.WriteString("  " + sliderBar(s.PromptCount, st) + "\n")
	b.WriteString("  " + st.Dim.Render(sliderScale()) + "\n")

	section := ""
	for i := range pickers {
		pk := &pickers[i]
		if pk.section != section {
			section = pk.section
			b.WriteString("\n" + st.Section.Render(section) + "\n")
		}
		include := s.Get(pk.include).Bool()
		box := "[ ]"
		if include {
			box = "[x]"
		}
		b.WriteString(render(box+" "+pk.label, active(controlCheckbox, pk.include)) + "\n")
		if !include {
			continue
		}
		value := s.Get(pk.value).Text()
		opts := pk.options()
		b.WriteString("    " + render("‹ "+options.LabelFor(opts, value)+" ›", active(controlSelect, pk.value)) + "\n")
		if p.dropdown != nil && p.dropdown.field == pk.value {
			b.WriteString(viewDropdown(p.dropdown, value, st))
		}
	}

	b.WriteString("\n" + render("Custom suffix", active(controlSuffix, settings.FieldCustomSuffix)) + "\n")
	b.WriteString("  " + p.suffix.View() + "\n")
	b.WriteString("  " + st.Dim.Render("Appended to the end of every prompt") + "\n")
	return b.String()
}

func viewDropdown(d *dropdown, current string, st Styles) string {
	var b strings.Builder
	for i, o := range d.opts {
		marker := "  "
		if o.Value == current {
			marker = "✓ "
		}
		line := marker + o.Label
		if i == d.cursor {
			line = st.Focused.Render(line)
		}
		b.WriteString("      " + line + "\n")
	}
	return b.String()
}

func sliderBar(n int, st Styles) string {
	n = settings.ClampPromptCount(n)
	pos := (n - settings.MinPromptCount) * (sliderWidth - 1) / (settings.MaxPromptCount - settings.MinPromptCount)
	left := strings.Repeat("━", pos)
	right := strings.Repeat("─", sliderWidth-1-pos)
	return st.Value.Render(left+"●") + st.Dim.Render(right)
}

func sliderScale() string {
	cells := []rune(strings.Repeat(" ", sliderWidth+2))
	for _, t := range sliderTicks {
		pos := (t - settings.MinPromptCount) * (sliderWidth - 1) / (settings.MaxPromptCount - settings.MinPromptCount)
		label := []rune(fmt.Sprint(t))
		if pos+len(label) > len(cells) {
			pos = len(cells) - len(label)
		}
		copy(cells[pos:], label)
	}
	return strings.TrimRight(string(cells), " ")
}

func (p *SettingsPanel) helpLine() string {
	switch {
	case p.dbFocus:
		return ""
	case p.dropdown != nil:
		return "\n[↑/↓] Choose  [enter] Select  [esc] Cancel"
	}
	parts := []string{"[b] Database", "[t] Theme", "[e] Expand"}
	if p.expanded {
		parts = append(parts, "[↑/↓] Move", "[space] Toggle", "[←/→] Adjust", "[enter] Open list")
	}
	if p.db != nil {
		parts = append(parts, "[tab] Database")
	}
	return "\n" + strings.Join(parts, "  ")
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/config"
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/storage"
	"github.com/rgehrsitz/kanpu/internal/tui/tuistyles"
)

// defaultSalary pre-fills the form when nothing was saved
var defaultSalary = decimal.NewFromInt(5_000_000)

// Options configures a new Model
type Options struct {
	Tables     *domain.TaxTables
	InputStore *storage.InputStore
	ThemeStore *storage.ThemeStore
	Logger     calculation.Logger

	// DarkBackground resolves the "system" theme; defaults to terminal detection
	DarkBackground func() bool
}

// Model is the calculator page: an input form with a live refund estimate
type Model struct {
	fields []field
	focus  int

	calc   *calculation.RefundCalculator
	parser *config.InputParser

	inputStore *storage.InputStore
	themeStore *storage.ThemeStore
	logger     calculation.Logger

	theme          storage.Theme
	darkBackground func() bool
	styles         tuistyles.Styles

	result  *domain.RefundResult
	err     error
	saveSeq int
	dirty   bool
	status  string

	width  int
	height int
}

// NewModel creates the calculator model, restoring saved input and theme
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	calc := calculation.NewRefundCalculator(opts.Tables)
	calc.SetLogger(logger)

	m := Model{
		fields:         newFields(),
		calc:           calc,
		parser:         config.NewInputParserForTables(opts.Tables),
		inputStore:     opts.InputStore,
		themeStore:     opts.ThemeStore,
		logger:         logger,
		theme:          storage.ThemeSystem,
		darkBackground: opts.DarkBackground,
		width:          100,
		height:         40,
	}
	if m.darkBackground == nil {
		m.darkBackground = lipgloss.HasDarkBackground
	}
	if m.themeStore != nil {
		m.theme = m.themeStore.Load()
	}
	m.styles = tuistyles.New(m.isDark())

	restored := false
	if m.inputStore != nil && m.inputStore.HasData() {
		if saved := m.inputStore.Load(); saved != nil {
			fillFields(m.fields, saved)
			restored = true
			m.status = "restored saved input"
		} else {
			m.status = "saved input unreadable, starting fresh"
		}
	}
	if !restored {
		indexFields(m.fields)[fieldSalary].setAmount(defaultSalary)
	}

	m.fields[m.focus].input.Focus()
	m.recalculate()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns the latest estimate, or nil when the input is invalid
func (m Model) Result() *domain.RefundResult {
	return m.result
}

// Err returns the latest input or calculation error
func (m Model) Err() error {
	return m.err
}

func (m Model) isDark() bool {
	switch m.theme {
	case storage.ThemeDark:
		return true
	case storage.ThemeLight:
		return false
	default:
		return m.darkBackground()
	}
}

// recalculate rebuilds the input from the form and refreshes the estimate
func (m *Model) recalculate() {
	input, err := buildInput(m.fields)
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	if err := m.parser.ValidateInput(input); err != nil {
		m.result, m.err = nil, err
		return
	}
	result, err := m.calc.Calculate(input)
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	m.result, m.err = result, nil
}

// save writes the current form if it can be parsed
func (m *Model) save() {
	m.dirty = false
	if m.inputStore == nil {
		return
	}
	input, err := buildInput(m.fields)
	if err != nil {
		m.logger.Debugf("not saving unparsable input: %v", err)
		return
	}
	m.inputStore.Save(input)
	m.status = "saved"
}

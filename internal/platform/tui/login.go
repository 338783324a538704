package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-arcade/internal/account"
)

// AuthMode selects what the login form does.
type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthRegister
	AuthRecover
)

func (m AuthMode) title() string {
	switch m {
	case AuthRegister:
		return "CREATE ACCOUNT"
	case AuthRecover:
		return "RECOVER PASSWORD"
	default:
		return "LOG IN"
	}
}

type field struct {
	label  string
	secret bool
	limit  int
}

var (
	loginFields    = []field{{"Name", false, 32}, {"Password", true, 64}}
	registerFields = []field{
		{"Name", false, 32},
		{"Password", true, 64},
		{"Confirm password", true, 64},
		{"Security question", false, 80},
		{"Hint (optional)", false, 80},
		{"Answer", false, 80},
	}
	recoverNameFields   = []field{{"Name", false, 32}}
	recoverAnswerFields = []field{{"Answer", false, 80}, {"New password", true, 64}, {"Confirm password", true, 64}}
)

// LoginModel is the form for logging in, registering and recovering a
// password through the security question.
type LoginModel struct {
	accounts *account.Manager
	mode     AuthMode
	fields   []field
	inputs   []textinput.Model
	focus    int

	// Recovery asks for the name first, then shows the question.
	recoverName string
	question    string
	hint        string

	err      error
	result   *account.Account
	back     bool
	quitting bool
	width    int
	height   int
}

// NewLoginModel creates the form for mode.
func NewLoginModel(accounts *account.Manager, mode AuthMode, width, height int) LoginModel {
	m := LoginModel{accounts: accounts, mode: mode, width: width, height: height}
	switch mode {
	case AuthRegister:
		m.setFields(registerFields)
	case AuthRecover:
		m.setFields(recoverNameFields)
	default:
		m.setFields(loginFields)
	}
	return m
}

func (m *LoginModel) setFields(fields []field) {
	m.fields = fields
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = f.limit
		in.Width = 30
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs[i] = in
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m LoginModel) value(i int) string {
	return m.inputs[i].Value()
}

// Init initializes the form.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.back = true
			return m, nil
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit runs the form's action. Failures stay on the form.
func (m *LoginModel) submit() {
	m.err = nil
	if m.accounts == nil {
		m.err = errNoStorage
		return
	}

	var (
		acc account.Account
		err error
	)
	switch m.mode {
	case AuthLogin:
		acc, err = m.accounts.Login(m.value(0), m.value(1))

	case AuthRegister:
		acc, err = m.accounts.Register(account.Registration{
			Name:     m.value(0),
			Password: m.value(1),
			Confirm:  m.value(2),
			Question: m.value(3),
			Hint:     m.value(4),
			Answer:   m.value(5),
		})

	case AuthRecover:
		if m.recoverName == "" {
			q, hint, qerr := m.accounts.Question(m.value(0))
			if qerr != nil {
				m.err = qerr
				return
			}
			m.recoverName = m.value(0)
			m.question, m.hint = q, hint
			m.setFields(recoverAnswerFields)
			return
		}
		acc, err = m.accounts.Recover(m.recoverName, m.value(0), m.value(1), m.value(2))
	}

	if err != nil {
		m.err = err
		return
	}
	m.result = &acc
}

// View renders the form.
func (m LoginModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.mode.title()))
	b.WriteString("\n\n")

	if m.recoverName != "" {
		b.WriteString("Account: " + m.recoverName + "\n")
		b.WriteString("Question: " + m.question + "\n")
		if m.hint != "" {
			b.WriteString(hintStyle.Render("Hint: "+m.hint) + "\n")
		}
		b.WriteString("\n")
	}

	for i, f := range m.fields {
		label := "  " + f.label
		if i == m.focus {
			label = cursorText.Render("> " + f.label)
		}
		b.WriteString(label + "\n")
		b.WriteString("  " + m.inputs[i].View() + "\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(authMessage(m.err)))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("Tab/Up/Down: Field  |  Enter: Next/Submit  |  Esc: Back"))

	return centerBlock(panelStyle.Render(b.String()), m.width, m.height)
}

// authMessage turns account errors into a line for the form.
func authMessage(err error) string {
	switch {
	case errors.Is(err, account.ErrUnknownAccount):
		return "No account with that name."
	case errors.Is(err, account.ErrWrongPassword):
		return "Wrong password."
	case errors.Is(err, account.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, account.ErrAccountExists):
		return "That name is taken."
	case errors.Is(err, account.ErrWrongAnswer):
		return "That is not the answer."
	case errors.Is(err, account.ErrInvalidName):
		return "Names use letters, digits, '-' and '_' only."
	case errors.Is(err, account.ErrEmptyPassword):
		return "Password cannot be empty."
	case errors.Is(err, account.ErrNoQuestion):
		return "A security question and answer are required."
	case errors.Is(err, errNoStorage):
		return "Accounts are unavailable without a database."
	default:
		return "Error: " + err.Error()
	}
}

// Result returns the logged-in account, or nil while the form is open.
func (m LoginModel) Result() *account.Account {
	return m.result
}

// Err returns the last failure shown on the form.
func (m LoginModel) Err() error {
	return m.err
}

// WantsBack returns true if user pressed back.
func (m LoginModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LoginModel) IsQuitting() bool {
	return m.quitting
}

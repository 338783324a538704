// Package account manages player accounts: registration, login and
// password recovery through a security question.
// Account records live in the storage system namespace; each account's
// data (ranking, saved game, options) lives in its own namespace.
package account

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

var (
	ErrUnknownAccount   = errors.New("account: unknown account")
	ErrWrongPassword    = errors.New("account: wrong password")
	ErrPasswordMismatch = errors.New("account: passwords do not match")
	ErrAccountExists    = errors.New("account: account already exists")
	ErrWrongAnswer      = errors.New("account: wrong answer")
	ErrInvalidName      = errors.New("account: invalid name")
	ErrEmptyPassword    = errors.New("account: empty password")
	ErrNoQuestion       = errors.New("account: security question and answer required")
)

// Record is the stored form of an account.
type Record struct {
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"password_hash"`
	Question     string    `json:"question"`
	Hint         string    `json:"hint,omitempty"`
	AnswerHash   []byte    `json:"answer_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Account is an authenticated player.
type Account struct {
	Name      string
	Namespace string
}

// Guest is the account used when nobody is logged in.
var Guest = Account{Name: storage.GuestNamespace, Namespace: storage.GuestNamespace}

// IsGuest reports whether a is the unauthenticated account.
func (a Account) IsGuest() bool {
	return a.Namespace == storage.GuestNamespace
}

// Registration is the data entered in the sign-up form.
type Registration struct {
	Name     string
	Password string
	Confirm  string
	Question string
	Hint     string
	Answer   string
}

// Manager reads and writes account records.
type Manager struct {
	store *storage.Store
	cost  int
	now   func() time.Time
}

// NewManager creates a manager backed by store.
func NewManager(store *storage.Store) *Manager {
	return &Manager{store: store, cost: bcrypt.DefaultCost, now: time.Now}
}

func (m *Manager) records() (map[string]Record, error) {
	recs := map[string]Record{}
	if _, err := m.store.GetJSON(storage.SystemNamespace, storage.KeyAccounts, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = map[string]Record{}
	}
	return recs, nil
}

func (m *Manager) writeRecords(recs map[string]Record) error {
	return m.store.PutJSON(storage.SystemNamespace, storage.KeyAccounts, recs)
}

// validName returns the namespace for name, or ErrInvalidName when the name
// would not survive sanitizing unchanged or collides with the guest account.
func validName(name string) (string, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	ns := storage.Namespace(clean)
	if clean == "" || ns != clean || ns == storage.GuestNamespace {
		return "", fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidName, name)
	}
	return ns, nil
}

func normalizeAnswer(s string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(s)))
}

// Register creates an account and returns it logged in.
func (m *Manager) Register(r Registration) (Account, error) {
	ns, err := validName(r.Name)
	if err != nil {
		return Account{}, err
	}
	if r.Password == "" {
		return Account{}, ErrEmptyPassword
	}
	if r.Password != r.Confirm {
		return Account{}, ErrPasswordMismatch
	}
	if strings.TrimSpace(r.Question) == "" || strings.TrimSpace(r.Answer) == "" {
		return Account{}, ErrNoQuestion
	}

	recs, err := m.records()
	if err != nil {
		return Account{}, err
	}
	if _, ok := recs[ns]; ok {
		return Account{}, ErrAccountExists
	}

	pw, err := bcrypt.GenerateFromPassword([]byte(r.Password), m.cost)
	if err != nil {
		return Account{}, fmt.Errorf("account: cannot hash password: %w", err)
	}
	ans, err := bcrypt.GenerateFromPassword(normalizeAnswer(r.Answer), m.cost)
	if err != nil {
		return Account{}, fmt.Errorf("account: cannot hash answer: %w", err)
	}

	recs[ns] = Record{
		Name:         strings.TrimSpace(r.Name),
		PasswordHash: pw,
		Question:     strings.TrimSpace(r.Question),
		Hint:         strings.TrimSpace(r.Hint),
		AnswerHash:   ans,
		CreatedAt:    m.now().UTC(),
	}
	if err := m.writeRecords(recs); err != nil {
		return Account{}, err
	}
	return Account{Name: recs[ns].Name, Namespace: ns}, nil
}

func (m *Manager) lookup(name string) (string, Record, error) {
	ns := storage.Namespace(name)
	recs, err := m.records()
	if err != nil {
		return "", Record{}, err
	}
	rec, ok := recs[ns]
	if !ok {
		return "", Record{}, ErrUnknownAccount
	}
	return ns, rec, nil
}

// Login checks name and password.
func (m *Manager) Login(name, password string) (Account, error) {
	ns, rec, err := m.lookup(name)
	if err != nil {
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
		return Account{}, ErrWrongPassword
	}
	return Account{Name: rec.Name, Namespace: ns}, nil
}

// Question returns the security question and hint of an account.
func (m *Manager) Question(name string) (question, hint string, err error) {
	_, rec, err := m.lookup(name)
	if err != nil {
		return "", "", err
	}
	return rec.Question, rec.Hint, nil
}

// Recover sets a new password after checking the security answer.
// Answers are compared case-insensitively.
func (m *Manager) Recover(name, answer, password, confirm string) (Account, error) {
	ns, rec, err := m.lookup(name)
	if err != nil {
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword(rec.AnswerHash, normalizeAnswer(answer)) != nil {
		return Account{}, ErrWrongAnswer
	}
	if password == "" {
		return Account{}, ErrEmptyPassword
	}
	if password != confirm {
		return Account{}, ErrPasswordMismatch
	}

	pw, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return Account{}, fmt.Errorf("account: cannot hash password: %w", err)
	}
	rec.PasswordHash = pw

	recs, err := m.records()
	if err != nil {
		return Account{}, err
	}
	recs[ns] = rec
	if err := m.writeRecords(recs); err != nil {
		return Account{}, err
	}
	return Account{Name: rec.Name, Namespace: ns}, nil
}

// Names returns the display names of all accounts.
func (m *Manager) Names() ([]string, error) {
	recs, err := m.records()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}
	slices.Sort(names)
	return names, nil
}

// Trusted returns the account for an externally authenticated user, such as
// an SSH login, registering nothing. Names that cannot be used fall back to
// Guest.
func Trusted(name string) Account {
	ns, err := validName(name)
	if err != nil {
		return Guest
	}
	return Account{Name: strings.TrimSpace(name), Namespace: ns}
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrAuth = errors.New("authentication failed")

// demoVerificationCode is issued to every registration in this demo identity
// provider; a real deployment would send a one-time code by email.
const demoVerificationCode = "123456"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"is_verified"`
}

type record struct {
	user     User
	codeHash []byte
}

// Service is an in-memory identity provider: register issues a verification
// code (bcrypt-hashed at rest), verify unlocks the account, login returns the
// user record plus a session token.
type Service struct {
	mu       sync.Mutex
	users    map[string]*record // keyed by email
	sessions map[string]string  // token -> email
	logger   *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		users:    make(map[string]*record),
		sessions: make(map[string]string),
		logger:   logger,
	}
}

// Register creates a pending (unverified) user. Registering an existing
// email is rejected.
func (s *Service) Register(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrAuth)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoVerificationCode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing verification code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return fmt.Errorf("%w: email already registered", ErrAuth)
	}

	s.users[email] = &record{
		user:     newUser(email, false),
		codeHash: hash,
	}
	s.logger.Info("user registered, verification pending", zap.String("email", email))
	return nil
}

// VerifyCode checks the code against the stored hash and marks the user
// verified on match.
func (s *Service) VerifyCode(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[email]
	if !ok {
		return false
	}
	if err := bcrypt.CompareHashAndPassword(rec.codeHash, []byte(code)); err != nil {
		return false
	}

	rec.user.Verified = true
	return true
}

// Login returns the user record and a fresh session token. Unknown emails
// are auto-provisioned as verified demo users; a registered-but-unverified
// account must complete verification first.
func (s *Service) Login(email string) (User, string, error) {
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", fmt.Errorf("%w: invalid email", ErrAuth)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[email]
	if !ok {
		rec = &record{user: newUser(email, true)}
		s.users[email] = rec
	}
	if !rec.user.Verified {
		return User{}, "", fmt.Errorf("%w: account not verified", ErrAuth)
	}

	token := uuid.NewString()
	s.sessions[token] = email
	return rec.user, token, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(token string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.sessions[token]
	if !ok {
		return User{}, false
	}
	rec, ok := s.users[email]
	if !ok {
		return User{}, false
	}
	return rec.user, true
}

// Logout invalidates a session token.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// userNamespace scopes the deterministic user ids derived from emails.
var userNamespace = uuid.MustParse("8f0e3f1c-5b2a-4d0e-9c4d-1f6a7b3e2d01")

// UserID returns the stable identifier for an email. Orders are keyed by
// this id, so it must not change between sessions: seeded demo history is
// owned by the id the demo login resolves to.
func UserID(email string) string {
	return "user-" + uuid.NewSHA1(userNamespace, []byte(email)).String()
}

func newUser(email string, verified bool) User {
	name := email
	if i := strings.Index(email, "@"); i > 0 {
		name = email[:i]
	}
	return User{
		ID:       UserID(email),
		Email:    email,
		Name:     name,
		Verified: verified,
	}
}

package identity

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusly/lms-platform/internal/core/ports"
)

// Messages the memory provider answers with. They match GoTrue's wording.
const (
	msgAlreadyRegistered = "User already registered"
	msgShortThrottle     = "For security purposes, you can only request this after 48 seconds."
	msgGenericThrottle   = "For security purposes, you can only request this once every 60 seconds"
)

type memoryAccount struct {
	id           string
	passwordHash []byte
	meta         ports.SignupMetadata
}

// MemoryProvider is an in-process identity provider for development and tests.
type MemoryProvider struct {
	mu       sync.Mutex
	accounts map[string]memoryAccount
	failNext []*ports.ProviderError
	cost     int
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]memoryAccount),
		cost:     bcrypt.DefaultCost,
	}
}

// WithCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (p *MemoryProvider) WithCost(cost int) *MemoryProvider {
	p.cost = cost
	return p
}

// ThrottleNext makes the next signup fail with the 48-second throttling message.
func (p *MemoryProvider) ThrottleNext() {
	p.FailNext(&ports.ProviderError{Status: http.StatusTooManyRequests, Code: "over_email_send_rate_limit", Message: msgShortThrottle})
}

// ThrottleNextGeneric makes the next signup fail with the generic throttling message.
func (p *MemoryProvider) ThrottleNextGeneric() {
	p.FailNext(&ports.ProviderError{Status: http.StatusTooManyRequests, Code: "over_request_rate_limit", Message: msgGenericThrottle})
}

// FailNext queues err for the next signup call.
func (p *MemoryProvider) FailNext(err *ports.ProviderError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = append(p.failNext, err)
}

func (p *MemoryProvider) SignUp(ctx context.Context, email, password string, meta ports.SignupMetadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.failNext) > 0 {
		err := p.failNext[0]
		p.failNext = p.failNext[1:]
		return "", err
	}

	key := strings.ToLower(email)
	if _, ok := p.accounts[key]; ok {
		return "", &ports.ProviderError{Status: http.StatusUnprocessableEntity, Code: "user_already_exists", Message: msgAlreadyRegistered}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", &ports.ProviderError{Status: http.StatusUnprocessableEntity, Code: "weak_password", Message: err.Error()}
	}

	id := uuid.NewString()
	p.accounts[key] = memoryAccount{id: id, passwordHash: hash, meta: meta}
	return id, nil
}

// Authenticate reports the account id and metadata for valid credentials.
func (p *MemoryProvider) Authenticate(email, password string) (string, ports.SignupMetadata, bool) {
	p.mu.Lock()
	acct, ok := p.accounts[strings.ToLower(email)]
	p.mu.Unlock()
	if !ok {
		return "", ports.SignupMetadata{}, false
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return "", ports.SignupMetadata{}, false
	}
	return acct.id, acct.meta, true
}

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"gripinvest/internal/models"
	"gripinvest/internal/repositories"
)

// In-memory doubles for the repository and collaborator interfaces. The
// reset store is shared with the user repo so the password-change
// transaction semantics (conditional consume + void the rest) can be
// reproduced under a single lock.

type fakeResetRepo struct {
	mu      sync.Mutex
	records []*models.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo { return &fakeResetRepo{} }

func (r *fakeResetRepo) Create(userID int, secretHash, kind string, expiresAt time.Time) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pr := range r.records {
		if pr.UserID == userID && pr.Kind == kind && !pr.Used {
			pr.Used = true
		}
	}
	pr := &models.PasswordReset{
		ID:         uuid.NewString(),
		UserID:     userID,
		SecretHash: secretHash,
		Kind:       kind,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}
	r.records = append(r.records, pr)
	return pr, nil
}

func (r *fakeResetRepo) RecentCandidates(userID int, kind string, limit int) ([]*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []*models.PasswordReset
	for i := len(r.records) - 1; i >= 0 && len(res) < limit; i-- {
		pr := r.records[i]
		if pr.UserID == userID && pr.Kind == kind && !pr.Used {
			cp := *pr
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeResetRepo) MarkUsed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markUsedLocked(id)
}

func (r *fakeResetRepo) markUsedLocked(id string) error {
	for _, pr := range r.records {
		if pr.ID == id {
			if pr.Used {
				return repositories.ErrAlreadyUsed
			}
			pr.Used = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeResetRepo) liveCount(userID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, pr := range r.records {
		if pr.UserID == userID && !pr.Used {
			n++
		}
	}
	return n
}

type fakeUserRepo struct {
	mu     sync.Mutex
	seq    int
	users  map[int]*models.User
	resets *fakeResetRepo
}

func newFakeUserRepo(resets *fakeResetRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, resets: resets}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) UpdateRiskAppetite(userID int, riskAppetite string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.RiskAppetite = riskAppetite
	return nil
}

func (r *fakeUserRepo) UpdatePasswordAndClearResets(userID int, newHash, matchedResetID string) error {
	r.resets.mu.Lock()
	defer r.resets.mu.Unlock()

	if err := r.resets.markUsedLocked(matchedResetID); err != nil {
		return err
	}
	for _, pr := range r.resets.records {
		if pr.UserID == userID && !pr.Used {
			pr.Used = true
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = newHash
	return nil
}

func (r *fakeUserRepo) GetCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

type fakeEmail struct {
	mu       sync.Mutex
	failing  bool
	welcomes []string
	otps     []string
	links    []string
}

func (f *fakeEmail) SendWelcomeEmail(email, firstName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("smtp: connection refused")
	}
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeEmail) SendResetOTP(email, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("smtp: connection refused")
	}
	f.otps = append(f.otps, otp)
	return nil
}

func (f *fakeEmail) SendResetLink(email, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("smtp: connection refused")
	}
	f.links = append(f.links, link)
	return nil
}

func (f *fakeEmail) lastOTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.otps) == 0 {
		return ""
	}
	return f.otps[len(f.otps)-1]
}

func (f *fakeEmail) lastLink() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.links) == 0 {
		return ""
	}
	return f.links[len(f.links)-1]
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*models.Product{}}
}

func (r *fakeProductRepo) add(p *models.Product) *models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) Create(p *models.Product) error {
	r.add(p)
	return nil
}

func (r *fakeProductRepo) Update(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List() ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Product
	for _, p := range r.products {
		cp := *p
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeProductRepo) ListByRisk(riskLevel string) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Product
	for _, p := range r.products {
		if p.RiskLevel == riskLevel {
			cp := *p
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeProductRepo) GetCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

type fakeInvestmentRepo struct {
	mu          sync.Mutex
	investments []*models.Investment
}

func newFakeInvestmentRepo() *fakeInvestmentRepo { return &fakeInvestmentRepo{} }

func (r *fakeInvestmentRepo) Create(inv *models.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	inv.CreatedAt = time.Now()
	cp := *inv
	r.investments = append(r.investments, &cp)
	return nil
}

func (r *fakeInvestmentRepo) GetByID(id string) (*models.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.investments {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeInvestmentRepo) ListByUser(userID int) ([]*models.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Investment
	for _, inv := range r.investments {
		if inv.UserID == userID {
			cp := *inv
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeInvestmentRepo) GetTotalInvested() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, inv := range r.investments {
		total += inv.Amount
	}
	return total, nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []*models.TransactionLog
}

func newFakeLogRepo() *fakeLogRepo { return &fakeLogRepo{} }

func (r *fakeLogRepo) Create(entry *models.TransactionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListAll(limit int) ([]*models.TransactionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*models.TransactionLog, len(r.entries))
	copy(res, r.entries)
	return res, nil
}

func (r *fakeLogRepo) ListByUser(userID, limit int) ([]*models.TransactionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.TransactionLog
	for _, e := range r.entries {
		if e.UserID != nil && *e.UserID == userID {
			res = append(res, e)
		}
	}
	return res, nil
}

func (r *fakeLogRepo) ListByEmail(email string, limit int) ([]*models.TransactionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.TransactionLog
	for _, e := range r.entries {
		if e.Email != nil && *e.Email == email {
			res = append(res, e)
		}
	}
	return res, nil
}

// fakeGenerator is a canned TextGenerator.
type fakeGenerator struct {
	reply string
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

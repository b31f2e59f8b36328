package account

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/budgetly/budgetly/internal/mail"
	"github.com/budgetly/budgetly/internal/passwordreset"
	"github.com/budgetly/budgetly/internal/security"
	"github.com/budgetly/budgetly/internal/users"
	"github.com/budgetly/budgetly/internal/verification"
)

// memRepo is an in-memory Repository. WithTx restores a snapshot when the
// callback fails.
type memRepo struct {
	mu            sync.Mutex
	users         map[uuid.UUID]users.User
	verifications []verification.Record
	resets        []passwordreset.Record

	lookupMisses           bool
	errFindByEmail         error
	errInsertUser          error
	errInsertVerification  error
	errDeleteVerifications error
	errMarkVerified        error
	errDeleteResets        error
	errInsertReset         error
	errUpdatePassword      error

	// errCommit fails WithTx after the callback succeeded.
	errCommit error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uuid.UUID]users.User{}}
}

type memSnapshot struct {
	users         map[uuid.UUID]users.User
	verifications []verification.Record
	resets        []passwordreset.Record
}

func (r *memRepo) snapshot() memSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[uuid.UUID]users.User, len(r.users))
	for k, v := range r.users {
		cp[k] = v
	}
	return memSnapshot{
		users:         cp,
		verifications: append([]verification.Record(nil), r.verifications...),
		resets:        append([]passwordreset.Record(nil), r.resets...),
	}
}

func (r *memRepo) restore(s memSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users, r.verifications, r.resets = s.users, s.verifications, s.resets
}

func (r *memRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	snap := r.snapshot()
	if err := fn(ctx, r); err != nil {
		r.restore(snap)
		return err
	}
	if r.errCommit != nil {
		r.restore(snap)
		return r.errCommit
	}
	return nil
}

func (r *memRepo) FindUserByEmail(_ context.Context, email string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errFindByEmail != nil {
		return nil, r.errFindByEmail
	}
	if r.lookupMisses {
		return nil, users.ErrNotFound
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *memRepo) FindUserByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) InsertUser(_ context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errInsertUser != nil {
		return users.User{}, r.errInsertUser
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return users.User{}, users.ErrDuplicateEmail
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *memRepo) InsertVerification(_ context.Context, rec verification.Record) (verification.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errInsertVerification != nil {
		return verification.Record{}, r.errInsertVerification
	}
	rec.ID = uuid.New()
	r.verifications = append(r.verifications, rec)
	return rec, nil
}

func (r *memRepo) LatestVerification(_ context.Context, userID uuid.UUID) (*verification.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []verification.Record
	for _, rec := range r.verifications {
		if rec.UserID == userID {
			found = append(found, rec)
		}
	}
	if len(found) == 0 {
		return nil, verification.ErrNotFound
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return &found[0], nil
}

func (r *memRepo) LatestReset(_ context.Context, userID uuid.UUID) (*passwordreset.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []passwordreset.Record
	for _, rec := range r.resets {
		if rec.UserID == userID {
			found = append(found, rec)
		}
	}
	if len(found) == 0 {
		return nil, passwordreset.ErrNotFound
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return &found[0], nil
}

func (r *memRepo) DeleteResets(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errDeleteResets != nil {
		return 0, r.errDeleteResets
	}
	kept := r.resets[:0:0]
	var n int64
	for _, rec := range r.resets {
		if rec.UserID == userID {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.resets = kept
	return n, nil
}

func (r *memRepo) DeleteVerifications(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errDeleteVerifications != nil {
		return 0, r.errDeleteVerifications
	}
	kept := r.verifications[:0:0]
	var n int64
	for _, rec := range r.verifications {
		if rec.UserID == userID {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.verifications = kept
	return n, nil
}

func (r *memRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return users.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errMarkVerified != nil {
		return r.errMarkVerified
	}
	u, ok := r.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Verified = true
	r.users[id] = u
	return nil
}

func (r *memRepo) InsertReset(_ context.Context, rec passwordreset.Record) (passwordreset.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errInsertReset != nil {
		return passwordreset.Record{}, r.errInsertReset
	}
	rec.ID = uuid.New()
	r.resets = append(r.resets, rec)
	return rec, nil
}

func (r *memRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errUpdatePassword != nil {
		return r.errUpdatePassword
	}
	u, ok := r.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *memRepo) DeleteExpiredVerifications(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owners []uuid.UUID
	kept := r.verifications[:0:0]
	for _, rec := range r.verifications {
		if rec.Expired(now) {
			owners = append(owners, rec.UserID)
			continue
		}
		kept = append(kept, rec)
	}
	r.verifications = kept
	return owners, nil
}

func (r *memRepo) DeleteUnverifiedUsers(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !u.Verified {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

func (r *memRepo) DeleteExpiredResets(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.resets[:0:0]
	for _, rec := range r.resets {
		if rec.Expired(now) {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.resets = kept
	return n, nil
}

func (r *memRepo) userByEmail(email string) (users.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return users.User{}, false
}

func (r *memRepo) counts() (nUsers, nVerifications, nResets int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), len(r.verifications), len(r.resets)
}

// outbox captures sent mail.
type outbox struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

// lastLink returns the link of the newest message and its trailing
// userID/token segments.
func (o *outbox) lastLink(t *testing.T) (link, userID, token string) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no mail sent")
	m := hrefRe.FindStringSubmatch(o.sent[len(o.sent)-1].HTML)
	require.Len(t, m, 2, "no link in mail body")
	link = m[1]
	parts := strings.Split(link, "/")
	require.GreaterOrEqual(t, len(parts), 2)
	return link, parts[len(parts)-2], parts[len(parts)-1]
}

// faultyHasher delegates to a real hasher unless an error knob is set.
type faultyHasher struct {
	security.Hasher
	errHash    error
	errCompare error
}

func (h *faultyHasher) Hash(plain string) (string, error) {
	if h.errHash != nil {
		return "", h.errHash
	}
	return h.Hasher.Hash(plain)
}

func (h *faultyHasher) Compare(hash, plain string) (bool, error) {
	if h.errCompare != nil {
		return false, h.errCompare
	}
	return h.Hasher.Compare(hash, plain)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordedOutcome struct{ op, outcome string }

type memRecorder struct {
	mu  sync.Mutex
	got []recordedOutcome
}

func (m *memRecorder) ObserveLifecycle(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, recordedOutcome{op, outcome})
}

type fixture struct {
	svc    *Service
	repo   *memRepo
	mail   *outbox
	clock  *fakeClock
	hasher *faultyHasher
}

const (
	testBaseURL     = "https://api.budgetly.test"
	testRedirectURL = "https://app.budgetly.test/reset"
)

func newFixture(t *testing.T, locker Locker) *fixture {
	t.Helper()
	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	renderer, err := mail.NewRenderer()
	require.NoError(t, err)

	f := &fixture{
		repo:   newMemRepo(),
		mail:   &outbox{},
		clock:  &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		hasher: &faultyHasher{Hasher: hasher},
	}
	f.svc = NewService(f.repo, f.hasher, f.mail, renderer, locker, ServiceConfig{
		BaseURL:           testBaseURL + "/",
		RedirectAllowlist: []string{"https://app.budgetly.test"},
	}, nil)
	f.svc.WithNow(f.clock.Now)
	return f
}

func validSignup() SignupInput {
	return SignupInput{
		Name:        "George Doe",
		Email:       "george@example.com",
		Password:    "correct-horse",
		DateOfBirth: "1990-01-01",
	}
}

// verifiedUser signs up and verifies the default user.
func (f *fixture) verifiedUser(t *testing.T) users.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.svc.Signup(ctx, validSignup()))
	_, userID, token := f.mail.lastLink(t)
	require.NoError(t, f.svc.Verify(ctx, userID, token))
	u, ok := f.repo.userByEmail(validSignup().Email)
	require.True(t, ok)
	require.True(t, u.Verified)
	return u
}

var errBoom = errors.New("boom")

func usersFixture(email string) users.User {
	return users.User{Name: "Someone", Email: email, PasswordHash: "x", DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)}
}

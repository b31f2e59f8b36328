package account

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/budgetly/budgetly/internal/mail"
	"github.com/budgetly/budgetly/internal/passwordreset"
	"github.com/budgetly/budgetly/internal/platform/cache"
	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/security"
	"github.com/budgetly/budgetly/internal/shared"
	"github.com/budgetly/budgetly/internal/users"
	"github.com/budgetly/budgetly/internal/verification"
)

const (
	// DefaultVerificationTTL is how long a verification link stays valid.
	DefaultVerificationTTL = 6 * time.Hour
	// DefaultResetTTL is how long a reset link stays valid.
	DefaultResetTTL = 60 * time.Minute

	defaultLockTTL = 30 * time.Second

	subjectVerify = "Verify Your Email"
	subjectReset  = "Password Reset"
)

// Locker grants short-lived exclusive keys.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// Recorder counts lifecycle outcomes.
type Recorder interface {
	ObserveLifecycle(operation, outcome string)
}

// ServiceConfig groups lifecycle settings.
type ServiceConfig struct {
	BaseURL           string
	VerificationTTL   time.Duration
	ResetTTL          time.Duration
	LockTTL           time.Duration
	RedirectAllowlist []string
}

// Service runs the account lifecycle: signup, verification, sign-in and
// password reset.
type Service struct {
	repo      Repository
	hasher    security.Hasher
	mailer    mail.Sender
	renderer  *mail.Renderer
	locker    Locker
	validate  *validator.Validate
	redirects RedirectPolicy
	cfg       ServiceConfig
	logger    *slog.Logger
	metrics   Recorder
	tokens    TokenSource
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, hasher security.Hasher, mailer mail.Sender, renderer *mail.Renderer, locker Locker, cfg ServiceConfig, logger *slog.Logger) *Service {
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = DefaultVerificationTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTTL
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		mailer:    mailer,
		renderer:  renderer,
		locker:    locker,
		validate:  NewValidator(),
		redirects: NewRedirectPolicy(cfg.RedirectAllowlist),
		cfg:       cfg,
		logger:    logger,
		tokens:    RandomToken,
		now:       time.Now,
	}
}

// WithNow overrides the clock.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithTokens overrides the plaintext token source.
func (s *Service) WithTokens(src TokenSource) {
	if src != nil {
		s.tokens = src
	}
}

// WithMetrics attaches an outcome recorder.
func (s *Service) WithMetrics(r Recorder) {
	s.metrics = r
}

// Signup validates the input, creates an unverified user and sends the
// verification email. A nil error means the email went out.
func (s *Service) Signup(ctx context.Context, in SignupInput) (err error) {
	defer func() { s.finish(ctx, "signup", err) }()

	in.normalize()
	if verr := s.validate.Struct(in); verr != nil {
		return firstViolation(verr, ErrEmptyFields, signupRules, signupOutcomes)
	}
	dob, err := ParseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return ErrInvalidDOB
	}

	release, err := s.lock(ctx, cache.SignupLockKey(in.Email), ErrSignupInProgress)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.repo.FindUserByEmail(ctx, in.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, users.ErrNotFound) {
		return ErrSignupLookup.WithCause(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return ErrPasswordHash.WithCause(err)
	}
	user := users.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		DateOfBirth:  dob,
	}
	token, err := s.tokens(user.ID)
	if err != nil {
		return ErrVerificationHash.WithCause(err)
	}
	hashed, err := s.hasher.Hash(token)
	if err != nil {
		return ErrVerificationHash.WithCause(err)
	}

	// An unverified user never exists without its verification record.
	now := s.now()
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		saved, err := tx.InsertUser(ctx, user)
		if err != nil {
			if errors.Is(err, users.ErrDuplicateEmail) {
				return ErrDuplicateEmail
			}
			return ErrUserSaveFailed.WithCause(err)
		}
		user = saved
		_, err = tx.InsertVerification(ctx, verification.Record{
			UserID:      user.ID,
			HashedToken: hashed,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.cfg.VerificationTTL),
		})
		if err != nil {
			return ErrVerificationSave.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return asOutcome(err, ErrUserSaveFailed)
	}

	link, err := url.JoinPath(s.cfg.BaseURL, "user", "verify", user.ID.String(), token)
	if err != nil {
		return ErrVerificationEmail.WithCause(err)
	}
	if err := s.deliver(ctx, user.Email, subjectVerify, mail.TemplateVerify, link, s.cfg.VerificationTTL); err != nil {
		return ErrVerificationEmail.WithCause(err)
	}
	return nil
}

// Verify consumes a verification token. An expired record removes the whole
// account.
func (s *Service) Verify(ctx context.Context, rawUserID, token string) (err error) {
	defer func() { s.finish(ctx, "verify", err) }()

	userID, err := uuid.Parse(strings.TrimSpace(rawUserID))
	if err != nil {
		return ErrMalformedUserID
	}
	rec, err := s.repo.LatestVerification(ctx, userID)
	if err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			return ErrVerificationNotFound
		}
		return ErrVerificationLookup.WithCause(err)
	}

	if rec.Expired(s.now()) {
		err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
			if _, err := tx.DeleteVerifications(ctx, userID); err != nil {
				return ErrVerificationCleanup.WithCause(err)
			}
			if err := tx.DeleteUser(ctx, userID); err != nil && !errors.Is(err, users.ErrNotFound) {
				return ErrUserCleanup.WithCause(err)
			}
			return nil
		})
		if err != nil {
			return asOutcome(err, ErrVerificationCleanup)
		}
		return ErrVerificationExpired
	}

	match, err := s.hasher.Compare(rec.HashedToken, token)
	if err != nil {
		return ErrVerificationCompare.WithCause(err)
	}
	if !match {
		return ErrVerificationInvalid
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		n, err := tx.DeleteVerifications(ctx, userID)
		if err != nil {
			return ErrVerificationFinalize.WithCause(err)
		}
		if n == 0 {
			return ErrVerificationNotFound
		}
		if err := tx.MarkVerified(ctx, userID); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return ErrVerificationNotFound
			}
			return ErrVerificationUpdate.WithCause(err)
		}
		return nil
	})
	if err != nil {
		if db.IsSerializationFailure(err) {
			// A concurrent request consumed the token first.
			return ErrVerificationNotFound
		}
		return asOutcome(err, ErrVerificationFinalize)
	}
	return nil
}

// SignIn checks credentials and returns the public view of the user.
func (s *Service) SignIn(ctx context.Context, in SigninInput) (_ users.Public, err error) {
	defer func() { s.finish(ctx, "signin", err) }()

	in.normalize()
	if verr := s.validate.Struct(in); verr != nil {
		return users.Public{}, ErrEmptyCredentials
	}
	user, err := s.repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.Public{}, ErrInvalidCredentials
		}
		return users.Public{}, ErrSigninLookup.WithCause(err)
	}
	if !user.Verified {
		return users.Public{}, ErrSigninNotVerified
	}
	match, err := s.hasher.Compare(user.PasswordHash, in.Password)
	if err != nil {
		return users.Public{}, ErrPasswordCompare.WithCause(err)
	}
	if !match {
		return users.Public{}, ErrInvalidPassword
	}
	return user.Public(), nil
}

// RequestPasswordReset replaces any outstanding reset of a verified user and
// emails a fresh link built on the caller's redirect URL.
func (s *Service) RequestPasswordReset(ctx context.Context, in ResetRequestInput) (err error) {
	defer func() { s.finish(ctx, "reset_request", err) }()

	in.normalize()
	if verr := s.validate.Struct(in); verr != nil {
		return ErrEmptyResetRequest
	}
	if !s.redirects.Allowed(in.RedirectURL) {
		return ErrRedirectNotAllowed
	}

	user, err := s.repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrNoAccount
		}
		return ErrResetLookup.WithCause(err)
	}
	if !user.Verified {
		return ErrResetNotVerified
	}

	release, err := s.lock(ctx, cache.ResetLockKey(user.ID.String()), ErrResetInProgress)
	if err != nil {
		return err
	}
	defer release()

	token, err := s.tokens(user.ID)
	if err != nil {
		return ErrResetHash.WithCause(err)
	}
	hashed, err := s.hasher.Hash(token)
	if err != nil {
		return ErrResetHash.WithCause(err)
	}
	now := s.now()
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.DeleteResets(ctx, user.ID); err != nil {
			return ErrResetClear.WithCause(err)
		}
		_, err := tx.InsertReset(ctx, passwordreset.Record{
			UserID:      user.ID,
			HashedToken: hashed,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.cfg.ResetTTL),
		})
		if err != nil {
			return ErrResetSave.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return asOutcome(err, ErrResetSave)
	}

	link, err := url.JoinPath(in.RedirectURL, user.ID.String(), token)
	if err != nil {
		return ErrResetEmail.WithCause(err)
	}
	if err := s.deliver(ctx, user.Email, subjectReset, mail.TemplateReset, link, s.cfg.ResetTTL); err != nil {
		return ErrResetEmail.WithCause(err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password. A wrong
// token is reported exactly like an expired one.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) (err error) {
	defer func() { s.finish(ctx, "reset_password", err) }()

	in.normalize()
	if verr := s.validate.Struct(in); verr != nil {
		outcome := firstViolation(verr, ErrEmptyResetFields, resetRules, resetOutcomes)
		if errors.Is(outcome, ErrEmptyResetFields) {
			return outcome
		}
		if _, perr := uuid.Parse(in.UserID); perr != nil {
			return ErrResetMalformedUser
		}
		return outcome
	}
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return ErrResetMalformedUser
	}

	rec, err := s.repo.LatestReset(ctx, userID)
	if err != nil {
		if errors.Is(err, passwordreset.ErrNotFound) {
			return ErrResetNotFound
		}
		return ErrResetRecordLookup.WithCause(err)
	}
	if rec.Expired(s.now()) {
		if _, err := s.repo.DeleteResets(ctx, userID); err != nil {
			return ErrResetClearExpired.WithCause(err)
		}
		return ErrResetExpired
	}

	match, err := s.hasher.Compare(rec.HashedToken, in.ResetString)
	if err != nil {
		return ErrResetCompare.WithCause(err)
	}
	if !match {
		return ErrResetExpired
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return ErrNewPasswordHash.WithCause(err)
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		n, err := tx.DeleteResets(ctx, userID)
		if err != nil {
			return ErrResetFinalize.WithCause(err)
		}
		if n == 0 {
			return ErrResetNotFound
		}
		if err := tx.UpdatePassword(ctx, userID, hash); err != nil {
			return ErrPasswordUpdate.WithCause(err)
		}
		return nil
	})
	if err != nil {
		if db.IsSerializationFailure(err) {
			return ErrResetNotFound
		}
		return asOutcome(err, ErrResetFinalize)
	}
	return nil
}

// PurgeResult reports what a purge removed.
type PurgeResult struct {
	Verifications int
	Users         int64
	Resets        int64
}

// Purge removes expired verification records with their unverified owners and
// expired reset records.
func (s *Service) Purge(ctx context.Context) (PurgeResult, error) {
	var res PurgeResult
	now := s.now()
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		owners, err := tx.DeleteExpiredVerifications(ctx, now)
		if err != nil {
			return err
		}
		res.Verifications = len(owners)
		if res.Users, err = tx.DeleteUnverifiedUsers(ctx, dedupe(owners)); err != nil {
			return err
		}
		res.Resets, err = tx.DeleteExpiredResets(ctx, now)
		return err
	})
	if err != nil {
		return PurgeResult{}, err
	}
	return res, nil
}

func (s *Service) deliver(ctx context.Context, to, subject, template, link string, ttl time.Duration) error {
	body, err := s.renderer.Render(template, mail.LinkData{Link: link, TTL: ttl})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, mail.Message{To: to, Subject: subject, HTML: body})
}

// lock takes key or returns busy. Redis failures degrade to running unlocked;
// the unique email index and the reset transaction still hold.
func (s *Service) lock(ctx context.Context, key string, busy error) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, ok, err := s.locker.Acquire(ctx, key, s.cfg.LockTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "lock unavailable", slog.String("key", key), slog.Any("error", err))
		return func() {}, nil
	}
	if !ok {
		return nil, busy
	}
	return release, nil
}

func (s *Service) finish(ctx context.Context, op string, err error) {
	outcome := "OK"
	if err != nil {
		outcome = "UNCLASSIFIED"
		var e *shared.Error
		if errors.As(err, &e) {
			outcome = e.Code
		}
		if shared.KindOf(err) == shared.KindDependency {
			s.logger.ErrorContext(ctx, "account operation failed", slog.String("operation", op), slog.Any("error", err))
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveLifecycle(op, outcome)
	}
}

// asOutcome passes lifecycle outcomes through and wraps anything else, such
// as a failed commit, in fallback.
func asOutcome(err error, fallback *shared.Error) error {
	var e *shared.Error
	if errors.As(err, &e) {
		return err
	}
	return fallback.WithCause(err)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Package auth owns the signed-in session and the list of registered
// accounts. Other stores follow the session through Observer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"EduCom/internal/kv"
	"EduCom/internal/notify"
	"EduCom/pkg/kit"
)

const (
	demoEmail    = "admin@example.com"
	demoPassword = "password"
	demoUserID   = "user1"
	demoName     = "Nguyễn Văn Test"

	metricsStore = "session"
)

const (
	msgLoginFailed = "Email hoặc mật khẩu không đúng!"
	msgLoggedOut   = "Đã đăng xuất thành công!"
	msgRegistered  = "Đăng ký thành công! Vui lòng đăng nhập để tiếp tục."
)

func welcome(name string) string {
	return "Chào mừng trở lại, " + name + "!"
}

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type Latency struct {
	Login    time.Duration
	Register time.Duration
}

func DefaultLatency() Latency {
	return Latency{Login: time.Second, Register: time.Second}
}

type Options struct {
	Log      *zap.Logger
	Notifier notify.Notifier
	Metrics  *kit.Metrics
	Latency  Latency

	// HashPasswords stores bcrypt hashes instead of the typed password.
	HashPasswords bool
	Now           func() time.Time
}

type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	log       *zap.Logger
	notifier  notify.Notifier
	metrics   *kit.Metrics
	latency   Latency
	hash      bool
	now       func() time.Time
	observers []Observer

	session  *Session
	inflight int
	lastID   int64
}

func NewStore(store kv.Store, opts Options) *Store {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		kv:       store,
		log:      opts.Log,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		latency:  opts.Latency,
		hash:     opts.HashPasswords,
		now:      opts.Now,
	}
}

// Subscribe registers o for session changes. It is meant to be called during
// wiring, before Restore.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Restore rehydrates the session saved by a previous run. A value that does
// not decode is removed and the store starts signed out.
func (s *Store) Restore(ctx context.Context) (Session, bool, error) {
	var rec sessionRecord
	found, err := kv.GetJSON(ctx, s.kv, kv.KeyUser, &rec)
	switch {
	case errors.Is(err, kv.ErrCorrupt):
		s.log.Warn("discarding corrupt session", zap.String("key", kv.KeyUser), zap.Error(err))
		s.metrics.CorruptRecovered(kv.KeyUser)
		if err := s.kv.Remove(ctx, kv.KeyUser); err != nil {
			return Session{}, false, fmt.Errorf("remove corrupt session: %w", err)
		}
		found = false
	case err != nil:
		return Session{}, false, fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found {
		s.session = nil
		s.broadcast(ctx, "")
		return Session{}, false, nil
	}

	sess := rec.Session
	s.session = &sess
	s.broadcast(ctx, sess.UserID)
	s.log.Info("session restored", zap.String("user_id", sess.UserID))
	return sess, true, nil
}

// Login resolves credentials against the demo account and then the
// registered accounts. The simulated round trip runs without holding the
// lock, so concurrent logins settle in completion order.
func (s *Store) Login(ctx context.Context, c Credentials) (Session, error) {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	if err := kit.Wait(ctx, s.latency.Login); err != nil {
		return Session{}, err
	}

	sess, err := s.authenticate(ctx, c)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.notifier.Notify(notify.Error, msgLoginFailed)
		}
		return Session{}, err
	}

	if err := s.establish(ctx, sess, "login"); err != nil {
		return Session{}, err
	}

	s.log.Info("login", zap.String("user_id", sess.UserID))
	s.notifier.Notify(notify.Success, welcome(sess.Name))
	return sess, nil
}

func (s *Store) authenticate(ctx context.Context, c Credentials) (Session, error) {
	email := normalizeEmail(c.Email)
	if email == demoEmail && c.Password == demoPassword {
		return Session{UserID: demoUserID, Name: demoName, Email: demoEmail}, nil
	}

	list, err := s.loadAccounts(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, acc := range list {
		if normalizeEmail(acc.Email) != email || !passwordMatches(acc, c.Password) {
			continue
		}
		return Session{UserID: acc.ID, Name: acc.Name, Email: acc.Email, Avatar: acc.Avatar}, nil
	}
	return Session{}, ErrInvalidCredentials
}

func passwordMatches(acc account, password string) bool {
	if acc.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) == nil
	}
	return acc.Password == password
}

// establish makes sess current and persists it. On a failed write the
// previous session is kept.
func (s *Store) establish(ctx context.Context, sess Session, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.session
	s.session = &sess
	if err := kv.SetJSON(ctx, s.kv, kv.KeyUser, sessionRecord{Version: sessionVersion, Session: sess}); err != nil {
		s.session = prev
		return fmt.Errorf("persist session: %w", err)
	}
	s.metrics.Mutation(metricsStore, op)

	if prev == nil || prev.UserID != sess.UserID {
		s.broadcast(ctx, sess.UserID)
	}
	return nil
}

// Register appends a new account. The form is validated before anything
// else happens, and registering never signs the user in.
func (s *Store) Register(ctx context.Context, p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = normalizeEmail(p.Email)
	if err := validateProfile(p); err != nil {
		return err
	}

	if err := kit.Wait(ctx, s.latency.Register); err != nil {
		return err
	}

	acc := account{
		Name:        p.Name,
		Email:       p.Email,
		Favorites:   []string{},
		ViewHistory: []string{},
	}
	if s.hash {
		h, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		acc.PasswordHash = string(h)
	} else {
		acc.Password = p.Password
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadAccounts(ctx)
	if err != nil {
		return err
	}
	if sameEmail(p.Email, demoEmail) || slices.ContainsFunc(list, func(a account) bool { return sameEmail(a.Email, p.Email) }) {
		return ErrEmailExists
	}

	acc.ID = s.nextID(list)
	list = append(list, acc)
	if err := kv.SetJSON(ctx, s.kv, kv.KeyRegisteredUsers, list); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	s.metrics.Mutation(metricsStore, "register")

	s.log.Info("registered", zap.String("user_id", acc.ID))
	s.notifier.Notify(notify.Success, msgRegistered)
	return nil
}

// nextID derives user_<unix millis>, bumping the millisecond until it is
// unused.
func (s *Store) nextID(list accounts) string {
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	for {
		id := "user_" + strconv.FormatInt(ms, 10)
		if !slices.ContainsFunc(list, func(a account) bool { return a.ID == id }) {
			s.lastID = ms
			return id
		}
		ms++
	}
}

func (s *Store) loadAccounts(ctx context.Context) (accounts, error) {
	var list accounts
	_, err := kv.GetJSON(ctx, s.kv, kv.KeyRegisteredUsers, &list)
	switch {
	case errors.Is(err, kv.ErrCorrupt):
		s.log.Warn("discarding corrupt account list", zap.String("key", kv.KeyRegisteredUsers), zap.Error(err))
		s.metrics.CorruptRecovered(kv.KeyRegisteredUsers)
		return accounts{}, nil
	case err != nil:
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return list, nil
}

// Logout signs out and forgets the persisted session. Calling it while
// signed out is harmless.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, kv.KeyUser); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	if s.session == nil {
		return nil
	}

	uid := s.session.UserID
	s.session = nil
	s.metrics.Mutation(metricsStore, "logout")
	s.broadcast(ctx, "")

	s.log.Info("logout", zap.String("user_id", uid))
	s.notifier.Notify(notify.Info, msgLoggedOut)
	return nil
}

// UpdateProfile rewrites the name, email and avatar of the current session.
// The user id never changes.
func (s *Store) UpdateProfile(ctx context.Context, u ProfileUpdate) (Session, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = normalizeEmail(u.Email)
	if err := validateIdentity(u.Name, u.Email); err != nil {
		return Session{}, err
	}

	cur, ok := s.Current()
	if !ok {
		return Session{}, ErrNotAuthenticated
	}

	next := Session{UserID: cur.UserID, Name: u.Name, Email: u.Email, Avatar: strings.TrimSpace(u.Avatar)}
	if err := s.establish(ctx, next, "update_profile"); err != nil {
		return Session{}, err
	}

	s.notifier.Notify(notify.Success, welcome(next.Name))
	return next, nil
}

func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

func (s *Store) CurrentUserID() string {
	sess, _ := s.Current()
	return sess.UserID
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.session != nil:
		return Authenticated
	case s.inflight > 0:
		return Authenticating
	default:
		return Anonymous
	}
}

// broadcast must be called with s.mu held.
func (s *Store) broadcast(ctx context.Context, userID string) {
	for _, o := range s.observers {
		if err := o.SetCurrentUser(ctx, userID); err != nil {
			s.log.Warn("observer rejected user change", zap.String("user_id", userID), zap.Error(err))
		}
	}
}

// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/events"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

// # Users

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]*auth.User
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*auth.User{}}
}

func (f *fakeUsers) copyOf(user *auth.User) *auth.User {
	clone := *user
	return &clone
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.byID[id]; ok {
		return f.copyOf(user), nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		if strings.EqualFold(user.Email, email) {
			return f.copyOf(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		if user.Username != nil && *user.Username == username {
			return f.copyOf(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) FindAdmin(_ context.Context) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		if user.Admin {
			return f.copyOf(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) Create(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[user.ID] = f.copyOf(user)
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	return f.update(userID, func(user *auth.User) { user.PasswordHash = newHash })
}

func (f *fakeUsers) MarkConfirmed(_ context.Context, userID string, at time.Time) error {
	return f.update(userID, func(user *auth.User) { user.ConfirmedAt = &at })
}

func (f *fakeUsers) RecordSignIn(_ context.Context, userID, ip string, at time.Time) error {
	return f.update(userID, func(user *auth.User) {
		user.SignInCount++
		user.LastSignInAt, user.LastSignInIP = user.CurrentSignInAt, user.CurrentSignInIP
		user.CurrentSignInAt, user.CurrentSignInIP = &at, &ip
	})
}

func (f *fakeUsers) SetAdmin(_ context.Context, userID string, admin bool) error {
	return f.update(userID, func(user *auth.User) { user.Admin = admin })
}

func (f *fakeUsers) ClearAdmins(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		user.Admin = false
	}
	return nil
}

func (f *fakeUsers) update(userID string, fn func(user *auth.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	fn(user)
	return nil
}

func (f *fakeUsers) get(id string) *auth.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// # Sessions

type fakeSessions struct {
	mu       sync.Mutex
	sessions []*auth.Session
}

func (f *fakeSessions) Create(_ context.Context, session *auth.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, session := range f.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.each(func(session *auth.Session) bool { return session.ID == sessionID })
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userID string) error {
	f.each(func(session *auth.Session) bool { return session.UserID == userID })
	return nil
}

func (f *fakeSessions) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	f.each(func(session *auth.Session) bool {
		return session.UserID == userID && session.ID != currentSessionID
	})
	return nil
}

func (f *fakeSessions) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.sessions[:0]
	var deleted int64
	for _, session := range f.sessions {
		if session.ExpiresAt.After(time.Now()) {
			kept = append(kept, session)
			continue
		}
		deleted++
	}
	f.sessions = kept
	return deleted, nil
}

func (f *fakeSessions) each(match func(session *auth.Session) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, session := range f.sessions {
		if match(session) {
			session.IsRevoked = true
		}
	}
}

func (f *fakeSessions) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, session := range f.sessions {
		if !session.IsRevoked {
			count++
		}
	}
	return count
}

// # Tokens

type fakeTokens struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{values: map[string]string{}}
}

func (f *fakeTokens) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[token] = userID
	return nil
}

func (f *fakeTokens) Get(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if userID, ok := f.values[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (f *fakeTokens) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, token)
	return nil
}

// # Collaborators

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	return "access:" + userID + ":" + role, nil
}

type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, event *events.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) ofType(eventType string) []*events.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var matched []*events.Event
	for _, event := range n.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// # Fixture

type fixture struct {
	service  *auth.Service
	users    *fakeUsers
	sessions *fakeSessions
	resets   *fakeTokens
	confirms *fakeTokens
	notifier *recordingNotifier
}

func newFixture() *fixture {
	f := &fixture{
		users:    newFakeUsers(),
		sessions: &fakeSessions{},
		resets:   newFakeTokens(),
		confirms: newFakeTokens(),
		notifier: &recordingNotifier{},
	}
	f.service = auth.NewService(auth.Dependencies{
		Users:         f.users,
		Sessions:      f.sessions,
		ResetTokens:   f.resets,
		ConfirmTokens: f.confirms,
		Tokens:        fakeTokenProvider{},
		Tx:            inlineTx{},
		Notifier:      f.notifier,
	})
	return f
}

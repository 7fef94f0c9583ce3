package repository

import (
	"context"
	"fmt"
	"strings"

	"book-catalog/internal/data/entity"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository answers "who may log in". The table is read-only after construction.
type CredentialRepository interface {
	Verify(ctx context.Context, username, password string) bool
	Exists(ctx context.Context, username string) bool
}

type credentialRepository struct {
	hashes    map[string]string
	dummyHash string
	log       *zap.Logger
}

// development principals used when no users are configured
var defaultPrincipals = []struct{ username, password string }{
	{"mark", "mark123"},
	{"joe", "joe456"},
}

func NewCredentialRepository(credentials []entity.Credential, log *zap.Logger) (CredentialRepository, error) {
	if len(credentials) == 0 {
		return nil, fmt.Errorf("no credentials configured")
	}

	hashes := make(map[string]string, len(credentials))
	cost := bcrypt.DefaultCost
	for i, c := range credentials {
		hashCost, err := bcrypt.Cost([]byte(c.PasswordHash))
		if err != nil {
			return nil, fmt.Errorf("credential %q: invalid bcrypt hash: %w", c.Username, err)
		}
		if i == 0 {
			cost = hashCost
		}
		hashes[c.Username] = c.PasswordHash
	}

	// compared against for unknown users so both paths pay for one bcrypt comparison
	dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-user-placeholder"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate placeholder hash: %w", err)
	}

	return &credentialRepository{
		hashes:    hashes,
		dummyHash: string(dummy),
		log:       log.With(zap.String("repository", "credential")),
	}, nil
}

func (r *credentialRepository) Verify(_ context.Context, username, password string) bool {
	hash, ok := r.hashes[username]
	if !ok {
		utils.CheckPasswordHash(password, r.dummyHash)
		r.log.Debug("Unknown username", zap.String("username", username))
		return false
	}

	return utils.CheckPasswordHash(password, hash)
}

func (r *credentialRepository) Exists(_ context.Context, username string) bool {
	_, ok := r.hashes[username]
	return ok
}

// ParseCredentials reads "user:bcrypt-hash,user2:bcrypt-hash". An empty string yields the
// development principals, hashed on the fly.
func ParseCredentials(value string) ([]entity.Credential, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultCredentials()
	}

	var credentials []entity.Credential
	seen := make(map[string]bool)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		// bcrypt hashes contain '$' but never ':'
		username, hash, found := strings.Cut(entry, ":")
		username = strings.TrimSpace(username)
		hash = strings.TrimSpace(hash)
		if !found || username == "" || hash == "" {
			return nil, fmt.Errorf("invalid credential entry %q, expected user:bcrypt-hash", entry)
		}
		if seen[username] {
			return nil, fmt.Errorf("duplicate credential for %q", username)
		}
		seen[username] = true

		credentials = append(credentials, entity.Credential{Username: username, PasswordHash: hash})
	}

	if len(credentials) == 0 {
		return DefaultCredentials()
	}

	return credentials, nil
}

func DefaultCredentials() ([]entity.Credential, error) {
	credentials := make([]entity.Credential, 0, len(defaultPrincipals))
	for _, p := range defaultPrincipals {
		hash, err := utils.HashPassword(p.password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", p.username, err)
		}
		credentials = append(credentials, entity.Credential{Username: p.username, PasswordHash: hash})
	}
	return credentials, nil
}

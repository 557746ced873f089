package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shandysiswandi/postlearn/internal/identity/entity"
	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/jwt"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

type clocker interface {
	Now() time.Time
}

type sessionFile struct {
	Email        string    `yaml:"email"`
	AccessToken  string    `yaml:"access_token"`
	RefreshToken string    `yaml:"refresh_token"`
	SavedAt      time.Time `yaml:"saved_at"`
}

// FileStore keeps the last verified credential pair in a YAML file readable
// only by the current user.
type FileStore struct {
	path  string
	clock clocker
	ins   instrument.Instrumentation
}

func NewFileStore(path string, clock clocker, ins instrument.Instrumentation) *FileStore {
	return &FileStore{path: path, clock: clock, ins: ins}
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.session").Start(ctx, name)
}

func (s *FileStore) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Save replaces the stored session. The file is written next to its final
// location and renamed so a reader never sees a partial file.
func (s *FileStore) Save(ctx context.Context, email string, cred entity.Credential) (err error) {
	ctx, span := s.startSpan(ctx, "Save")
	defer func() { s.endSpan(span, err) }()

	data, err := yaml.Marshal(sessionFile{
		Email:        email,
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		SavedAt:      s.clock.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store session file: %w", err)
	}

	slog.InfoContext(ctx, "session saved", "email", email, "path", s.path)
	return nil
}

// Load reads the stored session. It returns goerror.ErrNotFound when nothing
// was saved yet.
func (s *FileStore) Load(ctx context.Context) (_ *entity.Session, err error) {
	_, span := s.startSpan(ctx, "Load")
	defer func() { s.endSpan(span, err) }()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}

	return &entity.Session{
		Email: f.Email,
		Credential: entity.Credential{
			AccessToken:  f.AccessToken,
			RefreshToken: f.RefreshToken,
		},
		SavedAt: f.SavedAt,
	}, nil
}

// Clear removes the stored session; a missing file is not an error.
func (s *FileStore) Clear(ctx context.Context) (err error) {
	_, span := s.startSpan(ctx, "Clear")
	defer func() { s.endSpan(span, err) }()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Claims decodes the access token for display. The signature is not checked.
func (s *FileStore) Claims(accessToken string) (entity.TokenClaims, error) {
	c, err := jwt.Inspect(accessToken)
	if err != nil {
		return entity.TokenClaims{}, err
	}

	tc := entity.TokenClaims{Subject: c.Subject, Email: c.Email}
	if c.IssuedAt != nil {
		tc.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		tc.ExpiresAt = c.ExpiresAt.Time
	}
	return tc, nil
}

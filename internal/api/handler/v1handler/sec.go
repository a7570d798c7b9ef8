package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

type userKey struct{}

// SecHandlerOptions configure bearer authentication.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with. An empty
	// key disables authentication.
	PublicKey string
	// Issuer, when set, must match the iss claim.
	Issuer string
}

func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey, Issuer: cfg.JWT.Issuer}
}

// SecHandler verifies RS256 bearer tokens whose subject is a user id.
type SecHandler struct {
	key     *rsa.PublicKey
	parser  *jwt.Parser
	enabled bool
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse JWT public key: %w", err)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Minute),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	return &SecHandler{key: key, parser: jwt.NewParser(parserOpts...), enabled: true}, nil
}

// Enabled reports whether requests must carry a token.
func (s *SecHandler) Enabled() bool { return s.enabled }

// Authenticate returns the user a token was issued for. With authentication
// disabled every caller is domain.AnonymousUser.
func (s *SecHandler) Authenticate(token string) (domain.UserID, error) {
	if !s.enabled {
		return domain.AnonymousUser, nil
	}

	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return s.key, nil }); err != nil {
		return domain.UserID{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.UserID{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return domain.UserID(id), nil
}

// IssueToken signs an RS256 token for user valid for ttl from now.
func IssueToken(key *rsa.PrivateKey, issuer string, user domain.UserID, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   user.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user domain.UserID) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, or the anonymous user when
// none was stored.
func UserFromContext(ctx context.Context) domain.UserID {
	if id, ok := ctx.Value(userKey{}).(domain.UserID); ok {
		return id
	}

	return domain.AnonymousUser
}

func bearerToken(r *http.Request) string {
	scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(value)
}

// RequireAuth rejects requests without a valid bearer token and tags the
// context logger with the caller.
func (h Handler) RequireAuth(sec *SecHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && sec.Enabled() {
				h.WriteError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			user, err := sec.Authenticate(token)
			if err != nil {
				logger.Debug(r.Context(), "rejected bearer token", zap.Error(err))
				h.WriteError(w, r, err)

				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = logger.WithFields(ctx, zap.Stringer("userId", user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

func TestJWTCommand(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.PrivateKey = string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}))
	cfg.JWT.PublicKey = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	cfg.JWT.Issuer = "hsdt"

	sec, err := v1handler.NewSecHandler(v1handler.NewSecHandlerOptions(cfg))
	require.NoError(t, err)

	user := uuid.New()
	var out bytes.Buffer
	cmd := JWTCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--subject", user.String(), "--ttl", "5m"})
	require.NoError(t, cmd.Execute())

	got, err := sec.Authenticate(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, domain.UserID(user), got)

	cmd = JWTCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--subject", "alice"})
	require.ErrorContains(t, cmd.Execute(), "subject must be a UUID")
}

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuyensinh/admission-advisor/utils/auth"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "admissionctl.db"))
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("REDIS_URL", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSeedThenContext(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	_, err = run(t, "seed")
	require.NoError(t, err)

	out, err = run(t, "context", "HUST", "có", "mấy", "ngành")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "intent: major_count\n"), out)
	assert.Contains(t, out, "📊 Đại học Bách khoa Hà Nội có tổng cộng 3 ngành đào tạo:")
}

func TestContextWithoutMatches(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "context", "   ")
	require.NoError(t, err)
	assert.Equal(t, "intent: general\n(no matching admission data)\n", out)
}

func TestContextRequiresQuery(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "context")
	assert.Error(t, err)
}

func TestTokenIssue(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "token", "issue", "--user", "12")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "jti: "))

	manager, err := auth.NewJWTManager(auth.JWTConfig{Secret: "cli-secret"})
	require.NoError(t, err)
	claims, err := manager.ValidateToken(lines[1])
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, strings.TrimPrefix(lines[0], "jti: "), claims.ID)
}

func TestTokenIssueRejectsZeroUser(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "token", "issue", "--user", "0")
	assert.Error(t, err)
}

func TestTokenRevokeRequiresRedis(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "token", "issue", "--user", "3")
	require.NoError(t, err)
	token := strings.Split(strings.TrimSpace(out), "\n")[1]

	_, err = run(t, "token", "revoke", token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

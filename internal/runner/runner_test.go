package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"":                       "''",
		"/home/daily":            "/home/daily",
		"db-2024-01-01.tar.gz":   "db-2024-01-01.tar.gz",
		"my backup.tar.gz":       "'my backup.tar.gz'",
		"it's.tar.gz":            `'it'\''s.tar.gz'`,
		"$(reboot)":              "'$(reboot)'",
		"a;rm -rf /":             "'a;rm -rf /'",
		"--":                     "--",
		"/home/monthly/*.tar.gz": "'/home/monthly/*.tar.gz'",
	}
	for in, want := range tests {
		assert.Equal(t, want, Quote(in), "Quote(%q)", in)
	}
}

func TestShellJoin(t *testing.T) {
	got := ShellJoin("cp", "--", "/home/daily/db 1.tar.gz", "/home/monthly")
	assert.Equal(t, "cp -- '/home/daily/db 1.tar.gz' /home/monthly", got)
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	out, err := ExecRunner{}.Run(context.Background(), 5*time.Second, "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestExecRunner_Timeout(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), 50*time.Millisecond, "sleep", "5")
	require.Error(t, err)
}

func TestMockRunner_ResponsesAndVerification(t *testing.T) {
	m := NewMockRunner()
	m.SetListing("/home/daily", "a-2024-01-01.tar.gz", "b-2024-01-02.tar.gz")
	boom := errors.New("boom")
	m.AddResponse(Key("rm", "--", "/x"), []byte("rm: cannot remove"), boom)

	out, err := m.Run(context.Background(), time.Second, "ls", "-1", "--", "/home/daily")
	require.NoError(t, err)
	assert.Equal(t, "a-2024-01-01.tar.gz\nb-2024-01-02.tar.gz\n", string(out))

	out, err = m.Run(context.Background(), time.Second, "rm", "--", "/x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "rm: cannot remove", string(out))

	assert.True(t, m.VerifyCommand("rm", "--", "/x"))
	assert.False(t, m.VerifyCommand("rm", "--", "/y"))
	assert.True(t, m.VerifyRunCount("ls", 1))
}

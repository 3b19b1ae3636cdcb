package runner

import (
	"context"
	"strings"
	"time"
)

type MockRunner struct {
	Commands     []MockCommand
	Responses    map[string]MockResponse
	ResponseFunc func(name string, args ...string) ([]byte, error)
}

type MockCommand struct {
	Name    string
	Args    []string
	Timeout time.Duration
}

type MockResponse struct {
	Output []byte
	Error  error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Commands:  []MockCommand{},
		Responses: make(map[string]MockResponse),
	}
}

func (m *MockRunner) Run(
	ctx context.Context,
	timeout time.Duration,
	name string,
	args ...string,
) ([]byte, error) {
	m.Commands = append(m.Commands, MockCommand{
		Name:    name,
		Args:    args,
		Timeout: timeout,
	})

	key := cmdKey(name, args...)
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Error
	}
	if m.ResponseFunc != nil {
		return m.ResponseFunc(name, args...)
	}
	return []byte{}, nil
}

func (m *MockRunner) AddResponse(key string, output []byte, err error) {
	m.Responses[key] = MockResponse{
		Output: output,
		Error:  err,
	}
}

func cmdKey(name string, args ...string) string {
	key := name
	for _, arg := range args {
		key += "|" + arg
	}
	return key
}

// Key builds the response key for a command, e.g. Key("rm", "--", "/a") == "rm|--|/a".
func Key(name string, args ...string) string { return cmdKey(name, args...) }

func (m *MockRunner) VerifyCommand(name string, args ...string) bool {
	for _, cmd := range m.Commands {
		if cmd.Name == name && argsEqual(cmd.Args, args) {
			return true
		}
	}
	return false
}

func (m *MockRunner) VerifyRunCount(name string, count int) bool {
	runCount := 0
	for _, cmd := range m.Commands {
		if cmd.Name == name {
			runCount++
		}
	}
	return runCount == count
}

func argsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetListing primes the `ls -1 -- dir` response with one filename per line.
func (m *MockRunner) SetListing(dir string, files ...string) {
	var output string
	if len(files) > 0 {
		output = strings.Join(files, "\n") + "\n"
	}
	m.AddResponse(cmdKey("ls", "-1", "--", dir), []byte(output), nil)
}

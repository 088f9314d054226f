package mcpserver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/erraggy/oasgate/jsonld"
)

// fakeChecker fails every URL listed in dead and records each probe.
type fakeChecker struct {
	mu     sync.Mutex
	dead   map[string]bool
	probed []string
}

func (f *fakeChecker) CheckURL(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, url)
	if f.dead[url] {
		return errors.New("HTTP 404: 404 Not Found")
	}
	return nil
}

// useChecker routes tool URL probes to checker for the duration of the test.
func useChecker(t *testing.T, checker jsonld.URLChecker) {
	t.Helper()
	orig := newURLChecker
	newURLChecker = func(*serverConfig) jsonld.URLChecker { return checker }
	t.Cleanup(func() { newURLChecker = orig })
}

// useConfig replaces the server configuration with a modified copy.
func useConfig(t *testing.T, mutate func(*serverConfig)) {
	t.Helper()
	orig := cfg
	base := *orig.Config
	c := *orig
	c.Config = &base
	mutate(&c)
	cfg = &c
	t.Cleanup(func() { cfg = orig })
}

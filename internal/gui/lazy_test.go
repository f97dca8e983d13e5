package gui

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/datapantry/pantry-gui/internal/catalog"
)

type fakeApp struct {
	runs int
}

func (f *fakeApp) Run() error { f.runs++; return nil }

func (f *fakeApp) AddCatalog(location string) (*catalog.Catalog, error) {
	return &catalog.Catalog{Name: "fake", Location: location}, nil
}

func (f *fakeApp) Catalogs() []*catalog.Catalog { return nil }

// TestLazyConstructsOnce tests that the factory runs exactly once
func TestLazyConstructsOnce(t *testing.T) {
	calls := 0
	fake := &fakeApp{}
	l := NewLazy(func() (App, error) {
		calls++
		return fake, nil
	})

	if l.Instance() != App(fake) {
		t.Error("Instance should return the factory result")
	}
	l.Instance()
	l.Instance()

	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
}

// TestLazyFailureYieldsStub tests the unavailable stub and its diagnostic
func TestLazyFailureYieldsStub(t *testing.T) {
	cause := errors.New("no display")
	calls := 0
	l := NewLazy(func() (App, error) {
		calls++
		return nil, cause
	})

	app := l.Instance()
	err := app.Run()
	if err == nil {
		t.Fatal("stub Run should fail")
	}
	if !strings.Contains(err.Error(), MinToolkitVersion) {
		t.Errorf("diagnostic %q should name the minimum toolkit version %s", err, MinToolkitVersion)
	}
	if !errors.Is(err, cause) {
		t.Error("diagnostic should wrap the construction failure")
	}

	if _, err := app.AddCatalog("x.yaml"); err == nil {
		t.Error("stub AddCatalog should fail")
	}
	if got := app.Catalogs(); got != nil {
		t.Errorf("stub Catalogs = %v, want nil", got)
	}

	// The failure is cached; later access does not retry.
	l.Instance()
	if calls != 1 {
		t.Errorf("factory ran %d times after failure, want 1", calls)
	}
}

// TestCheckDisplayHeadless tests headless detection on Linux
func TestCheckDisplayHeadless(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display detection is Linux-only")
	}

	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	if err := CheckDisplay(); err == nil {
		t.Error("expected error with no display variables set")
	}

	t.Setenv("DISPLAY", ":0")
	if err := CheckDisplay(); err != nil {
		t.Errorf("expected nil with DISPLAY set, got %v", err)
	}
}

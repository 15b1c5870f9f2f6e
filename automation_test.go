package main

import (
	"testing"
	"time"
)

func TestNewAutomation(t *testing.T) {
	config := DefaultConfig()
	automation := NewAutomation(config)

	if automation == nil {
		t.Fatal("NewAutomation returned nil")
	}

	if automation.config != config {
		t.Error("Automation config does not match provided config")
	}

	if automation.browser != nil || automation.page != nil || automation.launcher != nil {
		t.Error("NewAutomation should not launch anything")
	}
}

func TestIsBrowserAlive(t *testing.T) {
	automation := NewAutomation(DefaultConfig())

	if automation.isBrowserAlive() {
		t.Error("isBrowserAlive() should return false when browser is nil")
	}
}

func TestAutomationCloseWithoutBrowser(t *testing.T) {
	automation := NewAutomation(DefaultConfig())

	// Must not panic when nothing was launched
	automation.Close()
	automation.Close()
}

func TestDebugLog(t *testing.T) {
	config := DefaultConfig()
	automation := NewAutomation(config)

	automation.debugLog("Test message: %s", "test")

	config.DebugMode = true
	automation.debugLog("Debug enabled: %d", 42)
}

func TestFormTimeouts(t *testing.T) {
	config := DefaultConfig()
	config.PageLoadTimeout = 12
	config.ConfirmTimeoutMs = 750

	automation := NewAutomation(config)
	form, ok := automation.Form().(*rodForm)
	if !ok {
		t.Fatalf("Form() returned %T, want *rodForm", automation.Form())
	}

	if form.loadTimeout != 12*time.Second {
		t.Errorf("loadTimeout = %v, want 12s", form.loadTimeout)
	}
	if form.confirmTimeout != 750*time.Millisecond {
		t.Errorf("confirmTimeout = %v, want 750ms", form.confirmTimeout)
	}
}

func TestSetupBrowser(t *testing.T) {
	// Requires a local Chrome
	t.Skip("Skipping browser-dependent test")
}

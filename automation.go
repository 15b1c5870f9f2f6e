package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Automation owns the browser session: one launcher, one browser, one order page.
type Automation struct {
	config   *Config
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

func NewAutomation(config *Config) *Automation {
	return &Automation{
		config: config,
	}
}

func (a *Automation) Close() {
	fmt.Println(T("cleaning_up"))

	if a.page != nil {
		a.page.Close()
		a.page = nil
	}

	if a.browser != nil {
		a.browser.Close()
		a.browser = nil
	}

	if a.launcher != nil {
		a.launcher.Cleanup()
		a.launcher = nil
	}

	fmt.Println(T("browser_destroyed"))
}

func (a *Automation) isBrowserAlive() bool {
	if a.browser == nil {
		return false
	}

	_, err := a.browser.Version()
	if err != nil {
		a.debugLog("Browser version check failed: %v", err)
		return false
	}

	if a.page != nil {
		_, err := a.page.Info()
		if err != nil {
			a.debugLog("Page info check failed: %v", err)
			return false
		}
	}

	return true
}

func (a *Automation) debugLog(format string, args ...interface{}) {
	if a.config.DebugMode {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (a *Automation) setupBrowser() error {
	fmt.Println(T("browser_launching"))

	// Disable leakless mode on Windows to prevent deadlock
	// See: https://github.com/go-rod/rod/issues/853
	useLeakless := runtime.GOOS != "windows"

	chromePath, chromeExists := launcher.LookPath()

	a.launcher = launcher.New().
		Leakless(useLeakless).
		Headless(a.config.Headless)

	// Must be set before Bin()
	if a.config.BrowserProfilePath != "" {
		a.launcher = a.launcher.UserDataDir(a.config.BrowserProfilePath)
		a.debugLog("Browser profile: %s", a.config.BrowserProfilePath)
	}

	if chromeExists {
		a.launcher = a.launcher.Bin(chromePath)
		fmt.Println(T("browser_using_system_chrome"))
		a.debugLog("Chrome binary: %s", chromePath)
	} else {
		fmt.Println(T("browser_chrome_not_found"))
	}

	url, err := a.launcher.Launch()
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "ProcessSingleton") || strings.Contains(errMsg, "SingletonLock") {
			fmt.Println(T("error_chrome_already_running"))
		}
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	a.browser = rod.New().
		ControlURL(url).
		SlowMotion(time.Duration(a.config.SlowMotionMs) * time.Millisecond)
	if err := a.browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	if a.config.Stealth {
		a.page, err = stealth.Page(a.browser)
		if err != nil {
			return fmt.Errorf("failed to create stealth page: %w", err)
		}
		a.debugLog("Stealth mode enabled")
	} else {
		a.page, err = a.browser.Page(proto.TargetCreateTarget{})
		if err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}
	}

	fmt.Println(T("browser_launched"))
	return nil
}

// Form exposes the order page to the workflow. setupBrowser must have succeeded.
func (a *Automation) Form() OrderForm {
	return newRodForm(a.page, a.config, a.debugLog)
}

// RenderPDF prints markup to PDF in a scratch tab so the order page keeps its state.
func (a *Automation) RenderPDF(html string) ([]byte, error) {
	if a.browser == nil {
		return nil, fmt.Errorf("browser is not running")
	}

	page, err := a.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open render tab: %w", err)
	}
	defer page.Close()

	page = page.Timeout(time.Duration(a.config.PageLoadTimeout) * time.Second)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to load receipt markup: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("receipt markup failed to load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return nil, fmt.Errorf("failed to print receipt: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read printed receipt: %w", err)
	}
	return data, nil
}

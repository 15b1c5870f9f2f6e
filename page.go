package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// OrderForm is everything the workflow does to the order page.
// rodForm drives a real browser; tests use a scripted fake.
type OrderForm interface {
	Open(url string) error
	ClickText(text string) error
	Click(selector string) error
	ClickXPath(xpath string) error
	// SelectOption picks the option with the given text. An empty text
	// clears the selection.
	SelectOption(selector, text string) error
	Fill(selector, value string) error
	// Present reports whether selector shows up within the confirm timeout.
	Present(selector string) (bool, error)
	InnerHTML(selector string) (string, error)
	Screenshot(selector string) ([]byte, error)
}

type rodForm struct {
	page           *rod.Page
	loadTimeout    time.Duration
	confirmTimeout time.Duration
	debugLog       func(format string, args ...interface{})
}

func newRodForm(page *rod.Page, config *Config, debugLog func(string, ...interface{})) *rodForm {
	return &rodForm{
		page:           page,
		loadTimeout:    time.Duration(config.PageLoadTimeout) * time.Second,
		confirmTimeout: time.Duration(config.ConfirmTimeoutMs) * time.Millisecond,
		debugLog:       debugLog,
	}
}

func (f *rodForm) Open(url string) error {
	page := f.page.Timeout(f.loadTimeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page failed to load: %w", err)
	}
	return nil
}

func (f *rodForm) ClickText(text string) error {
	el, err := f.page.Timeout(f.loadTimeout).ElementR("button", "^\\s*"+regexp.QuoteMeta(text)+"\\s*$")
	if err != nil {
		return fmt.Errorf("no %q control: %w", text, err)
	}
	return f.click(el, text)
}

func (f *rodForm) Click(selector string) error {
	el, err := f.page.Timeout(f.loadTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("no element %s: %w", selector, err)
	}
	return f.click(el, selector)
}

func (f *rodForm) ClickXPath(xpath string) error {
	el, err := f.page.Timeout(f.loadTimeout).ElementX(xpath)
	if err != nil {
		return fmt.Errorf("no element %s: %w", xpath, err)
	}
	return f.click(el, xpath)
}

func (f *rodForm) click(el *rod.Element, name string) error {
	if err := el.Timeout(f.loadTimeout).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %s: %w", name, err)
	}
	f.debugLog("Clicked %s", name)
	return nil
}

func (f *rodForm) SelectOption(selector, text string) error {
	el, err := f.page.Timeout(f.loadTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("no element %s: %w", selector, err)
	}

	if text == "" {
		_, err := el.Eval(`() => {
			this.selectedIndex = -1;
			this.dispatchEvent(new Event('input', { bubbles: true }));
			this.dispatchEvent(new Event('change', { bubbles: true }));
		}`)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", selector, err)
		}
		return nil
	}

	if err := el.Timeout(f.loadTimeout).Select([]string{text}, true, rod.SelectorTypeText); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", text, selector, err)
	}
	return nil
}

func (f *rodForm) Fill(selector, value string) error {
	el, err := f.page.Timeout(f.loadTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("no element %s: %w", selector, err)
	}
	el = el.Timeout(f.loadTimeout)

	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

func (f *rodForm) Present(selector string) (bool, error) {
	_, err := f.page.Timeout(f.confirmTimeout).Element(selector)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	return false, err
}

func (f *rodForm) InnerHTML(selector string) (string, error) {
	el, err := f.page.Timeout(f.loadTimeout).Element(selector)
	if err != nil {
		return "", fmt.Errorf("no element %s: %w", selector, err)
	}

	res, err := el.Eval(`() => this.innerHTML`)
	if err != nil {
		return "", fmt.Errorf("failed to read %s markup: %w", selector, err)
	}
	return res.Value.Str(), nil
}

func (f *rodForm) Screenshot(selector string) ([]byte, error) {
	el, err := f.page.Timeout(f.loadTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("no element %s: %w", selector, err)
	}

	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("%s never became visible: %w", selector, err)
	}

	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to screenshot %s: %w", selector, err)
	}
	return data, nil
}

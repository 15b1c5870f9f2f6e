package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lang/en_US.yaml
var defaultCatalog []byte

type Locale struct {
	translations map[string]string
	locale       string
}

var globalLocale *Locale

// InitLocale initializes the global locale system
func InitLocale() error {
	locale := DetectSystemLocale()

	l, err := LoadLocale(locale)
	if err != nil {
		if locale != "en_US" {
			fmt.Printf("Warning: Failed to load locale '%s', falling back to en_US: %v\n", locale, err)
		}
		l, err = parseLocale("en_US", defaultCatalog)
		if err != nil {
			return fmt.Errorf("failed to load built-in locale en_US: %w", err)
		}
	}

	globalLocale = l
	return nil
}

// DetectSystemLocale detects the user's system locale
func DetectSystemLocale() string {
	for _, env := range []string{"LANG", "LC_ALL", "LC_MESSAGES"} {
		if locale := os.Getenv(env); locale != "" {
			// Typically like "en_US.UTF-8"
			parts := strings.Split(locale, ".")
			if parts[0] != "" && parts[0] != "C" && parts[0] != "POSIX" {
				return parts[0]
			}
		}
	}

	if runtime.GOOS == "windows" {
		if locale := os.Getenv("LANG"); locale != "" {
			return locale
		}
	}

	return "en_US"
}

// LoadLocale loads a locale file from the lang/ directory next to the
// executable, then from the working directory.
func LoadLocale(locale string) (*Locale, error) {
	var dirs []string
	if exePath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exePath), "lang"))
	}
	dirs = append(dirs, "lang")

	return loadLocaleFrom(dirs, locale)
}

func loadLocaleFrom(dirs []string, locale string) (*Locale, error) {
	var lastErr error
	for _, dir := range dirs {
		localeFile := filepath.Join(dir, locale+".yaml")

		data, err := os.ReadFile(localeFile)
		if err != nil {
			lastErr = fmt.Errorf("failed to read locale file %s: %w", localeFile, err)
			continue
		}

		l, err := parseLocale(locale, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", localeFile, err)
		}
		return l, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no locale directories to search")
	}
	return nil, lastErr
}

func parseLocale(locale string, data []byte) (*Locale, error) {
	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, err
	}

	return &Locale{
		translations: translations,
		locale:       locale,
	}, nil
}

// T translates a key with optional parameters
// Usage: T("orders_loaded", 20) => "   20 orders to submit"
func T(key string, params ...interface{}) string {
	if globalLocale == nil {
		return key
	}

	translation, ok := globalLocale.translations[key]
	if !ok {
		return key
	}

	if len(params) > 0 {
		return fmt.Sprintf(translation, params...)
	}

	return translation
}

// GetLocale returns the current locale code (e.g., "en_US", "ru_RU")
func GetLocale() string {
	if globalLocale == nil {
		return "en_US"
	}
	return globalLocale.locale
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OrderSiteURL string `yaml:"order_site_url"`
	OrdersCSVURL string `yaml:"orders_csv_url"`

	OrdersFile     string `yaml:"orders_file"`
	ReceiptsDir    string `yaml:"receipts_dir"`
	ScreenshotsDir string `yaml:"screenshots_dir"`
	ArchivePath    string `yaml:"archive_path"`

	// HeadCatalog maps the CSV "Head" code to the option text of the head dropdown.
	HeadCatalog map[string]string `yaml:"head_catalog"`

	MaxSubmitAttempts int `yaml:"max_submit_attempts"`

	BrowserProfilePath string `yaml:"browser_profile_path"`

	PageLoadTimeout  int `yaml:"page_load_timeout"`
	ConfirmTimeoutMs int `yaml:"confirm_timeout_ms"`
	SlowMotionMs     int `yaml:"slow_motion_ms"`

	DownloadTimeout int `yaml:"download_timeout"`
	DownloadRetries int `yaml:"download_retries"`

	Headless bool `yaml:"headless"`
	Stealth  bool `yaml:"stealth"`

	MetricsFile string `yaml:"metrics_file"`

	DebugMode bool `yaml:"debug_mode"`

	Selectors SelectorConfig `yaml:"selectors"`
}

type SelectorConfig struct {
	DialogOKText string `yaml:"dialog_ok_text"`
	HeadSelect   string `yaml:"head_select"`

	// BodyChoiceXPath takes the 1-based body index as its only verb.
	BodyChoiceXPath string `yaml:"body_choice_xpath"`

	LegsInput          string `yaml:"legs_input"`
	AddressInput       string `yaml:"address_input"`
	OrderButton        string `yaml:"order_button"`
	OrderAnotherButton string `yaml:"order_another_button"`
	Receipt            string `yaml:"receipt"`
	PreviewImage       string `yaml:"preview_image"`
}

// DefaultHeadCatalog returns the head dropdown labels of the robot order form.
func DefaultHeadCatalog() map[string]string {
	return map[string]string{
		"1": "Roll-a-thor head",
		"2": "Peanut crusher head",
		"3": "D.A.V.E head",
		"4": "Andy Roid head",
		"5": "Spanner mate head",
		"6": "Drillbit 2000 head",
	}
}

func DefaultConfig() *Config {
	return &Config{
		OrderSiteURL:       "https://robotsparebinindustries.com/#/robot-order",
		OrdersCSVURL:       "https://robotsparebinindustries.com/orders.csv",
		OrdersFile:         "orders.csv",
		ReceiptsDir:        filepath.Join("output", "receipts"),
		ScreenshotsDir:     filepath.Join("output", "screenshots"),
		ArchivePath:        filepath.Join("output", "receipts.zip"),
		HeadCatalog:        DefaultHeadCatalog(),
		MaxSubmitAttempts:  3,
		BrowserProfilePath: "",
		PageLoadTimeout:    30,
		ConfirmTimeoutMs:   2000,
		SlowMotionMs:       500,
		DownloadTimeout:    30,
		DownloadRetries:    0,
		Headless:           false,
		Stealth:            false,
		MetricsFile:        "",
		DebugMode:          false,
		Selectors: SelectorConfig{
			DialogOKText:       "OK",
			HeadSelect:         "#head",
			BodyChoiceXPath:    `//*[@id="root"]/div/div[1]/div/div[1]/form/div[2]/div/div[%d]/label`,
			LegsInput:          "input[placeholder='Enter the part number for the legs']",
			AddressInput:       "#address",
			OrderButton:        "#order",
			OrderAnotherButton: "#order-another",
			Receipt:            "#receipt",
			PreviewImage:       "#robot-preview-image",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path); err != nil {
			return nil, err
		}
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// yaml.v3 merges into a non-nil map, so a file catalog replaces the default instead.
	config.HeadCatalog = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.HeadCatalog == nil {
		config.HeadCatalog = DefaultHeadCatalog()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if config.BrowserProfilePath != "" {
		if err := os.MkdirAll(config.BrowserProfilePath, 0755); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the workflow cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.OrderSiteURL == "":
		return fmt.Errorf("order_site_url is required")
	case c.OrdersCSVURL == "":
		return fmt.Errorf("orders_csv_url is required")
	case c.OrdersFile == "":
		return fmt.Errorf("orders_file is required")
	case c.ReceiptsDir == "" || c.ScreenshotsDir == "":
		return fmt.Errorf("receipts_dir and screenshots_dir are required")
	case c.ArchivePath == "":
		return fmt.Errorf("archive_path is required")
	case len(c.HeadCatalog) == 0:
		return fmt.Errorf("head_catalog must not be empty")
	case c.MaxSubmitAttempts < 1:
		return fmt.Errorf("max_submit_attempts must be at least 1, got %d", c.MaxSubmitAttempts)
	case c.Selectors.BodyChoiceXPath == "":
		return fmt.Errorf("selectors.body_choice_xpath is required")
	}
	return nil
}

// ReceiptPath is the PDF receipt location for an order number.
func (c *Config) ReceiptPath(orderNumber int) string {
	return filepath.Join(c.ReceiptsDir, fmt.Sprintf("%d.pdf", orderNumber))
}

// ScreenshotPath is the PNG preview location for an order number.
func (c *Config) ScreenshotPath(orderNumber int) string {
	return filepath.Join(c.ScreenshotsDir, fmt.Sprintf("%d.png", orderNumber))
}

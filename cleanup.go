package main

import "os"

// cleanup removes the working directories and the downloaded feed. A path that
// is already gone is an error, same as for any other filesystem failure.
func cleanup(config *Config) error {
	for _, dir := range []string{config.ReceiptsDir, config.ScreenshotsDir} {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}

	return os.Remove(config.OrdersFile)
}

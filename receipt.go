package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// screenshotStamp places the robot preview under the receipt text on page 1.
const screenshotStamp = "pos:bc, sc:0.4 rel, rot:0, op:1"

// ReceiptRenderer turns receipt markup into PDF bytes.
type ReceiptRenderer interface {
	RenderPDF(html string) ([]byte, error)
}

// ReceiptInfo is what the confirmation markup says about a placed order.
type ReceiptInfo struct {
	OrderID string
	Address string
	Parts   []string
}

var receiptPolicy = newReceiptPolicy()

func newReceiptPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id", "role").Globally()
	return p
}

// parseReceipt reads the order id, address and part list out of the #receipt markup.
func parseReceipt(html string) (ReceiptInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ReceiptInfo{}, fmt.Errorf("failed to parse receipt: %w", err)
	}

	info := ReceiptInfo{
		OrderID: strings.TrimSpace(doc.Find(".badge-success").First().Text()),
	}

	// The address is the first plain paragraph after the order badge.
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("badge") {
			return true
		}
		info.Address = strings.TrimSpace(s.Text())
		return false
	})

	doc.Find("#parts div").Each(func(_ int, s *goquery.Selection) {
		if part := strings.TrimSpace(s.Text()); part != "" {
			info.Parts = append(info.Parts, part)
		}
	})

	return info, nil
}

// receiptDocument wraps sanitized receipt markup in a standalone page for printing.
func receiptDocument(fragment string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Receipt</title>`)
	b.WriteString(`<style>body{font-family:sans-serif;margin:2em}.badge{font-weight:bold}</style>`)
	b.WriteString(`</head><body>`)
	b.WriteString(receiptPolicy.Sanitize(fragment))
	b.WriteString(`</body></html>`)
	return b.String()
}

// embedScreenshot stamps the PNG at imagePath onto the first page of the PDF at
// pdfPath, rewriting the PDF in place.
func embedScreenshot(pdfPath, imagePath string) error {
	conf := model.NewDefaultConfiguration()
	if err := api.AddImageWatermarksFile(pdfPath, pdfPath, []string{"1"}, true, imagePath, screenshotStamp, conf); err != nil {
		return fmt.Errorf("pdfcpu stamp %s onto %s: %w", imagePath, pdfPath, err)
	}
	return nil
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

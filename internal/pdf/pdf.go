package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Converter 以 wkhtmltopdf 把 HTML 轉成 PDF
type Converter struct{}

// New path 為空時由 go-wkhtmltopdf 自行尋找 (WKHTMLTOPDF_PATH 或 PATH)
func New(path string) *Converter {
	if path != "" {
		wkhtmltopdf.SetPath(path)
	}
	return &Converter{}
}

var newPDFGenerator = wkhtmltopdf.NewPDFGenerator

func (c *Converter) Convert(ctx context.Context, html string) ([]byte, error) {
	g, err := newPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	g.PageSize.Set(wkhtmltopdf.PageSizeA4)
	g.Dpi.Set(300)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	g.AddPage(page)

	if err := g.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return g.Bytes(), nil
}

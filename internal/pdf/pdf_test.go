package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/stretchr/testify/require"
)

func TestConvertGeneratorError(t *testing.T) {
	t.Cleanup(func() { newPDFGenerator = wkhtmltopdf.NewPDFGenerator })
	newPDFGenerator = func() (*wkhtmltopdf.PDFGenerator, error) {
		return nil, errors.New("wkhtmltopdf not found")
	}
	_, err := New("").Convert(context.Background(), "<p>hi</p>")
	require.ErrorContains(t, err, "wkhtmltopdf not found")
}

func TestConvertMissingBinary(t *testing.T) {
	t.Cleanup(func() { wkhtmltopdf.SetPath("") })
	_, err := New("/nonexistent/wkhtmltopdf").Convert(context.Background(), "<p>hi</p>")
	require.Error(t, err)
}

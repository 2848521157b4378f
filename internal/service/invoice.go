package service

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"north-trips/internal/database"
	"north-trips/internal/metrics"
	"north-trips/internal/model"
	"north-trips/internal/store"
	"north-trips/internal/worker"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	companyName  = "North Trips and Travel"
	supportEmail = "admin@northtripsandtravel.com"
	invoiceIDTS  = "2006-01-02-15-04-05"
)

//go:embed templates/invoice.html
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html"))

var getBookingDetail = store.GetBookingDetail

// PDFConverter 把 HTML 轉成 PDF
type PDFConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Invoice 發票畫面所需的欄位，數字已格式化
type Invoice struct {
	BookingID       int
	InvoiceID       string
	Date            string
	Status          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	TourName        string
	TourDate        string
	Participants    int
	UnitPrice       string
	Total           string
	GrandTotal      string
	Company         string
	SupportEmail    string
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

// BuildInvoice 由訂單與使用者資料組出發票
func BuildInvoice(d model.BookingDetail) Invoice {
	unit := 0.0
	if d.Participants > 0 {
		unit = d.TotalPrice / float64(d.Participants)
	}
	return Invoice{
		BookingID:       d.ID,
		InvoiceID:       fmt.Sprintf("INV-%d-%s", d.ID, d.CreatedAt.Format(invoiceIDTS)),
		Date:            d.CreatedAt.Format(model.DateLayout),
		Status:          cases.Title(language.English).String(string(d.Status)),
		CustomerName:    d.UserName,
		CustomerEmail:   d.UserEmail,
		CustomerPhone:   orNA(d.UserPhone),
		CustomerAddress: orNA(d.UserAddress),
		TourName:        d.TourName,
		TourDate:        d.TourDate.Format(model.DateLayout),
		Participants:    d.Participants,
		UnitPrice:       FormatAmount(unit),
		Total:           FormatAmount(d.TotalPrice),
		GrandTotal:      FormatAmount(d.TotalPrice) + " PKR",
		Company:         companyName,
		SupportEmail:    supportEmail,
	}
}

// RenderInvoiceHTML 使用內嵌的版型輸出 HTML
func RenderInvoiceHTML(inv Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, inv); err != nil {
		return "", fmt.Errorf("RenderInvoiceHTML: %w", err)
	}
	return buf.String(), nil
}

// InvoiceFilename 下載檔名
func InvoiceFilename(bookingID int) string {
	return fmt.Sprintf("invoice_booking_%d.pdf", bookingID)
}

// InvoiceRenderer 在 worker pool 上執行 PDF 轉換，限制同時進行的數量
type InvoiceRenderer struct {
	pool      worker.Pool
	converter PDFConverter
}

func NewInvoiceRenderer(pool worker.Pool, converter PDFConverter) *InvoiceRenderer {
	return &InvoiceRenderer{pool: pool, converter: converter}
}

// Render 只有訂單擁有者可以下載；轉換失敗回傳 ErrRender，訂單不受影響
func (r *InvoiceRenderer) Render(ctx context.Context, db database.DB, actor *CustomClaims, bookingID int) (string, []byte, error) {
	if err := RequireUser(actor); err != nil {
		return "", nil, err
	}
	d, err := getBookingDetail(ctx, db, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrBookingNotFound
		}
		return "", nil, fmt.Errorf("RenderInvoice: %w", err)
	}
	if d.UserID != actor.UserID {
		return "", nil, ErrBookingNotFound
	}

	html, err := RenderInvoiceHTML(BuildInvoice(*d))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var pdf []byte
	start := time.Now()
	err = r.pool.Do(ctx, func(ctx context.Context) error {
		out, err := r.converter.Convert(ctx, html)
		if err != nil {
			return err
		}
		pdf = out
		return nil
	})
	metrics.ObserveSince(metrics.InvoiceRenderDuration, start)
	if err != nil {
		metrics.InvoiceRenderErrors.Inc()
		logrus.WithError(err).WithField("booking_id", bookingID).Error("invoice render failed")
		return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	metrics.InvoicesRendered.Inc()
	return InvoiceFilename(bookingID), pdf, nil
}

package tickets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busbook/internal/history"
	"busbook/internal/upstream"
	"busbook/pkg/logger"

	"github.com/phpdave11/gofpdf"
)

// Ticket is a downloadable ticket document
type Ticket struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Service produces ticket documents: the official ticket proxied from the
// booking backend, and a locally rendered booking summary.
type Service interface {
	Download(ctx context.Context, bookingGroupID string) (*Ticket, error)
	Summary(ctx context.Context, bookingRef string) (*Ticket, error)
}

type service struct {
	client  upstream.Client
	history history.Service
	log     *logger.Logger
}

func NewService(client upstream.Client, historyService history.Service, log *logger.Logger) Service {
	return &service{client: client, history: historyService, log: log}
}

// Download proxies the official ticket document from the booking backend
func (s *service) Download(ctx context.Context, bookingGroupID string) (*Ticket, error) {
	content, contentType, err := s.client.DownloadTicket(ctx, bookingGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to download ticket: %w", err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &Ticket{
		FileName:    fmt.Sprintf("ticket-%s.pdf", bookingGroupID),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// Summary renders a booking summary PDF from the local history record
func (s *service) Summary(ctx context.Context, bookingRef string) (*Ticket, error) {
	record, err := s.history.GetByRef(ctx, bookingRef)
	if err != nil {
		return nil, err
	}

	content, err := renderSummaryPDF(record)
	if err != nil {
		return nil, fmt.Errorf("failed to render booking summary: %w", err)
	}
	return &Ticket{
		FileName:    fmt.Sprintf("booking-%s.pdf", record.BookingRef),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func renderSummaryPDF(record *history.BookingRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Booking Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Booking Reference", record.BookingRef},
		{"Trip", record.TripID},
		{"From", record.FromStopID},
		{"To", record.ToStopID},
		{"Seats", strings.Join(record.SeatNumberList(), ", ")},
		{"Amount Paid", fmt.Sprintf("%.2f %s", record.Amount, record.Currency)},
		{"Booked At", record.CreatedAt.Format("02 Jan 2006 15:04")},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "This summary is generated locally. Carry the official ticket while travelling.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

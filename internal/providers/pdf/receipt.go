package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"
)

type receiptRenderer struct {
	log *zap.Logger
}

// New builds the maroto-backed receipt renderer.
func New(log *zap.Logger) Provider {
	return &receiptRenderer{log: log.Named("pdf.receipt")}
}

func (r *receiptRenderer) RenderReceipt(ctx context.Context, data ReceiptData) ([]byte, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	title := "TAX INVOICE"
	if data.Refund {
		title = "REFUND"
	}

	// Seller block
	m.AddRow(8, text.NewCol(12, data.CompanyName, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(5, text.NewCol(12, data.CompanyAddress, props.Text{Size: 9, Align: align.Center}))
	if contact := contactLine(data); contact != "" {
		m.AddRow(5, text.NewCol(12, contact, props.Text{Size: 9, Align: align.Center}))
	}
	m.AddRow(5, text.NewCol(12, "TIN: "+data.CompanyTIN, props.Text{Size: 9, Align: align.Center}))

	m.AddRow(6, text.NewCol(12, title, props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Center,
		Top:   2,
	}))
	m.AddRow(3, line.NewCol(12))

	// Buyer block
	m.AddRow(5,
		text.NewCol(6, "Client: "+data.CustomerName, props.Text{Size: 9}),
		text.NewCol(6, "Client TIN: "+data.CustomerTIN, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(5,
		text.NewCol(6, "Document: "+data.DocumentNumber, props.Text{Size: 9}),
		text.NewCol(6, fmt.Sprintf("Invoice no: %d", data.InvoiceNumber), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(3, line.NewCol(12))

	// Items
	m.AddRow(6,
		text.NewCol(2, "Code", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(4, "Description", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(1, "Qty", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, "Tax", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(2, "Unit", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, item := range data.Items {
		m.AddRow(6,
			text.NewCol(2, item.Code, props.Text{Size: 8}),
			text.NewCol(4, item.Description, props.Text{Size: 8}),
			text.NewCol(1, trimQty(item.Qty), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, item.TaxCategory, props.Text{Size: 8, Align: align.Center}),
			text.NewCol(2, money(item.UnitPrice), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, money(item.Total), props.Text{Size: 8, Align: align.Right}),
		)
	}
	m.AddRow(3, line.NewCol(12))

	// Tax category totals
	m.AddRow(5,
		col.New(6),
		text.NewCol(4, "Total A-EX (0%)", props.Text{Size: 8}),
		text.NewCol(2, money(data.TotalTaxableA), props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(5,
		col.New(6),
		text.NewCol(4, "Total B (18%)", props.Text{Size: 8}),
		text.NewCol(2, money(data.TotalTaxableB), props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(5,
		col.New(6),
		text.NewCol(4, "TAX B", props.Text{Size: 8}),
		text.NewCol(2, money(data.TotalTaxB), props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(6),
		text.NewCol(4, "TOTAL", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, money(data.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(3, line.NewCol(12))

	// SDC signature block
	m.AddRow(5, text.NewCol(12, "SDC INFORMATION", props.Text{Size: 8, Style: fontstyle.Bold}))
	m.AddRow(5,
		text.NewCol(6, "Date: "+data.Date, props.Text{Size: 8}),
		text.NewCol(6, "Time: "+data.Time, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(5,
		text.NewCol(6, "SDC ID: "+data.SDCID, props.Text{Size: 8}),
		text.NewCol(6, "Receipt no: "+data.ReceiptNumber, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(5, text.NewCol(12, "MRC: "+data.MRC, props.Text{Size: 8}))
	m.AddRow(5, text.NewCol(12, "Internal data: "+data.InternalData, props.Text{Size: 8}))
	m.AddRow(5, text.NewCol(12, "Receipt signature: "+data.ReceiptSignature, props.Text{Size: 8}))

	if data.QRPayload != "" {
		m.AddRow(40,
			col.New(4),
			code.NewQrCol(4, data.QRPayload, props.Rect{
				Center:  true,
				Percent: 90,
			}),
			col.New(4),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		r.log.Error("receipt render failed",
			zap.Int64("invoice_no", data.InvoiceNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}

	return doc.GetBytes(), nil
}

func contactLine(data ReceiptData) string {
	switch {
	case data.CompanyPhone != "" && data.CompanyEmail != "":
		return "Tel: " + data.CompanyPhone + "  Email: " + data.CompanyEmail
	case data.CompanyPhone != "":
		return "Tel: " + data.CompanyPhone
	case data.CompanyEmail != "":
		return "Email: " + data.CompanyEmail
	default:
		return ""
	}
}

func trimQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%.2f", qty)
}

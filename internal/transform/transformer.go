// Package transform maps Zoho Books documents onto the VSDC sales schema.
package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kabisa/ebmbridge/internal/tax"
	"github.com/kabisa/ebmbridge/internal/vsdc/domain"
	"github.com/kabisa/ebmbridge/internal/zoho"
	"go.uber.org/zap"
)

// Profile carries the seller-side identity stamped onto every submission.
// Values come from configuration, optionally overridden by the business
// registry for the TIN on the document.
type Profile struct {
	TIN   string
	BhfID string
	SdcID string
	MrcNo string

	TradeName     string
	Address       string
	TopMessage    string
	BottomMessage string

	RegistrarID   string
	RegistrarName string
	ModifierID    string
	ModifierName  string

	// Fallbacks applied when the document omits the field.
	FallbackCustomerTIN  string
	FallbackPurchaseCode string
}

// Transformer builds VSDC sales requests from parsed Zoho documents.
type Transformer struct {
	log *zap.Logger
	now func() time.Time
}

func New(log *zap.Logger) *Transformer {
	return &Transformer{
		log: log.Named("transform"),
		now: time.Now,
	}
}

// Invoice maps an invoice document onto a normal sale submission.
func (t *Transformer) Invoice(doc *zoho.Document, p Profile) (*domain.SalesRequest, error) {
	req, err := t.build(doc, p)
	if err != nil {
		return nil, err
	}
	req.RcptTyCd = domain.ReceiptTypeSale
	return req, nil
}

// CreditNote maps a credit note onto a refund submission. The invoice
// number is the credit note's own number prefixed with 9 so refunds never
// collide with the sale numbering, and orgInvcNo links back to the
// credited invoice.
func (t *Transformer) CreditNote(doc *zoho.Document, p Profile) (*domain.SalesRequest, error) {
	req, err := t.build(doc, p)
	if err != nil {
		return nil, err
	}

	req.RcptTyCd = domain.ReceiptTypeRefund
	req.InvcNo = refundInvoiceNumber(req.InvcNo)

	if len(doc.InvoicesCredited) > 0 {
		if n, ok := extractNumber(doc.InvoicesCredited[0].InvoiceNumber, t.now()); ok {
			req.OrgInvcNo = n
		}
	}

	rfdDt := t.now().Format(domain.DateTimeLayout)
	req.RfdDt = &rfdDt
	return req, nil
}

func (t *Transformer) build(doc *zoho.Document, p Profile) (*domain.SalesRequest, error) {
	verr := &ValidationErrors{}

	tin := doc.CustomField(zoho.FieldBusinessTIN)
	if tin == "" {
		tin = p.TIN
	}
	if tin == "" {
		verr.add(zoho.FieldBusinessTIN, "business TIN is required")
	}

	custTin := doc.CustomerTIN()
	if custTin == "" {
		custTin = p.FallbackCustomerTIN
	}
	if custTin == "" {
		verr.add(zoho.FieldCustomerTIN, "customer TIN is required")
	}

	purchaseCode := doc.CustomField(zoho.FieldPurchaseCode)
	if purchaseCode == "" {
		purchaseCode = p.FallbackPurchaseCode
	}
	if purchaseCode == "" {
		verr.add(zoho.FieldPurchaseCode, "purchase code is required")
	}

	number := doc.Number()
	if number == "" {
		verr.add("invoice_number", "document number is required")
	}

	if len(doc.LineItems) == 0 {
		verr.add("line_items", "at least one line item is required")
	}
	for i, item := range doc.LineItems {
		if item.DisplayName() == "" {
			verr.add(fmt.Sprintf("line_items[%d].name", i), "item name is required")
		}
		if item.Rate <= 0 {
			verr.add(fmt.Sprintf("line_items[%d].rate", i), "item rate must be positive")
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	now := t.now()
	invcNo, ok := extractNumber(number, now)
	if !ok {
		t.log.Warn("document number has no digits, using timestamp fallback",
			zap.String("number", number),
			zap.Int64("invc_no", invcNo),
		)
	}

	req := &domain.SalesRequest{
		Tin:      tin,
		BhfID:    p.BhfID,
		InvcNo:   invcNo,
		CustTin:  custTin,
		PrcOrdCd: purchaseCode,
		CustNm:   strings.TrimSpace(doc.CustomerName),

		SalesTyCd:   domain.SalesTypeNormal,
		PmtTyCd:     domain.PaymentTypeCash,
		SalesSttsCd: domain.SalesStatusConfirmed,
		CfmDt:       now.Format(domain.DateTimeLayout),
		SalesDt:     formatSalesDate(doc.SalesDate(), now),
		StockRlsDt:  now.Format(domain.DateTimeLayout),

		TaxRtB: tax.StandardRate,

		PrchrAcptcYn: "N",
		RegrID:       p.RegistrarID,
		RegrNm:       p.RegistrarName,
		ModrID:       p.ModifierID,
		ModrNm:       p.ModifierName,

		Receipt: domain.ReceiptInfo{
			RptNo:        1,
			TrdeNm:       p.TradeName,
			Adrs:         p.Address,
			TopMsg:       p.TopMessage,
			BtmMsg:       p.BottomMessage,
			PrchrAcptcYn: "N",
		},
	}
	req.Receipt.CustTin = &custTin
	if mobile := doc.CustomerMobile(); mobile != "" {
		req.Receipt.CustMblNo = &mobile
	}

	var taxable, taxed [4]float64 // indexed A..D
	for i, item := range doc.LineItems {
		seq := i + 1
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		supply := tax.Round2(item.Rate * qty)
		rate, explicit := item.ResolveTaxRate()
		if !explicit {
			t.log.Debug("line item has no tax rate, assuming standard rate",
				zap.String("item", item.DisplayName()),
			)
		}
		cat := tax.CategoryFor(rate)
		taxAmt := tax.VATFromInclusive(supply, rate)

		idx := categoryIndex(cat)
		taxable[idx] += supply
		taxed[idx] += taxAmt
		if cat == tax.CategoryC {
			req.TaxRtC = rate
		}

		itemCd := strings.TrimSpace(item.ItemID)
		if itemCd == "" {
			itemCd = fmt.Sprintf("RW1NTXU000000%02d", seq)
		}
		itemClsCd := strings.TrimSpace(item.ItemClassCode)
		if itemClsCd == "" {
			itemClsCd = fmt.Sprintf("50%d211080%d", seq, seq)
		}

		req.ItemList = append(req.ItemList, domain.SaleItem{
			ItemSeq:   seq,
			ItemCd:    itemCd,
			ItemClsCd: itemClsCd,
			ItemNm:    item.DisplayName(),
			PkgUnitCd: "NT",
			Pkg:       qty,
			QtyUnitCd: "U",
			Qty:       qty,
			Prc:       item.Rate,
			SplyAmt:   supply,
			TaxTyCd:   string(cat),
			TaxblAmt:  supply,
			TaxAmt:    taxAmt,
			TotAmt:    supply,
		})
	}

	req.TotItemCnt = len(req.ItemList)
	req.TaxblAmtA = tax.Round2(taxable[0])
	req.TaxblAmtB = tax.Round2(taxable[1])
	req.TaxblAmtC = tax.Round2(taxable[2])
	req.TaxblAmtD = tax.Round2(taxable[3])
	req.TaxAmtA = tax.Round2(taxed[0])
	req.TaxAmtB = tax.Round2(taxed[1])
	req.TaxAmtC = tax.Round2(taxed[2])
	req.TaxAmtD = tax.Round2(taxed[3])
	req.TotTaxblAmt = tax.Round2(taxable[0] + taxable[1] + taxable[2] + taxable[3])
	req.TotTaxAmt = tax.Round2(taxed[0] + taxed[1] + taxed[2] + taxed[3])
	req.TotAmt = req.TotTaxblAmt

	return req, nil
}

func categoryIndex(c tax.Category) int {
	switch c {
	case tax.CategoryA:
		return 0
	case tax.CategoryB:
		return 1
	case tax.CategoryC:
		return 2
	default:
		return 3
	}
}

var digitRuns = regexp.MustCompile(`[0-9]+`)

// extractNumber pulls the trailing run of digits out of a document number:
// "INV-2024-00042" yields 42. Numbers without any digits fall back to the
// last eight digits of the current timestamp; the boolean reports whether
// digits were found.
func extractNumber(raw string, now time.Time) (int64, bool) {
	runs := digitRuns.FindAllString(strings.TrimSpace(raw), -1)
	if len(runs) > 0 {
		if n, err := strconv.ParseInt(runs[len(runs)-1], 10, 64); err == nil {
			return n, true
		}
	}
	stamp := now.Format(domain.DateTimeLayout)
	n, _ := strconv.ParseInt(stamp[len(stamp)-8:], 10, 64)
	return n, false
}

// refundInvoiceNumber prefixes a 9 onto the credit note number so refund
// submissions occupy their own number space: 42 becomes 942.
func refundInvoiceNumber(n int64) int64 {
	prefixed, err := strconv.ParseInt("9"+strconv.FormatInt(n, 10), 10, 64)
	if err != nil {
		return n
	}
	return prefixed
}

var salesDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

func formatSalesDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range salesDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format(domain.DateLayout)
		}
	}
	return now.Format(domain.DateLayout)
}

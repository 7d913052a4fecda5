// Package zoho parses Zoho Books webhook payloads into one canonical
// document shape.
//
// Zoho delivers the same logical document in several envelopes: invoices
// arrive nested under "invoice" (or flat), credit notes under "creditnote",
// and custom fields show up either as the "custom_field_hash" map or the
// "custom_fields" array. All of that variance is resolved here, once, at
// ingestion; downstream code only ever sees a Document.
package zoho

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Custom field API names consumed by the bridge.
const (
	FieldBusinessTIN   = "cf_tin"
	FieldCustomerTIN   = "cf_customer_tin"
	FieldContactTIN    = "cf_custtin"
	FieldPurchaseCode  = "cf_purchase_code"
	FieldSellerAddress = "cf_seller_company_address"
	FieldSellerName    = "cf_organizationname"
	FieldSellerEmail   = "cf_seller_company_email"
)

// DocumentType discriminates invoices from credit notes.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeCreditNote DocumentType = "credit_note"
)

// LineItem is one invoice or credit note line.
type LineItem struct {
	ItemID        string   `json:"item_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ItemClassCode string   `json:"item_class_code"`
	Rate          float64  `json:"rate"`
	Quantity      float64  `json:"quantity"`
	Discount      float64  `json:"discount"`
	TaxRate       *float64 `json:"tax_rate"`
	VATRate       *float64 `json:"vat_rate"`
	TaxPercentage *float64 `json:"tax_percentage"`
	TaxCategory   string   `json:"tax_category"`
}

// DisplayName returns the item's name, falling back to its description.
func (i LineItem) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return strings.TrimSpace(i.Description)
}

// ResolveTaxRate picks the line's VAT rate out of the several fields Zoho
// may populate, falling back to the category letter and finally to the
// standard rate. The boolean reports whether an explicit rate was found.
func (i LineItem) ResolveTaxRate() (float64, bool) {
	for _, v := range []*float64{i.TaxRate, i.VATRate, i.TaxPercentage} {
		if v != nil {
			return *v, true
		}
	}
	switch strings.ToUpper(strings.TrimSpace(i.TaxCategory)) {
	case "A":
		return 0, true
	case "B":
		return 18, true
	}
	return 18, false
}

// ContactPerson carries the phone fields used on receipts.
type ContactPerson struct {
	Mobile string `json:"mobile"`
	Phone  string `json:"phone"`
}

// CustomField is one entry of the "custom_fields" array form.
type CustomField struct {
	APIName string `json:"api_name"`
	Value   any    `json:"value"`
}

// CreditedInvoice links a credit note back to the invoice it refunds.
type CreditedInvoice struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
}

// Document is the canonical ingested form of a Zoho invoice or credit note.
type Document struct {
	Type DocumentType `json:"-"`

	InvoiceNumber    string            `json:"invoice_number"`
	CreditNoteNumber string            `json:"creditnote_number"`
	CustomerName     string            `json:"customer_name"`
	Date             string            `json:"date"`
	InvoiceDate      string            `json:"invoice_date"`
	Total            float64           `json:"total"`
	SubTotal         float64           `json:"sub_total"`
	TaxTotal         float64           `json:"tax_total"`
	LineItems        []LineItem        `json:"line_items"`
	ContactPersons   []ContactPerson   `json:"contact_persons_details"`
	InvoicesCredited []CreditedInvoice `json:"invoices_credited"`

	CustomFieldHash map[string]any `json:"custom_field_hash"`
	CustomFields    []CustomField  `json:"custom_fields"`
}

type envelope struct {
	Invoice    *Document `json:"invoice"`
	CreditNote *Document `json:"creditnote"`
}

// ParseInvoice decodes an invoice webhook body. The document may be nested
// under "invoice" or sit at the top level.
func ParseInvoice(payload []byte) (*Document, error) {
	return parse(payload, DocumentTypeInvoice)
}

// ParseCreditNote decodes a credit note webhook body.
func ParseCreditNote(payload []byte) (*Document, error) {
	return parse(payload, DocumentTypeCreditNote)
}

func parse(payload []byte, typ DocumentType) (*Document, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	var doc *Document
	switch typ {
	case DocumentTypeCreditNote:
		doc = env.CreditNote
	default:
		doc = env.Invoice
	}

	if doc == nil {
		doc = &Document{}
		if err := json.Unmarshal(payload, doc); err != nil {
			return nil, fmt.Errorf("decode webhook payload: %w", err)
		}
	}

	doc.Type = typ
	return doc, nil
}

// Number returns the document's own number (invoice or credit note).
func (d *Document) Number() string {
	if d.Type == DocumentTypeCreditNote && strings.TrimSpace(d.CreditNoteNumber) != "" {
		return strings.TrimSpace(d.CreditNoteNumber)
	}
	return strings.TrimSpace(d.InvoiceNumber)
}

// CustomField resolves a custom field by API name. The hash form wins when
// both representations are present.
func (d *Document) CustomField(apiName string) string {
	if d.CustomFieldHash != nil {
		if v, ok := d.CustomFieldHash[apiName]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	for _, f := range d.CustomFields {
		if f.APIName == apiName {
			if s := stringify(f.Value); s != "" {
				return s
			}
		}
	}
	return ""
}

// CustomerTIN resolves the buyer TIN, preferring the invoice-level field
// over the contact-level one.
func (d *Document) CustomerTIN() string {
	if tin := d.CustomField(FieldCustomerTIN); tin != "" {
		return tin
	}
	return d.CustomField(FieldContactTIN)
}

// CustomerMobile returns the first contact's mobile, then phone.
func (d *Document) CustomerMobile() string {
	if len(d.ContactPersons) == 0 {
		return ""
	}
	first := d.ContactPersons[0]
	if m := strings.TrimSpace(first.Mobile); m != "" {
		return m
	}
	return strings.TrimSpace(first.Phone)
}

// SalesDate returns the document date, preferring "date" over
// "invoice_date".
func (d *Document) SalesDate() string {
	if v := strings.TrimSpace(d.Date); v != "" {
		return v
	}
	return strings.TrimSpace(d.InvoiceDate)
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		// JSON numbers decode as float64; TINs and purchase codes are
		// integral.
		return fmt.Sprintf("%.0f", value)
	case json.Number:
		return value.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", value))
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	businessdomain "github.com/kabisa/ebmbridge/internal/business/domain"
	"github.com/kabisa/ebmbridge/internal/cache"
	"github.com/kabisa/ebmbridge/internal/config"
	"github.com/kabisa/ebmbridge/internal/invoicing/domain"
	"github.com/kabisa/ebmbridge/internal/observability/metrics"
	"github.com/kabisa/ebmbridge/internal/providers/email"
	"github.com/kabisa/ebmbridge/internal/providers/pdf"
	"github.com/kabisa/ebmbridge/internal/providers/qr"
	reportdomain "github.com/kabisa/ebmbridge/internal/report/domain"
	"github.com/kabisa/ebmbridge/internal/transform"
	"github.com/kabisa/ebmbridge/internal/vsdc"
	vsdcdomain "github.com/kabisa/ebmbridge/internal/vsdc/domain"
	wadomain "github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"github.com/kabisa/ebmbridge/internal/zoho"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Submitter is the slice of the VSDC client the pipeline needs.
type Submitter interface {
	SubmitSales(ctx context.Context, req *vsdcdomain.SalesRequest) (*vsdcdomain.Response, error)
}

var _ Submitter = (*vsdc.Client)(nil)

type Params struct {
	fx.In

	Log         *zap.Logger
	Config      config.Config
	Transformer *transform.Transformer
	Client      *vsdc.Client
	Activities  wadomain.Service
	Businesses  businessdomain.Service
	Reports     reportdomain.Service
	QR          *qr.Builder
	Uploader    qr.Uploader
	PDF         pdf.Provider
	Email       email.Provider
	Metrics     *metrics.Metrics
	Dedup       *cache.WebhookDedup
}

type Service struct {
	log         *zap.Logger
	cfg         config.Config
	transformer *transform.Transformer
	client      Submitter
	activities  wadomain.Service
	businesses  businessdomain.Service
	reports     reportdomain.Service
	qr          *qr.Builder
	uploader    qr.Uploader
	pdf         pdf.Provider
	email       email.Provider
	metrics     *metrics.Metrics
	dedup       *cache.WebhookDedup
	now         func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("invoicing.service"),
		cfg:         p.Config,
		transformer: p.Transformer,
		client:      p.Client,
		activities:  p.Activities,
		businesses:  p.Businesses,
		reports:     p.Reports,
		qr:          p.QR,
		uploader:    p.Uploader,
		pdf:         p.PDF,
		email:       p.Email,
		metrics:     p.Metrics,
		dedup:       p.Dedup,
		now:         time.Now,
	}
}

func (s *Service) ProcessInvoice(ctx context.Context, payload []byte) (*domain.ProcessResult, error) {
	doc, err := zoho.ParseInvoice(payload)
	if err != nil {
		return nil, err
	}
	return s.process(ctx, doc, payload)
}

func (s *Service) ProcessCreditNote(ctx context.Context, payload []byte) (*domain.ProcessResult, error) {
	doc, err := zoho.ParseCreditNote(payload)
	if err != nil {
		return nil, err
	}
	return s.process(ctx, doc, payload)
}

func (s *Service) process(ctx context.Context, doc *zoho.Document, payload []byte) (*domain.ProcessResult, error) {
	started := s.now()
	docType := string(doc.Type)
	number := doc.Number()

	tin := doc.CustomField(zoho.FieldBusinessTIN)
	if tin == "" {
		tin = s.cfg.VSDC.TIN
	}

	if number != "" && s.dedup.Seen(tin, docType, number) {
		s.log.Warn("duplicate webhook delivery dropped",
			zap.String("document_type", docType),
			zap.String("document_number", number),
		)
		return nil, domain.ErrDuplicateDelivery
	}

	activity, err := s.activities.Start(ctx, wadomain.StartRequest{
		DocumentType:   docType,
		DocumentNumber: number,
		BusinessTIN:    tin,
		CustomerTIN:    doc.CustomerTIN(),
		WebhookPayload: payload,
	})
	if err != nil {
		// The audit trail must not take the pipeline down.
		s.log.Error("failed to record webhook activity", zap.Error(err))
	}

	profile := s.profileFor(ctx, tin)

	var (
		req  *vsdcdomain.SalesRequest
		terr error
	)
	if doc.Type == zoho.DocumentTypeCreditNote {
		req, terr = s.transformer.CreditNote(doc, profile)
	} else {
		req, terr = s.transformer.Invoice(doc, profile)
	}
	if terr != nil {
		s.fail(ctx, activity, req, nil, started, terr)
		return nil, terr
	}

	resp, err := s.client.SubmitSales(ctx, req)
	s.metrics.RecordSubmission(docType, resultCode(resp), s.now().Sub(started))
	if err != nil {
		s.fail(ctx, activity, req, resp, started, err)
		s.notifyFailure(ctx, docType, number, tin, err)
		return nil, err
	}

	if number != "" {
		s.dedup.Mark(tin, docType, number)
	}

	result := s.buildResult(req, resp, profile, number)
	if activity != nil {
		result.ActivityID = activity.ID
		if err := s.activities.MarkSuccess(ctx, activity.ID, wadomain.MarkSuccessRequest{
			InvoiceNumber: req.InvcNo,
			ReceiptNumber: result.ReceiptNumber,
			ReceiptSign:   result.ReceiptSignature,
			VSDCRequest:   req,
			VSDCResponse:  resp,
			ProcessingMs:  s.now().Sub(started).Milliseconds(),
		}); err != nil {
			s.log.Error("failed to mark activity success", zap.Error(err))
		}
	}

	if err := s.reports.RecordSale(ctx, reportdomain.RecordSaleRequest{
		BusinessTIN:   req.Tin,
		DocumentType:  docType,
		InvoiceNumber: req.InvcNo,
		ReceiptNumber: result.ReceiptNumber,
		TotalAmount:   req.TotAmt,
		TaxAmount:     req.TotTaxAmt,
		BusinessDate:  req.SalesDt,
	}); err != nil {
		s.log.Error("failed to record transaction", zap.Error(err))
	}

	s.renderReceipt(ctx, doc, req, result, profile, activity)

	s.log.Info("document fiscalized",
		zap.String("document_type", docType),
		zap.String("document_number", number),
		zap.Int64("invc_no", req.InvcNo),
		zap.String("rcpt_no", result.ReceiptNumber),
	)
	return result, nil
}

// profileFor resolves the seller identity: registry entry for the TIN when
// one exists, configuration defaults otherwise.
func (s *Service) profileFor(ctx context.Context, tin string) transform.Profile {
	profile := transform.Profile{
		TIN:                  s.cfg.VSDC.TIN,
		BhfID:                s.cfg.VSDC.BhfID,
		SdcID:                s.cfg.VSDC.SdcID,
		MrcNo:                s.cfg.VSDC.MrcNo,
		TradeName:            s.cfg.Receipt.TradeName,
		Address:              s.cfg.Receipt.Address,
		TopMessage:           s.cfg.Receipt.TopMessage,
		BottomMessage:        s.cfg.Receipt.BottomMessage,
		RegistrarID:          s.cfg.VSDC.RegistrarID,
		RegistrarName:        s.cfg.VSDC.RegistrarName,
		ModifierID:           s.cfg.VSDC.ModifierID,
		ModifierName:         s.cfg.VSDC.ModifierName,
		FallbackCustomerTIN:  s.cfg.VSDC.FallbackCustomerTIN,
		FallbackPurchaseCode: s.cfg.VSDC.FallbackPurchaseCode,
	}

	business, err := s.businesses.GetByTIN(ctx, tin)
	if err != nil {
		if !errors.Is(err, businessdomain.ErrNotFound) {
			s.log.Warn("business lookup failed", zap.String("tin", tin), zap.Error(err))
		}
		return profile
	}

	profile.TIN = business.TIN
	profile.TradeName = business.Name
	if business.Location != "" {
		profile.Address = business.Location
	}
	return profile
}

func (s *Service) buildResult(req *vsdcdomain.SalesRequest, resp *vsdcdomain.Response, profile transform.Profile, number string) *domain.ProcessResult {
	result := &domain.ProcessResult{
		DocumentNumber: number,
		InvoiceNumber:  req.InvcNo,
		Response:       resp,
	}
	if resp.Data == nil {
		return result
	}

	result.ReceiptNumber = resp.ReceiptNumber()
	result.ReceiptSignature = resp.Data.RcptSign
	result.InternalData = resp.Data.IntrlData
	result.SDCID = orDefault(resp.Data.SdcID, profile.SdcID)
	result.MRC = orDefault(resp.Data.MrcNo, profile.MrcNo)
	result.ReceiptDate = resp.Data.VsdcRcptPbctDate

	receiptDate, receiptTime := splitReceiptStamp(resp.Data.VsdcRcptPbctDate, s.now())
	payload, err := s.qr.Payload(qr.Receipt{
		TIN:          req.Tin,
		BhfID:        req.BhfID,
		ReceiptNo:    result.ReceiptNumber,
		InternalData: result.InternalData,
		Signature:    result.ReceiptSignature,
		SDCID:        result.SDCID,
		Date:         receiptDate,
		Time:         receiptTime,
	})
	if err != nil {
		s.log.Warn("qr payload unavailable", zap.Error(err))
		return result
	}
	result.QRPayload = payload
	return result
}

// renderReceipt renders and stores the PDF. A failure here is reported as
// a partial success: the document is already fiscalized and must not be
// resubmitted.
func (s *Service) renderReceipt(ctx context.Context, doc *zoho.Document, req *vsdcdomain.SalesRequest, result *domain.ProcessResult, profile transform.Profile, activity *wadomain.Activity) {
	data := s.receiptData(doc, req, result, profile)

	pdfBytes, err := s.pdf.RenderReceipt(ctx, data)
	if err == nil {
		filename := fmt.Sprintf("%s_%d.pdf", doc.Type, req.InvcNo)
		err = s.writePDF(filename, pdfBytes)
		if err == nil {
			result.PDFFilename = filename
		}
	}

	s.metrics.RecordPDFRender(err == nil)
	if err != nil {
		s.log.Error("receipt pdf generation failed",
			zap.Int64("invc_no", req.InvcNo),
			zap.Error(err),
		)
		result.PDFError = err.Error()
	}

	if activity != nil {
		if aerr := s.activities.MarkPDF(ctx, activity.ID, result.PDFFilename, err == nil); aerr != nil {
			s.log.Error("failed to mark activity pdf state", zap.Error(aerr))
		}
	}

	if result.QRPayload != "" && err == nil {
		s.uploadQR(ctx, req.InvcNo, result)
	}
}

func (s *Service) receiptData(doc *zoho.Document, req *vsdcdomain.SalesRequest, result *domain.ProcessResult, profile transform.Profile) pdf.ReceiptData {
	items := make([]pdf.ReceiptItem, 0, len(req.ItemList))
	for _, item := range req.ItemList {
		items = append(items, pdf.ReceiptItem{
			Code:        item.ItemCd,
			Description: item.ItemNm,
			Qty:         item.Qty,
			UnitPrice:   item.Prc,
			TaxCategory: item.TaxTyCd,
			Total:       item.TotAmt,
		})
	}

	receiptDate, receiptTime := splitReceiptStamp(result.ReceiptDate, s.now())
	return pdf.ReceiptData{
		CompanyName:    profile.TradeName,
		CompanyAddress: profile.Address,
		CompanyPhone:   s.cfg.Receipt.Phone,
		CompanyEmail:   s.cfg.Receipt.Email,
		CompanyTIN:     req.Tin,
		CustomerName:   req.CustNm,
		CustomerTIN:    req.CustTin,
		DocumentNumber: result.DocumentNumber,
		InvoiceNumber:  req.InvcNo,
		Refund:         req.RcptTyCd == vsdcdomain.ReceiptTypeRefund,
		Items:          items,
		TotalTaxableA:  req.TaxblAmtA,
		TotalTaxableB:  req.TaxblAmtB,
		TotalTaxA:      req.TaxAmtA,
		TotalTaxB:      req.TaxAmtB,
		TotalTax:       req.TotTaxAmt,
		Total:          req.TotAmt,

		SDCID:            result.SDCID,
		ReceiptNumber:    result.ReceiptNumber,
		MRC:              result.MRC,
		InternalData:     result.InternalData,
		ReceiptSignature: result.ReceiptSignature,
		Date:             displayDate(receiptDate),
		Time:             displayTime(receiptTime),
		QRPayload:        result.QRPayload,
	}
}

func (s *Service) writePDF(filename string, pdfBytes []byte) error {
	dir := s.cfg.PDF.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pdf output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (s *Service) uploadQR(ctx context.Context, invcNo int64, result *domain.ProcessResult) {
	png, err := qr.PNG(result.QRPayload)
	if err != nil {
		s.log.Warn("qr render failed", zap.Error(err))
		return
	}

	url, err := s.uploader.Upload(ctx, png, fmt.Sprintf("receipt_%d", invcNo))
	if err != nil {
		s.log.Warn("qr upload failed", zap.Error(err))
		return
	}
	result.QRImage = url
}

func (s *Service) fail(ctx context.Context, activity *wadomain.Activity, req *vsdcdomain.SalesRequest, resp *vsdcdomain.Response, started time.Time, cause error) {
	if activity == nil {
		return
	}

	status, errType, errCode := classifyFailure(cause)
	failure := wadomain.MarkFailureRequest{
		Status:       status,
		ErrorType:    errType,
		ErrorCode:    errCode,
		ErrorMessage: cause.Error(),
		VSDCRequest:  req,
		VSDCResponse: resp,
		ProcessingMs: s.now().Sub(started).Milliseconds(),
	}
	if req != nil {
		failure.InvoiceNumber = req.InvcNo
	}

	if err := s.activities.MarkFailure(ctx, activity.ID, failure); err != nil {
		s.log.Error("failed to mark activity failure", zap.Error(err))
	}
}

func (s *Service) notifyFailure(ctx context.Context, docType, number, tin string, cause error) {
	_, errType, errCode := classifyFailure(cause)
	if err := s.email.SendFailureAlert(ctx, email.FailureAlert{
		DocumentType:   docType,
		DocumentNumber: number,
		BusinessTIN:    tin,
		ErrorType:      errType,
		ErrorCode:      errCode,
		ErrorMessage:   cause.Error(),
	}); err != nil {
		s.log.Warn("failure alert not sent", zap.Error(err))
	}
}

func classifyFailure(err error) (wadomain.Status, string, string) {
	var apiErr *vsdcdomain.APIError
	switch {
	case errors.As(err, &apiErr):
		return wadomain.StatusFailed, "vsdc_rejection", apiErr.Code
	case errors.Is(err, vsdcdomain.ErrTimeout):
		return wadomain.StatusTimeout, "vsdc_timeout", ""
	case errors.Is(err, vsdcdomain.ErrUnavailable):
		return wadomain.StatusFailed, "vsdc_unavailable", ""
	default:
		var verr *transform.ValidationErrors
		if errors.As(err, &verr) {
			return wadomain.StatusFailed, "validation_error", ""
		}
		return wadomain.StatusFailed, "internal_error", ""
	}
}

func resultCode(resp *vsdcdomain.Response) string {
	if resp == nil {
		return ""
	}
	return resp.ResultCd
}

func orDefault(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

// splitReceiptStamp splits the VSDC publication stamp (yyyymmddhhmmss)
// into its date and time halves, falling back to the local clock when the
// stamp is malformed.
func splitReceiptStamp(stamp string, now time.Time) (string, string) {
	if _, err := time.Parse(vsdcdomain.DateTimeLayout, stamp); err != nil {
		stamp = now.Format(vsdcdomain.DateTimeLayout)
	}
	return stamp[:8], stamp[8:]
}

func displayDate(yyyymmdd string) string {
	ts, err := time.Parse(vsdcdomain.DateLayout, yyyymmdd)
	if err != nil {
		return yyyymmdd
	}
	return ts.Format("02/01/2006")
}

func displayTime(hhmmss string) string {
	ts, err := time.Parse("150405", hhmmss)
	if err != nil {
		return hhmmss
	}
	return ts.Format("15:04:05")
}

// Package qr builds the verification payload encoded on receipt QR codes.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Mode selects the QR payload form.
const (
	ModeURL  = "url"
	ModeText = "text"
)

// Receipt carries the signature fields returned by the VSDC for one
// accepted submission.
type Receipt struct {
	TIN          string
	BhfID        string
	ReceiptNo    string
	InternalData string
	Signature    string
	SDCID        string
	Date         string // yyyymmdd
	Time         string // hhmmss
}

// Builder produces QR payloads in the configured mode.
type Builder struct {
	mode    string
	baseURL string
}

func NewBuilder(mode, baseURL string) *Builder {
	if mode != ModeText {
		mode = ModeURL
	}
	return &Builder{mode: mode, baseURL: strings.TrimRight(baseURL, "/")}
}

// Payload returns the string encoded into the QR code: either the RRA
// verification link or the raw signature payload.
func (b *Builder) Payload(r Receipt) (string, error) {
	if b.mode == ModeText {
		return TextPayload(r), nil
	}
	code, err := VerificationCode(r.TIN, r.BhfID, r.Signature)
	if err != nil {
		return "", err
	}
	return b.VerificationURL(code), nil
}

// TextPayload joins the receipt signature fields the way EBM printers do.
func TextPayload(r Receipt) string {
	return strings.Join([]string{
		r.Date,
		r.Time,
		r.SDCID,
		r.ReceiptNo,
		r.InternalData,
		r.Signature,
	}, "#")
}

// VerificationCode builds the 27-character code the RRA portal expects:
// the 9-digit TIN, the 2-digit branch id, and the 16-character receipt
// signature with separators removed.
func VerificationCode(tin, bhfID, signature string) (string, error) {
	tin = strings.TrimSpace(tin)
	if len(tin) != 9 {
		return "", fmt.Errorf("tin must be 9 digits, got %q", tin)
	}

	bhfID = strings.TrimSpace(bhfID)
	if len(bhfID) != 2 {
		return "", fmt.Errorf("branch id must be 2 digits, got %q", bhfID)
	}

	sig := strings.ReplaceAll(strings.TrimSpace(signature), "-", "")
	if len(sig) != 16 {
		return "", fmt.Errorf("receipt signature must be 16 characters, got %q", signature)
	}

	return tin + bhfID + sig, nil
}

// VerificationURL appends the verification code to the RRA receipt portal
// link.
func (b *Builder) VerificationURL(code string) string {
	return b.baseURL + "?Data=" + code
}

// PNG renders the payload as a QR image.
func PNG(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, 256)
}

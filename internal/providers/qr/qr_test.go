package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReceipt() Receipt {
	return Receipt{
		TIN:          "944000008",
		BhfID:        "00",
		ReceiptNo:    "123",
		InternalData: "ABCD-EFGH-IJKL-MNOP",
		Signature:    "QRST-UVWX-YZ12-3456",
		SDCID:        "SDC010053151",
		Date:         "20240301",
		Time:         "120000",
	}
}

func TestVerificationCode(t *testing.T) {
	code, err := VerificationCode("944000008", "00", "QRST-UVWX-YZ12-3456")
	require.NoError(t, err)
	assert.Equal(t, "94400000800QRSTUVWXYZ123456", code)
	assert.Len(t, code, 27)
}

func TestVerificationCodeRejectsBadInput(t *testing.T) {
	_, err := VerificationCode("12345", "00", "QRST-UVWX-YZ12-3456")
	assert.Error(t, err)

	_, err = VerificationCode("944000008", "0", "QRST-UVWX-YZ12-3456")
	assert.Error(t, err)

	_, err = VerificationCode("944000008", "00", "SHORT")
	assert.Error(t, err)
}

func TestURLPayload(t *testing.T) {
	b := NewBuilder(ModeURL, "https://myrra.rra.gov.rw/common/link/ebm/receipt/indexEbmReceiptData")

	payload, err := b.Payload(testReceipt())
	require.NoError(t, err)
	assert.Equal(t,
		"https://myrra.rra.gov.rw/common/link/ebm/receipt/indexEbmReceiptData?Data=94400000800QRSTUVWXYZ123456",
		payload,
	)
}

func TestTextPayload(t *testing.T) {
	b := NewBuilder(ModeText, "")

	payload, err := b.Payload(testReceipt())
	require.NoError(t, err)
	assert.Equal(t, "20240301#120000#SDC010053151#123#ABCD-EFGH-IJKL-MNOP#QRST-UVWX-YZ12-3456", payload)
}

func TestUnknownModeFallsBackToURL(t *testing.T) {
	b := NewBuilder("banana", "https://example.test/verify")
	payload, err := b.Payload(testReceipt())
	require.NoError(t, err)
	assert.Contains(t, payload, "https://example.test/verify?Data=")
}

func TestPNGRendersImage(t *testing.T) {
	png, err := PNG("https://example.test/verify?Data=94400000800QRSTUVWXYZ123456")
	require.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

// Package domain defines the VSDC trnsSales wire schema and result codes.
package domain

import "encoding/json"

// Timestamp layouts mandated by the VSDC API.
const (
	DateLayout     = "20060102"
	DateTimeLayout = "20060102150405"
)

// Fixed sale header codes used by the bridge. Values come from the VSDC
// interface specification (normal sale, confirmed, cash).
const (
	SalesTypeNormal      = "N"
	ReceiptTypeSale      = "S"
	ReceiptTypeRefund    = "R"
	PaymentTypeCash      = "01"
	SalesStatusConfirmed = "02"
)

// SaleItem is one line of a sales submission.
type SaleItem struct {
	ItemSeq       int      `json:"itemSeq"`
	ItemCd        string   `json:"itemCd"`
	ItemClsCd     string   `json:"itemClsCd"`
	ItemNm        string   `json:"itemNm"`
	Bcd           *string  `json:"bcd"`
	PkgUnitCd     string   `json:"pkgUnitCd"`
	Pkg           float64  `json:"pkg"`
	QtyUnitCd     string   `json:"qtyUnitCd"`
	Qty           float64  `json:"qty"`
	Prc           float64  `json:"prc"`
	SplyAmt       float64  `json:"splyAmt"`
	DcRt          float64  `json:"dcRt"`
	DcAmt         float64  `json:"dcAmt"`
	IsrccCd       *string  `json:"isrccCd"`
	IsrccNm       *string  `json:"isrccNm"`
	IsrcRt        *float64 `json:"isrcRt"`
	IsrcAmt       *float64 `json:"isrcAmt"`
	TaxTyCd       string   `json:"taxTyCd"`
	TaxblAmt      float64  `json:"taxblAmt"`
	TaxAmt        float64  `json:"taxAmt"`
	TotAmt        float64  `json:"totAmt"`
}

// ReceiptInfo is the nested receipt block of a sales submission.
type ReceiptInfo struct {
	CustTin      *string `json:"custTin"`
	CustMblNo    *string `json:"custMblNo"`
	RptNo        int     `json:"rptNo"`
	TrdeNm       string  `json:"trdeNm"`
	Adrs         string  `json:"adrs"`
	TopMsg       string  `json:"topMsg"`
	BtmMsg       string  `json:"btmMsg"`
	PrchrAcptcYn string  `json:"prchrAcptcYn"`
}

// SalesRequest is the trnsSales/saveSales request body.
type SalesRequest struct {
	Tin       string `json:"tin"`
	BhfID     string `json:"bhfId"`
	InvcNo    int64  `json:"invcNo"`
	OrgInvcNo int64  `json:"orgInvcNo"`
	CustTin   string `json:"custTin"`
	PrcOrdCd  string `json:"prcOrdCd"`
	CustNm    string `json:"custNm"`

	SalesTyCd   string  `json:"salesTyCd"`
	RcptTyCd    string  `json:"rcptTyCd"`
	PmtTyCd     string  `json:"pmtTyCd"`
	SalesSttsCd string  `json:"salesSttsCd"`
	CfmDt       string  `json:"cfmDt"`
	SalesDt     string  `json:"salesDt"`
	StockRlsDt  string  `json:"stockRlsDt"`
	CnclReqDt   *string `json:"cnclReqDt"`
	CnclDt      *string `json:"cnclDt"`
	RfdDt       *string `json:"rfdDt"`
	RfdRsnCd    *string `json:"rfdRsnCd"`

	TotItemCnt int `json:"totItemCnt"`

	TaxblAmtA float64 `json:"taxblAmtA"`
	TaxblAmtB float64 `json:"taxblAmtB"`
	TaxblAmtC float64 `json:"taxblAmtC"`
	TaxblAmtD float64 `json:"taxblAmtD"`
	TaxRtA    float64 `json:"taxRtA"`
	TaxRtB    float64 `json:"taxRtB"`
	TaxRtC    float64 `json:"taxRtC"`
	TaxRtD    float64 `json:"taxRtD"`
	TaxAmtA   float64 `json:"taxAmtA"`
	TaxAmtB   float64 `json:"taxAmtB"`
	TaxAmtC   float64 `json:"taxAmtC"`
	TaxAmtD   float64 `json:"taxAmtD"`

	TotTaxblAmt float64 `json:"totTaxblAmt"`
	TotTaxAmt   float64 `json:"totTaxAmt"`
	TotAmt      float64 `json:"totAmt"`

	PrchrAcptcYn string  `json:"prchrAcptcYn"`
	Remark       *string `json:"remark"`
	RegrID       string  `json:"regrId"`
	RegrNm       string  `json:"regrNm"`
	ModrID       string  `json:"modrId"`
	ModrNm       string  `json:"modrNm"`

	Receipt  ReceiptInfo `json:"receipt"`
	ItemList []SaleItem  `json:"itemList"`
}

// ResponseData is the data section of a successful submission.
type ResponseData struct {
	RcptNo           json.Number `json:"rcptNo"`
	TotRcptNo        json.Number `json:"totRcptNo"`
	IntrlData        string      `json:"intrlData"`
	RcptSign         string      `json:"rcptSign"`
	SdcID            string      `json:"sdcId"`
	MrcNo            string      `json:"mrcNo"`
	VsdcRcptPbctDate string      `json:"vsdcRcptPbctDate"`
}

// Response is the trnsSales/saveSales response envelope. The VSDC endpoint
// answers HTTP 200 for business failures too; ResultCd carries the verdict.
type Response struct {
	ResultCd  string        `json:"resultCd"`
	ResultMsg string        `json:"resultMsg"`
	ResultDt  string        `json:"resultDt"`
	Data      *ResponseData `json:"data"`
}

// ResultCodeOK marks a successful submission.
const ResultCodeOK = "000"

// OK reports whether the submission was accepted.
func (r *Response) OK() bool {
	return r != nil && r.ResultCd == ResultCodeOK
}

// ReceiptNumber returns the receipt number as a string, empty when absent.
func (r *Response) ReceiptNumber() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return r.Data.RcptNo.String()
}

package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlipLineItem is one payment share on an agent's income slip
type SlipLineItem struct {
	Date         time.Time       `json:"date"`
	Client       string          `json:"client"`
	Mobile       string          `json:"mobile"`
	AccountRef   string          `json:"account_ref"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	SharePercent decimal.Decimal `json:"share_percent"`
	ShareAmount  decimal.Decimal `json:"share_amount"`
}

// IncomeSlip is one agent's commission statement for one month.
// GST is deducted from the gross commission at the fixed rate.
type IncomeSlip struct {
	AgentID     uuid.UUID       `json:"agent_id"`
	AgentName   string          `json:"agent_name"`
	PeriodLabel string          `json:"period_label"`
	LineItems   []SlipLineItem  `json:"line_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	GST         decimal.Decimal `json:"gst"`
	NetPayable  decimal.Decimal `json:"net_payable"`

	TotalDisplay string `json:"total_display"`
	GSTDisplay   string `json:"gst_display"`
	NetDisplay   string `json:"net_display"`
}

// Receipt is a client-facing tax receipt for one verified payment.
// The paid amount is GST-inclusive; the taxable base is extracted.
type Receipt struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	ReceiptNumber string          `json:"receipt_number"`
	ClientName    string          `json:"client_name"`
	ClientMobile  string          `json:"client_mobile"`
	AgentName     string          `json:"agent_name"`
	Date          time.Time       `json:"date"`
	AccountRef    string          `json:"account_ref"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GST           decimal.Decimal `json:"gst"`
	Total         decimal.Decimal `json:"total"`

	TaxableDisplay string `json:"taxable_display"`
	GSTDisplay     string `json:"gst_display"`
	TotalDisplay   string `json:"total_display"`
}

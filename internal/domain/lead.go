package domain

import "time"

// LeadKind is the constant partition value of the created_at GSI.
const LeadKind = "lead"

// MinLoanAmount is the smallest accepted loan request, in KRW.
const MinLoanAmount = 1_000_000

// Lead is a consultation request submitted from the landing page.
type Lead struct {
	LeadID      string     `json:"id" dynamodbav:"lead_id"`
	Kind        string     `json:"-" dynamodbav:"kind"`
	Age         int        `json:"age" dynamodbav:"age"`
	PhoneNumber string     `json:"phone_number" dynamodbav:"phone_number"`
	Location    string     `json:"location" dynamodbav:"location"`
	LoanAmount  int64      `json:"loan_amount" dynamodbav:"loan_amount"`
	Employed    bool       `json:"employed" dynamodbav:"employed"`
	Status      LeadStatus `json:"status" dynamodbav:"status"`
	Memo        string     `json:"memo,omitempty" dynamodbav:"memo"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// CreateLeadRequest is checked by lead.Validate, which owns the
// applicant-facing messages.
type CreateLeadRequest struct {
	Age               int    `json:"age"`
	PhoneNumber       string `json:"phone_number"`
	Location          string `json:"location"`
	LoanAmount        int64  `json:"loan_amount"`
	Employed          bool   `json:"employed"`
	VerificationToken string `json:"verification_token"`
}

type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required"`
}

type UpdateLeadMemoRequest struct {
	Memo string `json:"memo" validate:"max=2000"`
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/model"
)

/* ===================== Requests ===================== */

type InitializePaymentRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	PaymentType   string    `json:"payment_type" validate:"required,oneof=application_fee registration_fee"`
	Provider      string    `json:"provider" validate:"required,oneof=paystack flutterwave"`
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID            uuid.UUID  `json:"payment_id"`
	PaymentApplicationID uuid.UUID  `json:"payment_application_id"`
	PaymentAmountKobo    int64      `json:"payment_amount_kobo"`
	PaymentCurrency      string     `json:"payment_currency"`
	PaymentStatus        string     `json:"payment_status"`
	PaymentType          string     `json:"payment_type"`
	PaymentProvider      string     `json:"payment_provider"`
	PaymentReference     string     `json:"payment_reference"`
	PaymentCallbackURL   string     `json:"payment_callback_url,omitempty"`
	PaymentPaidAt        *time.Time `json:"payment_paid_at,omitempty"`
	PaymentCreatedAt     time.Time  `json:"payment_created_at"`
}

func FromPaymentModel(m *model.PaymentModel) *PaymentResponse {
	if m == nil {
		return nil
	}
	return &PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentApplicationID: m.PaymentApplicationID,
		PaymentAmountKobo:    m.PaymentAmountKobo,
		PaymentCurrency:      m.PaymentCurrency,
		PaymentStatus:        m.PaymentStatus,
		PaymentType:          m.PaymentType,
		PaymentProvider:      m.PaymentProvider,
		PaymentReference:     m.PaymentReference,
		PaymentPaidAt:        m.PaymentPaidAt,
		PaymentCreatedAt:     m.CreatedAt,
	}
}

type ReceiptResponse struct {
	ReceiptID         uuid.UUID `json:"receipt_id"`
	ReceiptPaymentID  uuid.UUID `json:"receipt_payment_id"`
	ReceiptNumber     string    `json:"receipt_number"`
	ReceiptAmountKobo int64     `json:"receipt_amount_kobo"`
	ReceiptCreatedAt  time.Time `json:"receipt_created_at"`
}

func FromReceiptModel(m *model.ReceiptModel) *ReceiptResponse {
	if m == nil {
		return nil
	}
	return &ReceiptResponse{
		ReceiptID:         m.ReceiptID,
		ReceiptPaymentID:  m.ReceiptPaymentID,
		ReceiptNumber:     m.ReceiptNumber,
		ReceiptAmountKobo: m.ReceiptAmountKobo,
		ReceiptCreatedAt:  m.ReceiptCreatedAt,
	}
}

type VerifyPaymentResponse struct {
	Result             string           `json:"result"`
	Payment            *PaymentResponse `json:"payment,omitempty"`
	ReceiptNumber      string           `json:"receipt_number,omitempty"`
	RegistrationNumber string           `json:"registration_number,omitempty"`
}

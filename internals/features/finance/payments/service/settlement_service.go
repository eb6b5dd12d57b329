package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	emailmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/emails/model"
	notifmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/model"
	notifsvc "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/service"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/provider"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
)

/* =========================================================
   Outcomes
========================================================= */

type Result string

const (
	ResultInvalidRequest     Result = "invalid_request"
	ResultAlreadyCompleted   Result = "already_completed"
	ResultVerifiedAndSettled Result = "verified_and_settled"
	ResultVerificationFailed Result = "verification_failed"
	ResultInternalError      Result = "internal_error"
)

// Settlement is what the controller turns into an HTTP response.
type Settlement struct {
	Result             Result
	Payment            *model.PaymentModel
	ReceiptNumber      string
	RegistrationNumber string
}

/* =========================================================
   Service
========================================================= */

// ReceiptEmailer is the slice of the email service the pipeline needs.
type ReceiptEmailer interface {
	ReceiptSettings(ctx context.Context) (emailmodel.ReceiptSettingModel, error)
	SendTemplated(ctx context.Context, to, key string, vars map[string]string) error
}

// SettlementService drives verify-and-settle: confirm the charge with the
// provider, then apply all state changes in one transaction. Side effects
// (notification, email) run after commit and never fail the settlement.
type SettlementService struct {
	Store     Store
	Verifiers map[string]provider.Verifier
	Notifier  notifsvc.Notifier
	Emails    ReceiptEmailer
}

func NewSettlementService(store Store, verifiers map[string]provider.Verifier, notifier notifsvc.Notifier, emails ReceiptEmailer) *SettlementService {
	return &SettlementService{Store: store, Verifiers: verifiers, Notifier: notifier, Emails: emails}
}

// SettleByReference verifies the referenced payment against its provider and,
// on confirmation, completes it atomically: payment row, application flags,
// registration number (registration fee only, at most once), enrolled count,
// receipt. Safe to call any number of times for the same reference.
func (s *SettlementService) SettleByReference(ctx context.Context, reference string) (Settlement, error) {
	if strings.TrimSpace(reference) == "" {
		return Settlement{Result: ResultInvalidRequest}, nil
	}

	payment, err := s.Store.PaymentByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Settlement{Result: ResultInvalidRequest}, nil
		}
		return Settlement{Result: ResultInternalError}, err
	}
	return s.settle(ctx, payment)
}

// SettleByPaymentID is the same pipeline keyed on our payment id instead of
// the provider reference.
func (s *SettlementService) SettleByPaymentID(ctx context.Context, paymentID uuid.UUID) (Settlement, error) {
	if paymentID == uuid.Nil {
		return Settlement{Result: ResultInvalidRequest}, nil
	}

	payment, err := s.Store.PaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Settlement{Result: ResultInvalidRequest}, nil
		}
		return Settlement{Result: ResultInternalError}, err
	}
	return s.settle(ctx, payment)
}

func (s *SettlementService) settle(ctx context.Context, payment *model.PaymentModel) (Settlement, error) {
	if payment.IsCompleted() {
		return Settlement{Result: ResultAlreadyCompleted, Payment: payment}, nil
	}

	verifier, ok := s.Verifiers[payment.PaymentProvider]
	if !ok {
		return Settlement{Result: ResultInternalError, Payment: payment},
			fmt.Errorf("no verifier configured for provider %q", payment.PaymentProvider)
	}

	vr, err := verifier.Verify(ctx, payment.PaymentReference)
	if err != nil {
		// Fail closed: an unreachable or broken provider never settles money.
		log.Printf("[SETTLE] verify error ref=%s provider=%s err=%v", payment.PaymentReference, payment.PaymentProvider, err)
		return Settlement{Result: ResultVerificationFailed, Payment: payment}, nil
	}
	if !vr.Confirmed {
		return Settlement{Result: ResultVerificationFailed, Payment: payment}, nil
	}

	meta := map[string]any{"provider_raw": vr.Raw}
	if vr.AmountMinor != 0 && vr.AmountMinor != payment.PaymentAmountKobo {
		// Recorded for reconciliation, not fatal: the provider confirmed the
		// charge and the reference is ours.
		meta["amount_mismatch"] = true
		meta["provider_amount_kobo"] = vr.AmountMinor
		log.Printf("[SETTLE] amount mismatch ref=%s expected=%d provider=%d", payment.PaymentReference, payment.PaymentAmountKobo, vr.AmountMinor)
	}

	now := time.Now().UTC()
	var (
		alreadyDone   bool
		receiptNumber string
		regNumber     string
		regAssigned   bool
		programTitle  string
	)

	err = s.Store.Transact(ctx, func(tx Store) error {
		done, err := tx.CompletePayment(ctx, payment.PaymentID, vr.Reference, meta, now)
		if err != nil {
			return err
		}
		if !done {
			alreadyDone = true
			return nil
		}

		app, err := tx.ApplicationByID(ctx, payment.PaymentApplicationID)
		if err != nil {
			return err
		}

		switch payment.PaymentType {
		case model.PaymentTypeApplicationFee:
			if err := tx.MarkApplicationFeePaid(ctx, app.ApplicationID); err != nil {
				return err
			}

		case model.PaymentTypeRegistrationFee:
			if app.ApplicationRegistrationNumber == nil {
				title, err := tx.ProgramTitle(ctx, app.ApplicationProgramID)
				if err != nil {
					return err
				}
				candidate := helper.GenerateRegistrationNumber(title)
				assigned, err := tx.AssignRegistrationNumber(ctx, app.ApplicationID, candidate)
				if err != nil {
					return err
				}
				if assigned {
					regNumber = candidate
					regAssigned = true
					programTitle = title
					if err := tx.IncrementEnrolledCount(ctx, app.ApplicationProgramID); err != nil {
						return err
					}
				}
			} else {
				regNumber = *app.ApplicationRegistrationNumber
			}
			if err := tx.MarkRegistrationFeePaid(ctx, app.ApplicationID); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown payment type %q", payment.PaymentType)
		}

		receiptNumber = helper.GenerateReceiptNumber()
		return tx.CreateReceipt(ctx, &model.ReceiptModel{
			ReceiptPaymentID:  payment.PaymentID,
			ReceiptNumber:     receiptNumber,
			ReceiptAmountKobo: payment.PaymentAmountKobo,
		})
	})
	if err != nil {
		return Settlement{Result: ResultInternalError, Payment: payment}, err
	}
	if alreadyDone {
		return Settlement{Result: ResultAlreadyCompleted, Payment: payment}, nil
	}

	payment.PaymentStatus = model.PaymentStatusCompleted
	payment.PaymentPaidAt = &now

	s.afterSettle(ctx, payment, receiptNumber, regNumber, programTitle, regAssigned)

	return Settlement{
		Result:             ResultVerifiedAndSettled,
		Payment:            payment,
		ReceiptNumber:      receiptNumber,
		RegistrationNumber: regNumber,
	}, nil
}

// afterSettle runs the post-commit side effects. Every failure here is logged
// and swallowed; the settlement already committed.
func (s *SettlementService) afterSettle(ctx context.Context, payment *model.PaymentModel, receiptNumber, regNumber, programTitle string, regAssigned bool) {
	fullName, email, err := s.Store.TraineeContact(ctx, payment.PaymentUserID)
	if err != nil {
		log.Printf("[SETTLE] contact lookup failed user=%s err=%v", payment.PaymentUserID, err)
	}

	meta := map[string]any{
		"payment_id":     payment.PaymentID.String(),
		"receipt_number": receiptNumber,
	}

	switch payment.PaymentType {
	case model.PaymentTypeApplicationFee:
		if err := s.Notifier.Notify(ctx, payment.PaymentUserID,
			notifmodel.NotificationTypePaymentSuccess,
			"Payment received",
			"Your application fee payment was confirmed. You can now fill and submit your application.",
			meta,
		); err != nil {
			log.Printf("[SETTLE] notify failed payment=%s err=%v", payment.PaymentID, err)
		}

	case model.PaymentTypeRegistrationFee:
		if regNumber != "" {
			meta["registration_number"] = regNumber
		}
		if err := s.Notifier.Notify(ctx, payment.PaymentUserID,
			notifmodel.NotificationTypeRegistrationComplete,
			"Registration complete",
			"Your registration fee payment was confirmed. Welcome aboard!",
			meta,
		); err != nil {
			log.Printf("[SETTLE] notify failed payment=%s err=%v", payment.PaymentID, err)
		}
		if regAssigned && email != "" {
			if err := s.Emails.SendTemplated(ctx, email, emailmodel.TemplateKeyRegistrationComplete, map[string]string{
				"full_name":           fullName,
				"registration_number": regNumber,
				"program_title":       programTitle,
			}); err != nil {
				log.Printf("[SETTLE] registration email failed payment=%s err=%v", payment.PaymentID, err)
			}
		}
	}

	s.sendReceiptEmail(ctx, payment, receiptNumber, regNumber, fullName, email)
}

func (s *SettlementService) sendReceiptEmail(ctx context.Context, payment *model.PaymentModel, receiptNumber, regNumber, fullName, email string) {
	if email == "" {
		return
	}
	cfg, err := s.Emails.ReceiptSettings(ctx)
	if err != nil {
		log.Printf("[SETTLE] receipt settings lookup failed err=%v", err)
		return
	}
	if !cfg.SendEmailOnVerification {
		return
	}
	key := cfg.ReceiptTemplateKey
	if key == "" {
		key = emailmodel.TemplateKeyReceipt
	}
	vars := map[string]string{
		"full_name":           fullName,
		"payment_type":        strings.ReplaceAll(payment.PaymentType, "_", " "),
		"amount_naira":        formatNaira(payment.PaymentAmountKobo),
		"receipt_number":      receiptNumber,
		"registration_number": regNumber,
	}
	if err := s.Emails.SendTemplated(ctx, email, key, vars); err != nil {
		log.Printf("[SETTLE] receipt email failed payment=%s err=%v", payment.PaymentID, err)
	}
}

func formatNaira(kobo int64) string {
	return strconv.FormatInt(kobo/100, 10) + "." + fmt.Sprintf("%02d", kobo%100)
}

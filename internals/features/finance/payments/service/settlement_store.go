package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/model"
	programmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/model"
	usermodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
)

var ErrNotFound = errors.New("record not found")

// Store is the persistence surface the settlement pipeline needs. The gorm
// implementation backs production; tests run the same pipeline against an
// in-memory implementation.
type Store interface {
	PaymentByID(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error)
	PaymentByReference(ctx context.Context, reference string) (*model.PaymentModel, error)

	// CompletePayment flips pending -> completed. Returns false when the row
	// was already completed; that is the idempotency gate for raced verifies.
	CompletePayment(ctx context.Context, paymentID uuid.UUID, providerRef string, meta map[string]any, paidAt time.Time) (bool, error)

	ApplicationByID(ctx context.Context, applicationID uuid.UUID) (*appmodel.ApplicationModel, error)
	MarkApplicationFeePaid(ctx context.Context, applicationID uuid.UUID) error
	MarkRegistrationFeePaid(ctx context.Context, applicationID uuid.UUID) error

	// AssignRegistrationNumber writes only when no number is set yet and
	// reports whether this call did the write.
	AssignRegistrationNumber(ctx context.Context, applicationID uuid.UUID, regNumber string) (bool, error)

	ProgramTitle(ctx context.Context, programID uuid.UUID) (string, error)
	IncrementEnrolledCount(ctx context.Context, programID uuid.UUID) error

	CreateReceipt(ctx context.Context, receipt *model.ReceiptModel) error

	TraineeContact(ctx context.Context, userID uuid.UUID) (fullName, email string, err error)

	// Transact runs fn against a store bound to one database transaction.
	Transact(ctx context.Context, fn func(Store) error) error
}

/* =========================================================
   Gorm-backed implementation
========================================================= */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) PaymentByID(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := s.DB.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) PaymentByReference(ctx context.Context, reference string) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := s.DB.WithContext(ctx).Where("payment_reference = ?", reference).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) CompletePayment(ctx context.Context, paymentID uuid.UUID, providerRef string, meta map[string]any, paidAt time.Time) (bool, error) {
	updates := map[string]any{
		"payment_status":  model.PaymentStatusCompleted,
		"payment_paid_at": paidAt,
	}
	if providerRef != "" {
		updates["payment_provider_reference"] = providerRef
	}
	if len(meta) > 0 {
		updates["payment_meta"] = datatypes.JSONMap(meta)
	}
	res := s.DB.WithContext(ctx).Model(&model.PaymentModel{}).
		Where("payment_id = ? AND payment_status <> ?", paymentID, model.PaymentStatusCompleted).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) ApplicationByID(ctx context.Context, applicationID uuid.UUID) (*appmodel.ApplicationModel, error) {
	var a appmodel.ApplicationModel
	err := s.DB.WithContext(ctx).Where("application_id = ?", applicationID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) MarkApplicationFeePaid(ctx context.Context, applicationID uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&appmodel.ApplicationModel{}).
		Where("application_id = ?", applicationID).
		UpdateColumn("application_fee_paid", true).Error
}

func (s *GormStore) MarkRegistrationFeePaid(ctx context.Context, applicationID uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&appmodel.ApplicationModel{}).
		Where("application_id = ?", applicationID).
		UpdateColumn("registration_fee_paid", true).Error
}

func (s *GormStore) AssignRegistrationNumber(ctx context.Context, applicationID uuid.UUID, regNumber string) (bool, error) {
	return appmodel.AssignRegistrationNumber(s.DB.WithContext(ctx), applicationID, regNumber)
}

func (s *GormStore) ProgramTitle(ctx context.Context, programID uuid.UUID) (string, error) {
	var p programmodel.ProgramModel
	err := s.DB.WithContext(ctx).Select("program_title").
		Where("program_id = ?", programID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p.ProgramTitle, nil
}

func (s *GormStore) IncrementEnrolledCount(ctx context.Context, programID uuid.UUID) error {
	return programmodel.IncrementEnrolledCount(s.DB.WithContext(ctx), programID)
}

func (s *GormStore) CreateReceipt(ctx context.Context, receipt *model.ReceiptModel) error {
	return s.DB.WithContext(ctx).Create(receipt).Error
}

func (s *GormStore) TraineeContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	var u usermodel.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	var p usermodel.TraineeProfileModel
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}
	fullName := p.FullName
	if fullName == "" {
		fullName = u.UserName
	}
	return fullName, u.Email, nil
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

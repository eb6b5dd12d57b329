package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/provider"
	emailmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/emails/model"
)

/* =========================================================
   In-memory store
========================================================= */

type memStore struct {
	mu sync.Mutex

	payments     map[uuid.UUID]*model.PaymentModel
	applications map[uuid.UUID]*appmodel.ApplicationModel
	programs     map[uuid.UUID]*memProgram
	receipts     []model.ReceiptModel
	contacts     map[uuid.UUID][2]string // full name, email
}

type memProgram struct {
	title         string
	enrolledCount int64
}

func newMemStore() *memStore {
	return &memStore{
		payments:     map[uuid.UUID]*model.PaymentModel{},
		applications: map[uuid.UUID]*appmodel.ApplicationModel{},
		programs:     map[uuid.UUID]*memProgram{},
		contacts:     map[uuid.UUID][2]string{},
	}
}

func (m *memStore) PaymentByID(_ context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) PaymentByReference(_ context.Context, ref string) (*model.PaymentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.PaymentReference == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CompletePayment(_ context.Context, id uuid.UUID, providerRef string, meta map[string]any, paidAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok || p.PaymentStatus == model.PaymentStatusCompleted {
		return false, nil
	}
	p.PaymentStatus = model.PaymentStatusCompleted
	p.PaymentPaidAt = &paidAt
	if providerRef != "" {
		p.PaymentProviderReference = &providerRef
	}
	_ = meta
	return true, nil
}

func (m *memStore) ApplicationByID(_ context.Context, id uuid.UUID) (*appmodel.ApplicationModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) MarkApplicationFeePaid(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.applications[id]; ok {
		a.ApplicationFeePaid = true
	}
	return nil
}

func (m *memStore) MarkRegistrationFeePaid(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.applications[id]; ok {
		a.RegistrationFeePaid = true
	}
	return nil
}

func (m *memStore) AssignRegistrationNumber(_ context.Context, id uuid.UUID, reg string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok || a.ApplicationRegistrationNumber != nil {
		return false, nil
	}
	a.ApplicationRegistrationNumber = &reg
	return true, nil
}

func (m *memStore) ProgramTitle(_ context.Context, id uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.programs[id]
	if !ok {
		return "", ErrNotFound
	}
	return p.title, nil
}

func (m *memStore) IncrementEnrolledCount(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.programs[id]; ok {
		p.enrolledCount++
	}
	return nil
}

func (m *memStore) CreateReceipt(_ context.Context, r *model.ReceiptModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.receipts {
		if existing.ReceiptPaymentID == r.ReceiptPaymentID {
			return errors.New("duplicate receipt for payment")
		}
	}
	m.receipts = append(m.receipts, *r)
	return nil
}

func (m *memStore) TraineeContact(_ context.Context, userID uuid.UUID) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[userID]
	if !ok {
		return "", "", ErrNotFound
	}
	return c[0], c[1], nil
}

// Transact serializes with the same mutex-per-call discipline the methods use;
// there is no rollback, which is fine because the fakes never fail mid-way
// except where a test injects it before any write.
func (m *memStore) Transact(_ context.Context, fn func(Store) error) error {
	return fn(m)
}

/* =========================================================
   Fakes for the edges
========================================================= */

type fakeVerifier struct {
	name      string
	confirmed bool
	err       error
	calls     int
	mu        sync.Mutex
}

func (f *fakeVerifier) Name() string { return f.name }

func (f *fakeVerifier) Verify(_ context.Context, reference string) (provider.VerifyResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return provider.VerifyResult{}, f.err
	}
	return provider.VerifyResult{Confirmed: f.confirmed, Reference: reference, Currency: "NGN"}, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, typ, _, _ string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, typ)
	return f.err
}

type fakeEmailer struct {
	mu       sync.Mutex
	settings emailmodel.ReceiptSettingModel
	sent     []string // template keys
	err      error
}

func (f *fakeEmailer) ReceiptSettings(context.Context) (emailmodel.ReceiptSettingModel, error) {
	return f.settings, nil
}

func (f *fakeEmailer) SendTemplated(_ context.Context, _, key string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, key)
	return f.err
}

/* =========================================================
   Suite
========================================================= */

type SettlementSuite struct {
	suite.Suite

	store    *memStore
	verifier *fakeVerifier
	notifier *fakeNotifier
	emailer  *fakeEmailer
	svc      *SettlementService

	userID    uuid.UUID
	programID uuid.UUID
	appID     uuid.UUID
}

func (s *SettlementSuite) SetupTest() {
	s.store = newMemStore()
	s.verifier = &fakeVerifier{name: "paystack", confirmed: true}
	s.notifier = &fakeNotifier{}
	s.emailer = &fakeEmailer{settings: emailmodel.ReceiptSettingModel{
		SendEmailOnVerification: true,
		ReceiptTemplateKey:      emailmodel.TemplateKeyReceipt,
	}}
	s.svc = NewSettlementService(s.store,
		map[string]provider.Verifier{s.verifier.Name(): s.verifier},
		s.notifier, s.emailer)

	s.userID = uuid.New()
	s.programID = uuid.New()
	s.appID = uuid.New()

	s.store.programs[s.programID] = &memProgram{title: "Welding and Fabrication"}
	s.store.applications[s.appID] = &appmodel.ApplicationModel{
		ApplicationID:        s.appID,
		ApplicationUserID:    s.userID,
		ApplicationProgramID: s.programID,
		ApplicationStatus:    appmodel.ApplicationStatusApproved,
		ApplicationSubmitted: true,
	}
	s.store.contacts[s.userID] = [2]string{"Aisha Bello", "aisha@example.com"}
}

func (s *SettlementSuite) addPayment(typ, ref string) uuid.UUID {
	id := uuid.New()
	s.store.payments[id] = &model.PaymentModel{
		PaymentID:            id,
		PaymentUserID:        s.userID,
		PaymentApplicationID: s.appID,
		PaymentAmountKobo:    2500000,
		PaymentCurrency:      "NGN",
		PaymentStatus:        model.PaymentStatusPending,
		PaymentType:          typ,
		PaymentProvider:      "paystack",
		PaymentReference:     ref,
	}
	return id
}

func (s *SettlementSuite) TestApplicationFeeSettles() {
	id := s.addPayment(model.PaymentTypeApplicationFee, "REF-APP-1")

	out, err := s.svc.SettleByReference(context.Background(), "REF-APP-1")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)
	s.NotEmpty(out.ReceiptNumber)
	s.Empty(out.RegistrationNumber)

	s.True(s.store.applications[s.appID].ApplicationFeePaid)
	s.False(s.store.applications[s.appID].RegistrationFeePaid)
	s.Nil(s.store.applications[s.appID].ApplicationRegistrationNumber)
	s.Equal(int64(0), s.store.programs[s.programID].enrolledCount)

	s.Len(s.store.receipts, 1)
	s.Equal(id, s.store.receipts[0].ReceiptPaymentID)
	s.Equal(int64(2500000), s.store.receipts[0].ReceiptAmountKobo)

	s.Equal([]string{"payment_success"}, s.notifier.types)
	s.Equal([]string{emailmodel.TemplateKeyReceipt}, s.emailer.sent)
}

func (s *SettlementSuite) TestRegistrationFeeSettlesAndEnrolls() {
	s.addPayment(model.PaymentTypeRegistrationFee, "REF-REG-1")

	out, err := s.svc.SettleByReference(context.Background(), "REF-REG-1")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)
	s.NotEmpty(out.RegistrationNumber)

	app := s.store.applications[s.appID]
	s.True(app.RegistrationFeePaid)
	s.Require().NotNil(app.ApplicationRegistrationNumber)
	s.Equal(out.RegistrationNumber, *app.ApplicationRegistrationNumber)
	s.Equal(int64(1), s.store.programs[s.programID].enrolledCount)

	s.Equal([]string{"registration_complete"}, s.notifier.types)
	// registration-complete mail plus the receipt mail
	s.Equal([]string{emailmodel.TemplateKeyRegistrationComplete, emailmodel.TemplateKeyReceipt}, s.emailer.sent)
}

func (s *SettlementSuite) TestResettleIsIdempotent() {
	s.addPayment(model.PaymentTypeRegistrationFee, "REF-REG-2")

	first, err := s.svc.SettleByReference(context.Background(), "REF-REG-2")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, first.Result)

	second, err := s.svc.SettleByReference(context.Background(), "REF-REG-2")
	s.Require().NoError(err)
	s.Equal(ResultAlreadyCompleted, second.Result)

	s.Len(s.store.receipts, 1)
	s.Equal(int64(1), s.store.programs[s.programID].enrolledCount)
	s.Equal(first.RegistrationNumber, *s.store.applications[s.appID].ApplicationRegistrationNumber)
	s.Len(s.notifier.types, 1, "side effects fire once")
}

func (s *SettlementSuite) TestConcurrentSettlesIncrementOnce() {
	s.addPayment(model.PaymentTypeRegistrationFee, "REF-REG-RACE")

	const n = 16
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := s.svc.SettleByReference(context.Background(), "REF-REG-RACE")
			s.NoError(err)
			results[i] = out.Result
		}(i)
	}
	wg.Wait()

	var settled int
	for _, r := range results {
		switch r {
		case ResultVerifiedAndSettled:
			settled++
		case ResultAlreadyCompleted:
		default:
			s.Failf("unexpected result", "%v", r)
		}
	}
	s.Equal(1, settled, "exactly one caller wins the settlement")
	s.Equal(int64(1), s.store.programs[s.programID].enrolledCount)
	s.Len(s.store.receipts, 1)
	s.NotNil(s.store.applications[s.appID].ApplicationRegistrationNumber)
}

func (s *SettlementSuite) TestConcurrentDistinctSettlesCountEveryEnrollment() {
	const n = 12
	refs := make([]string, n)
	appIDs := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		userID := uuid.New()
		appID := uuid.New()
		appIDs[i] = appID
		s.store.applications[appID] = &appmodel.ApplicationModel{
			ApplicationID:        appID,
			ApplicationUserID:    userID,
			ApplicationProgramID: s.programID,
			ApplicationStatus:    appmodel.ApplicationStatusApproved,
			ApplicationSubmitted: true,
			ApplicationFeePaid:   true,
		}
		s.store.contacts[userID] = [2]string{fmt.Sprintf("Trainee %d", i), fmt.Sprintf("trainee%d@example.com", i)}

		paymentID := uuid.New()
		refs[i] = fmt.Sprintf("REF-REG-MANY-%d", i)
		s.store.payments[paymentID] = &model.PaymentModel{
			PaymentID:            paymentID,
			PaymentUserID:        userID,
			PaymentApplicationID: appID,
			PaymentAmountKobo:    2500000,
			PaymentCurrency:      "NGN",
			PaymentStatus:        model.PaymentStatusPending,
			PaymentType:          model.PaymentTypeRegistrationFee,
			PaymentProvider:      "paystack",
			PaymentReference:     refs[i],
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			out, err := s.svc.SettleByReference(context.Background(), ref)
			s.NoError(err)
			s.Equal(ResultVerifiedAndSettled, out.Result)
		}(refs[i])
	}
	wg.Wait()

	s.Equal(int64(n), s.store.programs[s.programID].enrolledCount, "each first-time settlement counts exactly once")
	s.Len(s.store.receipts, n)

	seen := make(map[string]bool, n)
	for _, appID := range appIDs {
		app := s.store.applications[appID]
		s.True(app.RegistrationFeePaid)
		s.Require().NotNil(app.ApplicationRegistrationNumber)
		s.False(seen[*app.ApplicationRegistrationNumber], "registration numbers must be distinct")
		seen[*app.ApplicationRegistrationNumber] = true
	}
}

func (s *SettlementSuite) TestRegistrationNumberNeverReassigned() {
	existing := "ATS/WF/2026/ABCDEF"
	s.store.applications[s.appID].ApplicationRegistrationNumber = &existing
	s.addPayment(model.PaymentTypeRegistrationFee, "REF-REG-3")

	out, err := s.svc.SettleByReference(context.Background(), "REF-REG-3")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)
	s.Equal(existing, out.RegistrationNumber)
	s.Equal(existing, *s.store.applications[s.appID].ApplicationRegistrationNumber)
	s.Equal(int64(0), s.store.programs[s.programID].enrolledCount, "count only moves with a fresh assignment")
}

func (s *SettlementSuite) TestVerificationFailureWritesNothing() {
	s.verifier.confirmed = false
	s.addPayment(model.PaymentTypeApplicationFee, "REF-APP-2")

	out, err := s.svc.SettleByReference(context.Background(), "REF-APP-2")
	s.Require().NoError(err)
	s.Equal(ResultVerificationFailed, out.Result)

	var p *model.PaymentModel
	for _, pp := range s.store.payments {
		p = pp
	}
	s.Equal(model.PaymentStatusPending, p.PaymentStatus)
	s.False(s.store.applications[s.appID].ApplicationFeePaid)
	s.Empty(s.store.receipts)
	s.Empty(s.notifier.types)
	s.Empty(s.emailer.sent)
}

func (s *SettlementSuite) TestProviderErrorFailsClosed() {
	s.verifier.err = fmt.Errorf("connection refused")
	s.addPayment(model.PaymentTypeApplicationFee, "REF-APP-3")

	out, err := s.svc.SettleByReference(context.Background(), "REF-APP-3")
	s.Require().NoError(err)
	s.Equal(ResultVerificationFailed, out.Result)
	s.Empty(s.store.receipts)
}

func (s *SettlementSuite) TestMailerFailureDoesNotFailSettlement() {
	s.emailer.err = fmt.Errorf("smtp down")
	s.notifier.err = fmt.Errorf("insert failed")
	s.addPayment(model.PaymentTypeRegistrationFee, "REF-REG-4")

	out, err := s.svc.SettleByReference(context.Background(), "REF-REG-4")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)
	s.Len(s.store.receipts, 1)
}

func (s *SettlementSuite) TestReceiptEmailRespectsSetting() {
	s.emailer.settings.SendEmailOnVerification = false
	s.addPayment(model.PaymentTypeApplicationFee, "REF-APP-4")

	out, err := s.svc.SettleByReference(context.Background(), "REF-APP-4")
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)
	s.Empty(s.emailer.sent)
}

func (s *SettlementSuite) TestSettleByPaymentID() {
	id := s.addPayment(model.PaymentTypeApplicationFee, "REF-APP-5")

	out, err := s.svc.SettleByPaymentID(context.Background(), id)
	s.Require().NoError(err)
	s.Equal(ResultVerifiedAndSettled, out.Result)

	again, err := s.svc.SettleByPaymentID(context.Background(), id)
	s.Require().NoError(err)
	s.Equal(ResultAlreadyCompleted, again.Result)

	out, err = s.svc.SettleByPaymentID(context.Background(), uuid.Nil)
	s.Require().NoError(err)
	s.Equal(ResultInvalidRequest, out.Result)

	out, err = s.svc.SettleByPaymentID(context.Background(), uuid.New())
	s.Require().NoError(err)
	s.Equal(ResultInvalidRequest, out.Result)
}

func (s *SettlementSuite) TestUnknownReference() {
	out, err := s.svc.SettleByReference(context.Background(), "NOPE")
	s.Require().NoError(err)
	s.Equal(ResultInvalidRequest, out.Result)
}

func (s *SettlementSuite) TestBlankReference() {
	out, err := s.svc.SettleByReference(context.Background(), "   ")
	s.Require().NoError(err)
	s.Equal(ResultInvalidRequest, out.Result)
}

func (s *SettlementSuite) TestMissingVerifierIsInternalError() {
	id := uuid.New()
	s.store.payments[id] = &model.PaymentModel{
		PaymentID:            id,
		PaymentUserID:        s.userID,
		PaymentApplicationID: s.appID,
		PaymentStatus:        model.PaymentStatusPending,
		PaymentType:          model.PaymentTypeApplicationFee,
		PaymentProvider:      "cash",
		PaymentReference:     "REF-CASH",
	}

	out, err := s.svc.SettleByReference(context.Background(), "REF-CASH")
	s.Error(err)
	s.Equal(ResultInternalError, out.Result)
}

func TestSettlementSuite(t *testing.T) {
	suite.Run(t, new(SettlementSuite))
}

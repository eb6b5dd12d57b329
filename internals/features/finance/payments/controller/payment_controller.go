package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/dto"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/service"
	programmodel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/model"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

type PaymentController struct {
	DB         *gorm.DB
	Settle     *service.SettlementService
	AppBaseURL string
	Validate   *validator.Validate
}

func NewPaymentController(db *gorm.DB, settle *service.SettlementService, appBaseURL string) *PaymentController {
	return &PaymentController{DB: db, Settle: settle, AppBaseURL: appBaseURL, Validate: validator.New()}
}

func (h *PaymentController) RegisterTraineeRoutes(r fiber.Router) {
	gr := r.Group("/payments")
	gr.Post("/initialize", h.InitializePayment)
	gr.Get("/verify/:reference", h.VerifyPayment)
	gr.Get("/:id/verify", h.VerifyPaymentByID)
	gr.Get("/me", h.ListMine)
	gr.Get("/receipts/me", h.ListMyReceipts)
}

// RegisterPublicRoutes mounts the provider webhook. It is unauthenticated on
// purpose; nothing settles without a fresh server-side verify call.
func (h *PaymentController) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/payments/webhook/:provider", h.Webhook)
}

/* =======================================================================
   Initialize
======================================================================= */

// InitializePayment creates a pending payment row for the fee the trainee is
// about to pay and returns our reference. The client hands that reference to
// the provider checkout; money state only changes on verification.
func (h *PaymentController) InitializePayment(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)
	if userID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.InitializePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var app appmodel.ApplicationModel
	if err := h.DB.First(&app, "application_id = ? AND application_user_id = ?", req.ApplicationID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var prog programmodel.ProgramModel
	if err := h.DB.First(&prog, "program_id = ?", app.ApplicationProgramID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var amount int64
	switch req.PaymentType {
	case model.PaymentTypeApplicationFee:
		if app.ApplicationFeePaid {
			return fiber.NewError(fiber.StatusConflict, "application fee already paid")
		}
		amount = prog.ProgramApplicationFeeKobo
	case model.PaymentTypeRegistrationFee:
		if !app.IsApproved() {
			return fiber.NewError(fiber.StatusConflict, "application not approved yet")
		}
		if app.RegistrationFeePaid {
			return fiber.NewError(fiber.StatusConflict, "registration fee already paid")
		}
		amount = prog.ProgramRegistrationFeeKobo
	}
	if amount <= 0 {
		return fiber.NewError(fiber.StatusConflict, "this fee is waived for the selected program")
	}

	m := &model.PaymentModel{
		PaymentUserID:        userID,
		PaymentApplicationID: app.ApplicationID,
		PaymentAmountKobo:    amount,
		PaymentCurrency:      "NGN",
		PaymentStatus:        model.PaymentStatusPending,
		PaymentType:          req.PaymentType,
		PaymentProvider:      req.Provider,
		PaymentReference:     helper.GenPaymentReference("ATS"),
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := dto.FromPaymentModel(m)
	out.PaymentCallbackURL = helper.BuildCallbackURL(h.AppBaseURL, m.PaymentReference)
	return c.Status(fiber.StatusCreated).JSON(out)
}

/* =======================================================================
   Verify + webhook
======================================================================= */

func (h *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	reference := strings.TrimSpace(c.Params("reference"))
	out, err := h.Settle.SettleByReference(c.UserContext(), reference)
	return h.respond(c, out, err)
}

func (h *PaymentController) VerifyPaymentByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	out, err := h.Settle.SettleByPaymentID(c.UserContext(), id)
	return h.respond(c, out, err)
}

// Webhook accepts provider callbacks. The payload is only mined for a
// transaction reference; confirmation always comes from our own verify call,
// so a forged body can at worst trigger a verification that fails.
func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	providerName := strings.ToLower(c.Params("provider"))
	if providerName != model.PaymentProviderPaystack && providerName != model.PaymentProviderFlutterwave {
		return fiber.NewError(fiber.StatusNotFound, "unknown provider")
	}

	var payload struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"` // paystack
			TxRef     string `json:"tx_ref"`    // flutterwave
		} `json:"data"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	reference := payload.Data.Reference
	if reference == "" {
		reference = payload.Data.TxRef
	}
	if reference == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no reference in payload")
	}

	out, err := h.Settle.SettleByReference(c.UserContext(), reference)
	if err != nil && out.Result == service.ResultInternalError {
		return fiber.NewError(fiber.StatusInternalServerError, "settlement failed")
	}
	// Providers only care that we acknowledged; they retry on non-2xx.
	return c.JSON(fiber.Map{"result": string(out.Result)})
}

func (h *PaymentController) respond(c *fiber.Ctx, out service.Settlement, err error) error {
	body := dto.VerifyPaymentResponse{
		Result:             string(out.Result),
		Payment:            dto.FromPaymentModel(out.Payment),
		ReceiptNumber:      out.ReceiptNumber,
		RegistrationNumber: out.RegistrationNumber,
	}
	switch out.Result {
	case service.ResultVerifiedAndSettled, service.ResultAlreadyCompleted:
		return c.JSON(body)
	case service.ResultVerificationFailed:
		return c.Status(fiber.StatusPaymentRequired).JSON(body)
	case service.ResultInvalidRequest:
		return fiber.NewError(fiber.StatusBadRequest, "unknown or invalid payment reference")
	default:
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "settlement failed")
	}
}

/* =======================================================================
   Listings
======================================================================= */

func (h *PaymentController) ListMine(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)
	if userID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []model.PaymentModel
	if err := h.DB.
		Where("payment_user_id = ?", userID).
		Order("payment_created_at DESC").
		Limit(100).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromPaymentModel(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

func (h *PaymentController) ListMyReceipts(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)
	if userID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []model.ReceiptModel
	if err := h.DB.
		Joins("JOIN payments ON payments.payment_id = receipts.receipt_payment_id").
		Where("payments.payment_user_id = ?", userID).
		Order("receipts.receipt_created_at DESC").
		Limit(100).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.ReceiptResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromReceiptModel(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/emails/model"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
)

// Mailer hands a rendered message to whatever transport is configured.
// Dispatch failures are the caller's to swallow: an email must never fail a
// settlement.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogMailer is the default transport: it only logs. Real SMTP/API delivery
// plugs in behind the same interface.
type LogMailer struct {
	From string
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("[MAIL] from=%s to=%s subject=%q", m.From, to, subject)
	return nil
}

/* =========================================================
   Template lookup + rendering
========================================================= */

// Hardcoded fallbacks used when no active template row exists for a key.
var defaultTemplates = map[string]model.EmailTemplateModel{
	model.TemplateKeyReceipt: {
		TemplateKey:     model.TemplateKeyReceipt,
		TemplateSubject: "Payment receipt {{receipt_number}}",
		TemplateHTML: "<p>Dear {{full_name}},</p>" +
			"<p>We received your {{payment_type}} payment of NGN {{amount_naira}}.</p>" +
			"<p>Receipt number: <b>{{receipt_number}}</b></p>" +
			"{{#registration_number}}<p>Your registration number is <b>{{registration_number}}</b>.</p>{{/registration_number}}" +
			"<p>Atapoly Skills Center</p>",
	},
	model.TemplateKeyRegistrationComplete: {
		TemplateKey:     model.TemplateKeyRegistrationComplete,
		TemplateSubject: "Registration complete",
		TemplateHTML: "<p>Dear {{full_name}},</p>" +
			"<p>Your registration for {{program_title}} is complete.</p>" +
			"<p>Your registration number is <b>{{registration_number}}</b>. Keep it safe; it appears on your ID card.</p>" +
			"<p>Atapoly Skills Center</p>",
	},
}

type EmailService struct {
	DB     *gorm.DB
	Mailer Mailer
}

func NewEmailService(db *gorm.DB, mailer Mailer) *EmailService {
	return &EmailService{DB: db, Mailer: mailer}
}

// ReceiptSettings returns the single settings row, or a disabled default when
// none has been created yet.
func (s *EmailService) ReceiptSettings(ctx context.Context) (model.ReceiptSettingModel, error) {
	var cfg model.ReceiptSettingModel
	err := s.DB.WithContext(ctx).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ReceiptSettingModel{ReceiptTemplateKey: model.TemplateKeyReceipt}, nil
		}
		return cfg, err
	}
	return cfg, nil
}

// template resolves a configured template by key, falling back to the
// hardcoded default for that key.
func (s *EmailService) template(ctx context.Context, key string) model.EmailTemplateModel {
	var tpl model.EmailTemplateModel
	err := s.DB.WithContext(ctx).
		Where("template_key = ? AND template_active = TRUE", key).
		First(&tpl).Error
	if err == nil {
		return tpl
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[MAIL] template lookup failed key=%s err=%v, using default", key, err)
	}
	if def, ok := defaultTemplates[key]; ok {
		return def
	}
	return model.EmailTemplateModel{TemplateKey: key, TemplateSubject: "Atapoly Skills Center", TemplateHTML: "<p>{{message}}</p>"}
}

// SendTemplated renders the template for key with vars and dispatches it.
func (s *EmailService) SendTemplated(ctx context.Context, to, key string, vars map[string]string) error {
	tpl := s.template(ctx, key)
	subject := helper.RenderTemplate(tpl.TemplateSubject, vars)
	html := helper.RenderTemplate(tpl.TemplateHTML, vars)
	return s.Mailer.Send(ctx, to, subject, html)
}

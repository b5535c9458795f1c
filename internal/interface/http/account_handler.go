package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/internal/application/account"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/mailer"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

type AccountHandler struct {
	CreateAccount  *account.CreateAccount
	Login          *account.Login
	ChangePassword *account.ChangePassword
	Validator      validation.SchemaValidator
	Notifier       contract.Notifier // optional
	Metrics        *metrics.Metrics  // optional
	Logger         *logrus.Logger
}

func NewAccountHandler(
	create *account.CreateAccount,
	login *account.Login,
	changePassword *account.ChangePassword,
	v validation.SchemaValidator,
	notifier contract.Notifier,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *AccountHandler {
	return &AccountHandler{
		CreateAccount:  create,
		Login:          login,
		ChangePassword: changePassword,
		Validator:      v,
		Notifier:       notifier,
		Metrics:        m,
		Logger:         logger,
	}
}

// SignUp POST /signup
func (h *AccountHandler) SignUp(ctx context.Context, req Request) response.HTTPResponse {
	var in signUpSchema
	if err := h.check(req.Body, &in); err != nil {
		return h.fail(req, err)
	}

	out, err := h.CreateAccount.Execute(ctx, account.CreateAccountInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return h.fail(req, err, conflictOn(apperr.ErrEmailAlreadyExists))
	}

	h.Metrics.IncAccountsCreated()
	h.notify(ctx, req, out.Email, mailer.TemplateWelcome, map[string]any{"Name": out.Name})
	return response.Created(out)
}

// SignIn POST /login
// A malformed email or password is answered like a wrong one; only a missing
// field is a 400.
func (h *AccountHandler) SignIn(ctx context.Context, req Request) response.HTTPResponse {
	wrongCredentials := unauthorizedOn(apperr.ErrInvalidParam, apperr.ErrAccountNotFound, apperr.ErrWrongPassword)

	var in loginSchema
	if err := h.check(req.Body, &in); err != nil {
		return adaptError(h.Logger, req, err, wrongCredentials, paramErrors)
	}

	out, err := h.Login.Execute(ctx, account.LoginInput{Email: in.Email, Password: in.Password})
	if err != nil {
		return adaptError(h.Logger, req, err, wrongCredentials, paramErrors)
	}
	return response.OK(out)
}

// UpdatePassword POST /change-password
func (h *AccountHandler) UpdatePassword(ctx context.Context, req Request) response.HTTPResponse {
	var in changePasswordSchema
	if err := h.check(req.Body, &in); err != nil {
		return h.fail(req, err)
	}

	out, err := h.ChangePassword.Execute(ctx, account.ChangePasswordInput{
		Email:           in.Email,
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
	})
	if err != nil {
		return h.fail(req, err, unauthorizedOn(apperr.ErrAccountNotFound, apperr.ErrWrongPassword))
	}

	h.Metrics.IncPasswordsChanged()
	h.notify(ctx, req, out.Email, mailer.TemplatePasswordChanged, map[string]any{"Email": out.Email})
	return response.OK(out)
}

func (h *AccountHandler) check(body []byte, dst any) error {
	if err := decodeBody(body, dst); err != nil {
		return err
	}
	return validate(h.Validator, dst)
}

func (h *AccountHandler) fail(req Request, err error, rules ...errorRule) response.HTTPResponse {
	return adaptError(h.Logger, req, err, append([]errorRule{paramErrors}, rules...)...)
}

// notify is best-effort: the account change already happened.
func (h *AccountHandler) notify(ctx context.Context, req Request, to, template string, data map[string]any) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Notify(ctx, to, template, data); err != nil {
		h.Metrics.IncNotificationsFailed()
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"template":   template,
			}).Warn("failed to publish account notification")
		}
	}
}

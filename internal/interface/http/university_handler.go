package handlers

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/internal/application/university"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

// UniversityUseCases groups the university interactors served over HTTP.
type UniversityUseCases struct {
	Create *university.CreateUniversity
	Load   *university.LoadUniversity
	List   *university.LoadUniversities
	Update *university.UpdateUniversity
	Delete *university.DeleteUniversity
	Search *university.SearchUniversities
}

type UniversityHandler struct {
	UseCases  UniversityUseCases
	Validator validation.SchemaValidator
	Metrics   *metrics.Metrics // optional
	Logger    *logrus.Logger
}

func NewUniversityHandler(uc UniversityUseCases, v validation.SchemaValidator, m *metrics.Metrics, logger *logrus.Logger) *UniversityHandler {
	return &UniversityHandler{UseCases: uc, Validator: v, Metrics: m, Logger: logger}
}

// Create POST /universities
func (h *UniversityHandler) Create(ctx context.Context, req Request) response.HTTPResponse {
	var in createUniversitySchema
	if err := decodeBody(req.Body, &in); err != nil {
		return h.fail(req, err)
	}
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}

	u, err := h.UseCases.Create.Execute(ctx, university.CreateUniversityInput{
		Name:          in.Name,
		Country:       in.Country,
		StateProvince: in.StateProvince,
		AlphaTwoCode:  in.AlphaTwoCode,
		Domains:       in.Domains,
		WebPages:      in.WebPages,
	})
	if err != nil {
		return h.fail(req, err, conflictOn(apperr.ErrUniversityAlreadyExists))
	}
	h.Metrics.IncUniversityMutation("create")
	return response.Created(u)
}

// Show GET /universities/:universityId
func (h *UniversityHandler) Show(ctx context.Context, req Request) response.HTTPResponse {
	in := universityIDSchema{UniversityID: req.Params["universityId"]}
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}

	u, err := h.UseCases.Load.Execute(ctx, university.LoadUniversityInput{UniversityID: in.UniversityID})
	if err != nil {
		return h.fail(req, err, notFoundOn(apperr.ErrUniversityNotFound))
	}
	return response.OK(u)
}

// Index GET /universities?page=&country=
func (h *UniversityHandler) Index(ctx context.Context, req Request) response.HTTPResponse {
	in := listUniversitiesSchema{Page: req.Query["page"], Country: req.Query["country"]}
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}
	page := 1
	if in.Page != "" {
		n, err := strconv.Atoi(in.Page)
		if err != nil || n < 1 {
			return h.fail(req, apperr.InvalidParam("page"))
		}
		page = n
	}

	out, err := h.UseCases.List.Execute(ctx, university.LoadUniversitiesInput{Page: page, Country: in.Country})
	if err != nil {
		return h.fail(req, err)
	}
	return response.OK(out)
}

// Update PUT /universities/:universityId
func (h *UniversityHandler) Update(ctx context.Context, req Request) response.HTTPResponse {
	var in updateUniversitySchema
	if err := decodeBody(req.Body, &in); err != nil {
		return h.fail(req, err)
	}
	// the path wins over any id sent in the body
	in.UniversityID = req.Params["universityId"]
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}

	u, err := h.UseCases.Update.Execute(ctx, university.UpdateUniversityInput{
		UniversityID: in.UniversityID,
		Name:         in.Name,
		Domains:      in.Domains,
		WebPages:     in.WebPages,
	})
	if err != nil {
		return h.fail(req, err, notFoundOn(apperr.ErrUniversityNotFound), conflictOn(apperr.ErrUniversityAlreadyExists))
	}
	h.Metrics.IncUniversityMutation("update")
	return response.OK(u)
}

// Destroy DELETE /universities/:universityId
func (h *UniversityHandler) Destroy(ctx context.Context, req Request) response.HTTPResponse {
	in := universityIDSchema{UniversityID: req.Params["universityId"]}
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}

	out, err := h.UseCases.Delete.Execute(ctx, university.DeleteUniversityInput{ID: in.UniversityID})
	if err != nil {
		return h.fail(req, err, notFoundOn(apperr.ErrUniversityNotFound))
	}
	h.Metrics.IncUniversityMutation("delete")
	return response.OK(out)
}

// Search GET /universities/search?q=&size=
func (h *UniversityHandler) Search(ctx context.Context, req Request) response.HTTPResponse {
	in := searchUniversitiesSchema{Q: req.Query["q"], Size: req.Query["size"]}
	if err := validate(h.Validator, in); err != nil {
		return h.fail(req, err)
	}
	size := 0
	if in.Size != "" {
		n, err := strconv.Atoi(in.Size)
		if err != nil || n < 1 || n > 50 {
			return h.fail(req, apperr.InvalidParam("size"))
		}
		size = n
	}

	out, err := h.UseCases.Search.Execute(ctx, university.SearchUniversitiesInput{Query: in.Q, Size: size})
	if err != nil {
		return h.fail(req, err)
	}
	return response.OK(out)
}

func (h *UniversityHandler) fail(req Request, err error, rules ...errorRule) response.HTTPResponse {
	return adaptError(h.Logger, req, err, append([]errorRule{paramErrors}, rules...)...)
}

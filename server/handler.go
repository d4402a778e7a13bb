package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/converter"
	"github.com/goccy/temporalconv/internal/logger"
	"github.com/goccy/temporalconv/internal/pattern"
	"github.com/goccy/temporalconv/types"
)

type handler struct {
	Path       string
	HTTPMethod string
	Handler    http.Handler
}

var handlers = []*handler{
	{
		Path:       "/v1/parse",
		HTTPMethod: http.MethodPost,
		Handler:    &parseHandler{},
	},
	{
		Path:       "/v1/format",
		HTTPMethod: http.MethodPost,
		Handler:    &formatHandler{},
	},
	{
		Path:       "/v1/categories",
		HTTPMethod: http.MethodGet,
		Handler:    &categoriesHandler{},
	},
	{
		Path:       "/v1/categories/{category}/patterns",
		HTTPMethod: http.MethodGet,
		Handler:    &patternsHandler{},
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	types.RegisterTypeValidation(v)
	return v
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) {
	b, err := json.Marshal(response)
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func decodeRequest(r *http.Request, v interface{}) *ServerError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errInvalid(fmt.Sprintf("failed to decode request: %s", err))
	}
	return validateRequest(v)
}

func validateRequest(v interface{}) *ServerError {
	if err := validate.Struct(v); err != nil {
		return errInvalid(err.Error())
	}
	return nil
}

// requestLocale prefers the locale named by the request, then the one
// of the Accept-Language header and finally the server default.
func requestLocale(ctx context.Context, server *Server, requested string) (language.Tag, *ServerError) {
	if requested != "" {
		tag, err := language.Parse(requested)
		if err != nil {
			return language.Und, errInvalid(fmt.Sprintf("invalid locale %q: %s", requested, err))
		}
		return tag, nil
	}
	if tag, ok := localeFromContext(ctx); ok {
		return tag, nil
	}
	return server.defaultLocale(), nil
}

func categoryFromName(name string) (types.Category, *ServerError) {
	category, found := types.CategoryFromName(name)
	if !found {
		return "", errInvalid(fmt.Sprintf("unknown category %q", name))
	}
	return category, nil
}

type defaultHandler struct{}

func (h *defaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	errorResponse(r.Context(), w, errNotFound(fmt.Sprintf("%s %s is not found", r.Method, r.URL.Path)))
}

type parseHandler struct{}

type parseRequest struct {
	Category string `json:"category" validate:"required,category"`
	Locale   string `json:"locale,omitempty" validate:"omitempty,locale"`
	Input    string `json:"input"`
}

type parseResponse struct {
	Category string `json:"category"`
	Locale   string `json:"locale"`
	Value    string `json:"value"`
}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req parseRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, serverFromContext(ctx), &req)
	if err != nil {
		errorResponse(ctx, w, err)
		return
	}
	encodeResponse(ctx, w, res)
}

func (h *parseHandler) Handle(ctx context.Context, server *Server, r *parseRequest) (*parseResponse, *ServerError) {
	category, serr := categoryFromName(r.Category)
	if serr != nil {
		return nil, serr
	}
	tag, serr := requestLocale(ctx, server, r.Locale)
	if serr != nil {
		return nil, serr
	}
	c, err := server.converter(category, tag)
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	var errs converter.ValidationErrors
	v, ok, err := c.ConvertValue(r.Input, &errs)
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	if !ok {
		logger.Logger(ctx).Debug(errs[0].Error())
		return nil, errInvalidInput(errs[0])
	}
	return &parseResponse{
		Category: string(category),
		Locale:   tag.String(),
		Value:    v.String(),
	}, nil
}

type formatHandler struct{}

type formatRequest struct {
	Category  string `json:"category" validate:"required,category"`
	Locale    string `json:"locale,omitempty" validate:"omitempty,locale"`
	Value     string `json:"value" validate:"required"`
	Pattern   string `json:"pattern,omitempty"`
	ValueKind string `json:"valueKind,omitempty" validate:"omitempty,valuekind"`
}

type formatResponse struct {
	Category string `json:"category"`
	Locale   string `json:"locale"`
	Text     string `json:"text"`
}

func (h *formatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req formatRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, serverFromContext(ctx), &req)
	if err != nil {
		errorResponse(ctx, w, err)
		return
	}
	encodeResponse(ctx, w, res)
}

func (h *formatHandler) Handle(ctx context.Context, server *Server, r *formatRequest) (*formatResponse, *ServerError) {
	category, serr := categoryFromName(r.Category)
	if serr != nil {
		return nil, serr
	}
	tag, serr := requestLocale(ctx, server, r.Locale)
	if serr != nil {
		return nil, serr
	}
	value, err := converter.ParseCanonical(category, r.Value)
	if err != nil {
		return nil, errInvalid(err.Error())
	}
	f, err := converter.NewFormatter(
		category,
		server.formatterConfig(tag),
		converter.WithPattern(r.Pattern),
		converter.WithValueKind(r.ValueKind),
	)
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	if err := f.Init(); err != nil {
		return nil, errInvalid(err.Error())
	}
	text, err := f.FormatValue(value)
	if err != nil {
		var unsupported *pattern.UnsupportedFieldError
		if errors.As(err, &unsupported) {
			return nil, errInvalid(fmt.Sprintf("%s cannot be formatted with %q: %s", category, r.Pattern, err))
		}
		return nil, errInternalError(err.Error())
	}
	return &formatResponse{
		Category: string(category),
		Locale:   tag.String(),
		Text:     text,
	}, nil
}

type categoriesHandler struct{}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *categoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories := types.Categories()
	res := &categoriesResponse{Categories: make([]string, 0, len(categories))}
	for _, c := range categories {
		res.Categories = append(res.Categories, string(c))
	}
	encodeResponse(r.Context(), w, res)
}

type patternsHandler struct{}

type patternsResponse struct {
	Category string   `json:"category"`
	Locale   string   `json:"locale"`
	Patterns []string `json:"patterns"`
}

func (h *patternsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := mux.Vars(r)
	res, err := h.Handle(ctx, serverFromContext(ctx), params["category"], strings.TrimSpace(r.URL.Query().Get("locale")))
	if err != nil {
		errorResponse(ctx, w, err)
		return
	}
	encodeResponse(ctx, w, res)
}

func (h *patternsHandler) Handle(ctx context.Context, server *Server, categoryName, locale string) (*patternsResponse, *ServerError) {
	category, found := types.CategoryFromName(categoryName)
	if !found {
		return nil, errNotFound(fmt.Sprintf("category %q is not found", categoryName))
	}
	tag, serr := requestLocale(ctx, server, locale)
	if serr != nil {
		return nil, serr
	}
	c, err := server.converter(category, tag)
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	patterns, err := c.Patterns()
	if err != nil {
		return nil, errInternalError(err.Error())
	}
	return &patternsResponse{
		Category: string(category),
		Locale:   tag.String(),
		Patterns: patterns,
	}, nil
}

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/typeb/api"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// LoadContract parses and validates the embedded OpenAPI document.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI contract: %w", err)
	}
	return doc, nil
}

var contractRouter = sync.OnceValues(func() (routers.Router, error) {
	doc, err := LoadContract(context.Background())
	if err != nil {
		return nil, err
	}
	// Match on path only, whatever host the server runs behind.
	doc.Servers = nil
	return legacy.NewRouter(doc)
})

// validateRequest checks requests for contract operations against the OpenAPI
// document. Routes outside the contract (health, metrics, docs) pass through.
func (s *Server) validateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		router, err := contractRouter()
		if err != nil {
			s.fail(w, err)
			return
		}

		route, params, err := router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.fail(w, fmt.Errorf("%w: %s", errBadRequest, contractReason(err)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// contractReason names the failing field without echoing the submitted value.
func contractReason(err error) string {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if p := se.JSONPointer(); len(p) > 0 {
			return fmt.Sprintf("%s: %s", strings.Join(p, "."), se.Reason)
		}
		return se.Reason
	}
	var re *openapi3filter.RequestError
	if errors.As(err, &re) && re.Reason != "" {
		return re.Reason
	}
	return "request does not match the API contract"
}

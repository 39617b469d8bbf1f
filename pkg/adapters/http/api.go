package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (POST /sort)
	CreateSort(w http.ResponseWriter, r *http.Request)
	// (GET /traces)
	ListTraces(w http.ResponseWriter, r *http.Request)
	// (GET /traces/{id})
	GetTrace(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /traces/{id})
	DeleteTrace(w http.ResponseWriter, r *http.Request, id string)
	// (GET /traces/{id}/steps/{index})
	GetStep(w http.ResponseWriter, r *http.Request, id string, index int)
	// (GET /traces/{id}/graph)
	GetGraph(w http.ResponseWriter, r *http.Request, id string)
}

// InvalidParamFormatError is reported when a path parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// serverInterfaceWrapper converts path parameters to typed arguments.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) getTrace(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.handler.GetTrace(w, r, id)
}

func (siw *serverInterfaceWrapper) deleteTrace(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.handler.DeleteTrace(w, r, id)
}

func (siw *serverInterfaceWrapper) getGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.handler.GetGraph(w, r, id)
}

func (siw *serverInterfaceWrapper) getStep(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}

	var index int
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "index", Err: err})
		return
	}

	siw.handler.GetStep(w, r, id, index)
}

func (siw *serverInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

// HandlerFromMux mounts si on r and returns r.
func HandlerFromMux(si ServerInterface, r chi.Router, errorHandler func(w http.ResponseWriter, r *http.Request, err error)) http.Handler {
	wrapper := serverInterfaceWrapper{handler: si, errorHandlerFunc: errorHandler}

	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Post("/sort", si.CreateSort)
	r.Get("/traces", si.ListTraces)
	r.Get("/traces/{id}", wrapper.getTrace)
	r.Delete("/traces/{id}", wrapper.deleteTrace)
	r.Get("/traces/{id}/steps/{index}", wrapper.getStep)
	r.Get("/traces/{id}/graph", wrapper.getGraph)

	return r
}

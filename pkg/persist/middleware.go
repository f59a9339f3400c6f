package persist

// State is the host application's state tree, shaped the way encoding/json
// decodes a JSON object. The library never mutates a State it is handed;
// load operations return freshly built trees for the host to adopt.
type State = map[string]any

// Dispatch processes one action and returns the pipeline's result for it.
type Dispatch func(action any) any

// MiddlewareAPI is the slice of the host state container a middleware can
// see: the current state and the container's own dispatch entry point.
type MiddlewareAPI interface {
	// GetState returns the current state tree.
	GetState() State

	// Dispatch feeds an action back into the top of the pipeline.
	Dispatch(action any) any
}

// Middleware is one stage in a unidirectional action-processing pipeline.
// A stage receives the next stage's Dispatch and returns its own; it must
// call through to next and hand back next's result unchanged.
type Middleware func(api MiddlewareAPI) func(next Dispatch) Dispatch

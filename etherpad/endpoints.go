package etherpad

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// endpoint declares the verb and parameter set of one API method
type endpoint struct {
	verb     string
	required []string
	optional []string
}

// endpoints maps every supported API method to its declaration.
var endpoints = map[string]endpoint{
	// Groups
	"createGroup":               {verb: http.MethodGet},
	"createGroupIfNotExistsFor": {verb: http.MethodGet, required: []string{"groupMapper"}},
	"deleteGroup":               {verb: http.MethodGet, required: []string{"groupID"}},
	"listPads":                  {verb: http.MethodGet, required: []string{"groupID"}},
	"createGroupPad":            {verb: http.MethodGet, required: []string{"groupID", "padName"}, optional: []string{"text"}},

	// Authors
	"createAuthor":               {verb: http.MethodGet, optional: []string{"name"}},
	"createAuthorIfNotExistsFor": {verb: http.MethodGet, required: []string{"authorMapper"}, optional: []string{"name"}},

	// Sessions
	"createSession":        {verb: http.MethodGet, required: []string{"groupID", "authorID", "validUntil"}},
	"deleteSession":        {verb: http.MethodGet, required: []string{"sessionID"}},
	"getSessionInfo":       {verb: http.MethodGet, required: []string{"sessionID"}},
	"listSessionsOfGroup":  {verb: http.MethodGet, required: []string{"groupID"}},
	"listSessionsOfAuthor": {verb: http.MethodGet, required: []string{"authorID"}},

	// Pad content
	"getText": {verb: http.MethodGet, required: []string{"padID"}, optional: []string{"rev"}},
	"setText": {verb: http.MethodPost, required: []string{"padID", "text"}},
	"getHTML": {verb: http.MethodGet, required: []string{"padID"}, optional: []string{"rev"}},
	"setHTML": {verb: http.MethodPost, required: []string{"padID", "html"}},

	// Pads
	"createPad":           {verb: http.MethodGet, required: []string{"padID"}, optional: []string{"text"}},
	"getRevisionsCount":   {verb: http.MethodGet, required: []string{"padID"}},
	"deletePad":           {verb: http.MethodGet, required: []string{"padID"}},
	"getReadOnlyID":       {verb: http.MethodGet, required: []string{"padID"}},
	"setPublicStatus":     {verb: http.MethodGet, required: []string{"padID", "publicStatus"}},
	"getPublicStatus":     {verb: http.MethodGet, required: []string{"padID"}},
	"setPassword":         {verb: http.MethodGet, required: []string{"padID", "password"}},
	"isPasswordProtected": {verb: http.MethodGet, required: []string{"padID"}},
}

// Methods returns the names of all supported API methods, sorted.
func Methods() []string {
	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate checks params against the declared key set
func (e endpoint) validate(method string, params Params) error {
	allowed := make(map[string]bool, len(e.required)+len(e.optional))
	for _, key := range e.required {
		allowed[key] = true
		if _, ok := params[key]; !ok {
			return invalidArgument(method, "missing required parameter %q", key)
		}
	}
	for _, key := range e.optional {
		allowed[key] = true
	}

	var unknown []string
	for key := range params {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return invalidArgument(method, "unknown parameters: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Invoke calls a method from the endpoint table after checking params
// against its declared required and optional keys.
func (c *Client) Invoke(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	ep, ok := endpoints[method]
	if !ok {
		return nil, invalidArgument(method, "unknown API method")
	}
	if err := ep.validate(method, params); err != nil {
		return nil, err
	}
	return c.Call(ctx, method, params, ep.verb)
}

// invokeInto calls method and decodes the data payload into v
func (c *Client) invokeInto(ctx context.Context, method string, params Params, v any) error {
	data, err := c.Invoke(ctx, method, params)
	if err != nil {
		return err
	}
	return decodeData(method, data, v)
}

// invokeNoData calls a method whose data payload is ignored
func (c *Client) invokeNoData(ctx context.Context, method string, params Params) error {
	_, err := c.Invoke(ctx, method, params)
	return err
}

// setOptional adds key to params only when value is non-nil
func setOptional(params Params, key string, value *string) {
	if value != nil {
		params[key] = *value
	}
}

package etherpad

import (
	"encoding/json"
	"strconv"
	"time"
)

// APIVersion is the API version segment placed in every request path.
const APIVersion = "1"

// Params holds request parameters keyed by their wire names.
type Params map[string]string

// Code is the status code carried in every response envelope
type Code int

const (
	// CodeOK indicates success
	CodeOK Code = 0
	// CodeInvalidParameters indicates missing or malformed parameters
	CodeInvalidParameters Code = 1
	// CodeInternalError indicates a failure inside the server
	CodeInternalError Code = 2
	// CodeInvalidMethod indicates the method does not exist
	CodeInvalidMethod Code = 3
	// CodeInvalidAPIKey indicates the API key was rejected
	CodeInvalidAPIKey Code = 4
)

// String returns the string representation of a Code
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInvalidParameters:
		return "invalid parameters"
	case CodeInternalError:
		return "internal error"
	case CodeInvalidMethod:
		return "invalid method"
	case CodeInvalidAPIKey:
		return "invalid api key"
	default:
		return "unknown code " + strconv.Itoa(int(c))
	}
}

// Known reports whether c is one of the five codes the protocol defines
func (c Code) Known() bool {
	return c >= CodeOK && c <= CodeInvalidAPIKey
}

// Response is the envelope every API method replies with
type Response struct {
	Code    *Code           `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SessionInfo describes a session as returned by getSessionInfo
type SessionInfo struct {
	GroupID    string `json:"groupID"`
	AuthorID   string `json:"authorID"`
	ValidUntil int64  `json:"validUntil"`
}

// ExpiresAt returns the session expiry as a time
func (s *SessionInfo) ExpiresAt() time.Time {
	return time.Unix(s.ValidUntil, 0)
}

// Expired checks if the session is no longer valid at t
func (s *SessionInfo) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt())
}

type groupIDData struct {
	GroupID string `json:"groupID"`
}

type authorIDData struct {
	AuthorID string `json:"authorID"`
}

type sessionIDData struct {
	SessionID string `json:"sessionID"`
}

type padIDData struct {
	PadID string `json:"padID"`
}

type padIDsData struct {
	PadIDs []string `json:"padIDs"`
}

type textData struct {
	Text string `json:"text"`
}

type htmlData struct {
	HTML string `json:"html"`
}

type revisionsData struct {
	Revisions int `json:"revisions"`
}

type readOnlyIDData struct {
	ReadOnlyID string `json:"readOnlyID"`
}

type publicStatusData struct {
	PublicStatus bool `json:"publicStatus"`
}

type passwordProtectedData struct {
	IsPasswordProtected bool `json:"isPasswordProtected"`
}

type versionData struct {
	CurrentVersion string `json:"currentVersion"`
}

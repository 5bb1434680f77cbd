package etherpad

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// API defines the Etherpad operations exposed by Client
type API interface {
	// Groups
	CreateGroup(ctx context.Context) (string, error)
	CreateGroupIfNotExistsFor(ctx context.Context, groupMapper string) (string, error)
	DeleteGroup(ctx context.Context, groupID string) error
	ListPads(ctx context.Context, groupID string) ([]string, error)
	CreateGroupPad(ctx context.Context, groupID, padName string, text *string) (string, error)

	// Authors
	CreateAuthor(ctx context.Context, name *string) (string, error)
	CreateAuthorIfNotExistsFor(ctx context.Context, authorMapper string, name *string) (string, error)

	// Sessions
	CreateSession(ctx context.Context, groupID, authorID string, validUntil time.Time) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetSessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessionsOfGroup(ctx context.Context, groupID string) (map[string]SessionInfo, error)
	ListSessionsOfAuthor(ctx context.Context, authorID string) (map[string]SessionInfo, error)

	// Pad content
	GetText(ctx context.Context, padID string, rev *int) (string, error)
	SetText(ctx context.Context, padID, text string) error
	GetHTML(ctx context.Context, padID string, rev *int) (string, error)
	SetHTML(ctx context.Context, padID, html string) error

	// Pads
	CreatePad(ctx context.Context, padID string, text *string) error
	GetRevisionsCount(ctx context.Context, padID string) (int, error)
	DeletePad(ctx context.Context, padID string) error
	GetReadOnlyID(ctx context.Context, padID string) (string, error)
	SetPublicStatus(ctx context.Context, padID string, public bool) error
	GetPublicStatus(ctx context.Context, padID string) (bool, error)
	SetPassword(ctx context.Context, padID, password string) error
	IsPasswordProtected(ctx context.Context, padID string) (bool, error)
}

var _ API = (*Client)(nil)

// CreateGroup creates a new group and returns its ID
func (c *Client) CreateGroup(ctx context.Context) (string, error) {
	var out groupIDData
	if err := c.invokeInto(ctx, "createGroup", Params{}, &out); err != nil {
		return "", err
	}
	return out.GroupID, nil
}

// CreateGroupIfNotExistsFor returns the group mapped to groupMapper, creating it if needed
func (c *Client) CreateGroupIfNotExistsFor(ctx context.Context, groupMapper string) (string, error) {
	var out groupIDData
	if err := c.invokeInto(ctx, "createGroupIfNotExistsFor", Params{"groupMapper": groupMapper}, &out); err != nil {
		return "", err
	}
	return out.GroupID, nil
}

// DeleteGroup deletes a group and all of its pads
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return c.invokeNoData(ctx, "deleteGroup", Params{"groupID": groupID})
}

// ListPads returns the IDs of all pads in a group
func (c *Client) ListPads(ctx context.Context, groupID string) ([]string, error) {
	var out padIDsData
	if err := c.invokeInto(ctx, "listPads", Params{"groupID": groupID}, &out); err != nil {
		return nil, err
	}
	return out.PadIDs, nil
}

// CreateGroupPad creates a pad inside a group and returns the full pad ID
func (c *Client) CreateGroupPad(ctx context.Context, groupID, padName string, text *string) (string, error) {
	params := Params{"groupID": groupID, "padName": padName}
	setOptional(params, "text", text)

	var out padIDData
	if err := c.invokeInto(ctx, "createGroupPad", params, &out); err != nil {
		return "", err
	}
	return out.PadID, nil
}

// CreateAuthor creates a new author and returns its ID
func (c *Client) CreateAuthor(ctx context.Context, name *string) (string, error) {
	params := Params{}
	setOptional(params, "name", name)

	var out authorIDData
	if err := c.invokeInto(ctx, "createAuthor", params, &out); err != nil {
		return "", err
	}
	return out.AuthorID, nil
}

// CreateAuthorIfNotExistsFor returns the author mapped to authorMapper, creating it if needed
func (c *Client) CreateAuthorIfNotExistsFor(ctx context.Context, authorMapper string, name *string) (string, error) {
	params := Params{"authorMapper": authorMapper}
	setOptional(params, "name", name)

	var out authorIDData
	if err := c.invokeInto(ctx, "createAuthorIfNotExistsFor", params, &out); err != nil {
		return "", err
	}
	return out.AuthorID, nil
}

// CreateSession creates a session for an author in a group, valid until validUntil
func (c *Client) CreateSession(ctx context.Context, groupID, authorID string, validUntil time.Time) (string, error) {
	params := Params{
		"groupID":    groupID,
		"authorID":   authorID,
		"validUntil": strconv.FormatInt(validUntil.Unix(), 10),
	}

	var out sessionIDData
	if err := c.invokeInto(ctx, "createSession", params, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// DeleteSession deletes a session
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.invokeNoData(ctx, "deleteSession", Params{"sessionID": sessionID})
}

// GetSessionInfo returns the group, author and expiry of a session
func (c *Client) GetSessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error) {
	var out SessionInfo
	if err := c.invokeInto(ctx, "getSessionInfo", Params{"sessionID": sessionID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSessionsOfGroup returns the sessions of a group keyed by session ID
func (c *Client) ListSessionsOfGroup(ctx context.Context, groupID string) (map[string]SessionInfo, error) {
	data, err := c.Invoke(ctx, "listSessionsOfGroup", Params{"groupID": groupID})
	if err != nil {
		return nil, err
	}
	return decodeSessions("listSessionsOfGroup", data)
}

// ListSessionsOfAuthor returns the sessions of an author keyed by session ID
func (c *Client) ListSessionsOfAuthor(ctx context.Context, authorID string) (map[string]SessionInfo, error) {
	data, err := c.Invoke(ctx, "listSessionsOfAuthor", Params{"authorID": authorID})
	if err != nil {
		return nil, err
	}
	return decodeSessions("listSessionsOfAuthor", data)
}

// decodeSessions treats a null payload as no sessions
func decodeSessions(method string, data json.RawMessage) (map[string]SessionInfo, error) {
	sessions := make(map[string]SessionInfo)
	if data == nil {
		return sessions, nil
	}
	if err := decodeData(method, data, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetText returns the text of a pad, at revision rev when given
func (c *Client) GetText(ctx context.Context, padID string, rev *int) (string, error) {
	params := Params{"padID": padID}
	if rev != nil {
		params["rev"] = strconv.Itoa(*rev)
	}

	var out textData
	if err := c.invokeInto(ctx, "getText", params, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// SetText replaces the text of a pad
func (c *Client) SetText(ctx context.Context, padID, text string) error {
	return c.invokeNoData(ctx, "setText", Params{"padID": padID, "text": text})
}

// GetHTML returns the HTML of a pad, at revision rev when given
func (c *Client) GetHTML(ctx context.Context, padID string, rev *int) (string, error) {
	params := Params{"padID": padID}
	if rev != nil {
		params["rev"] = strconv.Itoa(*rev)
	}

	var out htmlData
	if err := c.invokeInto(ctx, "getHTML", params, &out); err != nil {
		return "", err
	}
	return out.HTML, nil
}

// SetHTML replaces the content of a pad with html
func (c *Client) SetHTML(ctx context.Context, padID, html string) error {
	return c.invokeNoData(ctx, "setHTML", Params{"padID": padID, "html": html})
}

// CreatePad creates a pad outside any group
func (c *Client) CreatePad(ctx context.Context, padID string, text *string) error {
	params := Params{"padID": padID}
	setOptional(params, "text", text)
	return c.invokeNoData(ctx, "createPad", params)
}

// GetRevisionsCount returns the number of revisions of a pad
func (c *Client) GetRevisionsCount(ctx context.Context, padID string) (int, error) {
	var out revisionsData
	if err := c.invokeInto(ctx, "getRevisionsCount", Params{"padID": padID}, &out); err != nil {
		return 0, err
	}
	return out.Revisions, nil
}

// DeletePad deletes a pad
func (c *Client) DeletePad(ctx context.Context, padID string) error {
	return c.invokeNoData(ctx, "deletePad", Params{"padID": padID})
}

// GetReadOnlyID returns the read-only ID of a pad
func (c *Client) GetReadOnlyID(ctx context.Context, padID string) (string, error) {
	var out readOnlyIDData
	if err := c.invokeInto(ctx, "getReadOnlyID", Params{"padID": padID}, &out); err != nil {
		return "", err
	}
	return out.ReadOnlyID, nil
}

// SetPublicStatus sets whether a group pad is public
func (c *Client) SetPublicStatus(ctx context.Context, padID string, public bool) error {
	return c.invokeNoData(ctx, "setPublicStatus", Params{"padID": padID, "publicStatus": strconv.FormatBool(public)})
}

// GetPublicStatus checks if a group pad is public
func (c *Client) GetPublicStatus(ctx context.Context, padID string) (bool, error) {
	var out publicStatusData
	if err := c.invokeInto(ctx, "getPublicStatus", Params{"padID": padID}, &out); err != nil {
		return false, err
	}
	return out.PublicStatus, nil
}

// SetPassword sets the password of a group pad
func (c *Client) SetPassword(ctx context.Context, padID, password string) error {
	return c.invokeNoData(ctx, "setPassword", Params{"padID": padID, "password": password})
}

// IsPasswordProtected checks if a group pad has a password
func (c *Client) IsPasswordProtected(ctx context.Context, padID string) (bool, error) {
	var out passwordProtectedData
	if err := c.invokeInto(ctx, "isPasswordProtected", Params{"padID": padID}, &out); err != nil {
		return false, err
	}
	return out.IsPasswordProtected, nil
}

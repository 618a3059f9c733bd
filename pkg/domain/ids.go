package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "dochub/pkg/domain-errors"
)

// Typed identifiers keep user, session, application and document IDs from
// being mixed up at compile time. All of them are non-nil UUIDs once parsed.
type (
	UserID        uuid.UUID
	SessionID     uuid.UUID
	ApplicationID uuid.UUID
	DocumentID    uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

// unmarshalUUID accepts the nil UUID so that unset optional IDs survive
// a JSON round trip through stores.
func unmarshalUUID(kind string, text []byte) (uuid.UUID, error) {
	if len(text) == 0 {
		return uuid.Nil, nil
	}
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return parsed, nil
}

// ParseUserID parses a user ID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user_id", s)
	return UserID(u), err
}

// ParseSessionID parses a session ID from its string form.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID("session_id", s)
	return SessionID(u), err
}

// ParseApplicationID parses an application ID from its string form.
func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID("application_id", s)
	return ApplicationID(u), err
}

// ParseDocumentID parses a document ID from its string form.
func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID("document_id", s)
	return DocumentID(u), err
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *UserID) UnmarshalText(text []byte) error {
	u, err := unmarshalUUID("user_id", text)
	*id = UserID(u)
	return err
}

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *SessionID) UnmarshalText(text []byte) error {
	u, err := unmarshalUUID("session_id", text)
	*id = SessionID(u)
	return err
}

func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ApplicationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *ApplicationID) UnmarshalText(text []byte) error {
	u, err := unmarshalUUID("application_id", text)
	*id = ApplicationID(u)
	return err
}

func (id DocumentID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *DocumentID) UnmarshalText(text []byte) error {
	u, err := unmarshalUUID("document_id", text)
	*id = DocumentID(u)
	return err
}

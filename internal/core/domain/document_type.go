package domain

import "fmt"

// DocumentType classifies a documentation page. It is a closed enumeration;
// the string value is the storage serialisation. Internal logic dispatches on
// the constant, not on the string.
type DocumentType string

// The seven document types, in no particular order. Classification precedence
// lives in the classifier's rule table, not here.
const (
	DocTypeAPIEndpoint    DocumentType = "api_endpoint"
	DocTypeParameter      DocumentType = "parameter"
	DocTypeExample        DocumentType = "example"
	DocTypeResponseSchema DocumentType = "response_schema"
	DocTypeErrorCode      DocumentType = "error_code"
	DocTypeOverview       DocumentType = "overview"
	DocTypeTutorial       DocumentType = "tutorial"
)

// documentTypes is the closed set used for validation and parsing.
var documentTypes = map[DocumentType]struct{}{
	DocTypeAPIEndpoint:    {},
	DocTypeParameter:      {},
	DocTypeExample:        {},
	DocTypeResponseSchema: {},
	DocTypeErrorCode:      {},
	DocTypeOverview:       {},
	DocTypeTutorial:       {},
}

// Valid reports whether t is one of the defined document types.
func (t DocumentType) Valid() bool {
	_, ok := documentTypes[t]
	return ok
}

// String returns the storage serialisation of the type.
func (t DocumentType) String() string {
	return string(t)
}

// ParseDocumentType converts a stored string value back into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: document type %q", ErrInvalidInput, s)
	}
	return t, nil
}

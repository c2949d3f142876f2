package extractor

import "fmt"

// Reason classifies why extraction failed.
type Reason string

const (
	ReasonNotFound         Reason = "not_found"
	ReasonEmpty            Reason = "empty"
	ReasonTooLarge         Reason = "too_large"
	ReasonWrongPassword    Reason = "wrong_password"
	ReasonPasswordRequired Reason = "password_required"
	ReasonCorrupted        Reason = "corrupted"
	ReasonTooShort         Reason = "too_short"
)

// ExtractionError is the typed failure surfaced to the caller when every
// extraction attempt fails. The message is user-actionable.
type ExtractionError struct {
	Reason Reason
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := map[Reason]string{
		ReasonNotFound:         "input file not found",
		ReasonEmpty:            "input file is empty",
		ReasonTooLarge:         "input file exceeds the 50MB limit",
		ReasonWrongPassword:    "could not decrypt the PDF: verify the CAS password is correct",
		ReasonPasswordRequired: "the PDF is password protected: supply the CAS password",
		ReasonCorrupted:        "the file is corrupted or is not a PDF",
		ReasonTooShort:         "extracted text is too short to be a CAS statement: the file may be scanned or corrupted",
	}[e.Reason]
	if msg == "" {
		msg = "extraction failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewError builds an ExtractionError for the given reason.
func NewError(reason Reason, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Err: err}
}

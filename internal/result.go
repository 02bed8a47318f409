package internal

import (
	"encoding/json"
	"html/template"
	"strings"
)

const (
	resultOK     = "OK"
	resultFailed = "FAILED"

	keyResult        = "result"
	keyWarning       = "warning"
	keyError         = "error"
	keyTransactionID = "transaction_id"
	keyStandalone    = "standalone_items"
)

// Result is the parsed gateway response. Keys are lower-cased and trimmed at
// parse time, values are trimmed. Lines without ":" are kept in order as
// standalone items and are not addressable by key.
type Result struct {
	raw        string
	fields     map[string]string
	standalone []string
}

func ParseResult(raw string) *Result {
	r := &Result{}
	r.Reparse(raw)
	return r
}

// Reparse replaces the content of r with a new response body.
// It must not be called concurrently with any other method of r.
func (r *Result) Reparse(raw string) {
	fields := make(map[string]string)
	var standalone []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			standalone = append(standalone, line)
			continue
		}
		// repeated keys: the last line wins
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	r.raw = raw
	r.fields = fields
	r.standalone = standalone
}

// Raw returns the response body exactly as received.
func (r *Result) Raw() string {
	return r.raw
}

// Get looks up a field; the key is case-insensitive.
func (r *Result) Get(key string) (string, bool) {
	value, ok := r.fields[strings.ToLower(strings.TrimSpace(key))]
	return value, ok
}

func (r *Result) value(key string) string {
	return r.fields[key]
}

// Fields returns a copy of the keyed fields.
func (r *Result) Fields() map[string]string {
	fields := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		fields[k] = v
	}
	return fields
}

// Standalone returns a copy of the lines that had no key.
func (r *Result) Standalone() []string {
	return append([]string(nil), r.standalone...)
}

func (r *Result) Success() bool {
	return r.value(keyResult) == resultOK
}

func (r *Result) Failed() bool {
	return r.value(keyResult) == resultFailed
}

func (r *Result) IsWarning() bool {
	_, ok := r.fields[keyWarning]
	return ok
}

func (r *Result) Warning() string {
	return r.value(keyWarning)
}

func (r *Result) IsError() bool {
	_, ok := r.fields[keyError]
	return ok
}

// ErrorMessage returns the gateway error text, empty when there is none.
func (r *Result) ErrorMessage() string {
	return r.value(keyError)
}

func (r *Result) TransactionID() string {
	return r.value(keyTransactionID)
}

// RedirectToPayment renders the page sending the cardholder to the client handler
// with the transaction id of this result.
func (r *Result) RedirectToPayment(clientHandler string) (template.HTML, error) {
	return RedirectPayload(clientHandler, r.TransactionID())
}

func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	if _, taken := out[keyStandalone]; !taken && len(r.standalone) > 0 {
		out[keyStandalone] = r.standalone
	}
	return json.Marshal(out)
}

func (r *Result) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

package entity

import "errors"

// DefaultCurrency is the ISO 4217 numeric code for USD.
const DefaultCurrency = "840"

var ErrEmptyClientIP = errors.New("client ip address is required")

// Session holds the per-client settings merged into every request.
// A Session is never modified after construction, the With methods return copies.
type Session struct {
	currency   string
	clientIP   string
	language   string
	parameters *Fields
}

type SessionOption func(s *Session)

func WithCurrency(currency string) SessionOption {
	return func(s *Session) {
		if currency != "" {
			s.currency = currency
		}
	}
}

func WithLanguage(language string) SessionOption {
	return func(s *Session) {
		s.language = language
	}
}

// WithParameter adds a default parameter sent with every request of the session.
func WithParameter(key, value string) SessionOption {
	return func(s *Session) {
		s.parameters.Set(key, value)
	}
}

func NewSession(clientIP string, opts ...SessionOption) (*Session, error) {
	if clientIP == "" {
		return nil, ErrEmptyClientIP
	}
	s := &Session{
		currency:   DefaultCurrency,
		clientIP:   clientIP,
		parameters: NewFields(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Currency() string {
	return s.currency
}

func (s *Session) ClientIP() string {
	return s.clientIP
}

// Language returns the language identifier, empty when none was set.
func (s *Session) Language() string {
	return s.language
}

// Parameters returns a copy of the default parameters.
func (s *Session) Parameters() *Fields {
	return s.parameters.Clone()
}

func (s *Session) clone() *Session {
	c := *s
	c.parameters = s.parameters.Clone()
	return &c
}

func (s *Session) WithCurrency(currency string) *Session {
	c := s.clone()
	WithCurrency(currency)(c)
	return c
}

func (s *Session) WithLanguage(language string) *Session {
	c := s.clone()
	c.language = language
	return c
}

// WithParameters returns a copy whose default parameters are replaced by parameters.
func (s *Session) WithParameters(parameters *Fields) *Session {
	c := s.clone()
	c.parameters = parameters.Clone()
	return c
}

package handler

// Result is what a handler returns: either HTML or Structured.
type Result interface {
	isResult()
}

// HTML is a plain body rendered with status 200 and Content-Type text/html.
type HTML string

func (HTML) isResult() {}

// Header is a single response header. Order is preserved on output.
type Header struct {
	Name  string
	Value string
}

// Structured is a full status/headers/body response.
type Structured struct {
	Status  int
	Headers []Header
	Body    []byte
}

func (Structured) isResult() {}

// Text builds a Structured result with the given content type and string body.
func Text(status int, contentType, body string) Structured {
	return Structured{
		Status:  status,
		Headers: []Header{{Name: "Content-Type", Value: contentType}},
		Body:    []byte(body),
	}
}

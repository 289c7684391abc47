package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxMessageSize caps a single decoded message
const DefaultMaxMessageSize = 16 * 1024 * 1024

// Encoder writes newline terminated JSON messages
type Encoder struct {
	w       io.Writer
	maxSize int
}

// NewEncoder creates an encoder, maxSize <= 0 uses DefaultMaxMessageSize
func NewEncoder(w io.Writer, maxSize int) *Encoder {
	if maxSize <= 0 {
		maxSize = DefaultMaxMessageSize
	}
	return &Encoder{w: w, maxSize: maxSize}
}

// Encode writes v as a single message with one Write call
func (e *Encoder) Encode(v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if len(data) > e.maxSize {
		return newError(fmt.Sprintf("outgoing message of %d bytes", len(data)), errMessageTooLarge)
	}
	if _, err = e.w.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Marshal encodes v as a newline terminated message
func Marshal(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, newError("encode", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single message, numbers are kept as json.Number
func Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return newError("decode", err)
	}
	return nil
}

// Decoder reads consecutive messages from a byte stream
type Decoder struct {
	limit   *limitReader
	decoder *json.Decoder
}

// NewDecoder creates a decoder, maxSize <= 0 uses DefaultMaxMessageSize
func NewDecoder(r io.Reader, maxSize int) *Decoder {
	if maxSize <= 0 {
		maxSize = DefaultMaxMessageSize
	}
	limit := &limitReader{r: r, max: maxSize}
	return &Decoder{limit: limit, decoder: json.NewDecoder(limit)}
}

// DecodeCommand reads the next command. It returns io.EOF when the peer closed
// the stream between messages and an error matching ErrProtocol when the frame
// is unusable.
func (d *Decoder) DecodeCommand() (*Command, error) {
	command := &Command{}
	if err := d.decode(command); err != nil {
		return nil, err
	}
	if command.Params == nil {
		command.Params = map[string]any{}
	}
	return command, nil
}

// DecodeResponse reads the next response
func (d *Decoder) DecodeResponse() (*Response, error) {
	response := &Response{}
	if err := d.decode(response); err != nil {
		return nil, err
	}
	if err := response.Validate(); err != nil {
		return nil, newError("invalid response", err)
	}
	return response, nil
}

func (d *Decoder) decode(target any) error {
	d.limit.reset()
	var raw json.RawMessage
	if err := d.decoder.Decode(&raw); err != nil {
		return classify(err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return newError("expected JSON object", nil)
	}
	return Unmarshal(trimmed, target)
}

func classify(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errMessageTooLarge):
		return newError("incoming message", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return newError("truncated message", err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return newError("malformed message", err)
	}
	return fmt.Errorf("read message: %w", err)
}

// limitReader fails once more than max bytes were consumed since the last reset
type limitReader struct {
	r    io.Reader
	max  int
	read int
}

func (l *limitReader) reset() {
	l.read = 0
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.read >= l.max {
		return 0, errMessageTooLarge
	}
	if remaining := l.max - l.read; len(p) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.read += n
	return n, err
}

package drive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Input supplies one line of operator text per call. End of input is
// reported as io.EOF.
type Input interface {
	ReadLine() (string, error)
}

// LineInput reads newline-terminated lines from an io.Reader.
type LineInput struct {
	reader *bufio.Reader
	prompt string
	out    io.Writer
}

// NewLineInput wraps r. Lines are returned without their trailing "\n" or
// "\r\n". A final line with no newline is still returned before io.EOF.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{reader: bufio.NewReader(r)}
}

// NewPromptedInput is NewLineInput that writes prompt to out before every
// read.
func NewPromptedInput(r io.Reader, out io.Writer, prompt string) *LineInput {
	in := NewLineInput(r)
	in.prompt = prompt
	in.out = out
	return in
}

// ReadLine implements Input.
func (in *LineInput) ReadLine() (string, error) {
	if in.out != nil && in.prompt != "" {
		fmt.Fprint(in.out, in.prompt)
	}

	line, err := in.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ScriptInput replays a fixed list of tokens and then reports io.EOF.
type ScriptInput struct {
	tokens []string
	next   int
}

// NewScriptInput returns an Input over tokens. The slice is copied.
func NewScriptInput(tokens ...string) *ScriptInput {
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return &ScriptInput{tokens: cp}
}

// ReadLine implements Input.
func (in *ScriptInput) ReadLine() (string, error) {
	if in.next >= len(in.tokens) {
		return "", io.EOF
	}
	token := in.tokens[in.next]
	in.next++
	return token, nil
}

// Remaining returns how many tokens have not been read yet.
func (in *ScriptInput) Remaining() int {
	return len(in.tokens) - in.next
}

var (
	_ Input = (*LineInput)(nil)
	_ Input = (*ScriptInput)(nil)
)

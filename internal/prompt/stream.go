package prompt

import (
	"bufio"
	"ctchen222/tictactoe/internal/apperror"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Stream is a Prompter over plain line-oriented reader and writer, used for
// piped input.
type Stream struct {
	asker
	in *bufio.Reader
}

func NewStream(in io.Reader, out io.Writer) *Stream {
	s := &Stream{in: bufio.NewReader(in)}
	s.asker = asker{ask: s.writeQuestion, read: s.readLine, out: out}
	return s
}

// writeQuestion puts the question on its own line so that whatever is
// written next does not run into it.
func (s *Stream) writeQuestion(question string) error {
	if _, err := io.WriteString(s.out, question+"\n"); err != nil {
		return fmt.Errorf("failed to write question: %w", err)
	}
	return nil
}

func (s *Stream) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		// A final line without a trailing newline is still an answer.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", apperror.ErrInputClosed
		}
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user questions
type Prompter interface {
	// Ask prints the question and returns the trimmed answer
	Ask(question string) (string, error)
	// Confirm asks a yes/no question, anything but yes is a refusal
	Confirm(question string) (bool, error)
}

// LinePrompter reads answers line by line
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter creates a prompter reading answers from reader and writing questions to writer
func NewLinePrompter(reader io.Reader, writer io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Ask prints the question and reads one line, a final line without newline is accepted
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.writer, question); err != nil {
		return "", err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question
func (p *LinePrompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ParseChoices splits a comma separated selection into a set of trimmed tokens
func ParseChoices(line string) map[string]bool {
	choices := make(map[string]bool)
	for _, token := range strings.Split(line, ",") {
		if token = strings.TrimSpace(token); token != "" {
			choices[strings.ToLower(token)] = true
		}
	}
	return choices
}

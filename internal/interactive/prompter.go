package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// ErrInvalidAnswer is returned when a non-interactive answer is neither yes nor no
var ErrInvalidAnswer = errors.New("invalid answer")

// Prompter asks the user for confirmation before destructive operations
type Prompter struct {
	in         io.Reader
	out        io.Writer
	isTerminal func() bool
}

// NewPrompter creates a prompter bound to the process's stdin and stdout
func NewPrompter() *Prompter {
	return &Prompter{
		in:         os.Stdin,
		out:        os.Stdout,
		isTerminal: stdinIsTerminal,
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ConfirmOverwrite asks the user if they want to overwrite an existing file
func (p *Prompter) ConfirmOverwrite(filePath string) (bool, error) {
	message := fmt.Sprintf("A file already exists at %s. Do you want to overwrite it?", filePath)

	if !p.isTerminal() {
		return p.fallbackYesNoSelection(message, false)
	}

	overwritePrompt := &survey.Confirm{
		Message: message,
		Default: false,
	}

	var overwrite bool
	if err := survey.AskOne(overwritePrompt, &overwrite); err != nil {
		return false, err
	}

	return overwrite, nil
}

// fallbackYesNoSelection reads a y/n answer line by line when stdin is not a
// terminal. End of input selects the default.
func (p *Prompter) fallbackYesNoSelection(message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s (%s): ", message, hint)

	reader := bufio.NewReader(p.in)
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w %q: please answer y or n", ErrInvalidAnswer, strings.TrimSpace(input))
	}
}

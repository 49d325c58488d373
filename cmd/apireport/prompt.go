package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// stdinIsTerminal reports whether the process can prompt the user.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveDays picks the report's day range: an explicit flag wins,
// then the interactive prompt, then the configured default.
func resolveDays(flagDays, def, max int, interactive bool, in io.Reader, out io.Writer) (int, error) {
	switch {
	case flagDays == 0 && interactive:
		return promptDays(in, out, def, max), nil
	case flagDays == 0:
		return def, nil
	case flagDays < 1 || flagDays > max:
		return 0, fmt.Errorf("--days must be between 1 and %d, got %d", max, flagDays)
	}
	return flagDays, nil
}

// promptDays asks how many days of history the report should cover,
// re-prompting until the answer parses and falls inside [1, max].
// A blank line accepts the default; so does end of input.
func promptDays(in io.Reader, out io.Writer, def, max int) int {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "? Days of history (1-%d) [%d]: ", max, def)

		line, err := reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "" {
			return def
		}

		n, convErr := strconv.Atoi(input)
		if convErr != nil || n < 1 || n > max {
			fmt.Fprintf(out, "Enter a whole number between 1 and %d.\n", max)
			if err != nil {
				return def
			}
			continue
		}
		return n
	}
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/haneul-labs/nurical/internal/gcal"
)

// errNoWritableCalendars means the account has no calendar we can create
// events on.
var errNoWritableCalendars = errors.New("no writable calendars available")

// selectCalendar prints the writable calendars and prompts for a 1-based
// index until a valid one is entered.
func selectCalendar(in io.Reader, out io.Writer, calendars []gcal.Calendar) (gcal.Calendar, error) {
	var writable []gcal.Calendar
	for _, cal := range calendars {
		if cal.Writable() {
			writable = append(writable, cal)
		}
	}
	if len(writable) == 0 {
		return gcal.Calendar{}, errNoWritableCalendars
	}

	fmt.Fprintln(out, "------------------------------------------------")
	for i, cal := range writable {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, cal.Summary, cal.ID)
	}
	fmt.Fprintln(out, "------------------------------------------------")

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Select a calendar number: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return gcal.Calendar{}, fmt.Errorf("read selection: %w", err)
		}

		idx, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && idx >= 1 && idx <= len(writable) {
			return writable[idx-1], nil
		}

		if err != nil {
			return gcal.Calendar{}, fmt.Errorf("read selection: %w", err)
		}
	}
}

// confirm asks for the literal confirmation token "yes"; anything else
// cancels.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// Package session runs an interactive expense-tracking session over a line
// oriented reader and writer. A session owns one in-memory store; nothing
// outlives Run.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/spend/internal/expenses"
	"github.com/cleared-dev/spend/internal/form"
	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/logging"
	"github.com/cleared-dev/spend/internal/model"
	"github.com/cleared-dev/spend/internal/render"
	"github.com/cleared-dev/spend/internal/stats"
)

// Options configures a Session. Zero values get defaults.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Now    func() time.Time
	NewID  id.Generator
	Logger *logrus.Logger
	Render render.Options
	Prompt string
}

// maxLineBytes bounds one input line. Longer lines are reported and skipped.
const maxLineBytes = 64 * 1024

var errLineTooLong = errors.New("line too long")

type inputLine struct {
	text    string
	tooLong bool
}

// Session reads commands and applies them to its store.
type Session struct {
	store   *expenses.Store
	builder *form.Builder
	in      *bufio.Reader
	lines   chan inputLine
	done    chan struct{}
	readErr error
	out     io.Writer
	now     func() time.Time
	log     *logrus.Logger
	render  render.Options
	prompt  string
}

// New creates a Session with an empty store.
func New(opts Options) *Session {
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = id.NewUUID
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	defaults := render.DefaultOptions()
	if opts.Render.CurrencySymbol == "" {
		opts.Render.CurrencySymbol = defaults.CurrencySymbol
	}
	if opts.Render.DateFormat == "" {
		opts.Render.DateFormat = defaults.DateFormat
	}
	return &Session{
		store:   expenses.NewStore(),
		builder: form.NewBuilder(opts.NewID, opts.Now),
		in:      bufio.NewReader(opts.In),
		out:     opts.Out,
		now:     opts.Now,
		log:     opts.Logger,
		render:  opts.Render,
		prompt:  opts.Prompt,
	}
}

// Store returns the session's store.
func (s *Session) Store() *expenses.Store {
	return s.store
}

// Seed preloads records, listed newest first.
func (s *Session) Seed(records []model.Expense) {
	s.store.Seed(records)
	s.log.WithField("count", len(records)).Info("Session.Seed.Complete")
}

// Run processes commands until input ends, the user quits, or ctx is done.
// A cancelled ctx interrupts a pending read.
func (s *Session) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("Session.Start")
	s.startReader()
	defer func() {
		close(s.done)
		s.log.WithField("expenses", s.store.Len()).Info("Session.End")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.prompt)
		line, err := s.readLine(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errLineTooLong):
			s.lineTooLong()
			continue
		case err != nil:
			return err
		}
		quit, err := s.dispatch(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// startReader feeds input lines to s.lines until input ends or Run returns.
// readErr is set before s.lines is closed.
func (s *Session) startReader() {
	s.lines = make(chan inputLine)
	s.done = make(chan struct{})
	go func() {
		defer close(s.lines)
		for {
			l, err := s.readRaw()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					s.readErr = err
				}
				return
			}
			select {
			case s.lines <- l:
			case <-s.done:
				return
			}
		}
	}()
}

// readRaw reads one newline-terminated line, discarding the body of lines
// over maxLineBytes. A final unterminated line is returned before io.EOF.
func (s *Session) readRaw() (inputLine, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := s.in.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case err == nil:
			return inputLine{text: string(buf), tooLong: tooLong}, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong):
			return inputLine{text: string(buf), tooLong: tooLong}, nil
		default:
			return inputLine{}, err
		}
	}
}

// readLine waits for the next line or for ctx to be done.
func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				return "", s.readErr
			}
			return "", io.EOF
		}
		if l.tooLong {
			return "", errLineTooLong
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (s *Session) lineTooLong() {
	s.log.Warn("Session.Input.TooLong")
	fmt.Fprintf(s.out, "Line too long (over %d bytes); ignored.\n", maxLineBytes)
}

func (s *Session) dispatch(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		return false, s.help()
	case "add":
		return false, s.add(ctx)
	case "list", "ls":
		return false, render.List(s.out, s.store.Snapshot(), s.render)
	case "stats":
		return false, s.stats(args)
	case "total":
		fmt.Fprintf(s.out, "Total: %s (%d expenses)\n", s.render.Money(s.store.Total()), s.store.Len())
		return false, nil
	case "delete", "rm":
		s.delete(args)
		return false, nil
	case "categories":
		return false, render.Categories(s.out)
	case "csv":
		return false, render.CSV(s.out, s.store.Snapshot())
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for commands.\n", cmd)
		return false, nil
	}
}

const helpText = `Commands:
  add                 record a new expense
  list                show expenses, newest first
  stats [YYYY-MM-DD]  totals, this month, top category
  total               sum of all expenses
  delete <id|#n>      remove an expense by id, id prefix, or list position
  categories          show the category set
  csv                 print expenses as CSV
  help                show this text
  quit                end the session (expenses are not saved)
`

func (s *Session) help() error {
	_, err := fmt.Fprint(s.out, helpText)
	return err
}

// ask prompts for one form field.
func (s *Session) ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine(ctx)
}

// add runs the expense form. Input ending or an oversized line abandons the
// form; only a cancelled ctx or a read failure is returned.
func (s *Session) add(ctx context.Context) error {
	var d form.Draft
	fields := []struct {
		label string
		dst   *string
	}{
		{"Amount (" + s.render.CurrencySymbol + "): ", &d.Amount},
		{fmt.Sprintf("Category (name or 1-%d): ", len(model.Categories())), &d.Category},
		{"Description: ", &d.Description},
		{"Date (YYYY-MM-DD, blank for today): ", &d.Date},
	}
	for _, f := range fields {
		v, err := s.ask(ctx, f.label)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errLineTooLong):
			s.lineTooLong()
			return nil
		case err != nil:
			return err
		}
		*f.dst = v
	}

	e, err := s.builder.Build(d)
	if err != nil {
		s.log.WithError(err).Warn("Session.Add.Rejected")
		if errors.Is(err, form.ErrMissingInformation) {
			s.notify("Missing Information", "Please fill in all required fields.")
			return nil
		}
		s.notify("Invalid Expense", err.Error())
		return nil
	}

	s.store.Add(e)
	s.log.WithFields(logrus.Fields{
		"expense_id": e.ID,
		"amount":     e.Amount.StringFixed(2),
		"category":   e.Category,
	}).Info("Session.Add.Complete")
	s.notify("Expense Added", s.render.Money(e.Amount)+" expense added successfully!")
	return nil
}

func (s *Session) stats(args []string) error {
	ref := s.now()
	if len(args) > 0 {
		d, err := time.Parse(model.DateFormat, args[0])
		if err != nil {
			fmt.Fprintf(s.out, "Invalid date %q: want YYYY-MM-DD\n", args[0])
			return nil
		}
		ref = d
	}
	return render.Stats(s.out, stats.Compute(s.store.Snapshot(), ref), s.render)
}

func (s *Session) delete(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: delete <id|#n>")
		return
	}
	e, err := s.resolve(args[0])
	if err != nil {
		s.log.WithError(err).Warn("Session.Delete.NotFound")
		fmt.Fprintf(s.out, "Nothing deleted: %v\n", err)
		return
	}

	s.store.Remove(e.ID)
	s.log.WithField("expense_id", e.ID).Info("Session.Delete.Complete")
	s.notify("Expense Deleted", e.Description+" has been removed.")
}

// resolve finds the expense named by "#n" (list position), a full ID, or a
// unique ID prefix.
func (s *Session) resolve(arg string) (model.Expense, error) {
	snap := s.store.Snapshot()

	if pos, ok := strings.CutPrefix(arg, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 1 || n > len(snap) {
			return model.Expense{}, fmt.Errorf("no expense at position %s", arg)
		}
		return snap[n-1], nil
	}

	if e, ok := s.store.Get(arg); ok {
		return e, nil
	}

	var matches []model.Expense
	for _, e := range snap {
		if strings.HasPrefix(e.ID, arg) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return model.Expense{}, fmt.Errorf("no expense matches %s", arg)
	case 1:
		return matches[0], nil
	default:
		return model.Expense{}, fmt.Errorf("ambiguous id %s matches %d expenses", arg, len(matches))
	}
}

func (s *Session) notify(title, description string) {
	fmt.Fprintf(s.out, "%s: %s\n", title, description)
}

// Package runner drives a wizard session over plain text IO. It is the
// terminal front end used by "slipway run"; front ends with their own event
// loop talk to the engine directly instead.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/domain"
	"github.com/opskit/slipway/pkg/ports"
)

// ContentRenderer transforms markdown before it is written, allowing TUI
// rendering (markdown to ANSI) without coupling the loop to a toolkit.
type ContentRenderer func(string) (string, error)

// Runner executes the wizard loop until completion, quit or EOF.
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	Renderer  ContentRenderer
	Logger    *slog.Logger
	Directory ports.Directory
	Rows      ports.RowStore
	// Hooks fire for host-side effects (lookups, appends).
	Hooks domain.LifecycleHooks
}

// New creates a runner with default Stdin/Stdout.
func New(directory ports.Directory, rows ports.RowStore) *Runner {
	return &Runner{
		Input:     os.Stdin,
		Output:    os.Stdout,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Directory: directory,
		Rows:      rows,
	}
}

// Run drives the engine from state until a terminal condition. It returns
// the final state; a nil error includes the user quitting or EOF on input.
func (r *Runner) Run(ctx context.Context, engine *wizard.Engine, state *domain.State) (*domain.State, error) {
	scanner := bufio.NewScanner(r.Input)

	for {
		view, err := engine.Render(state)
		if err != nil {
			if errors.Is(err, domain.ErrSlideNotFound) {
				// Configuration error: halt, take no further transitions.
				r.printf("Error: slide not found: %s\n", state.CurrentSlide)
				return state, nil
			}
			return state, fmt.Errorf("render error: %w", err)
		}

		r.write(view.Markdown)

		if view.Terminal {
			return state, nil
		}

		switch state.Phase {
		case domain.PhaseServiceName:
			next, done, err := r.stepServiceName(ctx, engine, state, scanner)
			if err != nil || done {
				return next, err
			}
			state = next

		case domain.PhaseServiceSelection:
			next, done, err := r.stepServiceSelection(ctx, engine, state, scanner)
			if err != nil || done {
				return next, err
			}
			state = next

		default:
			next, done, err := r.stepSlide(ctx, engine, state, view, scanner)
			if err != nil || done {
				return next, err
			}
			state = next
		}
	}
}

// stepSlide handles one round of option selection on a normal slide.
func (r *Runner) stepSlide(ctx context.Context, engine *wizard.Engine, state *domain.State, view *wizard.View, scanner *bufio.Scanner) (*domain.State, bool, error) {
	prompt := fmt.Sprintf("Select an option [1-%d]", len(view.Slide.Options))
	if view.CanGoBack {
		prompt += ", b to go back"
	}
	prompt += ", q to quit: "
	r.printf("%s", prompt)

	line, ok := r.readLine(scanner)
	if !ok {
		return state, true, nil
	}

	switch line {
	case "q":
		return state, true, nil
	case "b":
		if !view.CanGoBack {
			r.printf("Nothing to go back to.\n")
			return state, false, nil
		}
		return engine.GoBack(ctx, state), false, nil
	}

	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(view.Slide.Options) {
		r.printf("Please enter a number between 1 and %d.\n", len(view.Slide.Options))
		return state, false, nil
	}

	next, err := engine.Select(ctx, state, view.Slide.Options[idx-1].Value)
	if err != nil {
		r.printf("Error: %v\n", err)
		return state, false, nil
	}
	return next, false, nil
}

// stepServiceName handles the free-text service-name prompt.
func (r *Runner) stepServiceName(ctx context.Context, engine *wizard.Engine, state *domain.State, scanner *bufio.Scanner) (*domain.State, bool, error) {
	r.printf("Technical service name (optional, c to cancel): ")

	line, ok := r.readLine(scanner)
	if !ok {
		return state, true, nil
	}
	if line == "c" {
		next, err := engine.Cancel(ctx, state)
		if err != nil {
			return state, false, nil
		}
		return next, false, nil
	}

	next, req, err := engine.SubmitServiceName(ctx, state, strings.TrimSpace(line))
	if err != nil {
		r.printf("Error: %v\n", err)
		return state, false, nil
	}
	if !r.appendRow(ctx, req) {
		// Keep the overlay open so the user can retry or cancel.
		return state, false, nil
	}
	return next, false, nil
}

// stepServiceSelection fetches the directory and handles the pick.
func (r *Runner) stepServiceSelection(ctx context.Context, engine *wizard.Engine, state *domain.State, scanner *bufio.Scanner) (*domain.State, bool, error) {
	services, err := r.Directory.FetchServices(ctx, "")
	if r.Hooks.OnLookup != nil {
		r.Hooks.OnLookup(ctx, &domain.LookupEvent{Results: len(services), IsError: err != nil})
	}
	if err != nil {
		// Surface the failure and leave the overlay; re-selecting the
		// option re-enters it.
		r.printf("Error: %v\n", err)
		next, cancelErr := engine.Cancel(ctx, state)
		if cancelErr != nil {
			return state, false, nil
		}
		return next, false, nil
	}

	if len(services) == 0 {
		r.printf("No services found.\n")
		next, cancelErr := engine.Cancel(ctx, state)
		if cancelErr != nil {
			return state, false, nil
		}
		return next, false, nil
	}

	for i, svc := range services {
		desc := svc.Description
		if desc != "" {
			desc = " - " + desc
		}
		r.printf("%d. %s%s\n", i+1, svc.Name, desc)
	}
	r.printf("Select a service [1-%d], c to cancel: ", len(services))

	line, ok := r.readLine(scanner)
	if !ok {
		return state, true, nil
	}
	if line == "c" {
		next, err := engine.Cancel(ctx, state)
		if err != nil {
			return state, false, nil
		}
		return next, false, nil
	}

	idx, convErr := strconv.Atoi(line)
	if convErr != nil || idx < 1 || idx > len(services) {
		r.printf("Please enter a number between 1 and %d.\n", len(services))
		return state, false, nil
	}

	next, req, err := engine.ChooseService(ctx, state, services[idx-1])
	if err != nil {
		r.printf("Error: %v\n", err)
		return state, false, nil
	}
	if !r.appendRow(ctx, req) {
		return state, false, nil
	}
	r.printf("Recorded %q in the spreadsheet.\n", req.ServiceName)
	return next, false, nil
}

// appendRow performs the spreadsheet append for a resolved overlay and
// reports whether it succeeded.
func (r *Runner) appendRow(ctx context.Context, req *domain.UpdateRequest) bool {
	r.printf("Updating spreadsheet...\n")
	err := r.Rows.Append(ctx, req.ServiceName)
	if r.Hooks.OnRowAppend != nil {
		r.Hooks.OnRowAppend(ctx, &domain.AppendEvent{SubjectName: req.ServiceName, IsError: err != nil})
	}
	if err != nil {
		r.printf("Error: %v\n", err)
		return false
	}
	return true
}

func (r *Runner) readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func (r *Runner) write(markdown string) {
	out := markdown
	if r.Renderer != nil {
		if rendered, err := r.Renderer(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprint(r.Output, out)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Output, format, args...)
}

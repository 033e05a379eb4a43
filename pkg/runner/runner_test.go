package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/slipway/internal/deck"
	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/adapters/pagerduty"
	"github.com/opskit/slipway/pkg/domain"
	"github.com/opskit/slipway/pkg/ports"
)

type recordingRows struct {
	appended []string
	readErr  error
	writeErr error
}

func (r *recordingRows) ReadAll(context.Context) ([]domain.RowRecord, error) {
	return nil, r.readErr
}

func (r *recordingRows) Append(_ context.Context, subjectName string) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.appended = append(r.appended, subjectName)
	return nil
}

type failingDirectory struct{}

func (failingDirectory) FetchServices(context.Context, string) ([]domain.Service, error) {
	return nil, errors.New("directory unavailable")
}

func newTestRunner(t *testing.T, input string, dir ports.Directory, rows ports.RowStore) (*Runner, *wizard.Engine, *domain.State, *strings.Builder) {
	t.Helper()

	wizardDeck, err := wizard.NewDeck(deck.DefaultEntry, deck.Default())
	require.NoError(t, err)
	engine := wizard.NewEngine(wizardDeck, nil, domain.LifecycleHooks{})

	state, err := engine.NewSession("test-session", "")
	require.NoError(t, err)

	out := &strings.Builder{}
	r := New(dir, rows)
	r.Input = strings.NewReader(input)
	r.Output = out
	return r, engine, state, out
}

func TestRunnerCompletesViaProceed(t *testing.T) {
	rows := &recordingRows{}
	r, engine, state, out := newTestRunner(t, "1\n", pagerduty.NewFixture(), rows)

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.True(t, final.Completed())
	assert.Empty(t, rows.appended)
	assert.Contains(t, out.String(), "Dynatrace Service Onboarding")
}

func TestRunnerQuitLeavesStateUntouched(t *testing.T) {
	r, engine, state, _ := newTestRunner(t, "q\n", pagerduty.NewFixture(), &recordingRows{})

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Equal(t, deck.DefaultEntry, final.CurrentSlide)
	assert.Equal(t, domain.PhaseSlide, final.Phase)
	assert.Empty(t, final.History)
}

func TestRunnerServiceNameAppendsRow(t *testing.T) {
	rows := &recordingRows{}
	// Navigate to the check slide, open the name prompt, submit a name,
	// then quit from the slide the overlay returns to.
	input := "2\n2\nmy-api\nq\n"
	r, engine, state, out := newTestRunner(t, input, pagerduty.NewFixture(), rows)

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Equal(t, []string{"my-api"}, rows.appended)
	assert.Equal(t, domain.PhaseSlide, final.Phase)
	assert.Equal(t, "technicalServiceCheck", final.CurrentSlide)
	assert.Contains(t, out.String(), "Updating spreadsheet")
}

func TestRunnerServiceSelectionRecordsChosenService(t *testing.T) {
	rows := &recordingRows{}
	// Option 1 on the check slide opens the selection overlay; pick the
	// second fixture service.
	input := "2\n1\n2\nq\n"
	r, engine, state, out := newTestRunner(t, input, pagerduty.NewFixture(), rows)

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dynatrace Staging Service"}, rows.appended)
	assert.Equal(t, domain.PhaseSlide, final.Phase)
	assert.Contains(t, out.String(), "1. Dynatrace Production Service")
	assert.Contains(t, out.String(), "Recorded \"Dynatrace Staging Service\"")
}

func TestRunnerSelectionCancelRewindsSelection(t *testing.T) {
	input := "2\n1\nc\nq\n"
	r, engine, state, _ := newTestRunner(t, input, pagerduty.NewFixture(), &recordingRows{})

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	// Cancel dismisses the overlay and pops the history entry pushed when
	// the selection opened: the check slide stays current, one step shorter.
	assert.Equal(t, domain.PhaseSlide, final.Phase)
	assert.Equal(t, "technicalServiceCheck", final.CurrentSlide)
	assert.Equal(t, []string{deck.DefaultEntry}, final.History)
}

func TestRunnerDirectoryFailureReturnsToSlide(t *testing.T) {
	input := "2\n1\nq\n"
	r, engine, state, out := newTestRunner(t, input, failingDirectory{}, &recordingRows{})

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "directory unavailable")
	assert.Equal(t, domain.PhaseSlide, final.Phase)
}

func TestRunnerAppendFailureKeepsPrompt(t *testing.T) {
	rows := &recordingRows{writeErr: errors.New("disk full")}
	// First submit fails, a cancel then dismisses the prompt.
	input := "2\n2\nmy-api\nc\nq\n"
	r, engine, state, out := newTestRunner(t, input, pagerduty.NewFixture(), rows)

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "disk full")
	assert.Empty(t, rows.appended)
	assert.Equal(t, domain.PhaseSlide, final.Phase)
}

func TestRunnerInvalidInputReprompts(t *testing.T) {
	input := "banana\n0\n1\n"
	r, engine, state, out := newTestRunner(t, input, pagerduty.NewFixture(), &recordingRows{})

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.True(t, final.Completed())
	assert.Contains(t, out.String(), "Please enter a number between 1 and")
}

func TestRunnerBackOnEntrySlideIsRefused(t *testing.T) {
	input := "b\nq\n"
	r, engine, state, out := newTestRunner(t, input, pagerduty.NewFixture(), &recordingRows{})

	final, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Nothing to go back to")
	assert.Equal(t, deck.DefaultEntry, final.CurrentSlide)
}

func TestRunnerHooksFire(t *testing.T) {
	var lookups, appends int
	rows := &recordingRows{}
	input := "2\n1\n1\nq\n"
	r, engine, state, _ := newTestRunner(t, input, pagerduty.NewFixture(), rows)
	r.Hooks = domain.LifecycleHooks{
		OnLookup:    func(context.Context, *domain.LookupEvent) { lookups++ },
		OnRowAppend: func(context.Context, *domain.AppendEvent) { appends++ },
	}

	_, err := r.Run(context.Background(), engine, state)
	require.NoError(t, err)

	assert.Equal(t, 1, lookups)
	assert.Equal(t, 1, appends)
}

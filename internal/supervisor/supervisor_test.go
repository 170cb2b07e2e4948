package supervisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tessellate-ai/maestro/internal/agent"
	"github.com/tessellate-ai/maestro/pkg/models"
)

type fakePlanner struct {
	plan *models.ExecutionPlan
	err  error
}

func (p *fakePlanner) Plan(ctx context.Context, userText string) (*models.ExecutionPlan, error) {
	return p.plan, p.err
}

// fakeSpecialist records every message it receives and answers via respond,
// which is passed the 1-based call number.
type fakeSpecialist struct {
	name    models.AgentName
	msgs    []*models.A2AMessage
	respond func(call int, msg *models.A2AMessage) (*models.AgentResponse, error)
}

func (f *fakeSpecialist) Name() models.AgentName { return f.name }

func (f *fakeSpecialist) Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error) {
	f.msgs = append(f.msgs, msg)
	return f.respond(len(f.msgs), msg)
}

func successResponse(text string) *models.AgentResponse {
	return &models.AgentResponse{
		Status:     models.StatusSuccess,
		Output:     map[string]string{models.OutputContent: text},
		Confidence: 1.0,
	}
}

func approveAlways(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
	return &models.AgentResponse{
		Status:     models.StatusSuccess,
		Output:     map[string]string{models.OutputFeedback: "APPROVED, looks good"},
		Confidence: 1.0,
	}, nil
}

func rejectAlways(feedback string) func(int, *models.A2AMessage) (*models.AgentResponse, error) {
	return func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return &models.AgentResponse{
			Status:     models.StatusNeedsRework,
			Output:     map[string]string{models.OutputFeedback: feedback},
			Confidence: 1.0,
		}, nil
	}
}

func newTestSupervisor(plan *models.ExecutionPlan, specialists ...agent.Specialist) *Supervisor {
	return New(Config{
		Planner: &fakePlanner{plan: plan},
		Agents:  agent.NewRegistry(specialists...),
	})
}

func TestEmptyPlanFinishesImmediately(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	s := newTestSupervisor(&models.ExecutionPlan{StrategyRationale: "nothing to do"}, writer)

	st, err := s.Invoke(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if len(st.StepResults) != 0 {
		t.Errorf("expected no step results, got %d", len(st.StepResults))
	}
	if len(writer.msgs) != 0 {
		t.Errorf("expected no specialist calls, got %d", len(writer.msgs))
	}
}

func TestStepWithoutReviewSkipsCritic(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("Hello!"), nil
	}}
	critic := &fakeSpecialist{name: models.AgentCritic, respond: approveAlways}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet the user", RequiresReview: false},
	}}
	s := newTestSupervisor(plan, writer, critic)

	st, err := s.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if len(critic.msgs) != 0 {
		t.Errorf("expected critic to be skipped, got %d calls", len(critic.msgs))
	}
	if got := st.StepResults["step1"].Output[models.OutputContent]; got != "Hello!" {
		t.Errorf("expected step result 'Hello!', got %q", got)
	}
}

func TestApprovedStepsFinalizeInOrder(t *testing.T) {
	researcher := &fakeSpecialist{name: models.AgentResearcher, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("research findings"), nil
	}}
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("final summary"), nil
	}}
	critic := &fakeSpecialist{name: models.AgentCritic, respond: approveAlways}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentResearcher, Intent: "research", Instruction: "Research topic", RequiresReview: true},
		{StepID: "step2", Agent: models.AgentWriter, Intent: "summarize", Instruction: "Summarize findings", DependsOn: []string{"step1"}, RequiresReview: true},
	}}
	s := newTestSupervisor(plan, researcher, writer, critic)

	st, err := s.Invoke(context.Background(), "research and summarize")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if len(st.StepResults) != 2 {
		t.Fatalf("expected 2 step results, got %d", len(st.StepResults))
	}
	if len(researcher.msgs) != 1 || len(writer.msgs) != 1 {
		t.Errorf("expected each specialist called once, got researcher=%d writer=%d",
			len(researcher.msgs), len(writer.msgs))
	}
	if len(critic.msgs) != 2 {
		t.Errorf("expected 2 critic reviews, got %d", len(critic.msgs))
	}
	if st.CurrentStep != 2 {
		t.Errorf("expected step pointer at 2, got %d", st.CurrentStep)
	}
	if st.RetryCount != 0 || st.CriticFeedback != "" {
		t.Errorf("expected retry state cleared, got count=%d feedback=%q", st.RetryCount, st.CriticFeedback)
	}
}

func TestRetryCeilingForcesApproval(t *testing.T) {
	researcher := &fakeSpecialist{name: models.AgentResearcher, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("weak research"), nil
	}}
	critic := &fakeSpecialist{name: models.AgentCritic, respond: rejectAlways("REJECTED: needs more depth")}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentResearcher, Intent: "research", Instruction: "Research topic", RequiresReview: true},
	}}
	s := newTestSupervisor(plan, researcher, critic)

	st, err := s.Invoke(context.Background(), "research")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	// 1 initial attempt + DefaultMaxRetries retries, each followed by a review.
	wantAttempts := DefaultMaxRetries + 1
	if len(researcher.msgs) != wantAttempts {
		t.Errorf("expected %d execution attempts, got %d", wantAttempts, len(researcher.msgs))
	}
	if len(critic.msgs) != wantAttempts {
		t.Errorf("expected %d critic reviews, got %d", wantAttempts, len(critic.msgs))
	}

	result, ok := st.StepResults["step1"]
	if !ok {
		t.Fatal("expected forced result for step1")
	}
	if got := result.Output[models.OutputWarning]; got != forcedApprovalWarning {
		t.Errorf("expected forced approval warning %q, got %q", forcedApprovalWarning, got)
	}
	if want := "Critic Feedback: REJECTED: needs more depth"; result.Notes != want {
		t.Errorf("expected notes %q, got %q", want, result.Notes)
	}
	if got := result.Output[models.OutputContent]; got != "weak research" {
		t.Errorf("expected degraded output preserved, got %q", got)
	}
}

func TestRejectionFeedbackReachesRetry(t *testing.T) {
	const feedback = "REJECTED: cite your sources"

	researcher := &fakeSpecialist{name: models.AgentResearcher, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("attempt"), nil
	}}
	critic := &fakeSpecialist{name: models.AgentCritic, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		if call == 1 {
			return rejectAlways(feedback)(call, msg)
		}
		return approveAlways(call, msg)
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentResearcher, Intent: "research", Instruction: "Research topic", RequiresReview: true},
	}}
	s := newTestSupervisor(plan, researcher, critic)

	if _, err := s.Invoke(context.Background(), "research"); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if len(researcher.msgs) != 2 {
		t.Fatalf("expected 2 execution attempts, got %d", len(researcher.msgs))
	}

	first := researcher.msgs[0]
	if first.Payload.Feedback != "" {
		t.Errorf("first attempt should carry no feedback, got %q", first.Payload.Feedback)
	}

	retry := researcher.msgs[1]
	if retry.Payload.Feedback != feedback {
		t.Errorf("retry should carry feedback verbatim, got %q", retry.Payload.Feedback)
	}
	want := agent.FeedbackMarker + feedback
	if !strings.Contains(retry.Payload.Instruction, want) {
		t.Errorf("retry instruction missing %q:\n%s", want, retry.Payload.Instruction)
	}
}

func TestRejectionWithoutFeedbackUsesDefault(t *testing.T) {
	researcher := &fakeSpecialist{name: models.AgentResearcher, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("attempt"), nil
	}}
	critic := &fakeSpecialist{name: models.AgentCritic, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		if call == 1 {
			return &models.AgentResponse{Status: models.StatusNeedsRework, Output: map[string]string{}}, nil
		}
		return approveAlways(call, msg)
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentResearcher, Intent: "research", Instruction: "Research topic", RequiresReview: true},
	}}
	s := newTestSupervisor(plan, researcher, critic)

	if _, err := s.Invoke(context.Background(), "research"); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	retry := researcher.msgs[1]
	if retry.Payload.Feedback != "No specific feedback provided." {
		t.Errorf("expected default feedback, got %q", retry.Payload.Feedback)
	}
}

func TestUnregisteredAgentFailsTurn(t *testing.T) {
	critic := &fakeSpecialist{name: models.AgentCritic, respond: approveAlways}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentCoder, Intent: "code", Instruction: "Write code", RequiresReview: false},
	}}
	s := newTestSupervisor(plan, critic)

	_, err := s.Invoke(context.Background(), "write code")
	if err == nil {
		t.Fatal("expected error for unregistered agent")
	}
	if !strings.Contains(err.Error(), "unregistered agent") {
		t.Errorf("expected unregistered agent error, got: %v", err)
	}
}

func TestMissingCriticFailsReviewedStep(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("draft"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "write", Instruction: "Write a doc", RequiresReview: true},
	}}
	s := newTestSupervisor(plan, writer)

	_, err := s.Invoke(context.Background(), "write")
	if err == nil {
		t.Fatal("expected error when critic is missing")
	}
	if !strings.Contains(err.Error(), "no critic is registered") {
		t.Errorf("expected missing critic error, got: %v", err)
	}
}

func TestSpecialistErrorAbortsTurn(t *testing.T) {
	boom := errors.New("model unavailable")
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return nil, boom
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	s := newTestSupervisor(plan, writer)

	_, err := s.Invoke(context.Background(), "hi")
	if !errors.Is(err, boom) {
		t.Errorf("expected specialist error to propagate, got: %v", err)
	}
}

func TestPlannerErrorAbortsTurn(t *testing.T) {
	s := New(Config{
		Planner: &fakePlanner{err: errors.New("planning failed")},
		Agents:  agent.NewRegistry(),
	})

	_, err := s.Invoke(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "plan turn") {
		t.Errorf("expected planning error, got: %v", err)
	}
}

type stopImmediately struct{}

func (stopImmediately) ShouldStop() bool { return true }
func (stopImmediately) Paused() bool     { return false }

// pauseFor reports paused for the first n Paused calls, then resumed.
type pauseFor struct {
	remaining int
	polls     int
}

func (p *pauseFor) ShouldStop() bool { return false }

func (p *pauseFor) Paused() bool {
	p.polls++
	if p.remaining > 0 {
		p.remaining--
		return true
	}
	return false
}

// pausedUntilStop is paused indefinitely and raises stop after the first
// pause poll.
type pausedUntilStop struct {
	polls int
}

func (p *pausedUntilStop) ShouldStop() bool { return p.polls > 0 }
func (p *pausedUntilStop) Paused() bool {
	p.polls++
	return true
}

func TestStopSignalAbortsBetweenSteps(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	s := New(Config{
		Planner: &fakePlanner{plan: plan},
		Agents:  agent.NewRegistry(writer),
		Signals: stopImmediately{},
	})

	_, err := s.Invoke(context.Background(), "hi")
	if !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got: %v", err)
	}
	if len(writer.msgs) != 0 {
		t.Errorf("expected no specialist calls after stop, got %d", len(writer.msgs))
	}
}

func TestPausedTurnResumesWhenSignalClears(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	ctl := &pauseFor{remaining: 2}
	s := New(Config{
		Planner: &fakePlanner{plan: plan},
		Agents:  agent.NewRegistry(writer),
		Signals: ctl,
	})

	st, err := s.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(writer.msgs) != 1 {
		t.Errorf("expected 1 specialist call after resume, got %d", len(writer.msgs))
	}
	if len(st.StepResults) != 1 {
		t.Errorf("expected 1 step result, got %d", len(st.StepResults))
	}
	if ctl.polls < 3 {
		t.Errorf("expected the turn to wait through the pause, got %d polls", ctl.polls)
	}
}

func TestStopWhilePausedAbortsTurn(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	s := New(Config{
		Planner: &fakePlanner{plan: plan},
		Agents:  agent.NewRegistry(writer),
		Signals: &pausedUntilStop{},
	})

	_, err := s.Invoke(context.Background(), "hi")
	if !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped while paused, got: %v", err)
	}
	if len(writer.msgs) != 0 {
		t.Errorf("expected no specialist calls, got %d", len(writer.msgs))
	}
}

func TestCancelledContextAbortsTurn(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	s := newTestSupervisor(plan, writer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Invoke(ctx, "hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestEventsEmittedForLifecycle(t *testing.T) {
	writer := &fakeSpecialist{name: models.AgentWriter, respond: func(call int, msg *models.A2AMessage) (*models.AgentResponse, error) {
		return successResponse("hi"), nil
	}}

	plan := &models.ExecutionPlan{Steps: []models.ExecutionStep{
		{StepID: "step1", Agent: models.AgentWriter, Intent: "reply", Instruction: "Greet", RequiresReview: false},
	}}
	s := newTestSupervisor(plan, writer)

	if _, err := s.Invoke(context.Background(), "hi"); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	var types []EventType
	for len(s.Events()) > 0 {
		types = append(types, (<-s.Events()).Type)
	}

	want := []EventType{EventStepStarted, EventStepFinalized, EventTurnDone}
	if len(types) != len(want) {
		t.Fatalf("expected events %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedPet/internal/i18n"
)

// gatewayCall records one outbound action in arrival order.
type gatewayCall struct {
	op      string // "text", "buttons", "media", "location", "contact", "read"
	to      string
	body    string
	buttons []Button
	eventID string
}

type fakeGateway struct {
	mu    sync.Mutex
	calls []gatewayCall
}

func (g *fakeGateway) record(c gatewayCall) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, c)
}

func (g *fakeGateway) SendText(_ context.Context, to, body, _ string) error {
	g.record(gatewayCall{op: "text", to: to, body: body})
	return nil
}

func (g *fakeGateway) SendButtons(_ context.Context, to, body string, buttons []Button) error {
	g.record(gatewayCall{op: "buttons", to: to, body: body, buttons: buttons})
	return nil
}

func (g *fakeGateway) SendMedia(_ context.Context, to string, _ MediaPayload) error {
	g.record(gatewayCall{op: "media", to: to})
	return nil
}

func (g *fakeGateway) SendLocation(_ context.Context, to string, _ LocationPayload) error {
	g.record(gatewayCall{op: "location", to: to})
	return nil
}

func (g *fakeGateway) SendContact(_ context.Context, to string, _ ContactCard) error {
	g.record(gatewayCall{op: "contact", to: to})
	return nil
}

func (g *fakeGateway) MarkRead(_ context.Context, eventID string) error {
	g.record(gatewayCall{op: "read", eventID: eventID})
	return nil
}

func (g *fakeGateway) ops() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ops := make([]string, len(g.calls))
	for i, c := range g.calls {
		ops[i] = c.op
	}
	return ops
}

// cannedAssistant answers every question with a fixed string, or fails when
// err is set.
type cannedAssistant struct {
	answer string
	err    error
	asked  []string
}

func (a *cannedAssistant) Ask(_ context.Context, question string) (string, error) {
	a.asked = append(a.asked, question)
	if a.err != nil {
		return "", a.err
	}
	return a.answer, nil
}

type testEnv struct {
	router      *Router
	gateway     *fakeGateway
	storage     *MemorySessionStorage
	assistant   *cannedAssistant
	appointment *AppointmentFlow
	composer    *Composer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := i18n.New("en")
	composer := NewComposer(catalog, "MedPet")
	greetings := NewGreetingClassifier(catalog)
	storage := NewMemorySessionStorage(time.Hour)
	gateway := &fakeGateway{}
	assistant := &cannedAssistant{answer: "Feed your cat twice a day."}

	appointmentFlow := NewAppointmentFlow(storage, composer, 100, log)
	assistantFlow := NewAssistantFlow(storage, composer, assistant, time.Second, log)
	menu := NewMenuDispatcher(storage, composer, appointmentFlow, assistantFlow, log)

	router := NewRouter(storage, gateway, composer, greetings, menu, appointmentFlow, assistantFlow, 5*time.Minute, log)

	return &testEnv{
		router:      router,
		gateway:     gateway,
		storage:     storage,
		assistant:   assistant,
		appointment: appointmentFlow,
		composer:    composer,
	}
}

func textEvent(id, from, body string) InboundEvent {
	return InboundEvent{Kind: EventText, ConversationID: from, EventID: id, Text: body}
}

func TestRouteGreetingSendsWelcomeAndMenu(t *testing.T) {
	env := newTestEnv(t)

	err := env.router.Route(context.Background(), textEvent("wamid.1", "5215551234", "Hello there"), &Profile{Name: "Ana"})
	require.NoError(t, err)

	require.Equal(t, []string{"text", "buttons", "read"}, env.gateway.ops())
	assert.Contains(t, env.gateway.calls[0].body, "Hello Ana!")
	assert.Contains(t, env.gateway.calls[0].body, "MedPet")
	assert.Len(t, env.gateway.calls[1].buttons, 3)
}

func TestRouteGreetingWithoutProfileFallsBackToWaID(t *testing.T) {
	env := newTestEnv(t)

	err := env.router.Route(context.Background(), textEvent("wamid.1", "5215551234", "hi"), &Profile{WaID: "5215551234"})
	require.NoError(t, err)

	require.NotEmpty(t, env.gateway.calls)
	assert.Contains(t, env.gateway.calls[0].body, "5215551234")
}

func TestRouteGreetingLeavesActiveFlowUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.appointment.Start(ctx, "user1")
	require.NoError(t, err)

	err = env.router.Route(ctx, textEvent("wamid.2", "user1", "good morning"), &Profile{Name: "Ana"})
	require.NoError(t, err)

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, FlowAppointment, session.Flow)
	assert.Equal(t, StepAwaitingName, session.Step)
}

func TestRouteMalformedEventHasNoSideEffects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	events := []InboundEvent{
		{Kind: EventText, ConversationID: "user1", EventID: "", Text: "hi"},
		{Kind: EventText, ConversationID: "", EventID: "wamid.1", Text: "hi"},
		{Kind: EventText, ConversationID: "user1", EventID: "wamid.2"},
		{Kind: "", ConversationID: "user1", EventID: "wamid.3"},
		{Kind: EventInteractive, ConversationID: "user1", EventID: "wamid.4"},
	}

	for _, ev := range events {
		err := env.router.Route(ctx, ev, nil)
		assert.ErrorIs(t, err, ErrMalformedEvent)
	}

	assert.Empty(t, env.gateway.calls)
	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestRouteUnsupportedTypeMarksReadThenErrors(t *testing.T) {
	env := newTestEnv(t)

	ev := InboundEvent{Kind: "sticker", ConversationID: "user1", EventID: "wamid.1"}
	err := env.router.Route(context.Background(), ev, nil)

	require.ErrorIs(t, err, ErrUnsupportedMessageType)
	assert.Equal(t, []string{"read"}, env.gateway.ops())
}

func TestRouteMediaAcknowledgedAfterRead(t *testing.T) {
	env := newTestEnv(t)

	ev := InboundEvent{
		Kind:           EventImage,
		ConversationID: "user1",
		EventID:        "wamid.1",
		Media:          &InboundMedia{MediaID: "media-1"},
	}
	err := env.router.Route(context.Background(), ev, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"read", "text"}, env.gateway.ops())
	assert.Contains(t, env.gateway.calls[1].body, "image")
}

func TestRouteDuplicateEventDropped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.router.Route(ctx, textEvent("wamid.1", "user1", "hello"), nil)
	require.NoError(t, first)
	sent := len(env.gateway.calls)

	second := env.router.Route(ctx, textEvent("wamid.1", "user1", "hello"), nil)
	require.ErrorIs(t, second, ErrDuplicateEvent)
	assert.Len(t, env.gateway.calls, sent)
}

func TestRouteTypedNumberStartsFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.router.Route(ctx, textEvent("wamid.1", "user1", "1"), nil)
	require.NoError(t, err)

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, FlowAppointment, session.Flow)
	assert.Equal(t, StepAwaitingName, session.Step)

	require.Equal(t, []string{"text", "read"}, env.gateway.ops())
	assert.Equal(t, "Please enter your name:", env.gateway.calls[0].body)
}

func TestRouteTypedTitleStartsConsultation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.router.Route(ctx, textEvent("wamid.1", "user1", "Consult"), nil)
	require.NoError(t, err)

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, FlowAssistant, session.Flow)
}

func TestRouteUnknownTextRepresentsMenu(t *testing.T) {
	env := newTestEnv(t)

	err := env.router.Route(context.Background(), textEvent("wamid.1", "user1", "qwerty"), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"text", "buttons", "read"}, env.gateway.ops())
	assert.Contains(t, env.gateway.calls[0].body, "didn't understand")
}

func TestRouteMediaTriggerSendsDemo(t *testing.T) {
	env := newTestEnv(t)

	err := env.router.Route(context.Background(), textEvent("wamid.1", "user1", "media"), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"media", "read"}, env.gateway.ops())
}

func TestRouteRecoverableErrorResolvesToReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.appointment.Start(ctx, "user1")
	require.NoError(t, err)

	// Whitespace-only input inside a flow is a recoverable user-input case:
	// the user gets a corrective message and Route reports success.
	err = env.router.Route(ctx, textEvent("wamid.1", "user1", "   "), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"text", "read"}, env.gateway.ops())
	assert.Contains(t, env.gateway.calls[0].body, "type an answer")

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, StepAwaitingName, session.Step)
}

func TestRouteAssistantFailureResolvesToReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.assistant.err = errors.New("rate limited")

	err := env.router.Route(ctx, textEvent("wamid.1", "user1", "consult"), nil)
	require.NoError(t, err)

	err = env.router.Route(ctx, textEvent("wamid.2", "user1", "Is chocolate bad for dogs?"), nil)
	require.NoError(t, err)

	ops := env.gateway.ops()
	require.Equal(t, []string{"text", "read", "text", "read"}, ops)
	assert.Contains(t, env.gateway.calls[2].body, "unavailable")

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestRouteCorruptFlowStateCleared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.storage.Save(ctx, &Session{
		ConversationID: "user1",
		Flow:           "mystery",
		Step:           "somewhere",
	}))

	err := env.router.Route(ctx, textEvent("wamid.1", "user1", "anything"), nil)
	require.ErrorIs(t, err, ErrCorruptFlowState)

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, session)

	// The conversation is usable again immediately.
	err = env.router.Route(ctx, textEvent("wamid.2", "user1", "hello"), nil)
	require.NoError(t, err)
}

func TestRouteInteractiveSelection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ev := InboundEvent{
		Kind:           EventInteractive,
		ConversationID: "user1",
		EventID:        "wamid.1",
		OptionID:       OptionLocation,
	}
	err := env.router.Route(ctx, ev, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"location", "read"}, env.gateway.ops())
}

func TestRouteInteractiveOverwritesActiveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.appointment.Start(ctx, "user1")
	require.NoError(t, err)
	require.NoError(t, env.router.Route(ctx, textEvent("wamid.1", "user1", "John Doe"), nil))

	ev := InboundEvent{
		Kind:           EventInteractive,
		ConversationID: "user1",
		EventID:        "wamid.2",
		OptionID:       OptionConsult,
	}
	require.NoError(t, env.router.Route(ctx, ev, nil))

	session, err := env.storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, FlowAssistant, session.Flow)
	assert.Empty(t, session.Name)
}

func TestRouteConcurrentConversationsIsolated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	users := []string{"user1", "user2", "user3", "user4"}
	for _, user := range users {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			assert.NoError(t, env.router.Route(ctx, textEvent("wamid.a"+user, user, "schedule"), nil))
			assert.NoError(t, env.router.Route(ctx, textEvent("wamid.b"+user, user, "Owner "+user), nil))
		}(user)
	}
	wg.Wait()

	for _, user := range users {
		session, err := env.storage.Load(ctx, user)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, StepAwaitingPetName, session.Step)
		assert.Equal(t, "Owner "+user, session.Name)
	}
}

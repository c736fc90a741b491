package timeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/capasdev/redsocial/internal/clients"
	"github.com/capasdev/redsocial/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// --- Mocks ---
//

type mockVerifier struct {
	err         error
	calls       int
	credentials []string
}

func (m *mockVerifier) VerifyUser(ctx context.Context, username, credential string) (*models.Usuario, error) {
	m.calls++
	m.credentials = append(m.credentials, credential)
	if m.err != nil {
		return nil, m.err
	}
	return &models.Usuario{Username: username, Rol: models.RolUsuario}, nil
}

type mockFollowLister struct {
	followees []string
	err       error
	calls     int
}

func (m *mockFollowLister) ListFollowees(seguidor string) ([]models.Follow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	follows := make([]models.Follow, 0, len(m.followees))
	for _, f := range m.followees {
		follows = append(follows, models.Follow{
			UsuarioPrincipalUsername: f,
			UsuarioSeguidorUsername:  seguidor,
		})
	}
	return follows, nil
}

// mockFetcher simulates the Mensajes service with per-followee latency and
// failure knobs. It honors context cancellation so timeouts behave like the
// real HTTP client.
type mockFetcher struct {
	mu    sync.Mutex
	calls []string

	msgs  map[string][]models.Mensaje
	delay map[string]time.Duration
	fail  map[string]error
}

func (m *mockFetcher) FetchMessages(ctx context.Context, username, credential string) ([]models.Mensaje, error) {
	m.mu.Lock()
	m.calls = append(m.calls, username)
	m.mu.Unlock()

	if d := m.delay[username]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.fail[username]; err != nil {
		return nil, err
	}
	return m.msgs[username], nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

//
// --- Helpers ---
//

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("ObjectIDFromHex(%s): %v", hex, err)
	}
	return id
}

func mensajeDe(t *testing.T, autor, hex, contenido string) models.Mensaje {
	t.Helper()
	return models.Mensaje{
		ID:            mustObjectID(t, hex),
		UsernameAutor: autor,
		Contenido:     contenido,
		FechaCreacion: time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
	}
}

//
// --- Tests ---
//

// entries must come back in follow-store order even when the slowest fetch
// belongs to the first followee
func TestComposePreservesFolloweeOrder(t *testing.T) {
	fetcher := &mockFetcher{
		msgs: map[string][]models.Mensaje{
			"f1": {mensajeDe(t, "f1", "65f000000000000000000001", "primero")},
			"f2": {mensajeDe(t, "f2", "65f000000000000000000002", "segundo")},
			"f3": {mensajeDe(t, "f3", "65f000000000000000000003", "tercero")},
		},
		delay: map[string]time.Duration{
			"f1": 120 * time.Millisecond,
			"f2": 5 * time.Millisecond,
			"f3": 60 * time.Millisecond,
		},
	}
	cp := NewComposer(&mockVerifier{}, fetcher, &mockFollowLister{followees: []string{"f1", "f2", "f3"}}, time.Second)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"f1", "f2", "f3"} {
		if entries[i].Siguiendo != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, entries[i].Siguiendo)
		}
	}
	if entries[0].Mensajes[0].Contenido != "primero" {
		t.Errorf("slow fetch lost its messages: %+v", entries[0].Mensajes)
	}
}

// one failing followee degrades to an empty entry, the rest are untouched
func TestComposeIsolatesPerFolloweeFailure(t *testing.T) {
	fetcher := &mockFetcher{
		msgs: map[string][]models.Mensaje{
			"f1": {mensajeDe(t, "f1", "65f000000000000000000001", "hola")},
			"f3": {mensajeDe(t, "f3", "65f000000000000000000003", "adios")},
		},
		fail: map[string]error{"f2": errors.New("upstream 500")},
	}
	cp := NewComposer(&mockVerifier{}, fetcher, &mockFollowLister{followees: []string{"f1", "f2", "f3"}}, time.Second)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if len(entries[0].Mensajes) != 1 || len(entries[2].Mensajes) != 1 {
		t.Errorf("healthy followees affected by f2's failure: %+v", entries)
	}
	if entries[1].Mensajes == nil || len(entries[1].Mensajes) != 0 {
		t.Errorf("expected empty (non-nil) message list for f2, got %+v", entries[1].Mensajes)
	}
}

// following nobody is a success with zero fan-out calls
func TestComposeEmptyFollowListShortCircuits(t *testing.T) {
	fetcher := &mockFetcher{}
	cp := NewComposer(&mockVerifier{}, fetcher, &mockFollowLister{}, time.Second)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil result, got %+v", entries)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("expected zero fan-out calls, got %d", fetcher.callCount())
	}
}

// a rejected credential fails the whole call before any downstream work
func TestComposeAuthFailureIsFatal(t *testing.T) {
	follows := &mockFollowLister{followees: []string{"f1"}}
	fetcher := &mockFetcher{}
	cp := NewComposer(&mockVerifier{err: clients.ErrUnauthorized}, fetcher, follows, time.Second)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer expired")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected no partial timeline, got %+v", entries)
	}
	if follows.calls != 0 {
		t.Errorf("follow store consulted despite auth failure")
	}
	if fetcher.callCount() != 0 {
		t.Errorf("message fetches issued despite auth failure")
	}
}

func TestComposeFollowStoreFailureIsFatal(t *testing.T) {
	follows := &mockFollowLister{err: errors.New("connection pool exhausted")}
	cp := NewComposer(&mockVerifier{}, &mockFetcher{}, follows, time.Second)

	_, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err == nil {
		t.Fatal("expected error on follow store failure")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("store failure must not masquerade as auth failure: %v", err)
	}
}

// a timed-out fetch is treated like any other per-followee failure
func TestComposeTimeoutDegradesToEmptyEntry(t *testing.T) {
	fetcher := &mockFetcher{
		msgs: map[string][]models.Mensaje{
			"bob": {mensajeDe(t, "bob", "65f000000000000000000001", "hi")},
		},
		delay: map[string]time.Duration{"carol": 500 * time.Millisecond},
	}
	cp := NewComposer(&mockVerifier{}, fetcher, &mockFollowLister{followees: []string{"bob", "carol"}}, 50*time.Millisecond)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Siguiendo != "bob" || len(entries[0].Mensajes) != 1 || entries[0].Mensajes[0].Contenido != "hi" {
		t.Errorf("unexpected bob entry: %+v", entries[0])
	}
	if entries[1].Siguiendo != "carol" || len(entries[1].Mensajes) != 0 {
		t.Errorf("expected empty entry for carol, got %+v", entries[1])
	}
}

// the caller's credential is forwarded unchanged to both collaborators
func TestComposeForwardsCredential(t *testing.T) {
	verifier := &mockVerifier{}
	fetcher := &mockFetcher{}
	cp := NewComposer(verifier, fetcher, &mockFollowLister{followees: []string{"f1"}}, time.Second)

	if _, err := cp.Compose(context.Background(), "alice", "Bearer token-123"); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(verifier.credentials) != 1 || verifier.credentials[0] != "Bearer token-123" {
		t.Errorf("verifier did not receive the caller's credential: %v", verifier.credentials)
	}
}

// the author field is dropped from mapped messages, order preserved
func TestComposeDropsAuthorFromMessages(t *testing.T) {
	fetcher := &mockFetcher{
		msgs: map[string][]models.Mensaje{
			"f1": {
				mensajeDe(t, "f1", "65f000000000000000000002", "nuevo"),
				mensajeDe(t, "f1", "65f000000000000000000001", "viejo"),
			},
		},
	}
	cp := NewComposer(&mockVerifier{}, fetcher, &mockFollowLister{followees: []string{"f1"}}, time.Second)

	entries, err := cp.Compose(context.Background(), "alice", "Bearer token-123")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	mensajes := entries[0].Mensajes
	if len(mensajes) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(mensajes))
	}
	if mensajes[0].ID != "65f000000000000000000002" || mensajes[0].Contenido != "nuevo" {
		t.Errorf("message order not preserved: %+v", mensajes)
	}
}

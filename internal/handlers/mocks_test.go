package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/capasdev/redsocial/validators"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//
// --- Repository mocks ---
//

type mockUserRepo struct {
	users      map[string]*models.Usuario
	shouldFail bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.Usuario)}
}

func (m *mockUserRepo) seed(t *testing.T, username, contrasena, rol string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	m.users[username] = &models.Usuario{
		Username:       username,
		Nombre:         username,
		ContrasenaHash: string(hash),
		Rol:            rol,
	}
}

func (m *mockUserRepo) CreateUser(user *models.Usuario) error {
	if m.shouldFail {
		return gorm.ErrInvalidDB
	}
	if _, exists := m.users[user.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetAllUsers() ([]models.Usuario, error) {
	if m.shouldFail {
		return nil, gorm.ErrInvalidDB
	}
	all := make([]models.Usuario, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *u)
	}
	return all, nil
}

func (m *mockUserRepo) GetUserByUsername(username string) (*models.Usuario, error) {
	if m.shouldFail {
		return nil, gorm.ErrInvalidDB
	}
	u, ok := m.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ValidateCredentials(username, contrasenaPlana string) (*models.Usuario, error) {
	if m.shouldFail {
		return nil, gorm.ErrInvalidDB
	}
	u, ok := m.users[username]
	if !ok {
		return nil, repositories.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.ContrasenaHash), []byte(contrasenaPlana)); err != nil {
		return nil, repositories.ErrInvalidCredentials
	}
	return u, nil
}

type mockFollowRepo struct {
	edges      []*models.Follow
	shouldFail bool
}

func (m *mockFollowRepo) CreateFollow(follow *models.Follow) error {
	if m.shouldFail {
		return gorm.ErrInvalidDB
	}
	for _, e := range m.edges {
		if e.UsuarioPrincipalUsername == follow.UsuarioPrincipalUsername &&
			e.UsuarioSeguidorUsername == follow.UsuarioSeguidorUsername {
			return repositories.ErrDuplicateEdge
		}
	}
	m.edges = append(m.edges, follow)
	return nil
}

func (m *mockFollowRepo) ListFollowees(seguidor string) ([]models.Follow, error) {
	if m.shouldFail {
		return nil, gorm.ErrInvalidDB
	}
	out := []models.Follow{}
	for _, e := range m.edges {
		if e.UsuarioSeguidorUsername == seguidor {
			out = append(out, *e)
		}
	}
	return out, nil
}

type mockMensajeRepo struct {
	mensajes   map[string][]models.Mensaje
	shouldFail bool
}

func (m *mockMensajeRepo) CreateMensaje(ctx context.Context, mensaje *models.Mensaje) error {
	if m.shouldFail {
		return context.DeadlineExceeded
	}
	if m.mensajes == nil {
		m.mensajes = make(map[string][]models.Mensaje)
	}
	m.mensajes[mensaje.UsernameAutor] = append(m.mensajes[mensaje.UsernameAutor], *mensaje)
	return nil
}

func (m *mockMensajeRepo) GetMensajesByAutor(ctx context.Context, username string) ([]models.Mensaje, error) {
	if m.shouldFail {
		return nil, context.DeadlineExceeded
	}
	out := m.mensajes[username]
	if out == nil {
		out = []models.Mensaje{}
	}
	return out, nil
}

//
// --- Peer service mocks ---
//

type mockUsersClient struct {
	err   error
	calls int
}

func (m *mockUsersClient) VerifyUser(ctx context.Context, username, credential string) (*models.Usuario, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &models.Usuario{Username: username, Rol: models.RolUsuario}, nil
}

type mockComposer struct {
	entries []models.TimelineEntry
	err     error
}

func (m *mockComposer) Compose(ctx context.Context, requester, credential string) ([]models.TimelineEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

//
// --- Request helpers ---
//

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer token-123")

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

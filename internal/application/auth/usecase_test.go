package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/application/auth"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repo de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User // por ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	v := *u
	r.users[u.ID] = &v
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	v := *u
	return &v, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			v := *u
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	v := *u
	r.users[u.ID] = &v
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func buildAuthUseCase(repo *memUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "retailpos-test",
	})
}

func registerUser(t *testing.T, uc *auth.UseCase, username, password, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(dto.RegisterRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func str(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_UsernameDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	_, err := uc.Register(dto.RegisterRequest{Username: "caja1", Password: "otra-clave99"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	_, err := uc.Login(dto.LoginRequest{Username: "caja1", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario inexistente responde igual: no se revela cuál de los dos falló.
	_, err = uc.Login(dto.LoginRequest{Username: "fantasma", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUser_CambiaRolYCorreo(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	u := registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	out, err := uc.UpdateUser(u.ID, dto.UpdateUserRequest{
		Email: str("caja1@tienda.com"),
		Role:  str(entity.RoleManager),
	})
	require.NoError(t, err)
	assert.Equal(t, "caja1@tienda.com", out.Email)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, "caja1", out.Username, "el username no cambia")
}

func TestUpdateUser_RolDesconocido(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	u := registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	_, err := uc.UpdateUser(u.ID, dto.UpdateUserRequest{Role: str("superusuario")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUser_NoExiste(t *testing.T) {
	uc := buildAuthUseCase(newMemUserRepo())

	_, err := uc.UpdateUser("no-existe", dto.UpdateUserRequest{Email: str("x@y.com")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Desactivar la cuenta bloquea el login aunque la contraseña siga siendo válida.
func TestDeactivateUser_BloqueaElLogin(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	u := registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	require.NoError(t, uc.DeactivateUser(u.ID))

	_, err := uc.Login(dto.LoginRequest{Username: "caja1", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Tras el reset de admin, la contraseña anterior deja de servir y la nueva
// permite iniciar sesión.
func TestResetPassword_RotaLaContrasena(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	u := registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	require.NoError(t, uc.ResetPassword(u.ID, "nueva-clave-456"))

	_, err := uc.Login(dto.LoginRequest{Username: "caja1", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña anterior ya no sirve")

	resp, err := uc.Login(dto.LoginRequest{Username: "caja1", Password: "nueva-clave-456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestResetPassword_MuyCorta(t *testing.T) {
	repo := newMemUserRepo()
	uc := buildAuthUseCase(repo)
	u := registerUser(t, uc, "caja1", "secreta123", entity.RoleCashier)

	err := uc.ResetPassword(u.ID, "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

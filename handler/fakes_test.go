package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/geuresti/Hack-The-Woodz-Backend/credential"
	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/geuresti/Hack-The-Woodz-Backend/util/middleware"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"
)

// --- fakes over the domain interfaces ---

type fakeProjectRepo struct {
	nextID   int
	projects map[int]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{nextID: 1, projects: make(map[int]*domain.Project)}
}

func copyProject(p *domain.Project) *domain.Project {
	c := *p
	return &c
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id int) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyProject(p), nil
}

func (f *fakeProjectRepo) GetByTitle(ctx context.Context, title string) (*domain.Project, error) {
	for _, p := range f.projects {
		if p.Title == title {
			return copyProject(p), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProjectRepo) sorted() []*domain.Project {
	ids := make([]int, 0, len(f.projects))
	for id := range f.projects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, f.projects[id])
	}
	return ret
}

func summarize(p *domain.Project) domain.ProjectSummary {
	return domain.ProjectSummary{
		ID:               p.ID,
		Title:            p.Title,
		Thumbnail:        p.Thumbnail,
		ShortDescription: p.ShortDescription,
	}
}

func (f *fakeProjectRepo) GetAll(ctx context.Context) ([]domain.ProjectSummary, error) {
	ret := make([]domain.ProjectSummary, 0)
	for _, p := range f.sorted() {
		ret = append(ret, summarize(p))
	}
	return ret, nil
}

func (f *fakeProjectRepo) GetProjectsByAccountID(ctx context.Context, aid int) ([]domain.ProjectSummary, error) {
	ret := make([]domain.ProjectSummary, 0)
	for _, p := range f.sorted() {
		if p.AccountID == aid {
			ret = append(ret, summarize(p))
		}
	}
	return ret, nil
}

func (f *fakeProjectRepo) Insert(ctx context.Context, project *domain.Project) error {
	for _, p := range f.projects {
		if p.Title == project.Title {
			return fmt.Errorf("ERROR: duplicate key value violates unique constraint \"projects_title_key\"")
		}
	}
	project.ID = f.nextID
	project.DateCreated = time.Now()
	f.nextID++
	f.projects[project.ID] = copyProject(project)
	return nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	stored, ok := f.projects[project.ID]
	if !ok || stored.AccountID != project.AccountID {
		return pgx.ErrNoRows
	}
	for _, p := range f.projects {
		if p.ID != project.ID && p.Title == project.Title {
			return fmt.Errorf("ERROR: duplicate key value violates unique constraint \"projects_title_key\"")
		}
	}
	f.projects[project.ID] = copyProject(project)
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, project *domain.Project) error {
	stored, ok := f.projects[project.ID]
	if !ok || stored.AccountID != project.AccountID {
		return pgx.ErrNoRows
	}
	delete(f.projects, project.ID)
	return nil
}

func (f *fakeProjectRepo) DeleteByAccountID(ctx context.Context, aid int) (int64, error) {
	var n int64
	for id, p := range f.projects {
		if p.AccountID == aid {
			delete(f.projects, id)
			n++
		}
	}
	return n, nil
}

type fakeAccountRepo struct {
	nextID   int
	accounts map[int]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, accounts: make(map[int]*domain.Account)}
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := *a
	return &c, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			c := *a
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) GetAll(ctx context.Context) ([]domain.Account, error) {
	ids := make([]int, 0, len(f.accounts))
	for id := range f.accounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, *f.accounts[id])
	}
	return ret, nil
}

func (f *fakeAccountRepo) Insert(ctx context.Context, account *domain.Account) error {
	for _, a := range f.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return fmt.Errorf("ERROR: duplicate key value violates unique constraint \"accounts_username_key\"")
		}
	}
	account.ID = f.nextID
	f.nextID++
	c := *account
	f.accounts[account.ID] = &c
	return nil
}

type fakeTokenCache struct {
	n      int
	tokens map[string]middleware.AuthUserValue
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{tokens: make(map[string]middleware.AuthUserValue)}
}

func (f *fakeTokenCache) GetTokenExpiry() time.Duration {
	return time.Hour
}

func (f *fakeTokenCache) GetAccountByToken(ctx context.Context, token string) (int, string, error) {
	v, ok := f.tokens[token]
	if !ok {
		return 0, "", redis.Nil
	}
	return v.ID, v.Username, nil
}

func (f *fakeTokenCache) GenerateAndSaveToken(ctx context.Context, id int, username string) (string, error) {
	f.n++
	token := fmt.Sprintf("test-token-%d", f.n)
	f.tokens[token] = middleware.AuthUserValue{ID: id, Username: username, Token: token}
	return token, nil
}

func (f *fakeTokenCache) DeleteToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeBlobStore struct{}

func (fakeBlobStore) SignedGetURL(ctx context.Context, key string) (string, error) {
	return "https://media.test/" + key, nil
}

func (fakeBlobStore) SignedPutURL(ctx context.Context) (string, string, error) {
	return "images/test-key", "https://media.test/upload/images/test-key", nil
}

// --- harness ---

type testEnv struct {
	router   *mux.Router
	projects *fakeProjectRepo
	accounts *fakeAccountRepo
	tokens   *fakeTokenCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		router:   mux.NewRouter(),
		projects: newFakeProjectRepo(),
		accounts: newFakeAccountRepo(),
		tokens:   newFakeTokenCache(),
	}
	authMiddleware := func(next http.Handler) http.Handler {
		return middleware.TokenAuthMiddleware(env.tokens, next)
	}
	creds := credential.NewService(env.accounts, env.tokens)
	NewProjectHandler(env.router, authMiddleware, env.projects, fakeBlobStore{})
	NewAccountHandler(env.router, authMiddleware, env.accounts, env.projects, creds)
	return env
}

// addAccount seeds an account and returns a valid token for it.
func (env *testEnv) addAccount(t *testing.T, username string) (int, string) {
	t.Helper()
	account := &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    username,
		PasswordHash: "x",
	}
	if err := env.accounts.Insert(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	token, err := env.tokens.GenerateAndSaveToken(context.Background(), account.ID, username)
	if err != nil {
		t.Fatalf("seed token: %v", err)
	}
	return account.ID, token
}

func (env *testEnv) addProject(t *testing.T, aid int, title string) *domain.Project {
	t.Helper()
	project := &domain.Project{
		AccountID:        aid,
		Title:            title,
		ShortDescription: "short",
		LongDescription:  "long",
		Contributions:    "everything",
		Thumbnail:        "images/" + title + ".png",
	}
	if err := env.projects.Insert(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	ret := make(map[string]interface{})
	if err := json.Unmarshal(w.Body.Bytes(), &ret); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return ret
}

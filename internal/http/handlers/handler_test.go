package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"taskmanager/internal/domain"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// in-memory stores, mirroring the repository contracts

type memUserStore struct {
	users  map[int64]*domain.User
	nextID int64
}

func (s *memUserStore) Create(_ context.Context, u *domain.User) error {
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func (s *memTaskStore) ListByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
	var ids []int64
	for id, t := range s.tasks {
		if t.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var res []*domain.Task
	for _, id := range ids {
		cp := *s.tasks[id]
		res = append(res, &cp)
	}
	return res, nil
}

func (s *memTaskStore) Create(_ context.Context, t *domain.Task) error {
	s.nextID++
	t.ID = s.nextID
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *memTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memTaskStore) Update(_ context.Context, t *domain.Task) error {
	if _, ok := s.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *memTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// newTestRouter wires the real handlers and auth middleware over the
// in-memory stores, matching the production route table.
func newTestRouter(t *testing.T) (*gin.Engine, *memUserStore, *memTaskStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT("handlers-test-secret")

	users := &memUserStore{users: make(map[int64]*domain.User)}
	tasks := &memTaskStore{tasks: make(map[int64]*domain.Task)}

	h := &Handler{
		Auth:  service.NewAuthService(users),
		Tasks: service.NewTaskService(users, tasks),
	}

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)

	task := r.Group("/task")
	task.Use(middleware.Auth())
	task.GET("/getTasks", h.GetTasks)
	task.POST("/addTask", h.AddTask)
	task.PATCH("/editTask/:taskId", h.EditTask)
	task.DELETE("/removeTask/:taskId", h.RemoveTask)
	task.DELETE("/deleteTasks", h.DeleteTasks)
	task.GET("/dashboard", h.Dashboard)

	return r, users, tasks
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

// signupUser registers a user through the API and returns its token.
func signupUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"password": "pw-" + username,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: status = %d, body %s", username, w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("signup %s: no token in %v", username, body)
	}
	return token
}

func validTaskPayload() map[string]any {
	return map[string]any{
		"title":        "Report",
		"startingDate": "2026-01-10T09:00:00Z",
		"endingDate":   "2026-01-12T09:00:00Z",
		"priority":     3,
		"taskStatus":   "pending",
	}
}

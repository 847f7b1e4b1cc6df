package service

import (
	"context"
	"sort"

	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
)

// in-memory stores standing in for the pgx repositories

type fakeUserStore struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *domain.User) error {
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

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) remove(id int64) {
	delete(s.users, id)
}

type fakeTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task)}
}

func (s *fakeTaskStore) ListByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
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

func (s *fakeTaskStore) Create(_ context.Context, t *domain.Task) error {
	s.nextID++
	t.ID = s.nextID
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) Update(_ context.Context, t *domain.Task) error {
	if _, ok := s.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

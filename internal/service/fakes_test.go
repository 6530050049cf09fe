package service

import (
	"context"
	"sync"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/cache"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/events"

	"github.com/google/uuid"
)

type contentUpdate struct {
	id      uuid.UUID
	content string
	status  string
}

type fakeLessonRepo struct {
	contract.LessonRepository
	mu      sync.Mutex
	lessons map[uuid.UUID]*entity.Lesson
	updates []contentUpdate
	finds   int
	err     error
}

func (r *fakeLessonRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.err != nil {
		return nil, r.err
	}
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if l, found := r.lessons[byID.ID]; found {
				cp := *l
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeLessonRepo) UpdateContent(ctx context.Context, id uuid.UUID, content, status string, generatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, contentUpdate{id: id, content: content, status: status})
	if l, ok := r.lessons[id]; ok {
		l.Content = content
		l.ContentStatus = status
		l.GeneratedAt = &generatedAt
	}
	return nil
}

type fakeUoW struct {
	unitofwork.UnitOfWork
	lessons *fakeLessonRepo
}

func (u fakeUoW) LessonRepository() contract.LessonRepository {
	return u.lessons
}

type fakeFactory struct {
	lessons *fakeLessonRepo
}

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return fakeUoW{lessons: f.lessons}
}

func newLessonRepo(lessons ...*entity.Lesson) *fakeLessonRepo {
	repo := &fakeLessonRepo{lessons: map[uuid.UUID]*entity.Lesson{}}
	for _, l := range lessons {
		repo.lessons[l.Id] = l
	}
	return repo
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]cache.Entry
	invalidated []uuid.UUID
	sets        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uuid.UUID]cache.Entry{}}
}

func (c *fakeCache) Get(ctx context.Context, id uuid.UUID) (*cache.Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

func (c *fakeCache) Set(ctx context.Context, entry *cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.LessonId] = *entry
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *fakeCache) get(id uuid.UUID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return e.Content, ok
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingEvents) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

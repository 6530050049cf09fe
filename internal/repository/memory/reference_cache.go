package memory

import (
	"context"
	"strings"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	refKeyPrefix    = "ref:"
	corpusKeyPrefix = "corpus:"
)

// CachedReferenceStore serves reference lookups for prompt assembly from an in-process
// cache in front of the database. Entries expire after ttl; Invalidate drops everything.
type CachedReferenceStore struct {
	factory unitofwork.RepositoryFactory
	cache   *cache.Cache
}

func NewCachedReferenceStore(factory unitofwork.RepositoryFactory, ttl time.Duration) *CachedReferenceStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedReferenceStore{
		factory: factory,
		cache:   cache.New(ttl, 2*ttl),
	}
}

func (s *CachedReferenceStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReferenceDocument, error) {
	key := refKeyPrefix + id.String()
	if x, found := s.cache.Get(key); found {
		return x.(*entity.ReferenceDocument), nil
	}

	uow := s.factory.NewUnitOfWork(ctx)
	ref, err := uow.ReferenceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	// misses are not cached, a reference may be uploaded right after
	if ref != nil {
		s.cache.Set(key, ref, cache.DefaultExpiration)
	}
	return ref, nil
}

func (s *CachedReferenceStore) FindAll(ctx context.Context, tag string) ([]*entity.ReferenceDocument, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	key := corpusKeyPrefix + tag
	if x, found := s.cache.Get(key); found {
		return x.([]*entity.ReferenceDocument), nil
	}

	specs := []specification.Specification{specification.OrderBy{Field: "created_at"}}
	if tag != "" {
		specs = append(specs, specification.WithTag{Tag: tag})
	}

	uow := s.factory.NewUnitOfWork(ctx)
	refs, err := uow.ReferenceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, refs, cache.DefaultExpiration)
	return refs, nil
}

func (s *CachedReferenceStore) Invalidate() {
	s.cache.Flush()
}

func (s *CachedReferenceStore) InvalidateReference(id uuid.UUID) {
	s.cache.Delete(refKeyPrefix + id.String())
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, corpusKeyPrefix) {
			s.cache.Delete(key)
		}
	}
}

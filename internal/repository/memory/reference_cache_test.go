package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	contract.ReferenceRepository
	refs     []*entity.ReferenceDocument
	findOne  int
	findAll  int
	lastTags []string
}

func (r *countingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceDocument, error) {
	r.findOne++
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, ref := range r.refs {
				if ref.Id == byID.ID {
					return ref, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *countingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceDocument, error) {
	r.findAll++
	r.lastTags = nil
	for _, spec := range specs {
		if wt, ok := spec.(specification.WithTag); ok {
			r.lastTags = append(r.lastTags, wt.Tag)
		}
	}
	return r.refs, nil
}

type fakeUoW struct {
	unitofwork.UnitOfWork
	repo *countingRepo
}

func (u fakeUoW) ReferenceRepository() contract.ReferenceRepository {
	return u.repo
}

type fakeFactory struct {
	repo *countingRepo
}

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return fakeUoW{repo: f.repo}
}

func TestCachedReferenceStoreFindByID(t *testing.T) {
	ref := &entity.ReferenceDocument{Id: uuid.New(), Title: "Cours"}
	repo := &countingRepo{refs: []*entity.ReferenceDocument{ref}}
	store := NewCachedReferenceStore(fakeFactory{repo: repo}, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := store.FindByID(ctx, ref.Id)
		require.NoError(t, err)
		assert.Equal(t, "Cours", got.Title)
	}
	assert.Equal(t, 1, repo.findOne)

	missing, err := store.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	store.InvalidateReference(ref.Id)
	_, _ = store.FindByID(ctx, ref.Id)
	assert.Equal(t, 3, repo.findOne)
}

func TestCachedReferenceStoreFindAll(t *testing.T) {
	repo := &countingRepo{refs: []*entity.ReferenceDocument{{Id: uuid.New()}}}
	store := NewCachedReferenceStore(fakeFactory{repo: repo}, time.Minute)
	ctx := context.Background()

	_, err := store.FindAll(ctx, " 1BAC ")
	require.NoError(t, err)
	assert.Equal(t, []string{"1bac"}, repo.lastTags)

	_, _ = store.FindAll(ctx, "1bac")
	assert.Equal(t, 1, repo.findAll)

	_, _ = store.FindAll(ctx, "")
	assert.Equal(t, 2, repo.findAll)
	assert.Empty(t, repo.lastTags)

	store.Invalidate()
	_, _ = store.FindAll(ctx, "")
	assert.Equal(t, 3, repo.findAll)
}

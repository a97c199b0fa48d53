package event

import (
	"context"
	"sync"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	GetByTagFunc       func(ctx context.Context, tag string) (*domain.Event, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.Event, error)
	GetByTagsFunc      func(ctx context.Context, tags []string) ([]domain.Event, error)
	FindFunc           func(ctx context.Context, q domain.EventQuery) ([]domain.Event, error)
	InsertFunc         func(ctx context.Context, ne domain.NewEvent) (*domain.Event, error)
	UpdateFunc         func(ctx context.Context, id int64, u domain.EventUpdate) error
	DeleteFunc         func(ctx context.Context, id int64) error
	AddRelationTagFunc func(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error

	calls struct {
		GetByTag []struct {
			Ctx context.Context
			Tag string
		}
		GetByID []struct {
			Ctx context.Context
			Id  int64
		}
		GetByTags []struct {
			Ctx  context.Context
			Tags []string
		}
		Find []struct {
			Ctx context.Context
			Q   domain.EventQuery
		}
		Insert []struct {
			Ctx context.Context
			Ne  domain.NewEvent
		}
		Update []struct {
			Ctx context.Context
			Id  int64
			U   domain.EventUpdate
		}
		Delete []struct {
			Ctx context.Context
			Id  int64
		}
		AddRelationTag []struct {
			Ctx        context.Context
			EventTag   string
			Dir        domain.Direction
			RelatedTag string
		}
	}
	lockGetByTag       sync.RWMutex
	lockGetByID        sync.RWMutex
	lockGetByTags      sync.RWMutex
	lockFind           sync.RWMutex
	lockInsert         sync.RWMutex
	lockUpdate         sync.RWMutex
	lockDelete         sync.RWMutex
	lockAddRelationTag sync.RWMutex
}

func (mock *eventRepoMock) GetByTag(ctx context.Context, tag string) (*domain.Event, error) {
	if mock.GetByTagFunc == nil {
		panic("eventRepoMock.GetByTagFunc: method is nil but eventRepo.GetByTag was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Tag string
	}{Ctx: ctx, Tag: tag}
	mock.lockGetByTag.Lock()
	mock.calls.GetByTag = append(mock.calls.GetByTag, callInfo)
	mock.lockGetByTag.Unlock()
	return mock.GetByTagFunc(ctx, tag)
}

func (mock *eventRepoMock) GetByTagCalls() []struct {
		Ctx context.Context
		Tag string
} {
	mock.lockGetByTag.RLock()
	calls := mock.calls.GetByTag
	mock.lockGetByTag.RUnlock()
	return calls
}

func (mock *eventRepoMock) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if mock.GetByIDFunc == nil {
		panic("eventRepoMock.GetByIDFunc: method is nil but eventRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *eventRepoMock) GetByIDCalls() []struct {
		Ctx context.Context
		Id  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *eventRepoMock) GetByTags(ctx context.Context, tags []string) ([]domain.Event, error) {
	if mock.GetByTagsFunc == nil {
		panic("eventRepoMock.GetByTagsFunc: method is nil but eventRepo.GetByTags was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Tags []string
	}{Ctx: ctx, Tags: tags}
	mock.lockGetByTags.Lock()
	mock.calls.GetByTags = append(mock.calls.GetByTags, callInfo)
	mock.lockGetByTags.Unlock()
	return mock.GetByTagsFunc(ctx, tags)
}

func (mock *eventRepoMock) GetByTagsCalls() []struct {
		Ctx  context.Context
		Tags []string
} {
	mock.lockGetByTags.RLock()
	calls := mock.calls.GetByTags
	mock.lockGetByTags.RUnlock()
	return calls
}

func (mock *eventRepoMock) Find(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	if mock.FindFunc == nil {
		panic("eventRepoMock.FindFunc: method is nil but eventRepo.Find was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.EventQuery
	}{Ctx: ctx, Q: q}
	mock.lockFind.Lock()
	mock.calls.Find = append(mock.calls.Find, callInfo)
	mock.lockFind.Unlock()
	return mock.FindFunc(ctx, q)
}

func (mock *eventRepoMock) FindCalls() []struct {
		Ctx context.Context
		Q   domain.EventQuery
} {
	mock.lockFind.RLock()
	calls := mock.calls.Find
	mock.lockFind.RUnlock()
	return calls
}

func (mock *eventRepoMock) Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error) {
	if mock.InsertFunc == nil {
		panic("eventRepoMock.InsertFunc: method is nil but eventRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ne  domain.NewEvent
	}{Ctx: ctx, Ne: ne}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, ne)
}

func (mock *eventRepoMock) InsertCalls() []struct {
		Ctx context.Context
		Ne  domain.NewEvent
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *eventRepoMock) Update(ctx context.Context, id int64, u domain.EventUpdate) error {
	if mock.UpdateFunc == nil {
		panic("eventRepoMock.UpdateFunc: method is nil but eventRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
		U   domain.EventUpdate
	}{Ctx: ctx, Id: id, U: u}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, u)
}

func (mock *eventRepoMock) UpdateCalls() []struct {
		Ctx context.Context
		Id  int64
		U   domain.EventUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *eventRepoMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("eventRepoMock.DeleteFunc: method is nil but eventRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *eventRepoMock) DeleteCalls() []struct {
		Ctx context.Context
		Id  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *eventRepoMock) AddRelationTag(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error {
	if mock.AddRelationTagFunc == nil {
		panic("eventRepoMock.AddRelationTagFunc: method is nil but eventRepo.AddRelationTag was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		EventTag   string
		Dir        domain.Direction
		RelatedTag string
	}{Ctx: ctx, EventTag: eventTag, Dir: dir, RelatedTag: relatedTag}
	mock.lockAddRelationTag.Lock()
	mock.calls.AddRelationTag = append(mock.calls.AddRelationTag, callInfo)
	mock.lockAddRelationTag.Unlock()
	return mock.AddRelationTagFunc(ctx, eventTag, dir, relatedTag)
}

func (mock *eventRepoMock) AddRelationTagCalls() []struct {
		Ctx        context.Context
		EventTag   string
		Dir        domain.Direction
		RelatedTag string
} {
	mock.lockAddRelationTag.RLock()
	calls := mock.calls.AddRelationTag
	mock.lockAddRelationTag.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

package events

import (
	"context"
	"sort"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type fakeEventRepository struct {
	mu     sync.Mutex
	rows   map[uint]*model.Event
	nextID uint
}

func newFakeEventRepository(events ...*model.Event) *fakeEventRepository {
	r := &fakeEventRepository{rows: make(map[uint]*model.Event), nextID: 1}
	for _, e := range events {
		r.rows[e.ID] = e
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *fakeEventRepository) WithTx(tx *gorm.DB) EventRepository { return r }

func (r *fakeEventRepository) First(ctx context.Context, id uint) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepository) FindActive(ctx context.Context, limit int) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Event
	for _, e := range r.sorted() {
		if e.IsActive && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepository) sorted() []*model.Event {
	out := make([]*model.Event, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakeEventRepository) Create(ctx context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.Year == event.Year {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	event.ID = r.nextID
	r.nextID++
	r.rows[event.ID] = event
	return nil
}

func (r *fakeEventRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil
	}
	if year, ok := columns["year"].(int); ok {
		for _, other := range r.rows {
			if other.ID != id && other.Year == year {
				return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
			}
		}
		e.Year = year
	}
	if theme, ok := columns["theme"].(string); ok {
		e.Theme = theme
	}
	return nil
}

func (r *fakeEventRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeEventRepository) SetActive(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, e := range r.rows {
		e.IsActive = e.ID == id
	}
	return nil
}

func (r *fakeEventRepository) activeIDs() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for _, e := range r.sorted() {
		if e.IsActive {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

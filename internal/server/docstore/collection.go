package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a typed view over one collection of a Store.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](s Store, name string) Collection[T] {
	return Collection[T]{store: s, name: name}
}

func (c Collection[T]) Insert(ctx context.Context, doc *T) error {
	return c.store.Insert(ctx, c.name, doc)
}

func (c Collection[T]) Find(ctx context.Context, filter Filter, limit int) ([]*T, error) {
	raws, err := c.store.Find(ctx, c.name, filter, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		v, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	raw, err := c.store.FindOne(ctx, c.name, filter)
	if err != nil {
		return nil, err
	}
	return c.decode(raw)
}

func (c Collection[T]) UpdateOne(ctx context.Context, filter Filter, fields map[string]any) (int64, error) {
	return c.store.UpdateOne(ctx, c.name, filter, fields)
}

func (c Collection[T]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	return c.store.DeleteOne(ctx, c.name, filter)
}

func (c Collection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	return c.store.DeleteMany(ctx, c.name, filter)
}

func (c Collection[T]) decode(raw json.RawMessage) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.name, err)
	}
	return v, nil
}

package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Document is a backend document: arbitrary fields plus "id".
type Document map[string]any

type Page struct {
	Items []Document `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}

// CollectionStore holds the state of one admin collection screen backed by
// /admin/{collection}.
type CollectionStore struct {
	state
	collection string

	items []Document
	item  Document
	total int
}

func NewCollectionStore(client *Client, collection string) *CollectionStore {
	return &CollectionStore{state: state{client: client}, collection: collection}
}

func (s *CollectionStore) Collection() string { return s.collection }

func (s *CollectionStore) Items() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Document(nil), s.items...)
}

func (s *CollectionStore) Item() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item
}

func (s *CollectionStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *CollectionStore) Fetch(ctx context.Context, page, size int) Notification {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if size > 0 {
		q.Set("size", fmt.Sprint(size))
	}
	path := s.basePath()
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out Page
	return s.run(ctx, http.MethodGet, path, nil, &out, func() string {
		s.items, s.total = out.Items, out.Total
		return fmt.Sprintf("Loaded %d of %d documents", len(out.Items), out.Total)
	})
}

func (s *CollectionStore) Get(ctx context.Context, key string) Notification {
	var out Document
	return s.run(ctx, http.MethodGet, s.keyPath(key), nil, &out, func() string {
		s.item = out
		return "Document loaded"
	})
}

func (s *CollectionStore) Create(ctx context.Context, doc Document) Notification {
	var out Document
	return s.run(ctx, http.MethodPost, s.basePath(), coerceDates(doc), &out, func() string {
		s.item = out
		s.items = append(s.items, out)
		s.total++
		return "Document created"
	})
}

func (s *CollectionStore) Update(ctx context.Context, key string, doc Document) Notification {
	var out Document
	return s.run(ctx, http.MethodPatch, s.keyPath(key), coerceDates(doc), &out, func() string {
		s.item = out
		for i, d := range s.items {
			if d["id"] == key {
				s.items[i] = out
			}
		}
		return "Document updated"
	})
}

func (s *CollectionStore) Delete(ctx context.Context, key string) Notification {
	return s.run(ctx, http.MethodDelete, s.keyPath(key), nil, nil, func() string {
		kept := s.items[:0]
		for _, d := range s.items {
			if d["id"] != key {
				kept = append(kept, d)
			}
		}
		if len(kept) < len(s.items) {
			s.total--
		}
		s.items = kept
		if s.item != nil && s.item["id"] == key {
			s.item = nil
		}
		return "Document deleted"
	})
}

func (s *CollectionStore) basePath() string {
	return "/admin/" + url.PathEscape(s.collection)
}

func (s *CollectionStore) keyPath(key string) string {
	return s.basePath() + "/" + url.PathEscape(key)
}

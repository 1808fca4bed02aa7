package host

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bdobrica/canvaschat/common/retry"
)

// Query is a validated projection of a RawQuery.
type Query struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// HasField reports whether the query result has a column named field
// (case-insensitive) and returns its canonical spelling.
func (q Query) HasField(field string) (string, bool) {
	for _, f := range q.Fields {
		if strings.EqualFold(f, field) {
			return f, true
		}
	}
	return "", false
}

// WebService is a validated projection of a RawWebService.
type WebService struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Snapshot is the read-only view of host data processors may consult. It is
// built once per command.
type Snapshot struct {
	Queries     []Query
	WebServices []WebService
}

// QueryByName finds a query by name or ID, ignoring case and surrounding
// quotes.
func (s Snapshot) QueryByName(name string) (Query, bool) {
	n := strings.Trim(strings.TrimSpace(name), `"'“”`)
	for _, q := range s.Queries {
		if strings.EqualFold(q.Name, n) || q.ID == n {
			return q, true
		}
	}
	return Query{}, false
}

// QueryByID finds a query by ID.
func (s Snapshot) QueryByID(id string) (Query, bool) {
	for _, q := range s.Queries {
		if q.ID == id {
			return q, true
		}
	}
	return Query{}, false
}

// QueryNames lists query names in host order.
func (s Snapshot) QueryNames() []string {
	names := make([]string, 0, len(s.Queries))
	for _, q := range s.Queries {
		names = append(names, q.Name)
	}
	return names
}

// BuildSnapshot fetches queries and web services concurrently and validates
// them. Entries without an ID or name are dropped; duplicate fields collapse.
// A nil provider yields an empty snapshot.
func BuildSnapshot(ctx context.Context, p DataProvider, cfg retry.Config) (Snapshot, error) {
	if p == nil {
		return Snapshot{}, nil
	}

	var (
		rawQueries  []RawQuery
		rawServices []RawWebService
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return retry.Do(gctx, cfg, func() error {
			var err error
			rawQueries, err = p.Queries(gctx)
			return err
		})
	})
	g.Go(func() error {
		return retry.Do(gctx, cfg, func() error {
			var err error
			rawServices, err = p.WebServices(gctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("loading host data: %w", err)
	}

	var snap Snapshot
	for _, rq := range rawQueries {
		id, name := strings.TrimSpace(rq.ID), strings.TrimSpace(rq.Name)
		if id == "" || name == "" {
			slog.Debug("host: dropping query without id or name", "id", rq.ID, "name", rq.Name)
			continue
		}
		q := Query{ID: id, Name: name, Fields: []string{}}
		if rq.Schema != nil {
			for _, col := range rq.Schema.Columns {
				f := strings.TrimSpace(col.Name)
				if f != "" && !slices.Contains(q.Fields, f) {
					q.Fields = append(q.Fields, f)
				}
			}
		}
		snap.Queries = append(snap.Queries, q)
	}
	for _, rs := range rawServices {
		if strings.TrimSpace(rs.ID) == "" || strings.TrimSpace(rs.Name) == "" {
			continue
		}
		snap.WebServices = append(snap.WebServices, WebService{ID: rs.ID, Name: rs.Name, URL: rs.URL})
	}
	return snap, nil
}

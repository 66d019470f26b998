package category_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agmlego/novatime/internal/category"
	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

// optionRecord builds a raw group option with the given seq and value.
func optionRecord(seq int, value, desc string) raw.Record {
	return raw.Record{
		"iGroupNumber":           float64(2),
		"iGroupValueSeq":         float64(seq),
		"cGroupValue":            value,
		"cGroupValueDescription": desc,
		"cGroupCode":             nil,
		"iGroupUserType":         float64(0),
		"nGPSLatitude":           nil,
		"nGPSLongitude":          nil,
		"cGroupColor":            nil,
		"cDescription":           nil,
		"lClosed":                false,
	}
}

// fakePager serves canned pages keyed by page number.
type fakePager struct {
	pages map[int]*category.PageResult
	calls int
}

func (p *fakePager) Page(ctx context.Context, groupNumber, page, perPage int) (*category.PageResult, error) {
	p.calls++
	result, ok := p.pages[page]
	if !ok {
		return nil, fmt.Errorf("no page %d", page)
	}
	return result, nil
}

func TestFetchPagesUntilTotal(t *testing.T) {
	pager := &fakePager{pages: map[int]*category.PageResult{
		1: {Items: []raw.Record{optionRecord(1, "A", ""), optionRecord(2, "B", "")}, Total: 3},
		2: {Items: []raw.Record{optionRecord(3, "C", "")}, Total: 3},
	}}

	g := category.NewGroup(2, "Job")
	require.NoError(t, g.Fetch(context.Background(), pager, 2))

	require.Equal(t, 2, pager.calls)
	require.Equal(t, 3, g.Len())

	c, ok := g.Lookup(2)
	require.True(t, ok)
	require.Equal(t, "B", c.Value)

	opts := g.Options()
	require.Len(t, opts, 3)
	require.Equal(t, []int{1, 2, 3}, []int{opts[0].GroupSeq, opts[1].GroupSeq, opts[2].GroupSeq})
}

func TestFetchOverwritesDuplicateSeq(t *testing.T) {
	// The same seq shows up on both pages with changed display text;
	// the later page wins and the overwrite is logged exactly once.
	pager := &fakePager{pages: map[int]*category.PageResult{
		1: {Items: []raw.Record{optionRecord(1, "A", "old"), optionRecord(2, "B", "")}, Total: 3},
		2: {Items: []raw.Record{optionRecord(1, "A", "new"), optionRecord(3, "C", "")}, Total: 3},
	}}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	g := category.NewGroup(2, "Job", category.WithLogger(logger))
	require.NoError(t, g.Fetch(context.Background(), pager, 2))

	require.Equal(t, 3, g.Len())
	c, _ := g.Lookup(1)
	require.Equal(t, "new", c.ValueDescription)

	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("category overwritten during fetch")))
}

func TestFetchGivesUpAfterPageCeiling(t *testing.T) {
	// Every page reports a total the cache never reaches.
	pages := map[int]*category.PageResult{}
	for i := 1; i <= 60; i++ {
		pages[i] = &category.PageResult{Items: []raw.Record{optionRecord(1, "A", "")}, Total: 2}
	}
	pager := &fakePager{pages: pages}

	g := category.NewGroup(2, "Job", category.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	err := g.Fetch(context.Background(), pager, 1)

	var pagingErr *category.PagingError
	require.ErrorAs(t, err, &pagingErr)
	require.Equal(t, "Job", pagingErr.Group)
	require.Equal(t, 50, pagingErr.Pages)
	require.Equal(t, 1, pagingErr.Have)
	require.Equal(t, 2, pagingErr.Total)
	require.Equal(t, 50, pager.calls)
}

func TestFetchPropagatesPagerError(t *testing.T) {
	wantErr := errors.New("network down")
	pager := &errPager{err: wantErr}

	g := category.NewGroup(2, "Job")
	err := g.Fetch(context.Background(), pager, 10)
	require.ErrorIs(t, err, wantErr)
}

type errPager struct {
	err error
}

func (p *errPager) Page(ctx context.Context, groupNumber, page, perPage int) (*category.PageResult, error) {
	return nil, p.err
}

func TestMemoryStorePut(t *testing.T) {
	store := category.NewMemoryStore()

	first, err := timesheet.ParseCategory(optionRecord(7, "X", "first"))
	require.NoError(t, err)
	prev, replaced := store.Put(first)
	require.False(t, replaced)
	require.Nil(t, prev)

	second, err := timesheet.ParseCategory(optionRecord(7, "X", "second"))
	require.NoError(t, err)
	prev, replaced = store.Put(second)
	require.True(t, replaced)
	require.Equal(t, "first", prev.ValueDescription)

	require.Equal(t, 1, store.Len())
}

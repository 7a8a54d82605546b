package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Sort)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQuery_Pagination(t *testing.T) {
	values, err := url.ParseQuery("limit=25&page=3")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, 25, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	// Offset выводится из страницы, если не задан явно
	assert.Equal(t, 50, filter.Offset)
}

func TestParseFilterFromQuery_LimitCap(t *testing.T) {
	values, _ := url.ParseQuery("limit=9999")
	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQuery_SortAndFilter(t *testing.T) {
	values, err := url.ParseQuery("search=проектор&sort[created_at]=desc&sort[name]=ASC&filter[status]=available&filter[category_id]=1&filter[category_id]=2")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "проектор", filter.Search)
	assert.Equal(t, "desc", filter.Sort["created_at"])
	assert.Equal(t, "asc", filter.Sort["name"], "направление сортировки приводится к нижнему регистру")
	assert.Equal(t, "available", filter.Filter["status"])
	assert.Equal(t, "1,2", filter.Filter["category_id"], "повторные значения склеиваются через запятую")
}

func TestParseFilterFromQuery_InvalidSortDirection(t *testing.T) {
	values, _ := url.ParseQuery("sort[created_at]=sideways")
	filter := ParseFilterFromQuery(values)
	_, ok := filter.Sort["created_at"]
	assert.False(t, ok)
}

func TestParseFilterFromQuery_WithPaginationFlag(t *testing.T) {
	values, _ := url.ParseQuery("withPagination=false")
	filter := ParseFilterFromQuery(values)
	assert.False(t, filter.WithPagination)
}

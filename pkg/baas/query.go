package baas

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type CountOption string

// CountExact asks the table API for the exact number of matching rows.
const CountExact CountOption = "exact"

// QueryBuilder accumulates one table request. Methods mutate and return the
// builder; nothing is sent before Execute.
type QueryBuilder struct {
	client    *Client
	table     string
	method    string
	params    url.Values
	body      interface{}
	count     CountOption
	single    bool
	returning bool
	err       error
}

func newQueryBuilder(c *Client, table string) *QueryBuilder {
	q := &QueryBuilder{
		client: c,
		table:  table,
		method: http.MethodGet,
		params: url.Values{},
	}
	if strings.TrimSpace(table) == "" {
		q.err = fmt.Errorf("table name is required")
	}
	return q
}

// Select sets the returned columns, including embedded resources such as
// "*,users(id,username)". After Insert or Update it asks for the written rows
// back.
func (q *QueryBuilder) Select(columns string, count ...CountOption) *QueryBuilder {
	cols := strings.Join(strings.Fields(columns), "")
	if cols == "" {
		cols = "*"
	}
	q.params.Set("select", cols)
	if len(count) > 0 {
		q.count = count[0]
	}
	if q.method != http.MethodGet {
		q.returning = true
	}
	return q
}

func (q *QueryBuilder) Insert(rows interface{}) *QueryBuilder {
	q.method = http.MethodPost
	q.body = rows
	return q
}

func (q *QueryBuilder) Update(values interface{}) *QueryBuilder {
	q.method = http.MethodPatch
	q.body = values
	return q
}

func (q *QueryBuilder) Delete() *QueryBuilder {
	q.method = http.MethodDelete
	return q
}

// Eq filters rows where column equals value.
func (q *QueryBuilder) Eq(column string, value interface{}) *QueryBuilder {
	q.params.Add(column, "eq."+fmt.Sprint(value))
	return q
}

// Order adds a sort key; keys apply in the order they were added.
func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	key := column + "." + dir
	if existing := q.params.Get("order"); existing != "" {
		key = existing + "," + key
	}
	q.params.Set("order", key)
	return q
}

// Range limits the result to rows from..to, both inclusive and zero-based.
func (q *QueryBuilder) Range(from, to int) *QueryBuilder {
	if from < 0 || to < from {
		q.err = fmt.Errorf("invalid range %d-%d", from, to)
		return q
	}
	q.params.Set("offset", strconv.Itoa(from))
	q.params.Set("limit", strconv.Itoa(to-from+1))
	return q
}

// Single expects exactly one row and decodes it as an object instead of an
// array. Zero rows fail with code CodeNoRows.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

// Execute sends the request and decodes the rows into dest, which may be nil.
// count is the total reported by the service when a count was requested.
func (q *QueryBuilder) Execute(ctx context.Context, dest interface{}) (count int64, err error) {
	if q.err != nil {
		return 0, q.err
	}

	headers := map[string]string{"Accept": "application/json"}
	if q.single {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}

	var prefer []string
	if q.count != "" {
		prefer = append(prefer, "count="+string(q.count))
	}
	switch {
	case q.method == http.MethodGet:
	case q.returning:
		prefer = append(prefer, "return=representation")
	default:
		prefer = append(prefer, "return=minimal")
	}
	if len(prefer) > 0 {
		headers["Prefer"] = strings.Join(prefer, ",")
	}

	resp, err := q.client.do(ctx, request{
		method:  q.method,
		path:    restPath + "/" + q.table,
		query:   q.params,
		body:    q.body,
		headers: headers,
	})
	if err != nil {
		return 0, err
	}

	count = parseContentRange(resp.Header.Get("Content-Range"))

	if !q.returning && q.method != http.MethodGet {
		dest = nil
	}
	if err := decodeJSON(resp, dest); err != nil {
		return 0, err
	}
	return count, nil
}

// parseContentRange reads the total from "0-9/42" or "*/42". Unknown totals
// ("0-9/*") and missing headers give 0.
func parseContentRange(header string) int64 {
	i := strings.LastIndexByte(header, '/')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseInt(header[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

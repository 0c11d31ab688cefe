package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"inkpress/pkg/baas"

	"github.com/stretchr/testify/require"
)

// fakeBaaS is an in-memory stand-in for the hosted service, covering the
// auth and table endpoints the repositories use.
type fakeBaaS struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]fakeAccount // by email
	tokens   map[string]string      // token -> user id
	tables   map[string][]map[string]interface{}
	epoch    time.Time
}

type fakeAccount struct {
	id       string
	password string
}

func newFakeBaaS(t *testing.T) (*fakeBaaS, *baas.Client) {
	t.Helper()
	f := &fakeBaaS{
		accounts: map[string]fakeAccount{},
		tokens:   map[string]string{},
		tables: map[string][]map[string]interface{}{
			"users": nil, "posts": nil, "comments": nil,
		},
		epoch: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client, err := baas.New(server.URL, "anon-key",
		baas.WithHTTPClient(server.Client()),
		baas.WithoutSessionPersistence(),
	)
	require.NoError(t, err)
	return f, client
}

func (f *fakeBaaS) nextID(prefix string) (string, string) {
	f.seq++
	created := f.epoch.Add(time.Duration(f.seq) * time.Second).Format(time.RFC3339)
	return fmt.Sprintf("%s-%d", prefix, f.seq), created
}

func (f *fakeBaaS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("apikey") != "anon-key" {
		reply(w, http.StatusUnauthorized, map[string]string{"message": "no api key"})
		return
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/auth/v1/"):
		f.serveAuth(w, r, strings.TrimPrefix(r.URL.Path, "/auth/v1/"))
	case strings.HasPrefix(r.URL.Path, "/rest/v1/"):
		f.serveTable(w, r, strings.TrimPrefix(r.URL.Path, "/rest/v1/"))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBaaS) caller(r *http.Request) string {
	return f.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
}

func (f *fakeBaaS) session(id, email string) map[string]interface{} {
	token := "token-" + id
	f.tokens[token] = id
	return map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   3600,
		"user":         map[string]interface{}{"id": id, "email": email},
	}
}

func (f *fakeBaaS) serveAuth(w http.ResponseWriter, r *http.Request, path string) {
	var body struct {
		Email    string                 `json:"email"`
		Password string                 `json:"password"`
		Data     map[string]interface{} `json:"data"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	switch path {
	case "signup":
		if _, ok := f.accounts[body.Email]; ok {
			reply(w, http.StatusUnprocessableEntity, map[string]string{"error_code": "user_already_exists", "msg": "User already registered"})
			return
		}
		if len(body.Password) < 6 {
			reply(w, http.StatusUnprocessableEntity, map[string]interface{}{"code": 422, "error_code": "weak_password", "msg": "Password should be at least 6 characters."})
			return
		}
		id, created := f.nextID("user")
		f.accounts[body.Email] = fakeAccount{id: id, password: body.Password}
		username, _ := body.Data["username"].(string)
		f.tables["users"] = append(f.tables["users"], map[string]interface{}{
			"id": id, "email": body.Email, "username": username, "avatar_url": "", "bio": "", "created_at": created,
		})
		reply(w, http.StatusOK, f.session(id, body.Email))
	case "token":
		acc, ok := f.accounts[body.Email]
		if !ok || acc.password != body.Password {
			reply(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant", "error_description": "Invalid login credentials"})
			return
		}
		switch {
		case strings.HasPrefix(body.Email, "unconfirmed"):
			reply(w, http.StatusBadRequest, map[string]interface{}{"code": 400, "error_code": "email_not_confirmed", "msg": "Email not confirmed"})
			return
		case strings.HasPrefix(body.Email, "pending"):
			reply(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant", "error_description": "Email not confirmed"})
			return
		}
		reply(w, http.StatusOK, f.session(acc.id, body.Email))
	case "user":
		id := f.caller(r)
		if id == "" {
			reply(w, http.StatusUnauthorized, map[string]string{"msg": "invalid JWT"})
			return
		}
		reply(w, http.StatusOK, map[string]interface{}{"id": id})
	case "logout":
		delete(f.tokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

var reserved = map[string]bool{"select": true, "order": true, "offset": true, "limit": true}

func matches(row map[string]interface{}, q map[string][]string) bool {
	for k, vs := range q {
		if reserved[k] {
			continue
		}
		for _, v := range vs {
			if fmt.Sprint(row[k]) != strings.TrimPrefix(v, "eq.") {
				return false
			}
		}
	}
	return true
}

func (f *fakeBaaS) serveTable(w http.ResponseWriter, r *http.Request, table string) {
	rows, ok := f.tables[table]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"code": "42P01", "message": "relation does not exist"})
		return
	}
	q := r.URL.Query()
	single := r.Header.Get("Accept") == "application/vnd.pgrst.object+json"
	caller := f.caller(r)

	var result []map[string]interface{}
	switch r.Method {
	case http.MethodGet:
		for _, row := range rows {
			if matches(row, q) {
				result = append(result, f.embed(row, q.Get("select")))
			}
		}
		if strings.HasPrefix(q.Get("order"), "created_at.") {
			asc := strings.HasSuffix(q.Get("order"), ".asc")
			sort.SliceStable(result, func(i, j int) bool {
				a, b := result[i]["created_at"].(string), result[j]["created_at"].(string)
				if asc {
					return a < b
				}
				return a > b
			})
		}
		total := len(result)
		offset, _ := strconv.Atoi(q.Get("offset"))
		if offset > len(result) {
			offset = len(result)
		}
		result = result[offset:]
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit < len(result) {
			result = result[:limit]
		}
		w.Header().Set("Content-Range", fmt.Sprintf("%d-%d/%d", offset, offset+len(result)-1, total))
	case http.MethodPost:
		if caller == "" {
			reply(w, http.StatusUnauthorized, map[string]string{"code": "42501", "message": "permission denied"})
			return
		}
		var in []map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&in)
		for _, row := range in {
			id, created := f.nextID(strings.TrimSuffix(table, "s"))
			row["id"], row["created_at"] = id, created
			if table == "posts" && row["status"] == nil {
				row["status"] = "draft"
			}
			f.tables[table] = append(f.tables[table], row)
			result = append(result, row)
		}
	case http.MethodPatch:
		var in map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&in)
		for _, row := range rows {
			if matches(row, q) {
				for k, v := range in {
					row[k] = v
				}
				result = append(result, row)
			}
		}
	case http.MethodDelete:
		kept := rows[:0]
		for _, row := range rows {
			if !matches(row, q) {
				kept = append(kept, row)
			}
		}
		f.tables[table] = kept
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if single {
		if len(result) != 1 {
			reply(w, http.StatusNotAcceptable, map[string]string{
				"code":    baas.CodeNoRows,
				"message": "JSON object requested, multiple (or no) rows returned",
				"details": fmt.Sprintf("The result contains %d rows", len(result)),
			})
			return
		}
		reply(w, http.StatusOK, result[0])
		return
	}
	if result == nil {
		result = []map[string]interface{}{}
	}
	reply(w, http.StatusOK, result)
}

func (f *fakeBaaS) embed(row map[string]interface{}, sel string) map[string]interface{} {
	if !strings.Contains(sel, "users(") {
		return row
	}
	owner := row["author_id"]
	if owner == nil {
		owner = row["user_id"]
	}
	out := map[string]interface{}{}
	for k, v := range row {
		out[k] = v
	}
	for _, u := range f.tables["users"] {
		if u["id"] == owner {
			out["users"] = map[string]interface{}{"id": u["id"], "username": u["username"], "avatar_url": u["avatar_url"]}
		}
	}
	return out
}

func reply(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

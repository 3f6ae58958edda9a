package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/todolists/internal/api/middleware"
	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/GriffinCanCode/todolists/internal/domain/todo"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/todolists/internal/shared/id"
)

const testCookie = "todolists_session"

func setupTestRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour)
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	handlers := NewHandlers(store, metrics, zap.NewNop())

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	RegisterRoutes(router, handlers,
		middleware.Session(store, middleware.SessionCookie{Name: testCookie}),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)
	return router, store
}

// browser replays the session cookie like a real one would
type browser struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newBrowser(t *testing.T, router *gin.Engine) *browser {
	return &browser{t: t, router: router}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) page(path string) *goquery.Document {
	w := b.get(path)
	require.Equal(b.t, http.StatusOK, w.Code, w.Body.String())
	return parse(b.t, w)
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

// createList creates a list and returns its id
func (b *browser) createList(name string) string {
	w := b.post("/lists", url.Values{"list_name": {name}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())

	var listID string
	b.page("/lists").Find("#lists li").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Find("a").Text()) == strings.TrimSpace(name) {
			listID, _ = s.Attr("data-id")
		}
	})
	require.NotEmpty(b.t, listID, "list %q not rendered", name)
	return listID
}

// addTodo adds a todo and returns its id
func (b *browser) addTodo(listID, name string) string {
	w := b.post("/lists/"+listID+"/todos", url.Values{"todo": {name}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())

	var todoID string
	b.page("/lists/"+listID).Find("#todos li").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Find(".name").Text()) == name {
			todoID, _ = s.Attr("data-id")
		}
	})
	require.NotEmpty(b.t, todoID, "todo %q not rendered", name)
	return todoID
}

func texts(sel *goquery.Selection) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestRootRedirects(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := newBrowser(t, router).get("/")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))
}

func TestCreateList(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	w := b.post("/lists", url.Values{"list_name": {"  Groceries  "}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))

	doc := b.page("/lists")
	assert.Equal(t, []string{"Groceries"}, texts(doc.Find("#lists li a")))
	assert.Equal(t, "The list has been created.", strings.TrimSpace(doc.Find(".flash.success").Text()))
	assert.Equal(t, "0/0", strings.TrimSpace(doc.Find("#lists li .remaining").Text()))

	// Flash is shown once
	doc = b.page("/lists")
	assert.Equal(t, 0, doc.Find(".flash").Length())
}

func TestCreateListRejected(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty", "", "List name must be between 1 and 100 characters."},
		{"blank", "    ", "List name must be between 1 and 100 characters."},
		{"too long", strings.Repeat("a", 101), "List name must be between 1 and 100 characters."},
		{"duplicate", "Groceries", "List name must be unique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := setupTestRouter(t)
			b := newBrowser(t, router)
			b.createList("Groceries")

			w := b.post("/lists", url.Values{"list_name": {tt.input}})
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			doc := parse(t, w)
			assert.Equal(t, tt.message, strings.TrimSpace(doc.Find(".flash.error").Text()))
			value, _ := doc.Find("input#list_name").Attr("value")
			assert.Equal(t, tt.input, value)

			sess, ok := store.Get(b.cookie.Value)
			require.True(t, ok)
			assert.Equal(t, 1, sess.Lists().Len())

			// The error does not linger
			assert.Equal(t, 0, b.page("/lists").Find(".flash").Length())
		})
	}
}

func TestListsCompletionOrder(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	work := b.createList("Work")
	b.createList("Home")
	b.createList("Empty")
	b.addTodo(work, "Report")

	w := b.post("/lists/"+work+"/complete_all", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists/"+work, w.Header().Get("Location"))

	doc := b.page("/lists")
	assert.Equal(t, []string{"Home", "Empty", "Work"}, texts(doc.Find("#lists li a")))

	done := doc.Find("#lists li").Last()
	assert.True(t, done.HasClass("complete"))
	position, _ := done.Attr("data-position")
	assert.Equal(t, "0", position)
	assert.Equal(t, "0/1", strings.TrimSpace(done.Find(".remaining").Text()))
	assert.False(t, doc.Find("#lists li").First().HasClass("complete"))
}

func TestShowListTodoOrder(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	listID := b.createList("Groceries")
	milk := b.addTodo(listID, "Milk")
	b.addTodo(listID, "Eggs")
	b.addTodo(listID, "Bread")

	w := b.post("/lists/"+listID+"/todos/"+milk, url.Values{"completed": {"true"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	doc := b.page("/lists/" + listID)
	assert.Equal(t, "The todo has been updated.", strings.TrimSpace(doc.Find(".flash.success").Text()))
	assert.Equal(t, []string{"Eggs", "Bread", "Milk"}, texts(doc.Find("#todos li .name")))
	assert.Equal(t, "2/3", strings.TrimSpace(doc.Find("#list > .remaining").Text()))

	last := doc.Find("#todos li").Last()
	assert.True(t, last.HasClass("complete"))
	toggle, _ := last.Find("input[name=completed]").Attr("value")
	assert.Equal(t, "false", toggle)
	assert.Equal(t, 1, doc.Find("form.complete-all").Length())

	// Any value other than "true" clears the flag
	w = b.post("/lists/"+listID+"/todos/"+milk, url.Values{"completed": {"yes"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	doc = b.page("/lists/" + listID)
	assert.Equal(t, []string{"Milk", "Eggs", "Bread"}, texts(doc.Find("#todos li .name")))
}

func TestCompleteAll(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	listID := b.createList("Chores")
	b.addTodo(listID, "Dishes")
	b.addTodo(listID, "Laundry")

	for i := 0; i < 2; i++ {
		w := b.post("/lists/"+listID+"/complete_all", nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
	}

	doc := b.page("/lists/" + listID)
	assert.Equal(t, "All todo items have been updated.", strings.TrimSpace(doc.Find(".flash.success").Text()))
	assert.Equal(t, 2, doc.Find("#todos li.complete").Length())
	assert.True(t, doc.Find("#list").HasClass("complete"))
	assert.Equal(t, 0, doc.Find("form.complete-all").Length())
}

func TestAddTodoRejected(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)
	listID := b.createList("Groceries")
	long := strings.Repeat("x", 101)

	w := b.post("/lists/"+listID+"/todos", url.Values{"todo": {long}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := parse(t, w)
	assert.Equal(t, "Todo name must be between 1 and 100 characters.", strings.TrimSpace(doc.Find(".flash.error").Text()))
	value, _ := doc.Find("input#todo").Attr("value")
	assert.Equal(t, long, value)
	assert.Equal(t, 0, doc.Find("#todos li").Length())
}

func TestDeleteTodo(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	listID := b.createList("Groceries")
	milk := b.addTodo(listID, "Milk")
	b.addTodo(listID, "Eggs")

	w := b.post("/lists/"+listID+"/todos/"+milk+"/destroy", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists/"+listID, w.Header().Get("Location"))

	doc := b.page("/lists/" + listID)
	assert.Equal(t, "Todo item deleted.", strings.TrimSpace(doc.Find(".flash.success").Text()))
	assert.Equal(t, []string{"Eggs"}, texts(doc.Find("#todos li .name")))
	position, _ := doc.Find("#todos li").Attr("data-position")
	assert.Equal(t, "0", position)

	// A deleted todo is gone for good
	w = b.post("/lists/"+listID+"/todos/"+milk+"/destroy", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditList(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	work := b.createList("Work")
	b.createList("Home")

	doc := b.page("/lists/" + work + "/edit")
	value, _ := doc.Find("input#list_name").Attr("value")
	assert.Equal(t, "Work", value)

	t.Run("same name", func(t *testing.T) {
		w := b.post("/lists/"+work, url.Values{"list_name": {"Work"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/lists/"+work, w.Header().Get("Location"))
	})

	t.Run("another list's name", func(t *testing.T) {
		w := b.post("/lists/"+work, url.Values{"list_name": {"Home"}})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		doc := parse(t, w)
		assert.Equal(t, "List name must be unique", strings.TrimSpace(doc.Find(".flash.error").Text()))
	})

	t.Run("new name", func(t *testing.T) {
		w := b.post("/lists/"+work, url.Values{"list_name": {" Office "}})
		require.Equal(t, http.StatusSeeOther, w.Code)

		doc := b.page("/lists/" + work)
		assert.Equal(t, "The list has been updated.", strings.TrimSpace(doc.Find(".flash.success").Text()))
		assert.Equal(t, "Office", strings.TrimSpace(doc.Find("#list h1").Text()))
	})
}

func TestDeleteList(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	work := b.createList("Work")
	home := b.createList("Home")

	w := b.post("/lists/"+work+"/destroy", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))

	doc := b.page("/lists")
	assert.Equal(t, "The list has been deleted.", strings.TrimSpace(doc.Find(".flash.success").Text()))
	assert.Equal(t, []string{"Home"}, texts(doc.Find("#lists li a")))
	remaining, _ := doc.Find("#lists li").Attr("data-id")
	assert.Equal(t, home, remaining)

	w = b.get("/lists/" + work)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)
	listID := b.createList("Groceries")
	unknownList := id.NewListID().String()
	unknownTodo := id.NewTodoID().String()

	tests := []struct {
		name    string
		method  string
		path    string
		message string
	}{
		{"malformed list id", http.MethodGet, "/lists/7", msgListNotFound},
		{"unknown list", http.MethodGet, "/lists/" + unknownList, msgListNotFound},
		{"edit unknown list", http.MethodGet, "/lists/" + unknownList + "/edit", msgListNotFound},
		{"rename unknown list", http.MethodPost, "/lists/bogus", msgListNotFound},
		{"add to unknown list", http.MethodPost, "/lists/bogus/todos", msgListNotFound},
		{"complete unknown list", http.MethodPost, "/lists/bogus/complete_all", msgListNotFound},
		{"toggle unknown todo", http.MethodPost, "/lists/" + listID + "/todos/" + unknownTodo, msgTodoNotFound},
		{"delete malformed todo", http.MethodPost, "/lists/" + listID + "/todos/0/destroy", msgTodoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tt.method == http.MethodGet {
				w = b.get(tt.path)
			} else {
				w = b.post(tt.path, url.Values{"list_name": {"x"}, "todo": {"x"}})
			}

			require.Equal(t, http.StatusNotFound, w.Code)
			doc := parse(t, w)
			assert.Equal(t, tt.message, strings.TrimSpace(doc.Find("p.message").Text()))
		})
	}
}

func TestFailNamesMissingEntity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	h := NewHandlers(store, monitoring.NewMetrics(prometheus.NewRegistry()), zap.NewNop())

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing todo", fmt.Errorf("%w: %s", todo.ErrTodoNotFound, id.NewTodoID()), http.StatusNotFound, msgTodoNotFound},
		{"missing list", fmt.Errorf("%w: %s", todo.ErrListNotFound, id.NewListID()), http.StatusNotFound, msgListNotFound},
		{"other failure", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.SetHTMLTemplate(tmpl)
			router.Use(middleware.Session(store, middleware.SessionCookie{Name: testCookie}))
			router.GET("/fail", func(c *gin.Context) {
				h.fail(c, middleware.CurrentSession(c), tt.err)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			require.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				doc := parse(t, w)
				assert.Equal(t, tt.message, strings.TrimSpace(doc.Find("p.message").Text()))
			}
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	router, store := setupTestRouter(t)
	alice := newBrowser(t, router)
	bob := newBrowser(t, router)

	alice.createList("Groceries")
	bob.createList("Groceries")

	assert.Equal(t, 1, alice.page("/lists").Find("#lists li a").Length())
	assert.Equal(t, 1, bob.page("/lists").Find("#lists li a").Length())
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
	assert.Equal(t, 2, store.Len())
}

func TestExport(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)
	listID := b.createList("Groceries")
	b.addTodo(listID, "Milk")

	tests := []struct {
		format      string
		contentType string
		want        string
	}{
		{"", "application/json", `"name": "Groceries"`},
		{"json", "application/json", `"remaining": "1/1"`},
		{"yaml", "application/yaml", "Milk"},
		{"toml", "application/toml", "[[lists]]"},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			w := b.get("/api/export?format=" + tt.format)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}

	w := b.get("/api/export?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthIsSessionless(t *testing.T) {
	router, store := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 0, store.Len())
}

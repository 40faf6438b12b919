//go:build integration
// +build integration

package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	dbadapter "todohub/internal/adapter/db"
	httpadapter "todohub/internal/adapter/http"
	"todohub/internal/adapter/http/dto"
	"todohub/internal/adapter/http/handlers"
	appservice "todohub/internal/app/service"
	"todohub/internal/app/store"
	"todohub/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type TodosIntegrationSuite struct {
	IntegrationSuiteBase

	router     *gin.Engine
	todoStore  *store.Store
	repository *dbadapter.TodoRepository
}

func TestTodosIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TodosIntegrationSuite))
}

func (s *TodosIntegrationSuite) SetupSuite() {
	s.IntegrationSuiteBase.SetupSuite()

	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
}

func (s *TodosIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	s.todoStore = store.NewStore()
	s.repository = dbadapter.NewTodoRepository(s.DB)

	router := gin.New()
	healthHandler := handlers.NewHealthHandler(s.DB)
	todoService := appservice.NewTodoService(s.todoStore)
	todoHandler := handlers.NewTodoHandler(todoService)
	httpadapter.RegisterRoutes(router, healthHandler, todoHandler)

	s.router = router
}

func (s *TodosIntegrationSuite) do(method, target, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TodosIntegrationSuite) TestTodoLifecycleAcrossRestart() {
	rec := s.do(http.MethodPost, "/api/todos", "alice", `{
		"title": "Plan trip",
		"priority": "high",
		"tags": ["travel"],
		"due_date": "2026-05-01T00:00:00Z",
		"subtasks": ["Book flight", "Book hotel"]
	}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created dto.TodoItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().Len(created.Subtasks, 2)

	// Simulate a process boundary: save, restart into a fresh store, load.
	s.Require().NoError(s.repository.SaveAll(context.Background(), s.todoStore.Snapshot()))

	reloaded, err := s.repository.LoadAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(reloaded, 1)
	s.Require().Equal("Plan trip", reloaded[0].Title)
	s.Require().NotNil(reloaded[0].Tags)
	s.Require().Equal([]string{"travel"}, reloaded[0].Tags)
	s.Require().Len(reloaded[0].Subtasks, 2)
	s.Require().Equal("Book flight", reloaded[0].Subtasks[0].Title)

	freshStore := store.NewStore()
	freshStore.ReplaceAll(reloaded)
	s.Require().Len(freshStore.ListByUser("alice"), 1)
}

func (s *TodosIntegrationSuite) TestSaveAllPersistsNullableTagsAsNull() {
	rec := s.do(http.MethodPost, "/api/todos", "alice", `{"title": "No tags"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	s.Require().NoError(s.repository.SaveAll(context.Background(), s.todoStore.Snapshot()))

	var tagCount int
	s.Require().NoError(s.DB.Get(&tagCount, "SELECT COUNT(*) FROM todos WHERE tags IS NULL"))
	s.Require().Equal(1, tagCount)

	// A NULL tags column still loads as an empty, non-nil slice.
	reloaded, err := s.repository.LoadAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(reloaded, 1)
	s.Require().NotNil(reloaded[0].Tags)
	s.Require().Empty(reloaded[0].Tags)
}

func (s *TodosIntegrationSuite) TestOwnershipIsolationOverHTTP() {
	rec := s.do(http.MethodPost, "/api/todos", "alice", `{"title": "Private"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created dto.TodoItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(http.MethodGet, "/api/todos/"+created.ID, "bob", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/todos/"+created.ID, "bob", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/todos", "bob", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var listing dto.TodoListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listing))
	s.Require().Equal(0, listing.Total)
}

func (s *TodosIntegrationSuite) TestPaginationCoversAllRecordsExactlyOnce() {
	for i := 0; i < 7; i++ {
		rec := s.do(http.MethodPost, "/api/todos", "alice", `{"title": "Task"}`)
		s.Require().Equal(http.StatusCreated, rec.Code)
		time.Sleep(2 * time.Millisecond)
	}

	seen := make([]string, 0, 7)
	page := 1
	for {
		rec := s.do(http.MethodGet, "/api/todos?sort_by=createdAt&sort_order=asc&limit=3&page="+strconv.Itoa(page), "alice", "")
		s.Require().Equal(http.StatusOK, rec.Code)

		var listing dto.TodoListResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listing))
		s.Require().Equal(7, listing.Total)
		for _, item := range listing.Items {
			seen = append(seen, item.ID)
		}
		if page >= listing.TotalPages {
			break
		}
		page++
	}

	s.Require().Len(seen, 7)
	unique := append([]string{}, seen...)
	sort.Strings(unique)
	for i := 1; i < len(unique); i++ {
		s.Require().NotEqual(unique[i-1], unique[i])
	}
}

func (s *TodosIntegrationSuite) TestHealthReportsMysql() {
	rec := s.do(http.MethodGet, "/api/health/report", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var report handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Require().Equal(handlers.StatusOk, report.Status.Mysql)
}
